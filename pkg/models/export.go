/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package models

import (
	"fmt"
	"time"
)

// UnknownVendor is written to router.db when a device has no vendor on record.
const UnknownVendor = "unknown"

// Status is the rancid state column of router.db.
type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// Reachability is the outcome of a last-discovery recency check.
type Reachability string

const (
	ReachabilityUp      Reachability = "up"
	ReachabilityDown    Reachability = "down"
	ReachabilityUnknown Reachability = "unknown"
)

// Status folds unknown into down.
func (r Reachability) Status() Status {
	if r == ReachabilityUp {
		return StatusUp
	}

	return StatusDown
}

// ExportLine is one router.db entry.
type ExportLine struct {
	Name   string
	Vendor string
	Status Status
}

func (l ExportLine) String() string {
	return fmt.Sprintf("%s:%s:%s\n", l.Name, l.Vendor, l.Status)
}

// CloginEntryKind distinguishes the directive families written to .cloginrc.
type CloginEntryKind int

const (
	CloginStatic CloginEntryKind = iota
	CloginAutoenable
)

// CloginEntry is either the static user/password/method triple for a router class
// pattern or an autoenable directive for a single device.
type CloginEntry struct {
	Kind     CloginEntryKind
	Pattern  string
	Username string
	Password string
	Method   string
}

// Lines renders the directives for the entry.
func (e CloginEntry) Lines() []string {
	if e.Kind == CloginAutoenable {
		return []string{fmt.Sprintf("add autoenable %s 1\n", e.Pattern)}
	}

	return []string{
		fmt.Sprintf("add user %s %s\n", e.Pattern, e.Username),
		fmt.Sprintf("add password %s %s %s\n", e.Pattern, e.Password, e.Password),
		fmt.Sprintf("add method %s %s\n", e.Pattern, e.Method),
	}
}

// ExportOptions is the configuration handed to an exporter at call time.
type ExportOptions struct {
	Username         string
	Password         string
	IgnoredVendor    string
	IgnoreNames      []string
	DNSSkipPattern   string
	Threshold        time.Duration
	RouterClasses    []string
	AutoenableVendor string
}

// ExportSummary counts what an export run did.
type ExportSummary struct {
	Kind       string
	Path       string
	Written    int
	Up         int
	Down       int
	Skipped    int
	Autoenable int
	Duration   time.Duration
}
