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

// Package exclusion holds the names and vendor that are always exported as down.
package exclusion

import (
	"strings"

	"github.com/carverauto/netdisco-rancid/pkg/logger"
)

// Policy forces devices down by display name or vendor tag.
type Policy struct {
	names         map[string]struct{}
	ignoredVendor string
	logger        logger.Logger
}

// NewPolicy builds a policy from fully-qualified names (matched case-insensitively) and
// an ignored vendor tag (matched exactly). Blank names are dropped.
func NewPolicy(names []string, ignoredVendor string, log logger.Logger) *Policy {
	p := &Policy{
		names:         make(map[string]struct{}, len(names)),
		ignoredVendor: ignoredVendor,
		logger:        log,
	}

	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}

		p.names[name] = struct{}{}
	}

	return p
}

// ShouldSkip reports whether displayName is on the ignore list.
func (p *Policy) ShouldSkip(displayName string) bool {
	_, ok := p.names[strings.ToLower(displayName)]
	if ok {
		p.logger.Debug().Str("name", displayName).Msg("Device is on the ignore list")
	}

	return ok
}

// IsIgnoredVendor reports whether vendor equals the ignored vendor tag. An empty tag
// ignores nothing.
func (p *Policy) IsIgnoredVendor(vendor string) bool {
	return p.ignoredVendor != "" && vendor == p.ignoredVendor
}

// ForcesDown combines both rules for a router.db entry.
func (p *Policy) ForcesDown(displayName, vendor string) bool {
	return p.IsIgnoredVendor(vendor) || p.ShouldSkip(displayName)
}
