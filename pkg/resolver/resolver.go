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

// Package resolver turns device addresses into the names written to rancid files.
package resolver

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/carverauto/netdisco-rancid/pkg/logger"
)

//go:generate mockgen -destination=mock_resolver.go -package=resolver github.com/carverauto/netdisco-rancid/pkg/resolver Lookup

// Lookup performs reverse name lookups. *net.Resolver satisfies it.
type Lookup interface {
	LookupAddr(ctx context.Context, addr string) ([]string, error)
}

// Outcome classifies a resolution attempt.
type Outcome int

const (
	// Resolved means the reverse name is used.
	Resolved Outcome = iota
	// Fallback means the address itself is used as the name.
	Fallback
	// Skip means the device must be left out of the current export.
	Skip
)

func (o Outcome) String() string {
	switch o {
	case Resolved:
		return "resolved"
	case Fallback:
		return "fallback"
	case Skip:
		return "skip"
	default:
		return "invalid"
	}
}

// Resolution is the per-device result of Resolve. Err is set only for Skip.
type Resolution struct {
	Name    string
	Outcome Outcome
	Err     error
}

// Resolver applies the naming policy on top of a Lookup.
type Resolver struct {
	lookup      Lookup
	skipPattern string
	logger      logger.Logger
}

// New returns a resolver that keeps the address for names containing skipPattern.
// An empty skipPattern disables that rule.
func New(lookup Lookup, skipPattern string, log logger.Logger) *Resolver {
	if lookup == nil {
		lookup = net.DefaultResolver
	}

	return &Resolver{lookup: lookup, skipPattern: skipPattern, logger: log}
}

// Resolve maps address to a lower-cased display name.
//
// Resolver failures of any kind (not found, timeout, server failure) and names matching
// the skip pattern fall back to the address. Errors that did not come from the resolver,
// such as an unparseable address, yield Skip.
func (r *Resolver) Resolve(ctx context.Context, address string) Resolution {
	names, err := r.lookup.LookupAddr(ctx, address)
	if err != nil {
		if dnsErr, ok := asDNSError(err); ok {
			if !dnsErr.IsNotFound {
				r.logger.Debug().Err(err).Str("address", address).Msg("reverse lookup failed, keeping address")
			}

			return fallback(address)
		}

		r.logger.Debug().Err(err).Str("address", address).Msg("reverse lookup failed, skipping device")

		return Resolution{Outcome: Skip, Err: err}
	}

	if len(names) == 0 {
		return fallback(address)
	}

	name := strings.TrimSuffix(names[0], ".")
	if name == "" {
		return fallback(address)
	}

	if r.skipPattern != "" && strings.Contains(name, r.skipPattern) {
		return fallback(address)
	}

	return Resolution{Name: strings.ToLower(name), Outcome: Resolved}
}

func fallback(address string) Resolution {
	return Resolution{Name: strings.ToLower(address), Outcome: Fallback}
}

func asDNSError(err error) (*net.DNSError, bool) {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr, true
	}

	return nil, false
}
