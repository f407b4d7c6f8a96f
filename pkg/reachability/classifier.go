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

// Package reachability decides whether a device counts as up from its last discovery time.
package reachability

import (
	"context"
	"time"

	"github.com/carverauto/netdisco-rancid/pkg/logger"
	"github.com/carverauto/netdisco-rancid/pkg/models"
)

// DefaultThreshold is used when a caller passes a non-positive threshold.
const DefaultThreshold = 24 * time.Hour

// Clock defines an interface for time-related operations.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
var SystemClock Clock = realClock{}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// DiscoverySource is the part of the device repository the classifier reads.
type DiscoverySource interface {
	LastDiscover(ctx context.Context, address string) (*time.Time, error)
}

// Classifier maps last-discovery recency to a Reachability.
type Classifier struct {
	source DiscoverySource
	clock  Clock
	logger logger.Logger
}

// NewClassifier returns a classifier on the wall clock.
func NewClassifier(source DiscoverySource, log logger.Logger) *Classifier {
	return NewClassifierWithClock(source, SystemClock, log)
}

// NewClassifierWithClock returns a classifier using clock as "now".
func NewClassifierWithClock(source DiscoverySource, clock Clock, log logger.Logger) *Classifier {
	return &Classifier{source: source, clock: clock, logger: log}
}

// IsUp reports up when the device was discovered less than threshold ago. A missing
// timestamp or a failed lookup yields ReachabilityUnknown, never an error.
func (c *Classifier) IsUp(ctx context.Context, address string, threshold time.Duration) models.Reachability {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	last, err := c.source.LastDiscover(ctx, address)
	if err != nil {
		c.logger.Debug().Err(err).Str("address", address).Msg("last discovery lookup failed")

		return models.ReachabilityUnknown
	}

	if last == nil {
		return models.ReachabilityUnknown
	}

	if c.clock.Now().Sub(*last) < threshold {
		return models.ReachabilityUp
	}

	return models.ReachabilityDown
}
