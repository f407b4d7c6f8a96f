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

package export

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carverauto/netdisco-rancid/pkg/db"
	"github.com/carverauto/netdisco-rancid/pkg/exclusion"
	"github.com/carverauto/netdisco-rancid/pkg/logger"
	"github.com/carverauto/netdisco-rancid/pkg/models"
	"github.com/carverauto/netdisco-rancid/pkg/resolver"
)

const routerDBKind = "router.db"

// RouterDBExporter writes one name:vendor:status line per device.
type RouterDBExporter struct {
	repo       db.Repository
	classifier Classifier
	lookup     resolver.Lookup
	logger     logger.Logger
}

// NewRouterDBExporter wires an exporter. A nil lookup uses the system resolver.
func NewRouterDBExporter(repo db.Repository, classifier Classifier, lookup resolver.Lookup, log logger.Logger) *RouterDBExporter {
	return &RouterDBExporter{
		repo:       repo,
		classifier: classifier,
		lookup:     lookup,
		logger:     log,
	}
}

// Export rewrites path from the current inventory. Devices are written in repository
// order. The destination is only truncated once every line has been computed.
func (e *RouterDBExporter) Export(ctx context.Context, path string, opts models.ExportOptions) (models.ExportSummary, error) {
	start := time.Now()
	runID := uuid.NewString()
	summary := models.ExportSummary{Kind: routerDBKind, Path: path}

	e.logger.Info().
		Str("run_id", runID).
		Str("path", path).
		Dur("threshold", opts.Threshold).
		Msg("Starting router.db export")

	addresses, err := e.repo.Addresses(ctx)
	if err != nil {
		return summary, fmt.Errorf("%w: %w", ErrRepository, err)
	}

	names := resolver.New(e.lookup, opts.DNSSkipPattern, e.logger)
	policy := exclusion.NewPolicy(opts.IgnoreNames, opts.IgnoredVendor, e.logger)

	lines := make([]string, 0, len(addresses))

	for _, address := range addresses {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		line, ok := e.lineFor(ctx, address, names, policy, opts.Threshold)
		if !ok {
			summary.Skipped++

			continue
		}

		if line.Status == models.StatusUp {
			summary.Up++
		} else {
			summary.Down++
		}

		lines = append(lines, line.String())
	}

	if err := writeLines(path, RouterDBFileMode, false, lines); err != nil {
		return summary, err
	}

	summary.Written = len(lines)
	summary.Duration = time.Since(start)

	e.logger.Info().
		Str("run_id", runID).
		Str("path", path).
		Int("written", summary.Written).
		Int("up", summary.Up).
		Int("down", summary.Down).
		Int("skipped", summary.Skipped).
		Dur("duration", summary.Duration).
		Msg("Finished router.db export")

	return summary, nil
}

func (e *RouterDBExporter) lineFor(
	ctx context.Context,
	address string,
	names *resolver.Resolver,
	policy *exclusion.Policy,
	threshold time.Duration,
) (models.ExportLine, bool) {
	res := names.Resolve(ctx, address)
	if res.Outcome == resolver.Skip {
		return models.ExportLine{}, false
	}

	vendor := e.vendor(ctx, address)

	status := models.StatusDown
	if !policy.ForcesDown(res.Name, vendor) {
		status = e.classifier.IsUp(ctx, address, threshold).Status()
	}

	return models.ExportLine{Name: res.Name, Vendor: vendor, Status: status}, true
}

func (e *RouterDBExporter) vendor(ctx context.Context, address string) string {
	vendor, err := e.repo.Vendor(ctx, address)
	if err != nil {
		e.logger.Warn().
			Err(err).
			Str("address", address).
			Msg("Vendor lookup failed, exporting as unknown")

		return models.UnknownVendor
	}

	record := models.DeviceRecord{Address: address, Vendor: vendor}

	return record.VendorOrUnknown()
}
