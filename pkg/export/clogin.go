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
	"github.com/carverauto/netdisco-rancid/pkg/logger"
	"github.com/carverauto/netdisco-rancid/pkg/models"
	"github.com/carverauto/netdisco-rancid/pkg/resolver"
)

const (
	cloginKind   = "cloginrc"
	cloginMethod = "ssh"
)

// CloginExporter writes the clogin credential file.
type CloginExporter struct {
	repo       db.Repository
	classifier Classifier
	lookup     resolver.Lookup
	logger     logger.Logger
}

// NewCloginExporter wires an exporter. A nil lookup uses the system resolver.
func NewCloginExporter(repo db.Repository, classifier Classifier, lookup resolver.Lookup, log logger.Logger) *CloginExporter {
	return &CloginExporter{
		repo:       repo,
		classifier: classifier,
		lookup:     lookup,
		logger:     log,
	}
}

// Entries computes the static entries for every router class followed by an
// autoenable entry for each reachable device of the autoenable vendor.
func (e *CloginExporter) Entries(ctx context.Context, opts models.ExportOptions) ([]models.CloginEntry, int, error) {
	if len(opts.RouterClasses) > 0 && opts.Username == "" {
		return nil, 0, ErrMissingCredentials
	}

	entries := make([]models.CloginEntry, 0, len(opts.RouterClasses))

	for _, pattern := range opts.RouterClasses {
		entries = append(entries, models.CloginEntry{
			Kind:     models.CloginStatic,
			Pattern:  pattern,
			Username: opts.Username,
			Password: opts.Password,
			Method:   cloginMethod,
		})
	}

	if opts.AutoenableVendor == "" {
		return entries, 0, nil
	}

	addresses, err := e.repo.AddressesByVendor(ctx, opts.AutoenableVendor)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrRepository, err)
	}

	names := resolver.New(e.lookup, opts.DNSSkipPattern, e.logger)
	skipped := 0

	for _, address := range addresses {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		res := names.Resolve(ctx, address)
		if res.Outcome == resolver.Skip {
			skipped++

			continue
		}

		if e.classifier.IsUp(ctx, address, opts.Threshold) != models.ReachabilityUp {
			skipped++

			continue
		}

		entries = append(entries, models.CloginEntry{Kind: models.CloginAutoenable, Pattern: res.Name})
	}

	return entries, skipped, nil
}

// Export rewrites path with owner-only permissions.
func (e *CloginExporter) Export(ctx context.Context, path string, opts models.ExportOptions) (models.ExportSummary, error) {
	start := time.Now()
	runID := uuid.NewString()
	summary := models.ExportSummary{Kind: cloginKind, Path: path}

	e.logger.Info().
		Str("run_id", runID).
		Str("path", path).
		Strs("router_classes", opts.RouterClasses).
		Str("autoenable_vendor", opts.AutoenableVendor).
		Msg("Starting clogin export")

	entries, skipped, err := e.Entries(ctx, opts)
	if err != nil {
		return summary, err
	}

	var lines []string

	for _, entry := range entries {
		if entry.Kind == models.CloginAutoenable {
			summary.Autoenable++
		}

		lines = append(lines, entry.Lines()...)
	}

	if err := writeLines(path, CloginFileMode, true, lines); err != nil {
		return summary, err
	}

	summary.Written = len(lines)
	summary.Skipped = skipped
	summary.Duration = time.Since(start)

	e.logger.Info().
		Str("run_id", runID).
		Str("path", path).
		Int("lines", summary.Written).
		Int("autoenable", summary.Autoenable).
		Int("skipped", summary.Skipped).
		Dur("duration", summary.Duration).
		Msg("Finished clogin export")

	return summary, nil
}
