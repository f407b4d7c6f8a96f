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

// Package cli implements the rancid-export command.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/carverauto/netdisco-rancid/pkg/config"
	"github.com/carverauto/netdisco-rancid/pkg/credentials"
	"github.com/carverauto/netdisco-rancid/pkg/db"
	"github.com/carverauto/netdisco-rancid/pkg/export"
	"github.com/carverauto/netdisco-rancid/pkg/lifecycle"
	"github.com/carverauto/netdisco-rancid/pkg/logger"
	"github.com/carverauto/netdisco-rancid/pkg/models"
	"github.com/carverauto/netdisco-rancid/pkg/reachability"
	"github.com/carverauto/netdisco-rancid/pkg/resolver"
	"github.com/carverauto/netdisco-rancid/pkg/version"
)

const componentName = "rancid-export"

// Options are the command line settings of one run.
type Options struct {
	RouterDBPath    string
	CloginPath      string
	ConfigPath      string
	CredentialsFile string
	Summary         bool
	SkipClogin      bool
}

// RepositoryFactory opens the device repository for a run.
type RepositoryFactory func(ctx context.Context, cfg *models.DatabaseConfig, log logger.Logger) (db.Repository, error)

// OpenNetdisco is the RepositoryFactory backed by PostgreSQL.
func OpenNetdisco(ctx context.Context, cfg *models.DatabaseConfig, log logger.Logger) (db.Repository, error) {
	return db.Open(ctx, cfg, log)
}

// Runner executes an export run. Zero values fall back to the production wiring.
type Runner struct {
	OpenRepository RepositoryFactory
	Lookup         resolver.Lookup
	Clock          reachability.Clock
	Stdout         io.Writer
}

// NewRootCommand builds the rancid-export command around runner.
func NewRootCommand(runner *Runner) *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:           "rancid-export",
		Short:         "Export the Netdisco inventory to rancid router.db and .cloginrc",
		Version:       version.GetFullVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("clogin") {
				opts.CloginPath = ""
			}

			if runner.Stdout == nil {
				runner.Stdout = cmd.OutOrStdout()
			}

			return runner.Run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.RouterDBPath, "file", "f", "", "router.db output path")
	flags.StringVar(&opts.CloginPath, "clogin", models.DefaultCloginPath, ".cloginrc output path")
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "JSON config file")
	flags.StringVar(&opts.CredentialsFile, "credentials", "", "INI credential file (overrides credentials_file)")
	flags.BoolVar(&opts.Summary, "summary", false, "print a summary table when done")
	flags.BoolVar(&opts.SkipClogin, "skip-clogin", false, "only write router.db")

	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// Run loads configuration and credentials, opens the repository and writes both files.
func (r *Runner) Run(ctx context.Context, opts *Options) error {
	cfg, err := loadConfig(ctx, opts)
	if err != nil {
		return err
	}

	log, err := lifecycle.CreateComponentLogger(componentName, cfg.Logging)
	if err != nil {
		return fmt.Errorf("%w: %w", errLoadConfig, err)
	}

	provider := credentials.NewLazyINIProvider(cfg.CredentialsFile)

	if err := fillDatabaseCredentials(&cfg.Database, provider); err != nil {
		return err
	}

	var sw credentials.Pair

	if !opts.SkipClogin {
		sw, err = credentials.Lookup(provider, cfg.Clogin.CredentialGroup)
		if err != nil {
			return fmt.Errorf("%w: %w", errSwitchCredentials, err)
		}
	}

	repo, err := r.openRepository()(ctx, &cfg.Database, log)
	if err != nil {
		return fmt.Errorf("%w: %w", errOpenRepository, err)
	}
	defer repo.Close()

	classifier := reachability.NewClassifierWithClock(repo, r.clock(), log)
	exportOpts := cfg.ExportOptions(sw.Username, sw.Password)

	summaries := make([]models.ExportSummary, 0, 2)

	routerDB := export.NewRouterDBExporter(repo, classifier, r.Lookup, log)

	summary, err := routerDB.Export(ctx, opts.RouterDBPath, exportOpts)
	if err != nil {
		return err
	}

	summaries = append(summaries, summary)

	if !opts.SkipClogin {
		clogin := export.NewCloginExporter(repo, classifier, r.Lookup, log)

		summary, err = clogin.Export(ctx, cfg.Clogin.Path, exportOpts)
		if err != nil {
			return err
		}

		summaries = append(summaries, summary)
	}

	if opts.Summary {
		renderSummary(r.stdout(), summaries)
	}

	return nil
}

func loadConfig(ctx context.Context, opts *Options) (*models.Config, error) {
	cfg := models.DefaultConfig()

	if opts.ConfigPath != "" || strings.EqualFold(os.Getenv("CONFIG_SOURCE"), "env") {
		bootLog, err := lifecycle.CreateComponentLogger(componentName, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errLoadConfig, err)
		}

		if err := config.NewConfig(bootLog).LoadAndValidate(ctx, opts.ConfigPath, cfg); err != nil {
			return nil, fmt.Errorf("%w: %w", errLoadConfig, err)
		}
	}

	if opts.CredentialsFile != "" {
		cfg.CredentialsFile = opts.CredentialsFile
	}

	if opts.CloginPath != "" {
		cfg.Clogin.Path = opts.CloginPath
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", errLoadConfig, err)
	}

	return cfg, nil
}

// fillDatabaseCredentials completes the database login from the credential file when
// the config leaves the user or the password empty. Configured values are kept.
func fillDatabaseCredentials(cfg *models.DatabaseConfig, provider credentials.Provider) error {
	if cfg.Username != "" && cfg.Password != "" {
		return nil
	}

	pair, err := credentials.Lookup(provider, models.DefaultDatabaseGroup)
	if err != nil {
		return fmt.Errorf("%w: %w", errDatabaseCredentials, err)
	}

	if cfg.Username == "" {
		cfg.Username = pair.Username
	}

	if cfg.Password == "" {
		cfg.Password = pair.Password
	}

	return nil
}

func renderSummary(w io.Writer, summaries []models.ExportSummary) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"File", "Path", "Lines", "Up", "Down", "Skipped", "Autoenable", "Duration"})

	for _, s := range summaries {
		table.Append([]string{
			s.Kind,
			s.Path,
			strconv.Itoa(s.Written),
			strconv.Itoa(s.Up),
			strconv.Itoa(s.Down),
			strconv.Itoa(s.Skipped),
			strconv.Itoa(s.Autoenable),
			s.Duration.Round(time.Millisecond).String(),
		})
	}

	table.Render()
}

func (r *Runner) openRepository() RepositoryFactory {
	if r.OpenRepository != nil {
		return r.OpenRepository
	}

	return OpenNetdisco
}

func (r *Runner) clock() reachability.Clock {
	if r.Clock != nil {
		return r.Clock
	}

	return reachability.SystemClock
}

func (r *Runner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}

	return os.Stdout
}
