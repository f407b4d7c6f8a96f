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

package db

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carverauto/netdisco-rancid/pkg/logger"
	"github.com/carverauto/netdisco-rancid/pkg/models"
)

const (
	sslModeDisable    = "disable"
	sslModeVerifyFull = "verify-full"
	defaultAppName    = "rancid-export"
)

// NewPool dials the Netdisco database and verifies the connection before returning.
func NewPool(ctx context.Context, cfg *models.DatabaseConfig, log logger.Logger) (*pgxpool.Pool, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	connURL, err := buildConnURL(cfg)
	if err != nil {
		return nil, err
	}

	poolConfig, err := pgxpool.ParseConfig(connURL.String())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse connection string: %w", ErrFailedOpenDB, err)
	}

	if cfg.MaxConnections > 0 {
		poolConfig.MaxConns = cfg.MaxConnections
	}

	if poolConfig.ConnConfig.RuntimeParams == nil {
		poolConfig.ConnConfig.RuntimeParams = make(map[string]string)
	}

	if cfg.StatementTimeout > 0 {
		timeout := time.Duration(cfg.StatementTimeout) / time.Millisecond
		poolConfig.ConnConfig.RuntimeParams["statement_timeout"] = fmt.Sprintf("%d", timeout)
	}

	if tlsConfig, err := buildTLSConfig(cfg); err != nil {
		return nil, err
	} else if tlsConfig != nil {
		poolConfig.ConnConfig.TLSConfig = tlsConfig
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to initialize pool: %w", ErrFailedOpenDB, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()

		return nil, fmt.Errorf("%w: %s:%d: %w", ErrFailedOpenDB, cfg.Host, cfg.Port, err)
	}

	log.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Int32("max_conns", poolConfig.MaxConns).
		Msg("connected to netdisco database")

	return pool, nil
}

func buildConnURL(cfg *models.DatabaseConfig) (*url.URL, error) {
	port := cfg.Port
	if port == 0 {
		port = models.DefaultDatabasePort
	}

	database := cfg.Database
	if database == "" {
		database = models.DefaultDatabaseName
	}

	connURL := &url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", cfg.Host, port),
		Path:   "/" + database,
	}

	if cfg.Username != "" {
		if cfg.Password != "" {
			connURL.User = url.UserPassword(cfg.Username, cfg.Password)
		} else {
			connURL.User = url.User(cfg.Username)
		}
	}

	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = sslModeDisable
		if cfg.TLS != nil {
			sslMode = sslModeVerifyFull
		}
	}

	if cfg.TLS != nil && sslMode == sslModeDisable {
		return nil, ErrTLSDisabled
	}

	appName := cfg.ApplicationName
	if appName == "" {
		appName = defaultAppName
	}

	query := connURL.Query()
	query.Set("sslmode", sslMode)
	query.Set("application_name", appName)
	connURL.RawQuery = query.Encode()

	return connURL, nil
}

func resolveCertPath(certDir, path string) string {
	if path == "" || filepath.IsAbs(path) || certDir == "" {
		return path
	}

	return filepath.Join(certDir, path)
}

func buildTLSConfig(cfg *models.DatabaseConfig) (*tls.Config, error) {
	if cfg.TLS == nil {
		return nil, nil
	}

	certFile := resolveCertPath(cfg.CertDir, cfg.TLS.CertFile)
	keyFile := resolveCertPath(cfg.CertDir, cfg.TLS.KeyFile)
	caFile := resolveCertPath(cfg.CertDir, cfg.TLS.CAFile)

	if certFile == "" || keyFile == "" || caFile == "" {
		return nil, ErrLackingTLS
	}

	clientCert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load client keypair: %w", ErrFailedOpenDB, err)
	}

	caBytes, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read CA file: %w", ErrFailedOpenDB, err)
	}

	caPool := x509.NewCertPool()
	if !caPool.AppendCertsFromPEM(caBytes) {
		return nil, ErrAppendCACert
	}

	return &tls.Config{
		Certificates: []tls.Certificate{clientCert},
		RootCAs:      caPool,
		MinVersion:   tls.VersionTLS12,
		ServerName:   cfg.Host,
	}, nil
}
