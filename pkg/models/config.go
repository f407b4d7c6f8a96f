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
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/carverauto/netdisco-rancid/pkg/logger"
)

const (
	DefaultThreshold        = Duration(24 * time.Hour)
	DefaultIgnoredVendor    = "extreme"
	DefaultDNSSkipPattern   = "private"
	DefaultIgnoreName       = "router.domain.com"
	DefaultCloginPath       = "/usr/local/rancid/.cloginrc"
	DefaultCredentialsFile  = "/usr/local/rancid-tools/connect.cfg"
	DefaultCredentialGroup  = "SWCredentials"
	DefaultDatabaseGroup    = "NetDiscoCredentials"
	DefaultDatabaseName     = "netdisco"
	DefaultDatabaseHost     = "localhost"
	DefaultDatabasePort     = 5432
	DefaultAutoenableVendor = "extreme"
)

var (
	errInvalidDuration          = errors.New("invalid duration")
	errDatabaseHostRequired     = errors.New("database.host is required")
	errDatabaseNameRequired     = errors.New("database.database is required")
	errCredentialsFileRequired  = errors.New("credentials_file is required")
	errThresholdNegative        = errors.New("threshold must not be negative")
	errRouterClassEmpty         = errors.New("clogin.router_classes must not contain empty patterns")
	errCredentialGroupRequired  = errors.New("clogin.credential_group is required")
	errAutoenableVendorRequired = errors.New("clogin.autoenable_vendor is required")
)

// Duration accepts either a Go duration string or integer nanoseconds in JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		dur, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: %w", errInvalidDuration, err)
		}

		*d = Duration(dur)

		return nil
	default:
		return errInvalidDuration
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// TLSConfig holds client certificate paths for the database connection.
type TLSConfig struct {
	CertFile string `json:"cert_file"`
	KeyFile  string `json:"key_file"`
	CAFile   string `json:"ca_file"`
}

// DatabaseConfig describes the Netdisco PostgreSQL database.
type DatabaseConfig struct {
	Host             string     `json:"host"`
	Port             int        `json:"port"`
	Database         string     `json:"database"`
	Username         string     `json:"username"`
	Password         string     `json:"password" sensitive:"true"`
	SSLMode          string     `json:"ssl_mode,omitempty"`
	ApplicationName  string     `json:"application_name,omitempty"`
	MaxConnections   int32      `json:"max_connections,omitempty"`
	StatementTimeout Duration   `json:"statement_timeout,omitempty"`
	Timezone         string     `json:"timezone,omitempty"`
	CertDir          string     `json:"cert_dir,omitempty"`
	TLS              *TLSConfig `json:"tls,omitempty"`
}

// RouterDBConfig controls router.db generation.
type RouterDBConfig struct {
	IgnoredVendor  string   `json:"ignored_vendor"`
	DNSSkipPattern string   `json:"dns_skip_pattern"`
	IgnoreNames    []string `json:"ignore_names"`
}

// CloginConfig controls .cloginrc generation.
type CloginConfig struct {
	Path             string   `json:"path"`
	RouterClasses    []string `json:"router_classes"`
	AutoenableVendor string   `json:"autoenable_vendor"`
	CredentialGroup  string   `json:"credential_group"`
}

// Config is the top level configuration file of rancid-export.
type Config struct {
	Database        DatabaseConfig `json:"database"`
	CredentialsFile string         `json:"credentials_file"`
	Threshold       Duration       `json:"threshold"`
	RouterDB        RouterDBConfig `json:"router_db"`
	Clogin          CloginConfig   `json:"clogin"`
	Logging         *logger.Config `json:"logging,omitempty"`
}

// DefaultConfig returns the settings the tool used before it was configurable.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:     DefaultDatabaseHost,
			Port:     DefaultDatabasePort,
			Database: DefaultDatabaseName,
		},
		CredentialsFile: DefaultCredentialsFile,
		Threshold:       DefaultThreshold,
		RouterDB: RouterDBConfig{
			IgnoredVendor:  DefaultIgnoredVendor,
			DNSSkipPattern: DefaultDNSSkipPattern,
			IgnoreNames:    []string{DefaultIgnoreName},
		},
		Clogin: CloginConfig{
			Path:             DefaultCloginPath,
			RouterClasses:    []string{"*domain.com", "10.0.25*"},
			AutoenableVendor: DefaultAutoenableVendor,
			CredentialGroup:  DefaultCredentialGroup,
		},
	}
}

// Validate implements config.Validator.
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return errDatabaseHostRequired
	}

	if c.Database.Database == "" {
		return errDatabaseNameRequired
	}

	if c.CredentialsFile == "" {
		return errCredentialsFileRequired
	}

	if c.Threshold < 0 {
		return errThresholdNegative
	}

	for _, pattern := range c.Clogin.RouterClasses {
		if pattern == "" {
			return errRouterClassEmpty
		}
	}

	if c.Clogin.CredentialGroup == "" {
		return errCredentialGroupRequired
	}

	if c.Clogin.AutoenableVendor == "" {
		return errAutoenableVendorRequired
	}

	return nil
}

// ExportOptions builds the call-time options for the exporters from the file config and
// the switch credentials resolved by the caller.
func (c *Config) ExportOptions(username, password string) ExportOptions {
	return ExportOptions{
		Username:         username,
		Password:         password,
		IgnoredVendor:    c.RouterDB.IgnoredVendor,
		IgnoreNames:      append([]string(nil), c.RouterDB.IgnoreNames...),
		DNSSkipPattern:   c.RouterDB.DNSSkipPattern,
		Threshold:        time.Duration(c.Threshold),
		RouterClasses:    append([]string(nil), c.Clogin.RouterClasses...),
		AutoenableVendor: c.Clogin.AutoenableVendor,
	}
}
