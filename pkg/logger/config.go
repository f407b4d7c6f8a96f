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

package logger

import (
	"os"
	"strconv"
)

// Environment variables read by DefaultConfig.
const (
	EnvLevel      = "LOG_LEVEL"
	EnvDebug      = "DEBUG"
	EnvOutput     = "LOG_OUTPUT"
	EnvTimeFormat = "LOG_TIME_FORMAT"
)

// DefaultConfig is used when the config file has no logging section.
func DefaultConfig() *Config {
	cfg := &Config{Level: "info", Output: "stderr"}

	if v := os.Getenv(EnvLevel); v != "" {
		cfg.Level = v
	}

	if v := os.Getenv(EnvOutput); v != "" {
		cfg.Output = v
	}

	cfg.TimeFormat = os.Getenv(EnvTimeFormat)
	cfg.Debug = envBool(EnvDebug)

	return cfg
}

// envBool accepts strconv booleans plus yes/on.
func envBool(key string) bool {
	v := os.Getenv(key)

	switch v {
	case "yes", "YES", "on", "ON":
		return true
	}

	b, err := strconv.ParseBool(v)

	return err == nil && b
}
