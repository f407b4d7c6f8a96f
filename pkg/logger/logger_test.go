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
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	err := Init(&Config{Level: "warn", Output: "stderr"})
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, GetLogger().GetLevel())

	err = Init(&Config{Level: "debug", Debug: true})
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, GetLogger().GetLevel())
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	err := Init(&Config{Level: "loud"})
	require.Error(t, err)
}

func TestSetDebug(t *testing.T) {
	SetDebug(true)
	assert.Equal(t, zerolog.DebugLevel, GetLogger().GetLevel())

	SetDebug(false)
	assert.Equal(t, zerolog.InfoLevel, GetLogger().GetLevel())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   zerolog.Level
	}{
		{name: "empty defaults to info", config: Config{}, want: zerolog.InfoLevel},
		{name: "explicit level", config: Config{Level: "error"}, want: zerolog.ErrorLevel},
		{name: "debug overrides level", config: Config{Level: "error", Debug: true}, want: zerolog.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(&tt.config)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWrappedLoggerComponentField(t *testing.T) {
	var buf bytes.Buffer

	l := New(zerolog.New(&buf))
	component := l.WithComponent("router-db")
	component.Info().Msg("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "router-db", entry["component"])
	assert.Equal(t, "hello", entry["message"])
}

func TestDefaultConfigFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DEBUG", "yes")
	t.Setenv("LOG_OUTPUT", "stdout")

	cfg := DefaultConfig()
	assert.Equal(t, "debug", cfg.Level)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "stdout", cfg.Output)
}
