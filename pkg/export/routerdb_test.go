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
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/netdisco-rancid/pkg/db"
	"github.com/carverauto/netdisco-rancid/pkg/logger"
	"github.com/carverauto/netdisco-rancid/pkg/models"
	"github.com/carverauto/netdisco-rancid/pkg/reachability"
)

func newRouterDBExporter(repo db.Repository, lookup fakeLookup) *RouterDBExporter {
	log := logger.NewTestLogger()
	classifier := reachability.NewClassifierWithClock(repo, fixedClock{t: now}, log)

	return NewRouterDBExporter(repo, classifier, lookup, log)
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}

func TestRouterDBExport_Example(t *testing.T) {
	repo := &fakeRepository{devices: []fakeDevice{
		{address: "10.0.0.9", vendor: strPtr("acme"), lastDiscover: ago(48 * time.Hour)},
		{address: "10.0.0.5", vendor: strPtr("acme"), lastDiscover: ago(2 * time.Hour)},
		{address: "10.0.0.2", vendor: strPtr("ignoredVendor"), lastDiscover: ago(0)},
	}}

	path := filepath.Join(t.TempDir(), "router.db")
	exporter := newRouterDBExporter(repo, fakeLookup{})

	summary, err := exporter.Export(context.Background(), path, models.ExportOptions{
		IgnoredVendor:  "ignoredVendor",
		DNSSkipPattern: "private",
		Threshold:      24 * time.Hour,
	})
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.9:acme:down\n10.0.0.5:acme:up\n10.0.0.2:ignoredVendor:down\n", readFile(t, path))
	assert.Equal(t, 3, summary.Written)
	assert.Equal(t, 1, summary.Up)
	assert.Equal(t, 2, summary.Down)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, "router.db", summary.Kind)
	assert.Equal(t, path, summary.Path)
}

func TestRouterDBExport_Rules(t *testing.T) {
	repo := &fakeRepository{devices: []fakeDevice{
		{address: "10.1.0.9", vendor: strPtr("cisco"), lastDiscover: ago(time.Hour)},
		{address: "10.1.0.8", vendor: strPtr("cisco"), lastDiscover: ago(time.Hour)},
		{address: "10.1.0.7", vendor: strPtr("cisco"), lastDiscover: ago(time.Hour)},
		{address: "10.1.0.6", vendor: nil, lastDiscover: ago(time.Hour)},
		{address: "10.1.0.5", vendorErr: errBoom, lastDiscover: ago(time.Hour)},
		{address: "10.1.0.4", vendor: strPtr("juniper"), lastDiscover: nil},
		{address: "10.1.0.3", vendor: strPtr("juniper"), lastDiscover: ago(24 * time.Hour)},
	}}

	lookup := fakeLookup{
		names: map[string]string{
			"10.1.0.9": "Core1.Example.NET.",
			"10.1.0.8": "edge.private.example.net.",
			"10.1.0.7": "ignored.example.net.",
		},
		errors: map[string]error{
			"10.1.0.3": &net.DNSError{Err: "server misbehaving", IsTemporary: true},
		},
	}

	path := filepath.Join(t.TempDir(), "router.db")
	exporter := newRouterDBExporter(repo, lookup)

	summary, err := exporter.Export(context.Background(), path, models.ExportOptions{
		IgnoreNames:    []string{"Ignored.example.net"},
		DNSSkipPattern: "private",
		Threshold:      24 * time.Hour,
	})
	require.NoError(t, err)

	want := strings.Join([]string{
		"core1.example.net:cisco:up",
		"10.1.0.8:cisco:up",
		"ignored.example.net:cisco:down",
		"10.1.0.6:unknown:up",
		"10.1.0.5:unknown:up",
		"10.1.0.4:juniper:down",
		"10.1.0.3:juniper:down",
	}, "\n") + "\n"

	assert.Equal(t, want, readFile(t, path))
	assert.Equal(t, 7, summary.Written)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 4, summary.Up)
	assert.Equal(t, 3, summary.Down)
}

func TestRouterDBExport_IgnoredVendorAlwaysDown(t *testing.T) {
	var devices []fakeDevice
	for i, age := range []time.Duration{0, time.Minute, 23 * time.Hour, 30 * time.Hour} {
		devices = append(devices, fakeDevice{
			address:      fmt.Sprintf("192.0.2.%d", 10-i),
			vendor:       strPtr("netgear"),
			lastDiscover: ago(age),
		})
	}

	path := filepath.Join(t.TempDir(), "router.db")
	exporter := newRouterDBExporter(&fakeRepository{devices: devices}, fakeLookup{})

	_, err := exporter.Export(context.Background(), path, models.ExportOptions{IgnoredVendor: "netgear"})
	require.NoError(t, err)

	for _, line := range strings.Split(strings.TrimSpace(readFile(t, path)), "\n") {
		assert.True(t, strings.HasSuffix(line, ":netgear:down"), line)
	}
}

func TestRouterDBExport_Idempotent(t *testing.T) {
	repo := &fakeRepository{devices: []fakeDevice{
		{address: "10.0.0.3", vendor: strPtr("hp"), lastDiscover: ago(time.Hour)},
		{address: "10.0.0.1", vendor: strPtr("hp"), lastDiscover: ago(72 * time.Hour)},
	}}

	path := filepath.Join(t.TempDir(), "router.db")
	exporter := newRouterDBExporter(repo, fakeLookup{})
	opts := models.ExportOptions{Threshold: 24 * time.Hour}

	_, err := exporter.Export(context.Background(), path, opts)
	require.NoError(t, err)

	first := readFile(t, path)

	_, err = exporter.Export(context.Background(), path, opts)
	require.NoError(t, err)

	assert.Equal(t, first, readFile(t, path))
}

func TestRouterDBExport_Truncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "router.db")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("stale:line:up\n", 50)), 0o644))

	repo := &fakeRepository{devices: []fakeDevice{
		{address: "10.0.0.1", vendor: strPtr("hp"), lastDiscover: ago(time.Hour)},
	}}

	_, err := newRouterDBExporter(repo, fakeLookup{}).Export(context.Background(), path, models.ExportOptions{})
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.1:hp:up\n", readFile(t, path))
}

func TestRouterDBExport_DestinationError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "router.db")
	repo := &fakeRepository{devices: []fakeDevice{
		{address: "10.0.0.1", vendor: strPtr("hp"), lastDiscover: ago(time.Hour)},
	}}

	_, err := newRouterDBExporter(repo, fakeLookup{}).Export(context.Background(), path, models.ExportOptions{})
	require.ErrorIs(t, err, ErrWriteDestination)
}

func TestRouterDBExport_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := db.NewMockRepository(ctrl)
	repo.EXPECT().Addresses(gomock.Any()).Return(nil, errBoom)

	path := filepath.Join(t.TempDir(), "router.db")
	require.NoError(t, os.WriteFile(path, []byte("keep:me:up\n"), 0o644))

	_, err := newRouterDBExporter(repo, fakeLookup{}).Export(context.Background(), path, models.ExportOptions{})
	require.ErrorIs(t, err, ErrRepository)
	require.ErrorIs(t, err, errBoom)

	assert.Equal(t, "keep:me:up\n", readFile(t, path))
}

func TestRouterDBExport_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := &fakeRepository{devices: []fakeDevice{{address: "10.0.0.1"}}}
	path := filepath.Join(t.TempDir(), "router.db")

	_, err := newRouterDBExporter(repo, fakeLookup{}).Export(ctx, path, models.ExportOptions{})
	require.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRouterDBExport_ResolverOutageKeepsDevices(t *testing.T) {
	repo := &fakeRepository{devices: []fakeDevice{
		{address: "10.0.0.9", vendor: strPtr("acme"), lastDiscover: ago(time.Hour)},
		{address: "10.0.0.5", vendor: strPtr("acme"), lastDiscover: ago(48 * time.Hour)},
		{address: "10.0.0.1", vendor: strPtr("acme"), lastDiscover: ago(time.Hour)},
	}}

	lookup := fakeLookup{errors: map[string]error{
		"10.0.0.9": &net.DNSError{Err: "i/o timeout", IsTimeout: true},
		"10.0.0.5": &net.DNSError{Err: "server misbehaving", IsTemporary: true},
		"10.0.0.1": &net.AddrError{Err: "unrecognized address", Addr: "10.0.0.1"},
	}}

	path := filepath.Join(t.TempDir(), "router.db")

	summary, err := newRouterDBExporter(repo, lookup).Export(context.Background(), path, models.ExportOptions{})
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.9:acme:up\n10.0.0.5:acme:down\n", readFile(t, path))
	assert.Equal(t, 2, summary.Written)
	assert.Equal(t, 1, summary.Skipped)
}
