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
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carverauto/netdisco-rancid/pkg/logger"
	"github.com/carverauto/netdisco-rancid/pkg/models"
)

// Netdisco stores ip as inet; host() strips the prefix length for display.
const (
	selectAddresses = `
SELECT host(ip)
FROM device
ORDER BY ip DESC`

	selectAddressesByVendor = `
SELECT host(ip)
FROM device
WHERE vendor = $1
ORDER BY ip DESC`

	selectVendor = `
SELECT vendor
FROM device
WHERE ip = $1::inet`

	selectLastDiscover = `
SELECT last_discover
FROM device
WHERE ip = $1::inet`
)

// Querier is the subset of pgxpool.Pool the device store needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DeviceStore implements Repository against the Netdisco schema.
type DeviceStore struct {
	q        Querier
	closeFn  func()
	location *time.Location
	logger   logger.Logger
}

var _ Repository = (*DeviceStore)(nil)

// NewDeviceStore wraps an open pool. last_discover is a timestamp without time zone
// written in the database server's local time; loc is the zone used to interpret it.
func NewDeviceStore(pool *pgxpool.Pool, loc *time.Location, log logger.Logger) *DeviceStore {
	return newDeviceStore(pool, pool.Close, loc, log)
}

func newDeviceStore(q Querier, closeFn func(), loc *time.Location, log logger.Logger) *DeviceStore {
	if loc == nil {
		loc = time.Local
	}

	if closeFn == nil {
		closeFn = func() {}
	}

	return &DeviceStore{q: q, closeFn: closeFn, location: loc, logger: log}
}

// Open connects to the Netdisco database described by cfg and returns a store reading
// timestamps in cfg.Timezone.
func Open(ctx context.Context, cfg *models.DatabaseConfig, log logger.Logger) (*DeviceStore, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	loc, err := LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	pool, err := NewPool(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	return NewDeviceStore(pool, loc, log), nil
}

// LoadLocation resolves the configured zone name; empty or "Local" means the host zone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid database timezone %q: %w", name, err)
	}

	return loc, nil
}

func (s *DeviceStore) Addresses(ctx context.Context) ([]string, error) {
	return s.queryAddresses(ctx, selectAddresses)
}

func (s *DeviceStore) AddressesByVendor(ctx context.Context, vendor string) ([]string, error) {
	return s.queryAddresses(ctx, selectAddressesByVendor, vendor)
}

func (s *DeviceStore) queryAddresses(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: device addresses: %w", ErrFailedToQuery, err)
	}

	addresses, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("%w: device addresses: %w", ErrFailedToScan, err)
	}

	s.logger.Debug().Int("count", len(addresses)).Msg("Fetched device addresses")

	return addresses, nil
}

func (s *DeviceStore) Vendor(ctx context.Context, address string) (*string, error) {
	var vendor *string

	if err := s.q.QueryRow(ctx, selectVendor, address).Scan(&vendor); err != nil {
		return nil, wrapRowError(address, err)
	}

	return vendor, nil
}

func (s *DeviceStore) LastDiscover(ctx context.Context, address string) (*time.Time, error) {
	var ts *time.Time

	if err := s.q.QueryRow(ctx, selectLastDiscover, address).Scan(&ts); err != nil {
		return nil, wrapRowError(address, err)
	}

	if ts == nil {
		return nil, nil
	}

	local := inLocation(*ts, s.location)

	return &local, nil
}

func (s *DeviceStore) Close() {
	s.closeFn()
}

func wrapRowError(address string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrDeviceNotFound, address)
	}

	return fmt.Errorf("%w: %s: %w", ErrFailedToQuery, address, err)
}

// inLocation keeps the wall clock of t and attaches loc.
func inLocation(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}
