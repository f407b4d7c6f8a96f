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
	"errors"
	"net"
	"time"

	"github.com/carverauto/netdisco-rancid/pkg/db"
)

var (
	errBoom = errors.New("boom")
	now     = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
)

type fakeDevice struct {
	address      string
	vendor       *string
	lastDiscover *time.Time
	vendorErr    error
}

// fakeRepository serves devices in the order they were declared.
type fakeRepository struct {
	devices []fakeDevice
}

var _ db.Repository = (*fakeRepository)(nil)

func (f *fakeRepository) Addresses(context.Context) ([]string, error) {
	out := make([]string, 0, len(f.devices))
	for _, d := range f.devices {
		out = append(out, d.address)
	}

	return out, nil
}

func (f *fakeRepository) AddressesByVendor(_ context.Context, vendor string) ([]string, error) {
	var out []string

	for _, d := range f.devices {
		if d.vendor != nil && *d.vendor == vendor {
			out = append(out, d.address)
		}
	}

	return out, nil
}

func (f *fakeRepository) Vendor(_ context.Context, address string) (*string, error) {
	for _, d := range f.devices {
		if d.address == address {
			return d.vendor, d.vendorErr
		}
	}

	return nil, db.ErrDeviceNotFound
}

func (f *fakeRepository) LastDiscover(_ context.Context, address string) (*time.Time, error) {
	for _, d := range f.devices {
		if d.address == address {
			return d.lastDiscover, nil
		}
	}

	return nil, db.ErrDeviceNotFound
}

func (*fakeRepository) Close() {}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// fakeLookup answers from a table. Unlisted addresses are not found.
type fakeLookup struct {
	names  map[string]string
	errors map[string]error
}

func (f fakeLookup) LookupAddr(_ context.Context, addr string) ([]string, error) {
	if err, ok := f.errors[addr]; ok {
		return nil, err
	}

	if name, ok := f.names[addr]; ok {
		return []string{name}, nil
	}

	return nil, &net.DNSError{Err: "no such host", Name: addr, IsNotFound: true}
}

func strPtr(s string) *string { return &s }

func ago(d time.Duration) *time.Time {
	t := now.Add(-d)

	return &t
}
