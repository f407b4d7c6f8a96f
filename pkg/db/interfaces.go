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

// Package db reads the Netdisco device table.
package db

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mock_db.go -package=db github.com/carverauto/netdisco-rancid/pkg/db Repository

// Repository is the read-only view of the device inventory used by the exporters.
// Address lists are ordered by address, highest first.
type Repository interface {
	// Addresses returns every device address.
	Addresses(ctx context.Context) ([]string, error)
	// AddressesByVendor returns the addresses of devices whose vendor equals vendor.
	AddressesByVendor(ctx context.Context, vendor string) ([]string, error)
	// Vendor returns the vendor of address, nil when the column is NULL.
	Vendor(ctx context.Context, address string) (*string, error)
	// LastDiscover returns the last discovery time of address, nil when never discovered.
	LastDiscover(ctx context.Context, address string) (*time.Time, error)
	Close()
}
