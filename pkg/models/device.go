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

import "time"

// DeviceRecord is one row of the Netdisco device table as seen by the exporter.
// Address is the sole identity. Vendor and LastDiscover are nil when the column is NULL.
type DeviceRecord struct {
	Address      string     `json:"address"`
	Vendor       *string    `json:"vendor,omitempty"`
	LastDiscover *time.Time `json:"last_discover,omitempty"`
}

// VendorOrUnknown returns the vendor string, or UnknownVendor when it is NULL or blank.
func (d *DeviceRecord) VendorOrUnknown() string {
	if d == nil || d.Vendor == nil || *d.Vendor == "" {
		return UnknownVendor
	}

	return *d.Vendor
}
