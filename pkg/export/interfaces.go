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

// Package export writes the rancid router.db and .cloginrc files from the device inventory.
package export

import (
	"context"
	"os"
	"time"

	"github.com/carverauto/netdisco-rancid/pkg/models"
)

const (
	// RouterDBFileMode is the permission of a newly created router.db.
	RouterDBFileMode os.FileMode = 0o644
	// CloginFileMode is enforced on .cloginrc, which holds passwords.
	CloginFileMode os.FileMode = 0o600
)

// Classifier reports device reachability.
type Classifier interface {
	IsUp(ctx context.Context, address string, threshold time.Duration) models.Reachability
}
