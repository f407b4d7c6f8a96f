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

import "errors"

var (
	// ErrRepository wraps fatal device repository failures.
	ErrRepository = errors.New("device repository failure")
	// ErrWriteDestination wraps failures opening, writing or closing an output file.
	ErrWriteDestination = errors.New("failed to write destination")
	// ErrDestinationLocked is returned when another process holds the output file lock.
	ErrDestinationLocked = errors.New("destination is locked by another writer")
	// ErrMissingCredentials is returned when router classes are configured without a user.
	ErrMissingCredentials = errors.New("switch credentials are required for router classes")
)
