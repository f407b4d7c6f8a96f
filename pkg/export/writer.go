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
	"bufio"
	"fmt"
	"os"
)

// writeLines takes an exclusive lock on path, truncates it and writes lines through a
// buffered writer. When restrict is set the mode of an existing file is narrowed to perm.
func writeLines(path string, perm os.FileMode, restrict bool, lines []string) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, perm)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteDestination, path, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %s: %w", ErrWriteDestination, path, cerr)
		}
	}()

	// released by Close
	if err := lockFile(f); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDestinationLocked, path, err)
	}

	if err := f.Truncate(0); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteDestination, path, err)
	}

	if restrict {
		if err := f.Chmod(perm); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWriteDestination, path, err)
		}
	}

	w := bufio.NewWriter(f)

	for _, line := range lines {
		if _, err := w.WriteString(line); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWriteDestination, path, err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteDestination, path, err)
	}

	return nil
}
