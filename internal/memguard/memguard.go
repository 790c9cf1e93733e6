// Copyright 2023 Sneller, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

// Package memguard checks system memory availability before the solver
// commits to its large dual-heap allocation, so an unavoidable allocation
// failure is reported as an error rather than surfacing as an OOM kill
// partway through a solve.
package memguard

import (
	"fmt"
	"os"
	"runtime"
)

// total is the total usable DRAM. On Linux this is read from
// /proc/meminfo on first use. On other systems it remains zero and
// Check always succeeds, since the budget cannot be determined.
var total int64

func init() {
	if runtime.GOOS != "linux" {
		return
	}
	f, err := os.Open("/proc/meminfo")
	if err != nil {
		return
	}
	defer f.Close()
	for {
		n, err := fmt.Fscanf(f, "MemTotal: %d kB\n", &total)
		if err != nil {
			return
		}
		if n > 0 {
			total *= 1024
			return
		}
	}
}

// Total returns the total usable DRAM in bytes, or zero if it could not
// be determined (non-Linux systems, or a missing /proc/meminfo).
func Total() int64 {
	return total
}

// Check returns an error if want bytes of arena memory would not
// comfortably fit within the system's total DRAM, after reserving
// headroom for everything else running on the machine. A zero Total()
// (budget unknown) always passes, since there is nothing to check
// against.
func Check(want, headroom int64) error {
	if total == 0 {
		return nil
	}
	if want+headroom > total {
		return fmt.Errorf("memguard: want %d bytes plus %d headroom, but only %d total DRAM available", want, headroom, total)
	}
	return nil
}
