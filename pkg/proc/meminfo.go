// Copyright Antimetal, Inc. All rights reserved.
//
// Use of this source code is governed by a source available license that can be found in the
// LICENSE file or at:
// https://polyformproject.org/wp-content/uploads/2020/06/PolyForm-Shield-1.0.0.txt

package proc

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Meminfo holds the /proc/meminfo fields the machine providers report.
// All values are in bytes.
type Meminfo struct {
	MemTotal     uint64
	MemFree      uint64
	MemAvailable uint64
	Shmem        uint64
	Buffers      uint64
	SwapTotal    uint64
	SwapFree     uint64
}

// ReadMeminfo parses <procRoot>/meminfo.
//
// Format:
//
//	FieldName:       value kB
//
// Unknown fields and unparsable values are skipped. A file without a
// MemTotal line is reported as an error.
func ReadMeminfo(procRoot string) (*Meminfo, error) {
	path := filepath.Join(procRoot, "meminfo")
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	info := &Meminfo{}
	fieldMap := map[string]*uint64{
		"MemTotal":     &info.MemTotal,
		"MemFree":      &info.MemFree,
		"MemAvailable": &info.MemAvailable,
		"Shmem":        &info.Shmem,
		"Buffers":      &info.Buffers,
		"SwapTotal":    &info.SwapTotal,
		"SwapFree":     &info.SwapFree,
	}

	seenTotal := false
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}

		name := strings.TrimSuffix(parts[0], ":")
		field, ok := fieldMap[name]
		if !ok {
			continue
		}

		value, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			continue
		}
		if len(parts) >= 3 && parts[2] == "kB" {
			value *= 1024
		}
		*field = value
		if name == "MemTotal" {
			seenTotal = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	if !seenTotal {
		return nil, fmt.Errorf("no MemTotal in %s", path)
	}

	return info, nil
}
