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

// CPUInfo summarizes /proc/cpuinfo. Vendor, model and speed are taken from
// the first processor block that carries them.
type CPUInfo struct {
	Count  int
	MHz    uint64
	Vendor string
	Model  string
}

// ReadCPUInfo parses <procRoot>/cpuinfo.
//
// Architectures disagree on key names: x86 uses "vendor_id" and
// "model name", arm64 uses "CPU implementer" and often has no model line at
// all, in which case Model stays empty.
func ReadCPUInfo(procRoot string) (*CPUInfo, error) {
	path := filepath.Join(procRoot, "cpuinfo")
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	info := &CPUInfo{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "processor":
			info.Count++
		case "vendor_id", "CPU implementer":
			if info.Vendor == "" {
				info.Vendor = value
			}
		case "model name", "cpu model":
			if info.Model == "" {
				info.Model = value
			}
		case "cpu MHz":
			if info.MHz == 0 {
				if mhz, err := strconv.ParseFloat(value, 64); err == nil && mhz > 0 {
					info.MHz = uint64(mhz + 0.5)
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	if info.Count == 0 {
		return nil, fmt.Errorf("no processors listed in %s", path)
	}

	return info, nil
}
