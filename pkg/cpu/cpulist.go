// Copyright Antimetal, Inc. All rights reserved.
//
// Use of this source code is governed by a source available license that can be found in the
// LICENSE file or at:
// https://polyformproject.org/wp-content/uploads/2020/06/PolyForm-Shield-1.0.0.txt

// Package cpu reads logical processor counts from the kernel's CPU list files.
package cpu

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Paths of the CPU mask files relative to the sysfs root.
const (
	PossibleList = "devices/system/cpu/possible"
	OnlineList   = "devices/system/cpu/online"
)

var cpuDirPattern = regexp.MustCompile(`^cpu[0-9]+$`)

// ParseCPUList parses a Linux kernel CPU list format string into a slice of CPU IDs.
// The format supports:
//   - Individual CPUs: "0", "1", "2"
//   - Ranges: "0-3" (includes 0, 1, 2, 3)
//   - Comma-separated combinations: "0,2-4,7"
//   - Empty string returns empty slice (not nil)
//
// Examples:
//   - "0-3" -> [0, 1, 2, 3]
//   - "0,2-4,7" -> [0, 2, 3, 4, 7]
func ParseCPUList(cpuList string) ([]int, error) {
	cpus := []int{}
	err := walkCPUList(cpuList, func(start, end int) {
		for cpu := start; cpu <= end; cpu++ {
			cpus = append(cpus, cpu)
		}
	})
	if err != nil {
		return nil, err
	}
	return cpus, nil
}

// CountCPUList returns the number of CPUs named by a CPU list string without
// expanding it.
func CountCPUList(cpuList string) (int, error) {
	count := 0
	err := walkCPUList(cpuList, func(start, end int) {
		count += end - start + 1
	})
	return count, err
}

// ReadCount reads a CPU list file such as /sys/devices/system/cpu/online
// and returns how many CPUs it names.
func ReadCount(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}

	count, err := CountCPUList(string(data))
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if count == 0 {
		return 0, fmt.Errorf("empty cpu list in %s", path)
	}
	return count, nil
}

// Configured returns the number of configured processors below sysRoot.
//
// The possible mask is preferred; kernels without it fall back to counting
// the cpuN directories under devices/system/cpu.
func Configured(sysRoot string) (int, error) {
	if n, err := ReadCount(filepath.Join(sysRoot, PossibleList)); err == nil {
		return n, nil
	}

	dir := filepath.Join(sysRoot, "devices/system/cpu")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	count := 0
	for _, entry := range entries {
		if cpuDirPattern.MatchString(entry.Name()) {
			count++
		}
	}
	if count == 0 {
		return 0, fmt.Errorf("no cpu directories in %s", dir)
	}
	return count, nil
}

// Online returns the number of processors currently online below sysRoot.
func Online(sysRoot string) (int, error) {
	return ReadCount(filepath.Join(sysRoot, OnlineList))
}

func walkCPUList(cpuList string, fn func(start, end int)) error {
	cpuList = strings.TrimSpace(cpuList)
	if cpuList == "" {
		return nil
	}

	for _, part := range strings.Split(cpuList, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		startStr, endStr, isRange := strings.Cut(part, "-")
		start, err := strconv.Atoi(strings.TrimSpace(startStr))
		if err != nil || start < 0 {
			return fmt.Errorf("invalid CPU number: %s", part)
		}
		if !isRange {
			fn(start, start)
			continue
		}

		end, err := strconv.Atoi(strings.TrimSpace(endStr))
		if err != nil {
			return fmt.Errorf("invalid CPU number in range: %s", part)
		}
		if start > end {
			return fmt.Errorf("invalid CPU range (start > end): %s", part)
		}
		// "5-5" never comes from the kernel but is accepted as [5].
		fn(start, end)
	}

	return nil
}
