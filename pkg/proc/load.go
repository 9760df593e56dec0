// Copyright Antimetal, Inc. All rights reserved.
//
// Use of this source code is governed by a source available license that can be found in the
// LICENSE file or at:
// https://polyformproject.org/wp-content/uploads/2020/06/PolyForm-Shield-1.0.0.txt

package proc

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// LoadAvg is the content of /proc/loadavg.
type LoadAvg struct {
	Load1Min  float64
	Load5Min  float64
	Load15Min float64
	// Running/total scheduling entities from the 4th field, e.g. "2/1234"
	Running int
	Total   int
}

// Uptime is the content of /proc/uptime.
type Uptime struct {
	Up   time.Duration
	Idle time.Duration // summed over all CPUs
}

// ReadLoadAvg parses <procRoot>/loadavg.
//
// Format: 0.00 0.01 0.05 1/234 5678
func ReadLoadAvg(procRoot string) (*LoadAvg, error) {
	path := filepath.Join(procRoot, "loadavg")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	fields := strings.Fields(string(data))
	if len(fields) < 4 {
		return nil, fmt.Errorf("unexpected format in %s: %q", path, string(data))
	}

	load := &LoadAvg{}
	targets := []*float64{&load.Load1Min, &load.Load5Min, &load.Load15Min}
	for i, target := range targets {
		if *target, err = strconv.ParseFloat(fields[i], 64); err != nil {
			return nil, fmt.Errorf("failed to parse load average %q: %w", fields[i], err)
		}
	}

	running, total, ok := strings.Cut(fields[3], "/")
	if !ok {
		return nil, fmt.Errorf("unexpected process format: %s", fields[3])
	}
	if load.Running, err = strconv.Atoi(running); err != nil {
		return nil, fmt.Errorf("failed to parse running processes: %w", err)
	}
	if load.Total, err = strconv.Atoi(total); err != nil {
		return nil, fmt.Errorf("failed to parse total processes: %w", err)
	}

	return load, nil
}

// ReadUptime parses <procRoot>/uptime.
//
// Format: 350735.47 234388.90
func ReadUptime(procRoot string) (*Uptime, error) {
	path := filepath.Join(procRoot, "uptime")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	fields := strings.Fields(string(data))
	if len(fields) < 2 {
		return nil, fmt.Errorf("unexpected format in %s: %q", path, string(data))
	}

	up, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse uptime: %w", err)
	}
	idle, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse idle time: %w", err)
	}

	return &Uptime{
		Up:   secondsToDuration(up),
		Idle: secondsToDuration(idle),
	}, nil
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
