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
)

// ProcStates counts processes by scheduler state.
type ProcStates struct {
	Total    int
	Running  int // R
	Sleeping int // S, I
	Waiting  int // D (uninterruptible, usually disk)
	Stopped  int // T, t
	Zombie   int // Z
	Other    int
}

// ReadProcStates walks the numeric entries of procRoot and classifies each
// process by the state field of its stat file. Processes that exit while
// the walk is in progress are skipped.
func ReadProcStates(procRoot string) (*ProcStates, error) {
	entries, err := os.ReadDir(procRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", procRoot, err)
	}

	states := &ProcStates{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := strconv.Atoi(entry.Name()); err != nil {
			continue
		}

		data, err := os.ReadFile(filepath.Join(procRoot, entry.Name(), "stat"))
		if err != nil {
			continue
		}
		state, err := parseStatState(string(data))
		if err != nil {
			continue
		}

		states.Total++
		switch state {
		case 'R':
			states.Running++
		case 'S', 'I':
			states.Sleeping++
		case 'D':
			states.Waiting++
		case 'T', 't':
			states.Stopped++
		case 'Z':
			states.Zombie++
		default:
			states.Other++
		}
	}

	return states, nil
}

// parseStatState extracts field 3 of /proc/[pid]/stat. The command name in
// field 2 may itself contain spaces and parentheses, so the state is found
// after the last closing parenthesis.
func parseStatState(stat string) (byte, error) {
	idx := strings.LastIndexByte(stat, ')')
	if idx < 0 {
		return 0, fmt.Errorf("malformed stat line: %q", stat)
	}
	rest := strings.TrimLeft(stat[idx+1:], " ")
	if rest == "" {
		return 0, fmt.Errorf("missing state in stat line: %q", stat)
	}
	return rest[0], nil
}
