// Copyright Antimetal, Inc. All rights reserved.
//
// Use of this source code is governed by a source available license that can be found in the
// LICENSE file or at:
// https://polyformproject.org/wp-content/uploads/2020/06/PolyForm-Shield-1.0.0.txt

//go:build !integration

package proc

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	validMeminfo = `MemTotal:       16384000 kB
MemFree:         8192000 kB
MemAvailable:   12288000 kB
Buffers:          512000 kB
Cached:          2048000 kB
Shmem:            256000 kB
SwapTotal:       4096000 kB
SwapFree:        4000000 kB
HugePages_Total:       0
`

	x86Cpuinfo = `processor	: 0
vendor_id	: GenuineIntel
model name	: Intel(R) Xeon(R) CPU @ 2.20GHz
cpu MHz		: 2199.998

processor	: 1
vendor_id	: GenuineIntel
model name	: Intel(R) Xeon(R) CPU @ 2.20GHz
cpu MHz		: 2199.998
`

	arm64Cpuinfo = `processor	: 0
BogoMIPS	: 50.00
CPU implementer	: 0x41

processor	: 1
BogoMIPS	: 50.00
CPU implementer	: 0x41
`
)

func writeProcFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestReadMeminfo(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		root := t.TempDir()
		writeProcFile(t, root, "meminfo", validMeminfo)

		info, err := ReadMeminfo(root)
		require.NoError(t, err)
		assert.Equal(t, uint64(16384000*1024), info.MemTotal)
		assert.Equal(t, uint64(8192000*1024), info.MemFree)
		assert.Equal(t, uint64(12288000*1024), info.MemAvailable)
		assert.Equal(t, uint64(256000*1024), info.Shmem)
		assert.Equal(t, uint64(512000*1024), info.Buffers)
		assert.Equal(t, uint64(4096000*1024), info.SwapTotal)
		assert.Equal(t, uint64(4000000*1024), info.SwapFree)
	})

	t.Run("malformed values are skipped", func(t *testing.T) {
		root := t.TempDir()
		writeProcFile(t, root, "meminfo", "MemTotal: 1000 kB\nMemFree: bogus kB\nbroken\n")

		info, err := ReadMeminfo(root)
		require.NoError(t, err)
		assert.Equal(t, uint64(1000*1024), info.MemTotal)
		assert.Zero(t, info.MemFree)
	})

	t.Run("missing MemTotal", func(t *testing.T) {
		root := t.TempDir()
		writeProcFile(t, root, "meminfo", "MemFree: 1000 kB\n")

		_, err := ReadMeminfo(root)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadMeminfo(t.TempDir())
		assert.Error(t, err)
	})
}

func TestReadLoadAvg(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    *LoadAvg
		wantErr bool
	}{
		{
			name:    "valid",
			content: "0.52 1.05 2.10 3/456 7890\n",
			want:    &LoadAvg{Load1Min: 0.52, Load5Min: 1.05, Load15Min: 2.10, Running: 3, Total: 456},
		},
		{name: "too few fields", content: "0.52 1.05\n", wantErr: true},
		{name: "bad load", content: "x 1.05 2.10 3/456 7890\n", wantErr: true},
		{name: "bad procs", content: "0.52 1.05 2.10 3-456 7890\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeProcFile(t, root, "loadavg", tt.content)

			got, err := ReadLoadAvg(root)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadUptime(t *testing.T) {
	root := t.TempDir()
	writeProcFile(t, root, "uptime", "3600.50 7000.25\n")

	up, err := ReadUptime(root)
	require.NoError(t, err)
	assert.Equal(t, 3600*time.Second+500*time.Millisecond, up.Up)
	assert.Equal(t, 7000*time.Second+250*time.Millisecond, up.Idle)

	writeProcFile(t, root, "uptime", "garbage\n")
	_, err = ReadUptime(root)
	assert.Error(t, err)
}

func TestReadCPUInfo(t *testing.T) {
	t.Run("x86", func(t *testing.T) {
		root := t.TempDir()
		writeProcFile(t, root, "cpuinfo", x86Cpuinfo)

		info, err := ReadCPUInfo(root)
		require.NoError(t, err)
		assert.Equal(t, &CPUInfo{
			Count:  2,
			MHz:    2200,
			Vendor: "GenuineIntel",
			Model:  "Intel(R) Xeon(R) CPU @ 2.20GHz",
		}, info)
	})

	t.Run("arm64 without model", func(t *testing.T) {
		root := t.TempDir()
		writeProcFile(t, root, "cpuinfo", arm64Cpuinfo)

		info, err := ReadCPUInfo(root)
		require.NoError(t, err)
		assert.Equal(t, 2, info.Count)
		assert.Equal(t, "0x41", info.Vendor)
		assert.Empty(t, info.Model)
		assert.Zero(t, info.MHz)
	})

	t.Run("no processors", func(t *testing.T) {
		root := t.TempDir()
		writeProcFile(t, root, "cpuinfo", "flags : fpu\n")

		_, err := ReadCPUInfo(root)
		assert.Error(t, err)
	})
}

func TestReadProcStates(t *testing.T) {
	root := t.TempDir()
	writeProcFile(t, root, "1/stat", "1 (systemd) S 0 1 1 0 -1\n")
	writeProcFile(t, root, "20/stat", "20 (kworker/0:1) I 2 0 0 0 -1\n")
	writeProcFile(t, root, "300/stat", "300 (my (odd) cmd) R 1 300 300 0 -1\n")
	writeProcFile(t, root, "301/stat", "301 (dd) D 300 300 300 0 -1\n")
	writeProcFile(t, root, "302/stat", "302 (vi) T 300 300 300 0 -1\n")
	writeProcFile(t, root, "303/stat", "303 (defunct) Z 300 300 300 0 -1\n")
	writeProcFile(t, root, "304/stat", "304 (dead) X 300 300 300 0 -1\n")
	writeProcFile(t, root, "305/stat", "truncated")
	writeProcFile(t, root, "self/stat", "999 (self) R 1 1 1 0 -1\n")
	writeProcFile(t, root, "meminfo", validMeminfo)

	states, err := ReadProcStates(root)
	require.NoError(t, err)
	assert.Equal(t, &ProcStates{
		Total:    7,
		Running:  1,
		Sleeping: 2,
		Waiting:  1,
		Stopped:  1,
		Zombie:   1,
		Other:    1,
	}, states)
}

func TestParseStatState(t *testing.T) {
	state, err := parseStatState("42 (a) b) c) S 1")
	require.NoError(t, err)
	assert.Equal(t, byte('S'), state)

	_, err = parseStatState("42 (cmd)")
	assert.Error(t, err)
}
