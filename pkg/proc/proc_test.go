// Copyright Antimetal, Inc. All rights reserved.
//
// Use of this source code is governed by a source available license that can be found in the
// LICENSE file or at:
// https://polyformproject.org/wp-content/uploads/2020/06/PolyForm-Shield-1.0.0.txt

//go:build integration

package proc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antimetal/kickstart/pkg/proc"
	"github.com/antimetal/kickstart/pkg/testutil"
)

func TestReadMeminfo_Host(t *testing.T) {
	paths := testutil.RequireLinuxFilesystem(t)
	info, err := proc.ReadMeminfo(paths.Proc)
	require.NoError(t, err)

	assert.Greater(t, info.MemTotal, uint64(0), "MemTotal should not be zero")
	assert.LessOrEqual(t, info.MemFree, info.MemTotal)
	t.Logf("MemTotal=%d MemFree=%d", info.MemTotal, info.MemFree)
}

func TestReadUptime_Host(t *testing.T) {
	paths := testutil.RequireLinuxFilesystem(t)
	up, err := proc.ReadUptime(paths.Proc)
	require.NoError(t, err)
	assert.Greater(t, up.Up.Seconds(), 0.0)
}

func TestReadCPUInfo_Host(t *testing.T) {
	paths := testutil.RequireLinuxFilesystem(t)
	info, err := proc.ReadCPUInfo(paths.Proc)
	require.NoError(t, err)
	assert.Greater(t, info.Count, 0)
	t.Logf("cpus=%d vendor=%q model=%q mhz=%d", info.Count, info.Vendor, info.Model, info.MHz)
}

func TestReadProcStates_Host(t *testing.T) {
	paths := testutil.RequireLinuxFilesystem(t)
	states, err := proc.ReadProcStates(paths.Proc)
	require.NoError(t, err)

	// The test binary itself is running.
	assert.Greater(t, states.Total, 0)
	assert.Equal(t, states.Total,
		states.Running+states.Sleeping+states.Waiting+states.Stopped+states.Zombie+states.Other)
}
