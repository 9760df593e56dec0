// Copyright Antimetal, Inc. All rights reserved.
//
// Use of this source code is governed by a source available license that can be found in the
// LICENSE file or at:
// https://polyformproject.org/wp-content/uploads/2020/06/PolyForm-Shield-1.0.0.txt

//go:build !integration

package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHostPaths(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv(EnvHostProc, "")
		t.Setenv(EnvHostSys, "")

		assert.Equal(t, HostPaths{Proc: "/proc", Sys: "/sys"}, GetHostPaths())
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv(EnvHostProc, "/host/proc")
		t.Setenv(EnvHostSys, "/host/sys")

		paths := GetHostPaths()
		assert.Equal(t, "/host/proc", paths.Proc)
		assert.Equal(t, "/host/sys", paths.Sys)
	})
}

func TestHostPaths_Merge(t *testing.T) {
	merged := HostPaths{Proc: "/custom/proc"}.Merge(DefaultHostPaths())
	assert.Equal(t, "/custom/proc", merged.Proc)
	assert.Equal(t, "/sys", merged.Sys)
}

func TestHostPaths_Join(t *testing.T) {
	paths := HostPaths{Proc: "/host/proc", Sys: "/host/sys"}
	assert.Equal(t, "/host/proc/1/stat", paths.ProcPath("1", "stat"))
	assert.Equal(t, "/host/sys/devices/system/cpu/online", paths.SysPath("devices/system/cpu", "online"))
}
