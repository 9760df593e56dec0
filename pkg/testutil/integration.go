// Copyright Antimetal, Inc. All rights reserved.
//
// Use of this source code is governed by a source available license that can be found in the
// LICENSE file or at:
// https://polyformproject.org/wp-content/uploads/2020/06/PolyForm-Shield-1.0.0.txt

// Package testutil provides utilities for testing, with a focus on integration test helpers.
package testutil

import (
	"os"
	"runtime"
	"testing"

	"github.com/antimetal/kickstart/pkg/config/environment"
)

// RequireLinux skips the test if not running on Linux.
func RequireLinux(t *testing.T) {
	t.Helper()
	if runtime.GOOS != "linux" {
		t.Skip("Test requires Linux")
	}
}

// RequireLinuxFilesystem verifies that the proc and sysfs roots the
// providers read from are mounted, and returns them.
func RequireLinuxFilesystem(t *testing.T) environment.HostPaths {
	t.Helper()
	RequireLinux(t)

	paths := environment.GetHostPaths()

	if _, err := os.Stat(paths.ProcPath("self")); err != nil {
		t.Skipf("Test requires /proc filesystem: %v", err)
	}

	if _, err := os.Stat(paths.SysPath("devices", "system", "cpu")); err != nil {
		t.Skipf("Test requires /sys filesystem: %v", err)
	}

	return paths
}
