// Copyright Antimetal, Inc. All rights reserved.
//
// Use of this source code is governed by a source available license that can be found in the
// LICENSE file or at:
// https://polyformproject.org/wp-content/uploads/2020/06/PolyForm-Shield-1.0.0.txt

// Package environment provides utilities for extracting configuration from environment variables
package environment

import (
	"os"
	"path/filepath"
)

const (
	// EnvHostProc overrides the root of the proc filesystem.
	EnvHostProc = "HOST_PROC"
	// EnvHostSys overrides the root of the sysfs filesystem.
	EnvHostSys = "HOST_SYS"
)

// HostPaths contains the host filesystem roots that machine providers read from.
// When the reporter runs inside a container the host's /proc and /sys are
// usually bind-mounted elsewhere (e.g. /host/proc).
type HostPaths struct {
	Proc string // Path to /proc (e.g., /host/proc in containers)
	Sys  string // Path to /sys (e.g., /host/sys in containers)
}

// DefaultHostPaths returns the paths used when nothing is overridden.
func DefaultHostPaths() HostPaths {
	return HostPaths{
		Proc: "/proc",
		Sys:  "/sys",
	}
}

// GetHostPaths returns the host filesystem paths from environment variables,
// with defaults if not set.
func GetHostPaths() HostPaths {
	paths := DefaultHostPaths()

	if procPath := os.Getenv(EnvHostProc); procPath != "" {
		paths.Proc = procPath
	}
	if sysPath := os.Getenv(EnvHostSys); sysPath != "" {
		paths.Sys = sysPath
	}

	return paths
}

// Merge returns p with every empty field filled from fallback.
func (p HostPaths) Merge(fallback HostPaths) HostPaths {
	if p.Proc == "" {
		p.Proc = fallback.Proc
	}
	if p.Sys == "" {
		p.Sys = fallback.Sys
	}
	return p
}

// ProcPath joins elem onto the proc root.
func (p HostPaths) ProcPath(elem ...string) string {
	return filepath.Join(append([]string{p.Proc}, elem...)...)
}

// SysPath joins elem onto the sysfs root.
func (p HostPaths) SysPath(elem ...string) string {
	return filepath.Join(append([]string{p.Sys}, elem...)...)
}
