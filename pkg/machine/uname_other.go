// Copyright Antimetal, Inc. All rights reserved.
//
// Use of this source code is governed by a source available license that can be found in the
// LICENSE file or at:
// https://polyformproject.org/wp-content/uploads/2020/06/PolyForm-Shield-1.0.0.txt

//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd && !solaris

package machine

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/host"
)

// hostUname assembles the identity from gopsutil where no uname(2) exists.
// The version carries the platform build string, e.g. the Windows build.
func hostUname() (Uname, error) {
	info, err := host.Info()
	if err != nil {
		return Uname{}, fmt.Errorf("host info: %w", err)
	}

	machine := info.KernelArch
	if machine == "" {
		machine = runtime.GOARCH
	}
	return Uname{
		Sysname:  info.OS,
		Nodename: info.Hostname,
		Release:  info.KernelVersion,
		Version:  info.PlatformVersion,
		Machine:  machine,
	}, nil
}
