// Copyright Antimetal, Inc. All rights reserved.
//
// Use of this source code is governed by a source available license that can be found in the
// LICENSE file or at:
// https://polyformproject.org/wp-content/uploads/2020/06/PolyForm-Shield-1.0.0.txt

//go:build linux

package machine

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/antimetal/kickstart/pkg/config/environment"
	"github.com/antimetal/kickstart/pkg/cpu"
)

type hostProbe struct {
	paths    environment.HostPaths
	pageSize uint64
}

func newHostProbe(paths environment.HostPaths) Probe {
	return &hostProbe{
		paths:    paths,
		pageSize: uint64(unix.Getpagesize()),
	}
}

func (p *hostProbe) Uname() (Uname, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return Uname{}, fmt.Errorf("uname: %w", err)
	}
	return Uname{
		Sysname:  unix.ByteSliceToString(uts.Sysname[:]),
		Nodename: unix.ByteSliceToString(uts.Nodename[:]),
		Release:  unix.ByteSliceToString(uts.Release[:]),
		Version:  unix.ByteSliceToString(uts.Version[:]),
		Machine:  unix.ByteSliceToString(uts.Machine[:]),
	}, nil
}

func (p *hostProbe) PageSize() uint64 {
	return p.pageSize
}

// PhysPages and AvailPhysPages mirror glibc's _SC_PHYS_PAGES and
// _SC_AVPHYS_PAGES, both derived from sysinfo(2).
func (p *hostProbe) PhysPages() (uint64, error) {
	info, err := p.sysinfo()
	if err != nil {
		return 0, err
	}
	return uint64(info.Totalram) * memUnit(info) / p.pageSize, nil
}

func (p *hostProbe) AvailPhysPages() (uint64, error) {
	info, err := p.sysinfo()
	if err != nil {
		return 0, err
	}
	return uint64(info.Freeram) * memUnit(info) / p.pageSize, nil
}

func (p *hostProbe) ConfiguredCPUs() (int, error) {
	return cpu.Configured(p.paths.Sys)
}

func (p *hostProbe) OnlineCPUs() (int, error) {
	return cpu.Online(p.paths.Sys)
}

func (p *hostProbe) sysinfo() (*unix.Sysinfo_t, error) {
	if p.pageSize == 0 {
		return nil, fmt.Errorf("page size unavailable")
	}
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return nil, fmt.Errorf("sysinfo: %w", err)
	}
	return &info, nil
}

// memUnit is the byte multiplier of the sysinfo memory fields. Kernels
// before 2.3.23 leave it zero and report bytes.
func memUnit(info *unix.Sysinfo_t) uint64 {
	if info.Unit == 0 {
		return 1
	}
	return uint64(info.Unit)
}
