// Copyright Antimetal, Inc. All rights reserved.
//
// Use of this source code is governed by a source available license that can be found in the
// LICENSE file or at:
// https://polyformproject.org/wp-content/uploads/2020/06/PolyForm-Shield-1.0.0.txt

//go:build !linux

package machine

import (
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/antimetal/kickstart/pkg/config/environment"
)

// hostProbe answers through gopsutil on platforms without sysinfo(2) and sysfs.
type hostProbe struct {
	pageSize uint64
}

func newHostProbe(_ environment.HostPaths) Probe {
	return &hostProbe{pageSize: uint64(os.Getpagesize())}
}

func (p *hostProbe) Uname() (Uname, error) {
	return hostUname()
}

func (p *hostProbe) PageSize() uint64 {
	return p.pageSize
}

func (p *hostProbe) PhysPages() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, fmt.Errorf("virtual memory: %w", err)
	}
	return vm.Total / p.pageSize, nil
}

func (p *hostProbe) AvailPhysPages() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, fmt.Errorf("virtual memory: %w", err)
	}
	return vm.Available / p.pageSize, nil
}

func (p *hostProbe) ConfiguredCPUs() (int, error) {
	n, err := cpu.Counts(true)
	if err != nil {
		return 0, fmt.Errorf("cpu counts: %w", err)
	}
	return n, nil
}

// OnlineCPUs reports the processors the Go scheduler can use, the closest
// portable notion of "online".
func (p *hostProbe) OnlineCPUs() (int, error) {
	return runtime.NumCPU(), nil
}
