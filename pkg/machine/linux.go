// Copyright Antimetal, Inc. All rights reserved.
//
// Use of this source code is governed by a source available license that can be found in the
// LICENSE file or at:
// https://polyformproject.org/wp-content/uploads/2020/06/PolyForm-Shield-1.0.0.txt

package machine

import (
	"io"
	"time"

	"github.com/go-logr/logr"

	"github.com/antimetal/kickstart/pkg/config/environment"
	"github.com/antimetal/kickstart/pkg/proc"
)

// LinuxProvider is the label of the Linux provider's grouping element.
const LinuxProvider = "linux"

func init() {
	Register(LinuxProvider, func(opts Options) Info {
		if l := NewLinux(opts.Logger, opts.Probe, opts.Capabilities, opts.HostPaths); l != nil {
			return l
		}
		return nil
	})
}

// Compile-time interface check
var _ Info = (*Linux)(nil)

// Boot describes when the host booted.
type Boot struct {
	Time time.Time
	Idle time.Duration // idle time summed over all CPUs since boot
}

// Linux extends the basic snapshot with procfs facts: detailed memory and
// swap, boot time, processor model, load averages and process states.
// Each section is nil when its capability is disabled or its source could
// not be read.
type Linux struct {
	*Basic

	Memory *proc.Meminfo
	Boot   *Boot
	CPU    *proc.CPUInfo
	Load   *proc.LoadAvg
	Procs  *proc.ProcStates
}

// NewLinux takes a basic snapshot through probe and then reads the procfs
// sections enabled in caps below paths.Proc. It returns nil when the basic
// snapshot cannot be taken.
func NewLinux(logger logr.Logger, probe Probe, caps CapabilitySet, paths environment.HostPaths) *Linux {
	basic := NewBasic(logger, probe, caps)
	if basic == nil {
		return nil
	}
	basic.Provider = LinuxProvider

	logger = logger.WithName(LinuxProvider)
	procRoot := paths.Merge(environment.DefaultHostPaths()).Proc
	l := &Linux{Basic: basic}

	if caps.Has(CapMeminfo) {
		if mem, err := proc.ReadMeminfo(procRoot); err != nil {
			logger.V(2).Info("Skipping memory section", "error", err)
		} else {
			l.Memory = mem
		}
	}
	if caps.Has(CapBoot) {
		if up, err := proc.ReadUptime(procRoot); err != nil {
			logger.V(2).Info("Skipping boot section", "error", err)
		} else {
			l.Boot = &Boot{Time: basic.Stamp.Add(-up.Up), Idle: up.Idle}
		}
	}
	if caps.Has(CapCPUInfo) {
		if info, err := proc.ReadCPUInfo(procRoot); err != nil {
			logger.V(2).Info("Skipping cpu section", "error", err)
		} else {
			l.CPU = info
		}
	}
	if caps.Has(CapLoad) {
		if load, err := proc.ReadLoadAvg(procRoot); err != nil {
			logger.V(2).Info("Skipping load section", "error", err)
		} else {
			l.Load = load
		}
	}
	if caps.Has(CapProcs) {
		if states, err := proc.ReadProcStates(procRoot); err != nil {
			logger.V(2).Info("Skipping procs section", "error", err)
		} else {
			l.Procs = states
		}
	}

	return l
}

func (l *Linux) Start(w io.Writer, indent int, tag string) error {
	if l == nil {
		return nil
	}
	return l.Basic.Start(w, indent, tag)
}

func (l *Linux) Print(w io.Writer, indent int, tag string) error {
	if l == nil || !l.Basic.live() {
		return nil
	}
	x := newXMLWriter(w)
	l.start(x, indent+2, tag)
	l.body(x, indent+4)
	l.final(x, indent+2, tag)
	return x.err
}

func (l *Linux) Final(w io.Writer, indent int, tag string) error {
	if l == nil {
		return nil
	}
	return l.Basic.Final(w, indent, tag)
}

func (l *Linux) Delete() {
	if l == nil {
		return
	}
	l.Basic.Delete()
	*l = Linux{}
}

// body replaces the basic ram and cpu elements with the procfs detail.
// When a procfs section is missing the corresponding basic element is
// written instead.
func (l *Linux) body(x *xmlWriter, indent int) {
	if l.Memory != nil {
		x.open(indent, "ram")
		x.attrf("total", "%d", l.Memory.MemTotal/1024)
		x.attrf("free", "%d", l.Memory.MemFree/1024)
		x.attrf("avail", "%d", l.Memory.MemAvailable/1024)
		x.attrf("shared", "%d", l.Memory.Shmem/1024)
		x.attrf("buffer", "%d", l.Memory.Buffers/1024)
		x.closeEmpty()

		x.open(indent, "swap")
		x.attrf("total", "%d", l.Memory.SwapTotal/1024)
		x.attrf("free", "%d", l.Memory.SwapFree/1024)
		x.closeEmpty()
	}

	if l.Boot != nil {
		x.open(indent, "boot")
		x.attrf("idle", "%.3f", l.Boot.Idle.Seconds())
		x.closeText("boot", FormatISODate(l.Boot.Time))
	}

	if l.CPU != nil {
		x.open(indent, "cpu")
		x.attrf("count", "%d", l.CPU.Count)
		x.attrf("speed", "%d", l.CPU.MHz)
		x.attr("vendor", l.CPU.Vendor)
		x.closeText("cpu", l.CPU.Model)
	}

	if l.Memory == nil || l.CPU == nil {
		fallback := &Basic{
			RAMTotal:  l.RAMTotal,
			RAMAvail:  l.RAMAvail,
			CPUTotal:  l.CPUTotal,
			CPUOnline: l.CPUOnline,
		}
		if l.Memory != nil {
			fallback.RAMTotal, fallback.RAMAvail = nil, nil
		}
		if l.CPU != nil {
			fallback.CPUTotal, fallback.CPUOnline = nil, nil
		}
		fallback.body(x, indent)
	}

	if l.Load != nil {
		x.open(indent, "load")
		x.attrf("min1", "%.2f", l.Load.Load1Min)
		x.attrf("min5", "%.2f", l.Load.Load5Min)
		x.attrf("min15", "%.2f", l.Load.Load15Min)
		x.attrf("runnable", "%d", l.Load.Running)
		x.attrf("threads", "%d", l.Load.Total)
		x.closeEmpty()
	}

	if l.Procs != nil {
		x.open(indent, "procs")
		x.attrf("total", "%d", l.Procs.Total)
		x.attrf("running", "%d", l.Procs.Running)
		x.attrf("sleeping", "%d", l.Procs.Sleeping)
		x.attrf("waiting", "%d", l.Procs.Waiting)
		x.attrf("stopped", "%d", l.Procs.Stopped)
		x.attrf("zombie", "%d", l.Procs.Zombie)
		x.attrf("other", "%d", l.Procs.Other)
		x.closeEmpty()
	}
}
