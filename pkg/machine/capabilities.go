// Copyright Antimetal, Inc. All rights reserved.
//
// Use of this source code is governed by a source available license that can be found in the
// LICENSE file or at:
// https://polyformproject.org/wp-content/uploads/2020/06/PolyForm-Shield-1.0.0.txt

package machine

import (
	"fmt"
	"runtime"
	"sort"
)

// Capability names one optional fact a provider may gather. A platform that
// cannot supply the fact leaves the capability out of its default set and
// the matching output attribute or element never appears.
type Capability string

const (
	// Basic provider facts
	CapRAMTotal  Capability = "ram-total"
	CapRAMAvail  Capability = "ram-avail"
	CapCPUTotal  Capability = "cpu-total"
	CapCPUOnline Capability = "cpu-online"
	// Linux provider procfs sections
	CapMeminfo Capability = "meminfo"
	CapCPUInfo Capability = "cpuinfo"
	CapLoad    Capability = "load"
	CapBoot    Capability = "boot"
	CapProcs   Capability = "procs"
)

var knownCapabilities = []Capability{
	CapRAMTotal,
	CapRAMAvail,
	CapCPUTotal,
	CapCPUOnline,
	CapMeminfo,
	CapCPUInfo,
	CapLoad,
	CapBoot,
	CapProcs,
}

// memoryPlatforms are the GOOS values where physical and available memory
// can be queried.
var memoryPlatforms = map[string]bool{
	"linux":   true,
	"android": true,
	"darwin":  true,
	"freebsd": true,
	"openbsd": true,
	"solaris": true,
	"windows": true,
}

// CapabilitySet is the set of enabled capabilities. A nil set enables nothing.
type CapabilitySet map[Capability]bool

// Has reports whether c is enabled.
func (s CapabilitySet) Has(c Capability) bool {
	return s[c]
}

// Without returns a copy of s with every capability in drop removed.
func (s CapabilitySet) Without(drop ...Capability) CapabilitySet {
	out := make(CapabilitySet, len(s))
	for c, on := range s {
		if on {
			out[c] = true
		}
	}
	for _, c := range drop {
		delete(out, c)
	}
	return out
}

// List returns the enabled capabilities in sorted order.
func (s CapabilitySet) List() []Capability {
	out := make([]Capability, 0, len(s))
	for c, on := range s {
		if on {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NewCapabilitySet builds a set from the given capabilities.
func NewCapabilitySet(caps ...Capability) CapabilitySet {
	s := make(CapabilitySet, len(caps))
	for _, c := range caps {
		s[c] = true
	}
	return s
}

// ParseCapability validates a capability name.
func ParseCapability(name string) (Capability, error) {
	for _, c := range knownCapabilities {
		if string(c) == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown capability %q", name)
}

// KnownCapabilities returns every capability this package understands.
func KnownCapabilities() []Capability {
	out := make([]Capability, len(knownCapabilities))
	copy(out, knownCapabilities)
	return out
}

// DefaultCapabilities returns the capabilities supported by the platform the
// binary was built for. It is meant to be resolved once at startup and
// passed to provider constructors.
func DefaultCapabilities() CapabilitySet {
	return capabilitiesFor(runtime.GOOS)
}

func capabilitiesFor(goos string) CapabilitySet {
	caps := NewCapabilitySet(CapCPUTotal, CapCPUOnline)
	if memoryPlatforms[goos] {
		caps[CapRAMTotal] = true
		caps[CapRAMAvail] = true
	}
	if goos == "linux" || goos == "android" {
		for _, c := range []Capability{CapMeminfo, CapCPUInfo, CapLoad, CapBoot, CapProcs} {
			caps[c] = true
		}
	}
	return caps
}
