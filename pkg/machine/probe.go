// Copyright Antimetal, Inc. All rights reserved.
//
// Use of this source code is governed by a source available license that can be found in the
// LICENSE file or at:
// https://polyformproject.org/wp-content/uploads/2020/06/PolyForm-Shield-1.0.0.txt

package machine

import (
	"github.com/antimetal/kickstart/pkg/config/environment"
)

// MaxUnameField is the size of a Linux utsname field including the
// terminating NUL. Lowercasing never looks past this many bytes.
const MaxUnameField = 65

// Uname is the kernel identity of the host.
type Uname struct {
	Sysname  string
	Nodename string
	Release  string
	Version  string
	Machine  string
}

// Probe is the operating system introspection facility the providers query.
// Every query is local and completes immediately.
type Probe interface {
	// Uname returns the kernel identity.
	Uname() (Uname, error)
	// PageSize returns the memory page size in bytes.
	PageSize() uint64
	// PhysPages returns the number of physical memory pages.
	PhysPages() (uint64, error)
	// AvailPhysPages returns the number of currently available physical pages.
	AvailPhysPages() (uint64, error)
	// ConfiguredCPUs returns the number of configured logical processors.
	ConfiguredCPUs() (int, error)
	// OnlineCPUs returns the number of logical processors currently online.
	OnlineCPUs() (int, error)
}

// NewHostProbe returns the Probe for the running platform. paths is only
// consulted on platforms that read sysfs.
func NewHostProbe(paths environment.HostPaths) Probe {
	return newHostProbe(paths.Merge(environment.DefaultHostPaths()))
}

// normalized lowercases the name, node and architecture fields. Release and
// version keep their original case.
func (u Uname) normalized() Uname {
	u.Sysname = lowerBounded(u.Sysname, MaxUnameField)
	u.Nodename = lowerBounded(u.Nodename, MaxUnameField)
	u.Machine = lowerBounded(u.Machine, MaxUnameField)
	return u
}

// lowerBounded lowercases ASCII letters among the first max bytes of s.
func lowerBounded(s string, max int) string {
	b := []byte(s)
	for i := 0; i < len(b) && i < max; i++ {
		if c := b[i]; 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
