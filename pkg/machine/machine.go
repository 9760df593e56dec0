// Copyright Antimetal, Inc. All rights reserved.
//
// Use of this source code is governed by a source available license that can be found in the
// LICENSE file or at:
// https://polyformproject.org/wp-content/uploads/2020/06/PolyForm-Shield-1.0.0.txt

// Package machine gathers static host facts and renders them as XML
// fragments for a job provenance record.
//
// Each provider takes one snapshot at construction time. The snapshot is
// rendered with Start, Print and Final and released with Delete:
//
//	info := machine.NewBasic(logger, machine.NewHostProbe(paths), machine.DefaultCapabilities())
//	defer info.Delete()
//	if err := info.Print(os.Stdout, 2, "machine"); err != nil {
//		return err
//	}
//
// All four methods are safe to call on a nil snapshot and do nothing, so a
// provider that is unsupported on the current platform simply contributes
// no output.
package machine

import (
	"errors"
	"io"

	"github.com/go-logr/logr"

	"github.com/antimetal/kickstart/pkg/config/environment"
)

// ErrNoProbe is logged when a provider is constructed without a host probe.
// Construction then yields no snapshot.
var ErrNoProbe = errors.New("no host probe available")

// Info is a snapshot produced by a provider.
type Info interface {
	// Start writes the opening envelope: the tag element with its
	// page-size attribute, stamp, uname and the opening provider
	// grouping element. The tag element is indented by indent-2 and its
	// children by indent.
	Start(w io.Writer, indent int, tag string) error

	// Print writes the complete element: Start at indent+2, the provider
	// facts and Final at indent+2.
	Print(w io.Writer, indent int, tag string) error

	// Final closes the grouping element and the tag element, mirroring Start.
	Final(w io.Writer, indent int, tag string) error

	// Delete releases the snapshot.
	Delete()
}

// Options are passed to every provider factory.
type Options struct {
	Logger       logr.Logger
	Probe        Probe
	Capabilities CapabilitySet
	HostPaths    environment.HostPaths
}

// Factory constructs a provider snapshot. It returns nil when the provider
// has nothing to report.
type Factory func(opts Options) Info
