// Copyright Antimetal, Inc. All rights reserved.
//
// Use of this source code is governed by a source available license that can be found in the
// LICENSE file or at:
// https://polyformproject.org/wp-content/uploads/2020/06/PolyForm-Shield-1.0.0.txt

package machine

import (
	"io"
	"math"
	"os"
	"time"

	"github.com/go-logr/logr"
)

// BasicProvider is the label of the basic provider's grouping element.
const BasicProvider = "basic"

func init() {
	Register(BasicProvider, func(opts Options) Info {
		if b := NewBasic(opts.Logger, opts.Probe, opts.Capabilities); b != nil {
			return b
		}
		return nil
	})
}

// Compile-time interface check
var _ Info = (*Basic)(nil)

// Basic is the portable machine snapshot: identity, page size, memory size
// and processor counts. Optional facts are nil when the platform cannot
// supply them or the query failed, never zero.
type Basic struct {
	// Provider labels the grouping element. Providers that build on Basic
	// overwrite it with their own label.
	Provider string
	Stamp    time.Time
	Uname    Uname
	PageSize uint64

	RAMTotal  *uint64 // bytes
	RAMAvail  *uint64 // bytes
	CPUTotal  *uint16
	CPUOnline *uint16
}

// NewBasic takes a snapshot of the host through probe. Only the optional
// facts enabled in caps are queried.
//
// It returns nil, after logging ErrNoProbe, when probe is nil; callers skip
// the provider in that case.
func NewBasic(logger logr.Logger, probe Probe, caps CapabilitySet) *Basic {
	logger = logger.WithName(BasicProvider)
	if probe == nil {
		logger.Error(ErrNoProbe, "unable to gather basic machine information")
		return nil
	}

	b := &Basic{
		Provider: BasicProvider,
		Stamp:    time.Now().Truncate(time.Microsecond),
	}

	if uname, err := probe.Uname(); err != nil {
		logger.V(1).Info("Identity query failed, reporting empty uname", "error", err)
	} else {
		b.Uname = uname.normalized()
	}

	b.PageSize = probe.PageSize()
	if b.PageSize == 0 {
		b.PageSize = uint64(os.Getpagesize())
	}

	if caps.Has(CapRAMTotal) {
		if pages, err := probe.PhysPages(); err == nil {
			b.RAMTotal = uint64Ptr(pages * b.PageSize)
		}
	}
	if caps.Has(CapRAMAvail) {
		if pages, err := probe.AvailPhysPages(); err == nil {
			b.RAMAvail = uint64Ptr(pages * b.PageSize)
		}
	}
	if caps.Has(CapCPUTotal) {
		if n, err := probe.ConfiguredCPUs(); err == nil {
			b.CPUTotal = cpuCount(n)
		}
	}
	if caps.Has(CapCPUOnline) {
		if n, err := probe.OnlineCPUs(); err == nil {
			b.CPUOnline = cpuCount(n)
		}
	}

	logger.V(2).Info("Collected basic machine information",
		"system", b.Uname.Sysname, "pageSize", b.PageSize)
	return b
}

func (b *Basic) Start(w io.Writer, indent int, tag string) error {
	if !b.live() {
		return nil
	}
	x := newXMLWriter(w)
	b.start(x, indent, tag)
	return x.err
}

func (b *Basic) Print(w io.Writer, indent int, tag string) error {
	if !b.live() {
		return nil
	}
	x := newXMLWriter(w)
	b.start(x, indent+2, tag)
	b.body(x, indent+4)
	b.final(x, indent+2, tag)
	return x.err
}

func (b *Basic) Final(w io.Writer, indent int, tag string) error {
	if !b.live() {
		return nil
	}
	x := newXMLWriter(w)
	b.final(x, indent, tag)
	return x.err
}

// Delete drops the snapshot contents. Rendering a deleted snapshot writes
// nothing.
func (b *Basic) Delete() {
	if b == nil {
		return
	}
	*b = Basic{}
}

// live reports whether b holds a snapshot. Delete clears the provider
// label along with everything else.
func (b *Basic) live() bool {
	return b != nil && b.Provider != ""
}

func (b *Basic) start(x *xmlWriter, indent int, tag string) {
	x.open(indent-2, tag)
	x.attrf("page-size", "%d", b.PageSize)
	x.printf(">\n")

	x.open(indent, "stamp")
	x.closeText("stamp", FormatISODate(b.Stamp))

	x.open(indent, "uname")
	x.attr("system", b.Uname.Sysname)
	x.attr("nodename", b.Uname.Nodename)
	x.attr("release", b.Uname.Release)
	x.attr("machine", b.Uname.Machine)
	x.closeText("uname", b.Uname.Version)

	x.startTag(indent, b.Provider)
}

func (b *Basic) body(x *xmlWriter, indent int) {
	if b.RAMTotal != nil || b.RAMAvail != nil {
		x.open(indent, "ram")
		if b.RAMTotal != nil {
			x.attrf("total", "%d", *b.RAMTotal/1024)
		}
		if b.RAMAvail != nil {
			x.attrf("avail", "%d", *b.RAMAvail/1024)
		}
		x.closeEmpty()
	}

	if b.CPUTotal != nil || b.CPUOnline != nil {
		x.open(indent, "cpu")
		if b.CPUTotal != nil {
			x.attrf("total", "%d", *b.CPUTotal)
		}
		if b.CPUOnline != nil {
			x.attrf("online", "%d", *b.CPUOnline)
		}
		x.closeEmpty()
	}
}

func (b *Basic) final(x *xmlWriter, indent int, tag string) {
	x.endTag(indent, b.Provider)
	x.endTag(indent-2, tag)
}

func uint64Ptr(v uint64) *uint64 {
	return &v
}

// cpuCount narrows a processor count to the reported width; negative
// counts are treated as a failed query.
func cpuCount(n int) *uint16 {
	if n < 0 {
		return nil
	}
	if n > math.MaxUint16 {
		n = math.MaxUint16
	}
	v := uint16(n)
	return &v
}
