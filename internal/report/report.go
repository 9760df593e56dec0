// Copyright Antimetal, Inc. All rights reserved.
//
// Use of this source code is governed by a source available license that can be found in the
// LICENSE file or at:
// https://polyformproject.org/wp-content/uploads/2020/06/PolyForm-Shield-1.0.0.txt

// Package report renders the configured machine providers into one XML
// stream.
package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-logr/logr"

	"github.com/antimetal/kickstart/pkg/config/environment"
	"github.com/antimetal/kickstart/pkg/machine"
)

// XMLDeclaration opens a standalone document.
const XMLDeclaration = `<?xml version="1.0" encoding="UTF-8"?>`

// Options contains configuration for a report
type Options struct {
	// Providers are the registered provider names, written in order.
	Providers []string
	// Tag names the element wrapping each provider's output.
	Tag string
	// Indent is passed to every provider's Print.
	Indent int
	// Document adds the XML declaration and a Root element around the
	// providers.
	Document bool
	Root     string

	Probe        machine.Probe
	Capabilities machine.CapabilitySet
	HostPaths    environment.HostPaths
}

// Write resolves every provider, then takes one snapshot per provider and
// prints it to w. A provider that yields no snapshot contributes nothing.
// Unknown provider names fail the report before anything is written.
func Write(w io.Writer, logger logr.Logger, opts Options) error {
	if opts.Tag == "" {
		return errors.New("report tag is required")
	}
	if opts.Document && opts.Root == "" {
		return errors.New("report root is required for documents")
	}

	logger = logger.WithName("report")

	factories := make([]machine.Factory, 0, len(opts.Providers))
	for _, name := range opts.Providers {
		factory, err := machine.Lookup(name)
		if err != nil {
			return err
		}
		factories = append(factories, factory)
	}

	if opts.Document {
		if _, err := fmt.Fprintf(w, "%s\n<%s>\n", XMLDeclaration, opts.Root); err != nil {
			return fmt.Errorf("failed to write document header: %w", err)
		}
	}

	for i, factory := range factories {
		name := opts.Providers[i]
		providerLogger := logger.WithValues("provider", name)

		info := factory(machine.Options{
			Logger:       providerLogger,
			Probe:        opts.Probe,
			Capabilities: opts.Capabilities,
			HostPaths:    opts.HostPaths,
		})
		if info == nil {
			providerLogger.V(1).Info("Provider produced no snapshot, skipping")
			continue
		}

		err := info.Print(w, opts.Indent, opts.Tag)
		info.Delete()
		if err != nil {
			return fmt.Errorf("failed to print provider %s: %w", name, err)
		}
		providerLogger.V(1).Info("Provider written")
	}

	if opts.Document {
		if _, err := fmt.Fprintf(w, "</%s>\n", opts.Root); err != nil {
			return fmt.Errorf("failed to write document footer: %w", err)
		}
	}

	return nil
}
