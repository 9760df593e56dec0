// Copyright Antimetal, Inc. All rights reserved.
//
// Use of this source code is governed by a source available license that can be found in the
// LICENSE file or at:
// https://polyformproject.org/wp-content/uploads/2020/06/PolyForm-Shield-1.0.0.txt

package config

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/antimetal/kickstart/pkg/machine"
)

// Validate checks the configuration without modifying it. All problems are
// reported together.
func (c Config) Validate() error {
	var errs []error

	if !isXMLName(c.Tag) {
		errs = append(errs, fmt.Errorf("tag %q is not a valid XML element name", c.Tag))
	}
	if c.Document && !isXMLName(c.Root) {
		errs = append(errs, fmt.Errorf("root %q is not a valid XML element name", c.Root))
	}
	if c.Indent < 0 {
		errs = append(errs, fmt.Errorf("indent must be non-negative, got %d", c.Indent))
	}

	if len(c.Providers) == 0 {
		errs = append(errs, errors.New("at least one provider is required"))
	}
	for _, name := range c.Providers {
		if _, err := machine.Lookup(name); err != nil {
			errs = append(errs, err)
		}
	}

	for _, name := range c.Disable {
		if _, err := machine.ParseCapability(name); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Capabilities removes the disabled capabilities from base. base is not
// modified.
func (c Config) Capabilities(base machine.CapabilitySet) (machine.CapabilitySet, error) {
	drop := make([]machine.Capability, 0, len(c.Disable))
	for _, name := range c.Disable {
		capability, err := machine.ParseCapability(name)
		if err != nil {
			return nil, err
		}
		drop = append(drop, capability)
	}
	return base.Without(drop...), nil
}

// isXMLName reports whether s is usable as an element name. Colons are
// rejected so names never carry a namespace prefix.
func isXMLName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && (r == '-' || r == '.' || unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}
