// Copyright Antimetal, Inc. All rights reserved.
//
// Use of this source code is governed by a source available license that can be found in the
// LICENSE file or at:
// https://polyformproject.org/wp-content/uploads/2020/06/PolyForm-Shield-1.0.0.txt

//go:build !integration

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antimetal/kickstart/internal/config"
	"github.com/antimetal/kickstart/pkg/machine"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr []string
	}{
		{
			name:   "defaults",
			mutate: func(*config.Config) {},
		},
		{
			name:   "dotted tag",
			mutate: func(c *config.Config) { c.Tag = "job.machine-info_1" },
		},
		{
			name:    "empty tag",
			mutate:  func(c *config.Config) { c.Tag = "" },
			wantErr: []string{"tag"},
		},
		{
			name:    "tag with space",
			mutate:  func(c *config.Config) { c.Tag = "my machine" },
			wantErr: []string{"tag"},
		},
		{
			name:    "prefixed tag",
			mutate:  func(c *config.Config) { c.Tag = "ns:machine" },
			wantErr: []string{"tag"},
		},
		{
			name:    "negative indent",
			mutate:  func(c *config.Config) { c.Indent = -2 },
			wantErr: []string{"indent"},
		},
		{
			name:    "no providers",
			mutate:  func(c *config.Config) { c.Providers = nil },
			wantErr: []string{"at least one provider"},
		},
		{
			name:    "unknown capability",
			mutate:  func(c *config.Config) { c.Disable = []string{"gpu-count"} },
			wantErr: []string{`"gpu-count"`},
		},
		{
			name: "bad root only matters for documents",
			mutate: func(c *config.Config) {
				c.Root = ""
			},
		},
		{
			name: "bad root in document mode",
			mutate: func(c *config.Config) {
				c.Root = ""
				c.Document = true
			},
			wantErr: []string{"root"},
		},
		{
			name: "all problems reported",
			mutate: func(c *config.Config) {
				c.Indent = -1
				c.Providers = []string{"gpu"}
			},
			wantErr: []string{"indent", `"gpu"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			before := cfg

			err := cfg.Validate()
			assert.Equal(t, before, cfg)
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			for _, want := range tt.wantErr {
				assert.ErrorContains(t, err, want)
			}
		})
	}
}

func TestCapabilities(t *testing.T) {
	base := machine.NewCapabilitySet(machine.CapRAMTotal, machine.CapRAMAvail, machine.CapCPUTotal)

	cfg := config.Default()
	cfg.Disable = []string{"ram-avail"}

	caps, err := cfg.Capabilities(base)
	require.NoError(t, err)
	assert.Equal(t, []machine.Capability{machine.CapCPUTotal, machine.CapRAMTotal}, caps.List())
	assert.True(t, base.Has(machine.CapRAMAvail))

	cfg.Disable = []string{"bogus"}
	_, err = cfg.Capabilities(base)
	assert.Error(t, err)
}

func TestPaths(t *testing.T) {
	t.Setenv("HOST_PROC", "/env/proc")
	t.Setenv("HOST_SYS", "/env/sys")

	cfg := config.Default()
	cfg.HostPaths.Proc = "/cfg/proc"

	paths := cfg.Paths()
	assert.Equal(t, "/cfg/proc", paths.Proc)
	assert.Equal(t, "/env/sys", paths.Sys)
}
