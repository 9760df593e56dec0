// Copyright Antimetal, Inc. All rights reserved.
//
// Use of this source code is governed by a source available license that can be found in the
// LICENSE file or at:
// https://polyformproject.org/wp-content/uploads/2020/06/PolyForm-Shield-1.0.0.txt

//go:build !integration

package machine

import (
	"testing"

	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_BuiltinProviders(t *testing.T) {
	names := Providers()
	assert.Contains(t, names, BasicProvider)
	assert.Contains(t, names, LinuxProvider)
	assert.IsIncreasing(t, names)
}

func TestRegistry_Lookup(t *testing.T) {
	factory, err := Lookup(BasicProvider)
	require.NoError(t, err)

	info := factory(Options{
		Logger:       testr.New(t),
		Probe:        newFakeProbe(),
		Capabilities: allBasicCapabilities(),
	})
	require.NotNil(t, info)
	_, ok := info.(*Basic)
	assert.True(t, ok, "basic factory should produce *Basic, got %T", info)

	_, err = Lookup("gpu")
	assert.ErrorContains(t, err, `"gpu"`)
}

func TestRegistry_FactoriesReturnNilWithoutProbe(t *testing.T) {
	for _, name := range []string{BasicProvider, LinuxProvider} {
		t.Run(name, func(t *testing.T) {
			factory, err := Lookup(name)
			require.NoError(t, err)

			info := factory(Options{Logger: testr.New(t), Capabilities: DefaultCapabilities()})
			assert.Nil(t, info, "factory must return an untyped nil Info")
		})
	}
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	name := "test-duplicate-provider"
	factory := func(Options) Info { return nil }

	Register(name, factory)
	t.Cleanup(func() { delete(registry, name) })

	assert.Panics(t, func() { Register(name, factory) })
	assert.Panics(t, func() { Register("test-nil-provider", nil) })
}
