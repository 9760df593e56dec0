// Copyright Antimetal, Inc. All rights reserved.
//
// Use of this source code is governed by a source available license that can be found in the
// LICENSE file or at:
// https://polyformproject.org/wp-content/uploads/2020/06/PolyForm-Shield-1.0.0.txt

//go:build integration && (darwin || freebsd)

package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostUname_KernelVersion(t *testing.T) {
	u, err := hostUname()
	require.NoError(t, err)

	require.NotEmpty(t, u.Release)
	// The kernel version string embeds the release, unlike the OS product
	// version.
	assert.Contains(t, u.Version, u.Release)
}
