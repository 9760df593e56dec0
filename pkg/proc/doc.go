// Copyright Antimetal, Inc. All rights reserved.
//
// Use of this source code is governed by a source available license that can be found in the
// LICENSE file or at:
// https://polyformproject.org/wp-content/uploads/2020/06/PolyForm-Shield-1.0.0.txt

// Package proc provides utilities for reading system information from the /proc filesystem.
//
// Every reader takes the proc root explicitly so the same code serves the
// real host, a bind-mounted host /proc inside a container, and fake trees
// built in tests.
//
// Example usage:
//
//	mem, err := proc.ReadMeminfo("/proc")
//	if err != nil {
//		return err
//	}
//
//	// Use custom /proc path (useful in containers)
//	up, err := proc.ReadUptime("/host/proc")
package proc
