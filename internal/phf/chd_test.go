// Copyright 2024 GNOME Foundation
//
// SPDX-License-Identifier: LGPL-2.1-or-later

package phf

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GNOME/gi-compile-repository/internal/flag2"
)

func TestBuildResolvesEveryKey(t *testing.T) {
	keys := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot"}

	table, ok := Build(keys)
	require.True(t, ok)

	for i, k := range keys {
		require.Equal(t, i, table.Lookup(k), "key %q", k)
	}
}

func TestBuildEmpty(t *testing.T) {
	table, ok := Build(nil)
	require.True(t, ok)
	require.Equal(t, -1, table.Lookup("anything"))
}

func TestPackRoundTripsSize(t *testing.T) {
	table, ok := Build([]string{"one", "two", "three"})
	require.True(t, ok)
	require.Equal(t, table.RequiredSize(), len(table.Pack()))
}

// TestDisplacementSuccessRate is a distribution quality check, not a
// correctness check; like the teacher's hash quality test it only runs
// when explicitly selected with -run, since it churns through thousands of
// synthetic key sets.
func TestDisplacementSuccessRate(t *testing.T) {
	if flag2.Lookup[string]("test.run") == "" {
		t.SkipNow()
	}

	const trials = 2000
	failures := 0
	for trial := 0; trial < trials; trial++ {
		keys := make([]string, 0, 12)
		for i := 0; i < 12; i++ {
			keys = append(keys, fmt.Sprintf("Namespace%d_member_%d", trial, i))
		}
		if _, ok := Build(keys); !ok {
			failures++
		}
	}
	t.Logf("CHD construction failed on %d/%d synthetic key sets", failures, trials)
}
