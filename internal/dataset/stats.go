// Fathom - Feature Store Pipeline for Tabular Classification
// Copyright 2026 The Fathom Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/fathom-ml/fathom

package dataset

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Median returns the linearly interpolated median of values. It returns 0
// for an empty slice; callers decide whether an empty column is an error.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.LinInterp, sorted, nil)
}

// ModeString returns the most frequent non-empty value. Ties are broken
// deterministically: the lexicographically smallest value wins, which for
// embarkation ports corresponds to the lowest category code.
func ModeString(values []string) string {
	counts := make(map[string]int)
	for _, v := range values {
		if v == "" {
			continue
		}
		counts[v]++
	}

	var mode string
	best := 0
	for v, c := range counts {
		if c > best || (c == best && v < mode) {
			mode, best = v, c
		}
	}
	return mode
}
