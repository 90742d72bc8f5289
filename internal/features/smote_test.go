// Fathom - Feature Store Pipeline for Tabular Classification
// Copyright 2026 The Fathom Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/fathom-ml/fathom

package features

import (
	"reflect"
	"testing"
)

func imbalancedSet() ([][]float64, []int) {
	x := [][]float64{
		{0.0, 0.1}, {0.2, 0.0}, {0.1, 0.2}, {0.3, 0.1}, {0.2, 0.3},
		{5.0, 5.1}, {5.2, 5.0},
	}
	y := []int{0, 0, 0, 0, 0, 1, 1}
	return x, y
}

func TestSMOTE_BalancesClasses(t *testing.T) {
	x, y := imbalancedSet()

	xr, yr, err := SMOTE(x, y, 5, 42)
	if err != nil {
		t.Fatalf("SMOTE() error = %v", err)
	}

	counts := make(map[int]int)
	for _, label := range yr {
		counts[label]++
	}
	if counts[0] != counts[1] {
		t.Errorf("class counts after SMOTE = %v, want balanced", counts)
	}
	if len(xr) != len(yr) {
		t.Errorf("len(x) %d != len(y) %d", len(xr), len(yr))
	}

	// Originals are preserved as a prefix.
	for i := range x {
		if !reflect.DeepEqual(xr[i], x[i]) || yr[i] != y[i] {
			t.Fatalf("original row %d mutated", i)
		}
	}

	// Synthetic minority rows interpolate between minority members, so
	// they stay inside the minority cluster's bounding box.
	for i := len(x); i < len(xr); i++ {
		if yr[i] != 1 {
			t.Errorf("synthetic row %d has label %d, want 1", i, yr[i])
			continue
		}
		for d, v := range xr[i] {
			if v < 5.0 || v > 5.2 {
				t.Errorf("synthetic row %d dim %d = %g, outside minority range", i, d, v)
			}
		}
	}
}

func TestSMOTE_Deterministic(t *testing.T) {
	x, y := imbalancedSet()

	x1, y1, err := SMOTE(x, y, 5, 42)
	if err != nil {
		t.Fatalf("SMOTE() error = %v", err)
	}
	x2, y2, err := SMOTE(x, y, 5, 42)
	if err != nil {
		t.Fatalf("SMOTE() second run error = %v", err)
	}
	if !reflect.DeepEqual(x1, x2) || !reflect.DeepEqual(y1, y2) {
		t.Error("same seed produced different resamples")
	}
}

func TestSMOTE_AlreadyBalanced(t *testing.T) {
	x := [][]float64{{0, 0}, {0, 1}, {5, 5}, {5, 6}}
	y := []int{0, 0, 1, 1}

	xr, yr, err := SMOTE(x, y, 3, 42)
	if err != nil {
		t.Fatalf("SMOTE() error = %v", err)
	}
	if !reflect.DeepEqual(xr, x) || !reflect.DeepEqual(yr, y) {
		t.Error("balanced input should pass through unchanged")
	}
}

func TestSMOTE_Errors(t *testing.T) {
	tests := []struct {
		name string
		x    [][]float64
		y    []int
		k    int
	}{
		{name: "empty input", x: nil, y: nil, k: 5},
		{name: "length mismatch", x: [][]float64{{1}}, y: []int{0, 1}, k: 5},
		{name: "zero k", x: [][]float64{{1}, {2}}, y: []int{0, 1}, k: 0},
		{
			name: "singleton minority class",
			x:    [][]float64{{0}, {1}, {5}},
			y:    []int{0, 0, 1},
			k:    5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := SMOTE(tt.x, tt.y, tt.k, 42); err == nil {
				t.Error("SMOTE() should fail")
			}
		})
	}
}
