// Fathom - Feature Store Pipeline for Tabular Classification
// Copyright 2026 The Fathom Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/fathom-ml/fathom

package forest

import (
	"math/rand"
	"reflect"
	"testing"
)

// separableSet builds two well-separated 2D clusters.
func separableSet(n int, seed int64) ([][]float64, []int) {
	rng := rand.New(rand.NewSource(seed))
	x := make([][]float64, 0, 2*n)
	y := make([]int, 0, 2*n)
	for i := 0; i < n; i++ {
		x = append(x, []float64{rng.Float64(), rng.Float64()})
		y = append(y, 0)
		x = append(x, []float64{5 + rng.Float64(), 5 + rng.Float64()})
		y = append(y, 1)
	}
	return x, y
}

func TestTree_FitPredict(t *testing.T) {
	x, y := separableSet(20, 1)

	tree := NewTree(TreeConfig{MaxDepth: 5, Seed: 42})
	if err := tree.Fit(x, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	pred := tree.Predict(x)
	acc, err := Accuracy(y, pred)
	if err != nil {
		t.Fatalf("Accuracy() error = %v", err)
	}
	if acc != 1.0 {
		t.Errorf("training accuracy on separable data = %g, want 1.0", acc)
	}

	if got := tree.PredictOne([]float64{0.2, 0.3}); got != 0 {
		t.Errorf("PredictOne(cluster 0) = %d, want 0", got)
	}
	if got := tree.PredictOne([]float64{5.5, 5.5}); got != 1 {
		t.Errorf("PredictOne(cluster 1) = %d, want 1", got)
	}
}

func TestTree_Errors(t *testing.T) {
	tests := []struct {
		name string
		x    [][]float64
		y    []int
	}{
		{name: "empty", x: nil, y: nil},
		{name: "length mismatch", x: [][]float64{{1}}, y: []int{0, 1}},
		{name: "ragged rows", x: [][]float64{{1, 2}, {1}}, y: []int{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := NewTree(TreeConfig{})
			if err := tree.Fit(tt.x, tt.y); err == nil {
				t.Error("Fit() should fail")
			}
		})
	}
}

func TestTree_SingleClass(t *testing.T) {
	x := [][]float64{{1}, {2}, {3}}
	y := []int{7, 7, 7}

	tree := NewTree(TreeConfig{})
	if err := tree.Fit(x, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	for _, p := range tree.Predict(x) {
		if p != 7 {
			t.Errorf("single-class prediction = %d, want 7", p)
		}
	}
}

func TestTree_MaxDepthLimitsGrowth(t *testing.T) {
	x, y := separableSet(20, 2)

	tree := NewTree(TreeConfig{MaxDepth: 1, Seed: 42})
	if err := tree.Fit(x, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	// Depth 1 means the root splits once and both children are leaves.
	if tree.Root.Leaf {
		t.Fatal("root should split on separable data")
	}
	if !tree.Root.Left.Leaf || !tree.Root.Right.Leaf {
		t.Error("children should be leaves at MaxDepth 1")
	}
}

func TestForest_FitPredict(t *testing.T) {
	x, y := separableSet(25, 3)

	f := New(Config{NumTrees: 20, MaxDepth: 5, Seed: 42})
	if err := f.Fit(x, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if len(f.Trees) != 20 {
		t.Errorf("len(Trees) = %d, want 20", len(f.Trees))
	}
	if !reflect.DeepEqual(f.Classes, []int{0, 1}) {
		t.Errorf("Classes = %v, want [0 1]", f.Classes)
	}

	pred := f.Predict(x)
	acc, err := Accuracy(y, pred)
	if err != nil {
		t.Fatal(err)
	}
	if acc < 0.95 {
		t.Errorf("forest accuracy on separable data = %g, want >= 0.95", acc)
	}
}

func TestForest_Deterministic(t *testing.T) {
	x, y := separableSet(25, 4)
	probe, _ := separableSet(10, 5)

	fit := func() []int {
		f := New(Config{NumTrees: 15, MaxDepth: 4, Seed: 42})
		if err := f.Fit(x, y); err != nil {
			t.Fatalf("Fit() error = %v", err)
		}
		return f.Predict(probe)
	}

	if first, second := fit(), fit(); !reflect.DeepEqual(first, second) {
		t.Error("same seed produced different predictions")
	}
}

func TestForest_Defaults(t *testing.T) {
	f := New(Config{})
	if f.Config.NumTrees != 100 {
		t.Errorf("default NumTrees = %d, want 100", f.Config.NumTrees)
	}
	if f.Config.MinSamplesSplit != 2 || f.Config.MinSamplesLeaf != 1 {
		t.Errorf("defaults = split %d leaf %d, want 2/1",
			f.Config.MinSamplesSplit, f.Config.MinSamplesLeaf)
	}
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []int
		yPred   []int
		want    float64
		wantErr bool
	}{
		{name: "perfect", yTrue: []int{0, 1, 1}, yPred: []int{0, 1, 1}, want: 1.0},
		{name: "half", yTrue: []int{0, 1, 0, 1}, yPred: []int{0, 1, 1, 0}, want: 0.5},
		{name: "mismatch", yTrue: []int{0}, yPred: []int{0, 1}, wantErr: true},
		{name: "empty", yTrue: nil, yPred: nil, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Accuracy(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Accuracy() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Accuracy() = %g, want %g", got, tt.want)
			}
		})
	}
}
