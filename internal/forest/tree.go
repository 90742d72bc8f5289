// Fathom - Feature Store Pipeline for Tabular Classification
// Copyright 2026 The Fathom Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/fathom-ml/fathom

// Package forest implements a CART decision tree and a bootstrap-aggregated
// random forest classifier.
//
// The implementation is deliberately deterministic: all randomness (feature
// subsampling, bootstrap draws) derives from explicit seeds, so a fixed
// seed and fixed input always reproduce the same fitted model. All state is
// held in exported fields so a fitted model gob-serializes directly.
package forest

import (
	"fmt"
	"math/rand"
	"sort"
)

// TreeConfig holds decision tree hyperparameters.
type TreeConfig struct {
	// MaxDepth limits tree depth; 0 means unlimited.
	MaxDepth int

	// MinSamplesSplit is the minimum sample count to attempt a split.
	MinSamplesSplit int

	// MinSamplesLeaf is the minimum sample count in each child.
	MinSamplesLeaf int

	// MaxFeatures is the number of features considered per split;
	// 0 means all features.
	MaxFeatures int

	// Seed drives feature subsampling.
	Seed int64
}

// withDefaults fills zero values with the conventional defaults.
func (c TreeConfig) withDefaults() TreeConfig {
	if c.MinSamplesSplit < 2 {
		c.MinSamplesSplit = 2
	}
	if c.MinSamplesLeaf < 1 {
		c.MinSamplesLeaf = 1
	}
	return c
}

// Node is one node of a fitted tree. Leaf nodes carry the predicted class
// index; internal nodes route on Feature <= Threshold.
type Node struct {
	Leaf      bool
	Feature   int
	Threshold float64
	Left      *Node
	Right     *Node

	// ClassIndex indexes into the tree's Classes for leaf prediction.
	ClassIndex int
}

// Tree is a CART classifier using gini impurity.
type Tree struct {
	Config  TreeConfig
	Classes []int
	Root    *Node
}

// NewTree returns an unfitted tree with the given configuration.
func NewTree(cfg TreeConfig) *Tree {
	return &Tree{Config: cfg.withDefaults()}
}

// Fit trains the tree on x (n rows of equal width) and labels y.
func (t *Tree) Fit(x [][]float64, y []int) error {
	if len(x) == 0 {
		return fmt.Errorf("tree: empty training set")
	}
	if len(x) != len(y) {
		return fmt.Errorf("tree: feature/label length mismatch %d != %d", len(x), len(y))
	}
	width := len(x[0])
	for i := range x {
		if len(x[i]) != width {
			return fmt.Errorf("tree: row %d has %d features, want %d", i, len(x[i]), width)
		}
	}

	// Classes in ascending label order so class indices are stable.
	seen := make(map[int]bool)
	t.Classes = t.Classes[:0]
	for _, label := range y {
		if !seen[label] {
			seen[label] = true
			t.Classes = append(t.Classes, label)
		}
	}
	sort.Ints(t.Classes)

	classIdx := make(map[int]int, len(t.Classes))
	for i, label := range t.Classes {
		classIdx[label] = i
	}
	yIdx := make([]int, len(y))
	for i, label := range y {
		yIdx[i] = classIdx[label]
	}

	idx := make([]int, len(x))
	for i := range idx {
		idx[i] = i
	}

	rng := rand.New(rand.NewSource(t.Config.Seed))
	t.Root = t.build(x, yIdx, idx, 0, width, rng)
	return nil
}

// build grows the tree recursively over the sample indices idx.
func (t *Tree) build(x [][]float64, yIdx, idx []int, depth, width int, rng *rand.Rand) *Node {
	counts := make([]int, len(t.Classes))
	for _, i := range idx {
		counts[yIdx[i]]++
	}

	leaf := &Node{Leaf: true, ClassIndex: argmax(counts)}

	if t.Config.MaxDepth > 0 && depth >= t.Config.MaxDepth {
		return leaf
	}
	if len(idx) < t.Config.MinSamplesSplit {
		return leaf
	}
	if isPure(counts) {
		return leaf
	}

	feature, threshold, ok := t.bestSplit(x, yIdx, idx, width, counts, rng)
	if !ok {
		return leaf
	}

	var left, right []int
	for _, i := range idx {
		if x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	return &Node{
		Feature:   feature,
		Threshold: threshold,
		Left:      t.build(x, yIdx, left, depth+1, width, rng),
		Right:     t.build(x, yIdx, right, depth+1, width, rng),
	}
}

// bestSplit searches the (possibly subsampled) features for the threshold
// with the lowest weighted gini impurity.
func (t *Tree) bestSplit(x [][]float64, yIdx, idx []int, width int, counts []int, rng *rand.Rand) (int, float64, bool) {
	candidates := featureCandidates(width, t.Config.MaxFeatures, rng)

	bestGini := gini(counts, len(idx))
	bestFeature, bestThreshold := -1, 0.0
	found := false

	type sample struct {
		value float64
		class int
	}
	samples := make([]sample, len(idx))

	for _, f := range candidates {
		for si, i := range idx {
			samples[si] = sample{value: x[i][f], class: yIdx[i]}
		}
		sort.Slice(samples, func(a, b int) bool { return samples[a].value < samples[b].value })

		leftCounts := make([]int, len(t.Classes))
		rightCounts := append([]int(nil), counts...)

		for si := 0; si < len(samples)-1; si++ {
			leftCounts[samples[si].class]++
			rightCounts[samples[si].class]--

			if samples[si+1].value == samples[si].value {
				continue
			}
			nLeft, nRight := si+1, len(samples)-si-1
			if nLeft < t.Config.MinSamplesLeaf || nRight < t.Config.MinSamplesLeaf {
				continue
			}

			w := float64(nLeft)/float64(len(samples))*gini(leftCounts, nLeft) +
				float64(nRight)/float64(len(samples))*gini(rightCounts, nRight)
			if w < bestGini {
				bestGini = w
				bestFeature = f
				bestThreshold = (samples[si].value + samples[si+1].value) / 2
				found = true
			}
		}
	}

	return bestFeature, bestThreshold, found
}

// featureCandidates returns the feature indices considered for a split,
// sampled without replacement when maxFeatures < width.
func featureCandidates(width, maxFeatures int, rng *rand.Rand) []int {
	if maxFeatures <= 0 || maxFeatures >= width {
		all := make([]int, width)
		for i := range all {
			all[i] = i
		}
		return all
	}
	return rng.Perm(width)[:maxFeatures]
}

// PredictOne classifies a single feature vector.
func (t *Tree) PredictOne(row []float64) int {
	n := t.Root
	for !n.Leaf {
		if row[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return t.Classes[n.ClassIndex]
}

// Predict classifies every row of x.
func (t *Tree) Predict(x [][]float64) []int {
	out := make([]int, len(x))
	for i, row := range x {
		out[i] = t.PredictOne(row)
	}
	return out
}

// gini computes gini impurity from class counts over n samples.
func gini(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range counts {
		p := float64(c) / float64(n)
		sum += p * p
	}
	return 1 - sum
}

// isPure reports whether all samples share one class.
func isPure(counts []int) bool {
	nonZero := 0
	for _, c := range counts {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero <= 1
}

// argmax returns the index of the largest count; ties resolve to the
// lowest index, which is the lowest class label.
func argmax(counts []int) int {
	best := 0
	for i, c := range counts {
		if c > counts[best] {
			best = i
		}
	}
	return best
}
