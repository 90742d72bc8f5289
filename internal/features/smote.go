// Fathom - Feature Store Pipeline for Tabular Classification
// Copyright 2026 The Fathom Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/fathom-ml/fathom

package features

import (
	"fmt"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// SMOTE balances classes by synthesizing minority-class samples.
//
// For every class with fewer samples than the majority class, synthetic
// rows are generated by interpolating between a random class member and one
// of its k nearest in-class neighbors (Euclidean distance). The originals
// are returned first, followed by the synthetic rows, so the resample is
// reproducible for a fixed seed and input order.
func SMOTE(x [][]float64, y []int, k int, seed int64) ([][]float64, []int, error) {
	if len(x) == 0 {
		return nil, nil, fmt.Errorf("smote: empty input")
	}
	if len(x) != len(y) {
		return nil, nil, fmt.Errorf("smote: feature/label length mismatch %d != %d", len(x), len(y))
	}
	if k < 1 {
		return nil, nil, fmt.Errorf("smote: k must be >= 1, got %d", k)
	}

	byClass := make(map[int][]int)
	for i, label := range y {
		byClass[label] = append(byClass[label], i)
	}

	majority := 0
	for _, idx := range byClass {
		if len(idx) > majority {
			majority = len(idx)
		}
	}

	// Deterministic class iteration order.
	classes := make([]int, 0, len(byClass))
	for label := range byClass {
		classes = append(classes, label)
	}
	sort.Ints(classes)

	outX := append([][]float64{}, x...)
	outY := append([]int{}, y...)
	rng := rand.New(rand.NewSource(seed))

	for _, label := range classes {
		idx := byClass[label]
		need := majority - len(idx)
		if need == 0 {
			continue
		}
		if len(idx) < 2 {
			return nil, nil, fmt.Errorf("smote: class %d has %d sample(s), need at least 2", label, len(idx))
		}

		kEff := k
		if kEff > len(idx)-1 {
			kEff = len(idx) - 1
		}
		neighbors := classNeighbors(x, idx, kEff)

		for s := 0; s < need; s++ {
			i := rng.Intn(len(idx))
			nb := neighbors[i][rng.Intn(kEff)]
			gap := rng.Float64()

			base := x[idx[i]]
			other := x[nb]
			synth := make([]float64, len(base))
			for d := range base {
				synth[d] = base[d] + gap*(other[d]-base[d])
			}
			outX = append(outX, synth)
			outY = append(outY, label)
		}
	}

	return outX, outY, nil
}

// classNeighbors returns, for each member of idx, the global indices of its
// k nearest neighbors within the same class.
func classNeighbors(x [][]float64, idx []int, k int) [][]int {
	neighbors := make([][]int, len(idx))
	for i, gi := range idx {
		type cand struct {
			index int
			dist  float64
		}
		cands := make([]cand, 0, len(idx)-1)
		for j, gj := range idx {
			if i == j {
				continue
			}
			cands = append(cands, cand{index: gj, dist: floats.Distance(x[gi], x[gj], 2)})
		}
		sort.Slice(cands, func(a, b int) bool {
			if cands[a].dist != cands[b].dist {
				return cands[a].dist < cands[b].dist
			}
			return cands[a].index < cands[b].index
		})

		nn := make([]int, k)
		for n := 0; n < k; n++ {
			nn[n] = cands[n].index
		}
		neighbors[i] = nn
	}
	return neighbors
}
