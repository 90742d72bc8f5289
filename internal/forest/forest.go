// Fathom - Feature Store Pipeline for Tabular Classification
// Copyright 2026 The Fathom Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/fathom-ml/fathom

package forest

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
)

// Config holds random forest hyperparameters.
type Config struct {
	// NumTrees is the forest size.
	NumTrees int

	// MaxDepth limits each tree's depth; 0 means unlimited.
	MaxDepth int

	// MinSamplesSplit is the minimum sample count to attempt a split.
	MinSamplesSplit int

	// MinSamplesLeaf is the minimum sample count in each child.
	MinSamplesLeaf int

	// MaxFeatures is the feature count considered per split;
	// 0 means sqrt of the feature width.
	MaxFeatures int

	// Seed drives bootstrap sampling; tree i derives Seed+i.
	Seed int64
}

// withDefaults fills zero values with the conventional defaults.
func (c Config) withDefaults() Config {
	if c.NumTrees <= 0 {
		c.NumTrees = 100
	}
	if c.MinSamplesSplit < 2 {
		c.MinSamplesSplit = 2
	}
	if c.MinSamplesLeaf < 1 {
		c.MinSamplesLeaf = 1
	}
	return c
}

// Forest is a bootstrap-aggregated ensemble of CART trees.
type Forest struct {
	Config  Config
	Classes []int
	Trees   []*Tree
}

// New returns an unfitted forest with the given configuration.
func New(cfg Config) *Forest {
	return &Forest{Config: cfg.withDefaults()}
}

// Fit trains the forest. Each tree draws its own bootstrap sample and seed
// derived from the forest seed, so training is deterministic regardless of
// goroutine scheduling.
func (f *Forest) Fit(x [][]float64, y []int) error {
	if len(x) == 0 {
		return fmt.Errorf("forest: empty training set")
	}
	if len(x) != len(y) {
		return fmt.Errorf("forest: feature/label length mismatch %d != %d", len(x), len(y))
	}

	maxFeatures := f.Config.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = int(math.Sqrt(float64(len(x[0]))))
		if maxFeatures < 1 {
			maxFeatures = 1
		}
	}

	n := len(x)
	f.Trees = make([]*Tree, f.Config.NumTrees)

	var wg sync.WaitGroup
	errCh := make(chan error, f.Config.NumTrees)

	for i := 0; i < f.Config.NumTrees; i++ {
		wg.Add(1)
		go func(treeIdx int) {
			defer wg.Done()

			treeSeed := f.Config.Seed + int64(treeIdx)
			rng := rand.New(rand.NewSource(treeSeed))

			// Bootstrap sample with replacement.
			bx := make([][]float64, n)
			by := make([]int, n)
			for j := 0; j < n; j++ {
				k := rng.Intn(n)
				bx[j] = x[k]
				by[j] = y[k]
			}

			tree := NewTree(TreeConfig{
				MaxDepth:        f.Config.MaxDepth,
				MinSamplesSplit: f.Config.MinSamplesSplit,
				MinSamplesLeaf:  f.Config.MinSamplesLeaf,
				MaxFeatures:     maxFeatures,
				Seed:            treeSeed,
			})
			if err := tree.Fit(bx, by); err != nil {
				errCh <- fmt.Errorf("tree %d: %w", treeIdx, err)
				return
			}
			f.Trees[treeIdx] = tree
		}(i)
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		return err
	}

	// Union of per-tree classes, ascending. A bootstrap draw can miss a
	// rare class in one tree, so collect across the ensemble.
	seen := make(map[int]bool)
	f.Classes = f.Classes[:0]
	for _, tree := range f.Trees {
		for _, label := range tree.Classes {
			if !seen[label] {
				seen[label] = true
				f.Classes = append(f.Classes, label)
			}
		}
	}
	sort.Ints(f.Classes)
	return nil
}

// Predict classifies every row by majority vote across trees. Vote ties
// resolve to the lowest class label.
func (f *Forest) Predict(x [][]float64) []int {
	out := make([]int, len(x))
	for i, row := range x {
		votes := make(map[int]int, len(f.Classes))
		for _, tree := range f.Trees {
			votes[tree.PredictOne(row)]++
		}

		best, bestVotes := 0, -1
		for _, label := range f.Classes {
			if v := votes[label]; v > bestVotes {
				best, bestVotes = label, v
			}
		}
		out[i] = best
	}
	return out
}
