// Fathom - Feature Store Pipeline for Tabular Classification
// Copyright 2026 The Fathom Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/fathom-ml/fathom

package training

import (
	"fmt"
	"math/rand"

	"github.com/fathom-ml/fathom/internal/forest"
	"github.com/fathom-ml/fathom/internal/logging"
)

// Params is one hyperparameter combination for the forest classifier.
type Params struct {
	NumTrees        int `json:"n_estimators"`
	MaxDepth        int `json:"max_depth"`
	MinSamplesSplit int `json:"min_samples_split"`
	MinSamplesLeaf  int `json:"min_samples_leaf"`
}

// paramGrid is the search space, matching the conventional forest grid:
// 3 x 3 x 2 x 2 = 36 combinations.
var paramGrid = struct {
	numTrees        []int
	maxDepth        []int
	minSamplesSplit []int
	minSamplesLeaf  []int
}{
	numTrees:        []int{100, 200, 300},
	maxDepth:        []int{10, 20, 30},
	minSamplesSplit: []int{2, 5},
	minSamplesLeaf:  []int{1, 2},
}

// gridSize returns the total number of combinations in paramGrid.
func gridSize() int {
	return len(paramGrid.numTrees) * len(paramGrid.maxDepth) *
		len(paramGrid.minSamplesSplit) * len(paramGrid.minSamplesLeaf)
}

// paramAt maps a flat grid index to its combination. The index enumerates
// the grid in row-major order over (numTrees, maxDepth, split, leaf).
func paramAt(idx int) Params {
	nLeaf := len(paramGrid.minSamplesLeaf)
	nSplit := len(paramGrid.minSamplesSplit)
	nDepth := len(paramGrid.maxDepth)

	leaf := idx % nLeaf
	idx /= nLeaf
	split := idx % nSplit
	idx /= nSplit
	depth := idx % nDepth
	idx /= nDepth

	return Params{
		NumTrees:        paramGrid.numTrees[idx],
		MaxDepth:        paramGrid.maxDepth[depth],
		MinSamplesSplit: paramGrid.minSamplesSplit[split],
		MinSamplesLeaf:  paramGrid.minSamplesLeaf[leaf],
	}
}

// sampleParams draws n distinct combinations from the grid, seeded. When n
// meets or exceeds the grid size the whole grid is returned in shuffled
// order, so the search degrades to exhaustive rather than repeating work.
func sampleParams(n int, seed int64) []Params {
	total := gridSize()
	if n > total {
		n = total
	}

	perm := rand.New(rand.NewSource(seed)).Perm(total)
	out := make([]Params, n)
	for i := 0; i < n; i++ {
		out[i] = paramAt(perm[i])
	}
	return out
}

// SearchResult is the outcome of a randomized hyperparameter search.
type SearchResult struct {
	// Best is the winning combination.
	Best Params

	// BestScore is the winning mean cross-validation accuracy.
	BestScore float64

	// Evaluated is how many combinations were scored.
	Evaluated int
}

// Search samples iterations combinations from the grid and scores each with
// folds-fold cross-validation on (x, y), returning the combination with the
// highest mean accuracy. Ties keep the earlier-sampled combination, so a
// fixed seed always yields the same winner.
func Search(x [][]float64, y []int, iterations, folds int, seed int64) (SearchResult, error) {
	if iterations < 1 {
		return SearchResult{}, fmt.Errorf("search: iterations must be >= 1, got %d", iterations)
	}
	if folds < 2 {
		return SearchResult{}, fmt.Errorf("search: folds must be >= 2, got %d", folds)
	}
	if len(x) < folds {
		return SearchResult{}, fmt.Errorf("search: %d samples cannot fill %d folds", len(x), folds)
	}

	candidates := sampleParams(iterations, seed)

	res := SearchResult{BestScore: -1, Evaluated: len(candidates)}
	for i, p := range candidates {
		score, err := crossValidate(x, y, p, folds, seed)
		if err != nil {
			return SearchResult{}, fmt.Errorf("candidate %d (%+v): %w", i, p, err)
		}

		logging.Debug().
			Int("candidate", i).
			Int("n_estimators", p.NumTrees).
			Int("max_depth", p.MaxDepth).
			Int("min_samples_split", p.MinSamplesSplit).
			Int("min_samples_leaf", p.MinSamplesLeaf).
			Float64("cv_accuracy", score).
			Msg("Scored hyperparameter candidate")

		if score > res.BestScore {
			res.Best = p
			res.BestScore = score
		}
	}
	return res, nil
}

// crossValidate scores one combination by k-fold cross-validation and
// returns the mean held-out accuracy across folds.
func crossValidate(x [][]float64, y []int, p Params, folds int, seed int64) (float64, error) {
	assignments := foldAssignments(len(x), folds, seed)

	sum := 0.0
	for fold := 0; fold < folds; fold++ {
		var trainX, valX [][]float64
		var trainY, valY []int
		for i := range x {
			if assignments[i] == fold {
				valX = append(valX, x[i])
				valY = append(valY, y[i])
			} else {
				trainX = append(trainX, x[i])
				trainY = append(trainY, y[i])
			}
		}

		f := forest.New(forest.Config{
			NumTrees:        p.NumTrees,
			MaxDepth:        p.MaxDepth,
			MinSamplesSplit: p.MinSamplesSplit,
			MinSamplesLeaf:  p.MinSamplesLeaf,
			Seed:            seed,
		})
		if err := f.Fit(trainX, trainY); err != nil {
			return 0, fmt.Errorf("fold %d: %w", fold, err)
		}

		acc, err := forest.Accuracy(valY, f.Predict(valX))
		if err != nil {
			return 0, fmt.Errorf("fold %d: %w", fold, err)
		}
		sum += acc
	}
	return sum / float64(folds), nil
}

// foldAssignments shuffles sample indices with seed and deals them into
// folds round-robin, so every fold size differs by at most one.
func foldAssignments(n, folds int, seed int64) []int {
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	out := make([]int, n)
	for pos, i := range perm {
		out[i] = pos % folds
	}
	return out
}
