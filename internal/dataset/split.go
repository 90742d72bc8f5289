// Fathom - Feature Store Pipeline for Tabular Classification
// Copyright 2026 The Fathom Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/fathom-ml/fathom

package dataset

import (
	"math"
	"math/rand"
)

// SplitRows partitions rows into train and test sets. The test set holds
// ceil(n*testSize) rows. The shuffle is driven entirely by seed, so the
// partition is reproducible for identical input order.
func SplitRows(rows []Passenger, testSize float64, seed int64) (train, test []Passenger) {
	n := len(rows)
	if n == 0 {
		return nil, nil
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	nTest := testCount(n, testSize)

	test = make([]Passenger, 0, nTest)
	train = make([]Passenger, 0, n-nTest)
	for i, j := range perm {
		if i < nTest {
			test = append(test, rows[j])
		} else {
			train = append(train, rows[j])
		}
	}
	return train, test
}

// SplitIDs partitions entity ids into train and test sets with the same
// rule as SplitRows.
func SplitIDs(ids []int, testSize float64, seed int64) (train, test []int) {
	n := len(ids)
	if n == 0 {
		return nil, nil
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)
	nTest := testCount(n, testSize)

	test = make([]int, 0, nTest)
	train = make([]int, 0, n-nTest)
	for i, j := range perm {
		if i < nTest {
			test = append(test, ids[j])
		} else {
			train = append(train, ids[j])
		}
	}
	return train, test
}

// testCount returns the held-out size, at least 1 and at most n-1 so both
// partitions are non-empty whenever n >= 2.
func testCount(n int, testSize float64) int {
	nTest := int(math.Ceil(float64(n) * testSize))
	if nTest < 1 {
		nTest = 1
	}
	if nTest >= n && n > 1 {
		nTest = n - 1
	}
	return nTest
}
