// Fathom - Feature Store Pipeline for Tabular Classification
// Copyright 2026 The Fathom Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/fathom-ml/fathom

// Package features defines the fixed feature schema and the transforms that
// produce it from raw passenger rows.
//
// The schema is deliberately a struct rather than a map: every record
// written to the feature store carries exactly the eleven engineered
// features plus the label, and the compiler enforces it. Categorical
// encodings live only here; raw tables keep their string columns, so
// re-running preprocessing always starts from raw values and never
// double-applies a mapping.
package features

// Record is one entity's feature vector plus label, as persisted in the
// feature store. Field order in Vector follows FeatureNames.
type Record struct {
	Age        float64 `json:"Age"`
	Fare       float64 `json:"Fare"`
	Pclass     float64 `json:"Pclass"`
	Sex        float64 `json:"Sex"`
	Embarked   float64 `json:"Embarked"`
	Familysize float64 `json:"Familysize"`
	Isalone    float64 `json:"Isalone"`
	HasCabin   float64 `json:"HasCabin"`
	Title      float64 `json:"Title"`
	PclassFare float64 `json:"Pclass_Fare"`
	AgeFare    float64 `json:"Age_Fare"`
	Survived   float64 `json:"Survived"`
}

// FeatureNames is the canonical feature column order used for model
// matrices. Survived is the label and is not part of the vector.
var FeatureNames = []string{
	"Pclass", "Sex", "Age", "Fare", "Embarked", "Familysize",
	"Isalone", "HasCabin", "Title", "Pclass_Fare", "Age_Fare",
}

// Vector returns the feature values in FeatureNames order.
func (r Record) Vector() []float64 {
	return []float64{
		r.Pclass, r.Sex, r.Age, r.Fare, r.Embarked, r.Familysize,
		r.Isalone, r.HasCabin, r.Title, r.PclassFare, r.AgeFare,
	}
}

// Label returns the Survived label as an integer class.
func (r Record) Label() int {
	return int(r.Survived)
}

// Matrix converts records into a feature matrix and label slice in input
// order.
func Matrix(recs []Record) (x [][]float64, y []int) {
	x = make([][]float64, len(recs))
	y = make([]int, len(recs))
	for i, r := range recs {
		x[i] = r.Vector()
		y[i] = r.Label()
	}
	return x, y
}
