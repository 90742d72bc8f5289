// Fathom - Feature Store Pipeline for Tabular Classification
// Copyright 2026 The Fathom Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/fathom-ml/fathom

package features

import (
	"fmt"
	"regexp"

	"github.com/fathom-ml/fathom/internal/dataset"
)

// Sex codes.
const (
	sexMale   = 0
	sexFemale = 1
)

// embarkedCodes maps embarkation ports to category codes, alphabetical
// order, matching categorical codes over the full port set.
var embarkedCodes = map[string]float64{
	"C": 0,
	"Q": 1,
	"S": 2,
}

// titleCodes maps extracted name titles to codes. Anything else is Rare.
var titleCodes = map[string]float64{
	"Mr":     0,
	"Miss":   1,
	"Mrs":    2,
	"Master": 3,
	"Rare":   4,
}

// titleRare is the fallback code for unmatched or unrecognized titles.
const titleRare = 4

// titlePattern captures the leading-capital title token before a period,
// e.g. "Braund, Mr. Owen Harris" -> "Mr".
var titlePattern = regexp.MustCompile(` ([A-Za-z]+)\.`)

// Preprocessor holds the column statistics needed to impute missing values.
// Statistics are computed once over the full training table (Fit) and then
// applied row-wise (Transform), so imputation never depends on row order.
type Preprocessor struct {
	AgeMedian    float64
	FareMedian   float64
	EmbarkedMode string
}

// Fit computes imputation statistics from the training rows.
func Fit(rows []dataset.Passenger) (*Preprocessor, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty training table")
	}

	var ages, fares []float64
	embarked := make([]string, 0, len(rows))
	for _, p := range rows {
		if p.Age != nil {
			ages = append(ages, *p.Age)
		}
		if p.Fare != nil {
			fares = append(fares, *p.Fare)
		}
		embarked = append(embarked, p.Embarked)
	}

	pre := &Preprocessor{
		AgeMedian:    dataset.Median(ages),
		FareMedian:   dataset.Median(fares),
		EmbarkedMode: dataset.ModeString(embarked),
	}
	if pre.EmbarkedMode == "" {
		return nil, fmt.Errorf("Embarked column has no observed values")
	}
	return pre, nil
}

// Transform derives the full feature record for one passenger row.
func (pre *Preprocessor) Transform(p dataset.Passenger) (Record, error) {
	var r Record

	r.Age = pre.AgeMedian
	if p.Age != nil {
		r.Age = *p.Age
	}
	r.Fare = pre.FareMedian
	if p.Fare != nil {
		r.Fare = *p.Fare
	}

	r.Pclass = float64(p.Pclass)

	switch p.Sex {
	case "male":
		r.Sex = sexMale
	case "female":
		r.Sex = sexFemale
	default:
		return Record{}, fmt.Errorf("passenger %d: unknown Sex %q", p.PassengerID, p.Sex)
	}

	port := p.Embarked
	if port == "" {
		port = pre.EmbarkedMode
	}
	code, ok := embarkedCodes[port]
	if !ok {
		return Record{}, fmt.Errorf("passenger %d: unknown Embarked %q", p.PassengerID, port)
	}
	r.Embarked = code

	r.Familysize = float64(p.SibSp + p.Parch + 1)
	if r.Familysize == 1 {
		r.Isalone = 1
	}
	if p.Cabin != "" {
		r.HasCabin = 1
	}
	r.Title = TitleCode(p.Name)
	r.PclassFare = r.Pclass * r.Fare
	r.AgeFare = r.Age * r.Fare
	r.Survived = float64(p.Survived)

	return r, nil
}

// TransformAll derives records for every row, preserving input order.
// Returned ids are aligned with the returned records.
func (pre *Preprocessor) TransformAll(rows []dataset.Passenger) (ids []int, recs []Record, err error) {
	ids = make([]int, 0, len(rows))
	recs = make([]Record, 0, len(rows))
	for _, p := range rows {
		r, err := pre.Transform(p)
		if err != nil {
			return nil, nil, err
		}
		ids = append(ids, p.PassengerID)
		recs = append(recs, r)
	}
	return ids, recs, nil
}

// TitleCode extracts the title token from a passenger name and maps it to
// its code. Unmatched names and unrecognized titles map to Rare.
func TitleCode(name string) float64 {
	m := titlePattern.FindStringSubmatch(name)
	if m == nil {
		return titleRare
	}
	if code, ok := titleCodes[m[1]]; ok {
		return code
	}
	return titleRare
}
