// Fathom - Feature Store Pipeline for Tabular Classification
// Copyright 2026 The Fathom Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/fathom-ml/fathom

// Package dataset provides the in-memory tabular representation of raw
// passenger rows, CSV serialization, deterministic train/test splitting,
// and the column statistics used for imputation.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// Passenger is one raw row of the source table. Age, Fare, Cabin and
// Embarked can be missing in the source data; missing numerics are nil
// pointers and missing strings are empty.
type Passenger struct {
	PassengerID int
	Survived    int
	Pclass      int
	Name        string
	Sex         string
	Age         *float64
	SibSp       int
	Parch       int
	Ticket      string
	Fare        *float64
	Cabin       string
	Embarked    string
}

// columns is the canonical CSV header, matching the source table layout.
var columns = []string{
	"PassengerId", "Survived", "Pclass", "Name", "Sex", "Age",
	"SibSp", "Parch", "Ticket", "Fare", "Cabin", "Embarked",
}

// requiredColumns must be present in any input file.
var requiredColumns = []string{"PassengerId", "Survived"}

// ReadCSV reads passenger rows from a headered CSV file.
func ReadCSV(path string) ([]Passenger, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from validated config
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := readRows(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

func readRows(r io.Reader) ([]Passenger, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("missing required column %s", name)
		}
	}

	var rows []Passenger
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		p, err := parseRow(rec, idx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, p)
	}
	return rows, nil
}

func parseRow(rec []string, idx map[string]int) (Passenger, error) {
	field := func(name string) string {
		i, ok := idx[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var p Passenger
	var err error

	if p.PassengerID, err = strconv.Atoi(field("PassengerId")); err != nil {
		return p, fmt.Errorf("PassengerId %q: %w", field("PassengerId"), err)
	}
	if p.Survived, err = strconv.Atoi(field("Survived")); err != nil {
		return p, fmt.Errorf("Survived %q: %w", field("Survived"), err)
	}
	if v := field("Pclass"); v != "" {
		if p.Pclass, err = strconv.Atoi(v); err != nil {
			return p, fmt.Errorf("Pclass %q: %w", v, err)
		}
	}
	if v := field("SibSp"); v != "" {
		if p.SibSp, err = strconv.Atoi(v); err != nil {
			return p, fmt.Errorf("SibSp %q: %w", v, err)
		}
	}
	if v := field("Parch"); v != "" {
		if p.Parch, err = strconv.Atoi(v); err != nil {
			return p, fmt.Errorf("Parch %q: %w", v, err)
		}
	}
	if p.Age, err = parseOptionalFloat(field("Age")); err != nil {
		return p, fmt.Errorf("Age %q: %w", field("Age"), err)
	}
	if p.Fare, err = parseOptionalFloat(field("Fare")); err != nil {
		return p, fmt.Errorf("Fare %q: %w", field("Fare"), err)
	}

	p.Name = field("Name")
	p.Sex = field("Sex")
	p.Ticket = field("Ticket")
	p.Cabin = field("Cabin")
	p.Embarked = field("Embarked")
	return p, nil
}

func parseOptionalFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// WriteCSV writes passenger rows to a headered CSV file, creating parent
// directories as needed.
func WriteCSV(path string, rows []Passenger) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	f, err := os.Create(path) //nolint:gosec // path comes from validated config
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range rows {
		rec := []string{
			strconv.Itoa(p.PassengerID),
			strconv.Itoa(p.Survived),
			strconv.Itoa(p.Pclass),
			p.Name,
			p.Sex,
			formatOptionalFloat(p.Age),
			strconv.Itoa(p.SibSp),
			strconv.Itoa(p.Parch),
			p.Ticket,
			formatOptionalFloat(p.Fare),
			p.Cabin,
			p.Embarked,
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", p.PassengerID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

func formatOptionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

// Float returns a pointer to v. Convenience for building test fixtures.
func Float(v float64) *float64 {
	return &v
}
