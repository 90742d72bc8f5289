// Fathom - Feature Store Pipeline for Tabular Classification
// Copyright 2026 The Fathom Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/fathom-ml/fathom

package ingest

import (
	"path/filepath"
	"testing"

	"github.com/fathom-ml/fathom/internal/dataset"
	"github.com/fathom-ml/fathom/internal/fathomerr"
)

func TestSave(t *testing.T) {
	dir := t.TempDir()
	in := &Ingestor{
		trainPath: filepath.Join(dir, "train.csv"),
		testPath:  filepath.Join(dir, "test.csv"),
		testSize:  0.2,
		seed:      42,
	}

	rows := make([]dataset.Passenger, 10)
	for i := range rows {
		rows[i] = dataset.Passenger{
			PassengerID: i + 1, Pclass: 3, Name: "Test, Mr. Row",
			Sex: "male", Embarked: "S",
		}
	}

	if err := in.Save(rows); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	train, err := dataset.ReadCSV(in.trainPath)
	if err != nil {
		t.Fatalf("ReadCSV(train) error = %v", err)
	}
	test, err := dataset.ReadCSV(in.testPath)
	if err != nil {
		t.Fatalf("ReadCSV(test) error = %v", err)
	}
	if len(train)+len(test) != len(rows) {
		t.Errorf("split sizes %d+%d != %d", len(train), len(test), len(rows))
	}
	if len(test) != 2 {
		t.Errorf("len(test) = %d, want 2", len(test))
	}

	seen := make(map[int]bool)
	for _, p := range append(append([]dataset.Passenger{}, train...), test...) {
		if seen[p.PassengerID] {
			t.Errorf("PassengerID %d appears in both splits", p.PassengerID)
		}
		seen[p.PassengerID] = true
	}
}

func TestSave_EmptyInput(t *testing.T) {
	in := &Ingestor{trainPath: "unused", testPath: "unused", testSize: 0.2, seed: 42}
	err := in.Save(nil)
	if err == nil {
		t.Fatal("Save(nil) should fail")
	}
	if !fathomerr.IsKind(err, fathomerr.KindDataFormat) {
		t.Errorf("error kind = %v, want KindDataFormat", fathomerr.KindOf(err))
	}
}

func TestSave_Deterministic(t *testing.T) {
	rows := make([]dataset.Passenger, 20)
	for i := range rows {
		rows[i] = dataset.Passenger{PassengerID: i + 1, Name: "Test, Mr. Row", Sex: "male"}
	}

	read := func(dir string) ([]dataset.Passenger, []dataset.Passenger) {
		in := &Ingestor{
			trainPath: filepath.Join(dir, "train.csv"),
			testPath:  filepath.Join(dir, "test.csv"),
			testSize:  0.2,
			seed:      42,
		}
		if err := in.Save(rows); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		train, err := dataset.ReadCSV(in.trainPath)
		if err != nil {
			t.Fatal(err)
		}
		test, err := dataset.ReadCSV(in.testPath)
		if err != nil {
			t.Fatal(err)
		}
		return train, test
	}

	train1, test1 := read(t.TempDir())
	train2, test2 := read(t.TempDir())

	for i := range train1 {
		if train1[i].PassengerID != train2[i].PassengerID {
			t.Fatal("same seed produced different train splits")
		}
	}
	for i := range test1 {
		if test1[i].PassengerID != test2[i].PassengerID {
			t.Fatal("same seed produced different test splits")
		}
	}
}
