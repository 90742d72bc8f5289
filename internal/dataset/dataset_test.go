// Fathom - Feature Store Pipeline for Tabular Classification
// Copyright 2026 The Fathom Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/fathom-ml/fathom

package dataset

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		wantErr bool
		verify  func(t *testing.T, rows []Passenger)
	}{
		{
			name: "parses complete and partial rows",
			csv: "PassengerId,Survived,Pclass,Name,Sex,Age,SibSp,Parch,Ticket,Fare,Cabin,Embarked\n" +
				"1,0,3,\"Braund, Mr. Owen Harris\",male,22,1,0,A/5 21171,7.25,,S\n" +
				"6,0,3,\"Moran, Mr. James\",male,,0,0,330877,8.4583,,Q\n",
			verify: func(t *testing.T, rows []Passenger) {
				if len(rows) != 2 {
					t.Fatalf("len(rows) = %d, want 2", len(rows))
				}
				p := rows[0]
				if p.PassengerID != 1 || p.Survived != 0 || p.Pclass != 3 {
					t.Errorf("row 1 = %+v", p)
				}
				if p.Age == nil || *p.Age != 22 {
					t.Errorf("Age = %v, want 22", p.Age)
				}
				if p.Name != "Braund, Mr. Owen Harris" {
					t.Errorf("Name = %q", p.Name)
				}
				if rows[1].Age != nil {
					t.Errorf("missing Age parsed as %v, want nil", *rows[1].Age)
				}
				if rows[1].Embarked != "Q" {
					t.Errorf("Embarked = %q, want Q", rows[1].Embarked)
				}
			},
		},
		{
			name:    "missing required column fails",
			csv:     "PassengerId,Pclass\n1,3\n",
			wantErr: true,
		},
		{
			name: "malformed numeric fails with line context",
			csv: "PassengerId,Survived\n" +
				"1,0\n" +
				"two,0\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := readRows(strings.NewReader(tt.csv))
			if (err != nil) != tt.wantErr {
				t.Fatalf("readRows() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.verify != nil {
				tt.verify(t, rows)
			}
		})
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	rows := []Passenger{
		{
			PassengerID: 1, Survived: 0, Pclass: 3,
			Name: "Braund, Mr. Owen Harris", Sex: "male",
			Age: Float(22), SibSp: 1, Parch: 0,
			Ticket: "A/5 21171", Fare: Float(7.25), Embarked: "S",
		},
		{
			PassengerID: 6, Survived: 0, Pclass: 3,
			Name: "Moran, Mr. James", Sex: "male",
			SibSp: 0, Parch: 0, Ticket: "330877",
			Fare: Float(8.4583), Embarked: "Q",
		},
	}

	path := filepath.Join(t.TempDir(), "sub", "train.csv")
	if err := WriteCSV(path, rows); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	got, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if !reflect.DeepEqual(got, rows) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, rows)
	}
}

func TestSplitRows(t *testing.T) {
	rows := make([]Passenger, 10)
	for i := range rows {
		rows[i] = Passenger{PassengerID: i + 1}
	}

	train, test := SplitRows(rows, 0.2, 42)
	if len(train)+len(test) != len(rows) {
		t.Fatalf("partition sizes %d+%d != %d", len(train), len(test), len(rows))
	}
	if len(test) != 2 {
		t.Errorf("len(test) = %d, want 2", len(test))
	}

	seen := make(map[int]bool)
	for _, p := range append(append([]Passenger{}, train...), test...) {
		if seen[p.PassengerID] {
			t.Errorf("duplicate PassengerID %d across partitions", p.PassengerID)
		}
		seen[p.PassengerID] = true
	}

	// Same seed reproduces the partition.
	train2, test2 := SplitRows(rows, 0.2, 42)
	if !reflect.DeepEqual(train, train2) || !reflect.DeepEqual(test, test2) {
		t.Error("same seed produced a different partition")
	}
}

func TestSplitIDs(t *testing.T) {
	ids := []int{1, 2, 3, 4, 5}

	train, test := SplitIDs(ids, 0.2, 42)
	if len(train) != 4 || len(test) != 1 {
		t.Errorf("split sizes = %d/%d, want 4/1", len(train), len(test))
	}

	train2, test2 := SplitIDs(ids, 0.2, 42)
	if !reflect.DeepEqual(train, train2) || !reflect.DeepEqual(test, test2) {
		t.Error("same seed produced a different id partition")
	}

	if gotTrain, gotTest := SplitIDs(nil, 0.2, 42); gotTrain != nil || gotTest != nil {
		t.Error("empty input should yield empty partitions")
	}
}

func TestTestCount(t *testing.T) {
	cases := []struct {
		n        int
		testSize float64
		want     int
	}{
		{10, 0.2, 2},
		{5, 0.2, 1},
		{891, 0.2, 179}, // ceil(178.2)
		{2, 0.01, 1},
		{2, 0.99, 1}, // clamped so train is non-empty
	}
	for _, c := range cases {
		if got := testCount(c.n, c.testSize); got != c.want {
			t.Errorf("testCount(%d, %g) = %d, want %d", c.n, c.testSize, got, c.want)
		}
	}
}

func TestMedian(t *testing.T) {
	cases := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"odd count", []float64{3, 1, 2}, 2},
		{"even count interpolates", []float64{1, 2, 3, 4}, 2.5},
		{"single value", []float64{7.25}, 7.25},
		{"empty", nil, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Median(c.values); got != c.want {
				t.Errorf("Median(%v) = %g, want %g", c.values, got, c.want)
			}
		})
	}
}

func TestModeString(t *testing.T) {
	cases := []struct {
		name   string
		values []string
		want   string
	}{
		{"clear winner", []string{"S", "S", "C", "Q"}, "S"},
		{"tie breaks to lowest code", []string{"S", "C", "Q"}, "C"},
		{"empties ignored", []string{"", "", "Q"}, "Q"},
		{"all empty", []string{"", ""}, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ModeString(c.values); got != c.want {
				t.Errorf("ModeString(%v) = %q, want %q", c.values, got, c.want)
			}
		})
	}
}
