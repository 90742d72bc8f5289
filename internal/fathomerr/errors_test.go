// Fathom - Feature Store Pipeline for Tabular Classification
// Copyright 2026 The Fathom Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/fathom-ml/fathom

package fathomerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		kind    Kind
		stage   string
		err     error
		wantNil bool
		verify  func(t *testing.T, err error)
	}{
		{
			name:    "nil cause returns nil",
			kind:    KindConnection,
			stage:   "ingest/connect",
			err:     nil,
			wantNil: true,
		},
		{
			name:  "wraps cause with stage and kind",
			kind:  KindDataFormat,
			stage: "processing/load",
			err:   errors.New("missing column Survived"),
			verify: func(t *testing.T, err error) {
				want := "processing/load: data_format: missing column Survived"
				if err.Error() != want {
					t.Errorf("Error() = %q, want %q", err.Error(), want)
				}
			},
		},
		{
			name: "stageless error omits prefix",
			kind: KindNotFound,
			err:  errors.New("no record"),
			verify: func(t *testing.T, err error) {
				want := "not_found: no record"
				if err.Error() != want {
					t.Errorf("Error() = %q, want %q", err.Error(), want)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.kind, tt.stage, tt.err)
			if tt.wantNil {
				if err != nil {
					t.Fatalf("New() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("New() returned nil")
			}
			if got := KindOf(err); got != tt.kind {
				t.Errorf("KindOf() = %v, want %v", got, tt.kind)
			}
			if tt.verify != nil {
				tt.verify(t, err)
			}
		})
	}
}

func TestKindOf_Unwrapping(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := fmt.Errorf("store round trip: %w", New(KindConnection, "featurestore", cause))

	if got := KindOf(wrapped); got != KindConnection {
		t.Errorf("KindOf(wrapped) = %v, want KindConnection", got)
	}
	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is should find the original cause through the wrapper")
	}
	if !IsKind(wrapped, KindConnection) {
		t.Error("IsKind(wrapped, KindConnection) = false, want true")
	}
	if IsKind(errors.New("plain"), KindConnection) {
		t.Error("IsKind(plain, KindConnection) = true, want false")
	}
}

func TestKind_String(t *testing.T) {
	cases := map[Kind]string{
		KindUnknown:    "unknown",
		KindConnection: "connection",
		KindDataFormat: "data_format",
		KindNotFound:   "not_found",
		Kind(99):       "unknown",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
