// Fathom - Feature Store Pipeline for Tabular Classification
// Copyright 2026 The Fathom Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/fathom-ml/fathom

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		log    func()
		verify func(t *testing.T, out string)
	}{
		{
			name: "json format emits structured fields",
			cfg:  Config{Level: "debug", Format: "json", Timestamp: false},
			log: func() {
				Info().Str("stage", "load").Msg("table loaded")
			},
			verify: func(t *testing.T, out string) {
				if !strings.Contains(out, `"stage":"load"`) {
					t.Errorf("output missing structured field: %s", out)
				}
				if !strings.Contains(out, `"message":"table loaded"`) {
					t.Errorf("output missing message: %s", out)
				}
			},
		},
		{
			name: "level filters lower severity",
			cfg:  Config{Level: "error", Format: "json", Timestamp: false},
			log: func() {
				Info().Msg("suppressed")
				Error().Msg("emitted")
			},
			verify: func(t *testing.T, out string) {
				if strings.Contains(out, "suppressed") {
					t.Errorf("info message not suppressed at error level: %s", out)
				}
				if !strings.Contains(out, "emitted") {
					t.Errorf("error message missing: %s", out)
				}
			},
		},
		{
			name: "empty config falls back to defaults",
			cfg:  Config{},
			log: func() {
				Info().Msg("defaults")
			},
			verify: func(t *testing.T, out string) {
				if !strings.Contains(out, "defaults") {
					t.Errorf("default-config message missing: %s", out)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cfg := tt.cfg
			cfg.Output = &buf
			Init(cfg)
			defer Init(DefaultConfig())

			tt.log()
			tt.verify(t, buf.String())
		})
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":    zerolog.TraceLevel,
		"debug":    zerolog.DebugLevel,
		"info":     zerolog.InfoLevel,
		"warn":     zerolog.WarnLevel,
		"warning":  zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"fatal":    zerolog.FatalLevel,
		"disabled": zerolog.Disabled,
		"bogus":    zerolog.InfoLevel,
		"":         zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Timestamp: false, Output: &buf})
	defer Init(DefaultConfig())

	child := With().Str("component", "training").Logger()
	child.Info().Msg("run started")

	if !strings.Contains(buf.String(), `"component":"training"`) {
		t.Errorf("child logger missing default field: %s", buf.String())
	}
}
