// Fathom - Feature Store Pipeline for Tabular Classification
// Copyright 2026 The Fathom Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/fathom-ml/fathom

package training

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/fathom-ml/fathom/internal/forest"
)

// ArtifactMetadata describes a saved model artifact.
type ArtifactMetadata struct {
	// RunID uniquely identifies the training run that produced the model.
	RunID string `json:"run_id"`

	// TrainedAt is when training finished.
	TrainedAt time.Time `json:"trained_at"`

	// Params is the winning hyperparameter combination.
	Params Params `json:"params"`

	// CVAccuracy is the mean cross-validation accuracy of Params.
	CVAccuracy float64 `json:"cv_accuracy"`

	// TestAccuracy is the accuracy on the held-out entity split.
	TestAccuracy float64 `json:"test_accuracy"`

	// TrainSamples and TestSamples are the split sizes.
	TrainSamples int `json:"train_samples"`
	TestSamples  int `json:"test_samples"`

	// FeatureNames records the column order the model was fitted on.
	FeatureNames []string `json:"feature_names"`

	// Checksum is the SHA-256 of the uncompressed model bytes.
	Checksum string `json:"checksum"`

	// SizeBytes is the compressed model size.
	SizeBytes int64 `json:"size_bytes"`
}

// artifactFile is the on-disk format: metadata plus the gzip-compressed
// gob encoding of the fitted forest.
type artifactFile struct {
	Metadata       ArtifactMetadata
	CompressedData []byte
}

// NewRunID returns a fresh identifier for a training run.
func NewRunID() string {
	return uuid.NewString()
}

// SaveArtifact writes the fitted model and its metadata to path, creating
// parent directories as needed. The model bytes are checksummed before
// compression so Load can detect corruption.
func SaveArtifact(path string, model *forest.Forest, meta ArtifactMetadata) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(model); err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	raw := buf.Bytes()

	hash := sha256.Sum256(raw)
	meta.Checksum = hex.EncodeToString(hash[:])

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw); err != nil {
		return fmt.Errorf("compress model: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return fmt.Errorf("finalize compression: %w", err)
	}
	meta.SizeBytes = int64(compressed.Len())

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create artifact directory: %w", err)
	}

	f, err := os.Create(path) //nolint:gosec // path comes from validated configuration
	if err != nil {
		return fmt.Errorf("create artifact file: %w", err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // error on close after write surfaces via Encode

	af := artifactFile{Metadata: meta, CompressedData: compressed.Bytes()}
	if err := gob.NewEncoder(f).Encode(af); err != nil {
		return fmt.Errorf("write artifact file: %w", err)
	}
	return nil
}

// LoadArtifact reads a saved model from path, verifying the checksum
// before decoding.
func LoadArtifact(path string) (*forest.Forest, *ArtifactMetadata, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from validated configuration
	if err != nil {
		return nil, nil, fmt.Errorf("open artifact file: %w", err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // error on close after read is not actionable

	var af artifactFile
	if err := gob.NewDecoder(f).Decode(&af); err != nil {
		return nil, nil, fmt.Errorf("read artifact file: %w", err)
	}

	gzr, err := gzip.NewReader(bytes.NewReader(af.CompressedData))
	if err != nil {
		return nil, nil, fmt.Errorf("decompress model: %w", err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // error on gzip close after read is not actionable

	raw, err := io.ReadAll(gzr)
	if err != nil {
		return nil, nil, fmt.Errorf("read decompressed data: %w", err)
	}

	hash := sha256.Sum256(raw)
	if checksum := hex.EncodeToString(hash[:]); checksum != af.Metadata.Checksum {
		return nil, nil, fmt.Errorf("checksum mismatch: expected %s, got %s", af.Metadata.Checksum, checksum)
	}

	var model forest.Forest
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&model); err != nil {
		return nil, nil, fmt.Errorf("decode model: %w", err)
	}
	return &model, &af.Metadata, nil
}
