// Fathom - Feature Store Pipeline for Tabular Classification
// Copyright 2026 The Fathom Authors
// SPDX-License-Identifier: Apache-2.0
// https://github.com/fathom-ml/fathom

// Package ingest pulls raw passenger rows from the relational source and
// writes the train/test CSV splits consumed by the processing stage.
package ingest

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // postgres driver

	"github.com/fathom-ml/fathom/internal/config"
	"github.com/fathom-ml/fathom/internal/dataset"
	"github.com/fathom-ml/fathom/internal/fathomerr"
	"github.com/fathom-ml/fathom/internal/logging"
)

// Ingestor extracts the source table and saves the raw train/test splits.
type Ingestor struct {
	db *sql.DB

	table     string
	trainPath string
	testPath  string
	testSize  float64
	seed      int64
}

// New connects to the configured PostgreSQL database and verifies the
// connection.
func New(ctx context.Context, cfg *config.Config) (*Ingestor, error) {
	db, err := sql.Open("postgres", cfg.Database.ConnString())
	if err != nil {
		return nil, fathomerr.New(fathomerr.KindConnection, "ingest/connect",
			fmt.Errorf("open database: %w", err))
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fathomerr.New(fathomerr.KindConnection, "ingest/connect",
			fmt.Errorf("ping %s:%d: %w", cfg.Database.Host, cfg.Database.Port, err))
	}
	logging.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.Name).
		Msg("Database connection established")

	return &Ingestor{
		db:        db,
		table:     cfg.Database.Table,
		trainPath: cfg.Data.TrainCSV(),
		testPath:  cfg.Data.TestCSV(),
		testSize:  cfg.Processing.TestSize,
		seed:      cfg.Processing.Seed,
	}, nil
}

// Extract reads every row of the source table into memory.
func (in *Ingestor) Extract(ctx context.Context) ([]dataset.Passenger, error) {
	query := fmt.Sprintf(
		"SELECT passengerid, survived, pclass, name, sex, age, sibsp, parch, ticket, fare, cabin, embarked FROM %s",
		in.table)

	rows, err := in.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fathomerr.New(fathomerr.KindConnection, "ingest/extract",
			fmt.Errorf("query %s: %w", in.table, err))
	}
	defer func() { _ = rows.Close() }()

	var out []dataset.Passenger
	for rows.Next() {
		var (
			p                      dataset.Passenger
			age, fare              sql.NullFloat64
			ticket, cabin, embarked sql.NullString
		)
		err := rows.Scan(&p.PassengerID, &p.Survived, &p.Pclass, &p.Name, &p.Sex,
			&age, &p.SibSp, &p.Parch, &ticket, &fare, &cabin, &embarked)
		if err != nil {
			return nil, fathomerr.New(fathomerr.KindDataFormat, "ingest/extract",
				fmt.Errorf("scan row: %w", err))
		}
		if age.Valid {
			p.Age = dataset.Float(age.Float64)
		}
		if fare.Valid {
			p.Fare = dataset.Float(fare.Float64)
		}
		p.Ticket = ticket.String
		p.Cabin = cabin.String
		p.Embarked = embarked.String
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fathomerr.New(fathomerr.KindConnection, "ingest/extract",
			fmt.Errorf("iterate rows: %w", err))
	}

	logging.Info().Int("rows", len(out)).Str("table", in.table).Msg("Data extraction successful")
	return out, nil
}

// Save splits rows into train and test sets and writes both CSV files.
func (in *Ingestor) Save(rows []dataset.Passenger) error {
	if len(rows) == 0 {
		return fathomerr.Newf(fathomerr.KindDataFormat, "ingest/save", "no rows to save")
	}

	train, test := dataset.SplitRows(rows, in.testSize, in.seed)

	if err := dataset.WriteCSV(in.trainPath, train); err != nil {
		return fathomerr.New(fathomerr.KindConnection, "ingest/save", err)
	}
	if err := dataset.WriteCSV(in.testPath, test); err != nil {
		return fathomerr.New(fathomerr.KindConnection, "ingest/save", err)
	}

	logging.Info().
		Int("train_rows", len(train)).
		Int("test_rows", len(test)).
		Str("train_path", in.trainPath).
		Str("test_path", in.testPath).
		Msg("Raw splits saved")
	return nil
}

// Run executes the full ingestion: extract then save.
func (in *Ingestor) Run(ctx context.Context) error {
	logging.Info().Msg("Starting data ingestion")

	rows, err := in.Extract(ctx)
	if err != nil {
		logging.Error().Err(err).Msg("Data ingestion failed")
		return err
	}
	if err := in.Save(rows); err != nil {
		logging.Error().Err(err).Msg("Data ingestion failed")
		return err
	}

	logging.Info().Msg("Data ingestion completed")
	return nil
}

// Close releases the database connection.
func (in *Ingestor) Close() error {
	return in.db.Close()
}
