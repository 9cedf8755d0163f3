// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Smart Exam Hub Authors

package migrations

import (
	"database/sql"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMigrate_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	// no expectations: goose fails on its first version-table query
	_ = mock

	err = Migrate(db)
	if err == nil {
		t.Fatal("expected error from Migrate, got nil")
	}

	if !strings.Contains(err.Error(), "migration error") {
		t.Errorf("expected wrapped migration error, got: %v", err)
	}
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	err := Migrate(db)
	if err == nil {
		t.Fatal("expected error when db is nil, got nil")
	}

	if !errors.Is(err, ErrNilDB) {
		t.Errorf("expected ErrNilDB, got: %v", err)
	}
}

func TestEmbeddedMigrations_Present(t *testing.T) {
	entries, err := embedMigrations.ReadDir(".")
	if err != nil {
		t.Fatalf("reading embedded migrations: %v", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}

	for _, want := range []string{"00001_init.sql", "00002_seed_catalog.sql"} {
		if !slices.Contains(names, want) {
			t.Errorf("embedded migration %s missing, have %v", want, names)
		}
	}
}

func TestInitMigration_DeclaresConstraints(t *testing.T) {
	body, err := embedMigrations.ReadFile("00001_init.sql")
	if err != nil {
		t.Fatalf("reading init migration: %v", err)
	}

	for _, want := range []string{"users_username_key", "users_school_id_key", "ON DELETE CASCADE", "-- +goose Down"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("init migration lacks %q", want)
		}
	}
}
