// Package database provides connection setup for MariaDB and Redis.
// This file validates migration SQL files to catch schema mismatches early.
package database

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"testing"
)

// validDifficulties must match the ENUM values on challenges.difficulty.
// Update this set when adding new ENUM values via ALTER TABLE.
// Defined in 000001.
var validDifficulties = map[string]bool{
	"beginner":     true,
	"intermediate": true,
	"advanced":     true,
}

// migrationsDir returns the absolute path to db/migrations/ from the project root.
func migrationsDir(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	// thisFile is internal/database/migrate_test.go, project root is two dirs up.
	projectRoot := filepath.Join(filepath.Dir(thisFile), "..", "..")
	dir := filepath.Join(projectRoot, "db", "migrations")
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("migrations directory not found at %s: %v", dir, err)
	}
	return dir
}

// TestMigrations_UpDownPairs verifies every .up.sql migration has a matching
// .down.sql so a bad deploy can always be rolled back.
func TestMigrations_UpDownPairs(t *testing.T) {
	dir := migrationsDir(t)
	ups, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		t.Fatalf("globbing migration files: %v", err)
	}
	if len(ups) == 0 {
		t.Fatal("no migration files found")
	}

	for _, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		if _, err := os.Stat(down); err != nil {
			t.Errorf("missing down migration for %s", filepath.Base(up))
		}
	}
}

// difficultyValueRe matches quoted values in INSERT statements touching the
// challenges.difficulty column.
var difficultyValueRe = regexp.MustCompile(`difficulty[^,)]*?'([a-z_]+)'`)

// TestMigrations_DifficultyValues scans all .up.sql migration files for
// statements that reference challenges.difficulty and validates that any
// values used are valid ENUM members. This prevents the "Data truncated
// for column 'difficulty'" crash (Error 1265) that occurs when an invalid
// ENUM value is used in seed data.
func TestMigrations_DifficultyValues(t *testing.T) {
	dir := migrationsDir(t)
	files, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		t.Fatalf("globbing migration files: %v", err)
	}

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			t.Fatalf("reading %s: %v", file, err)
		}

		for _, line := range strings.Split(string(content), "\n") {
			upper := strings.ToUpper(line)
			if !strings.Contains(upper, "INSERT") && !strings.Contains(upper, "UPDATE") {
				continue
			}
			for _, match := range difficultyValueRe.FindAllStringSubmatch(line, -1) {
				if !validDifficulties[match[1]] {
					t.Errorf("%s uses invalid difficulty value %q", filepath.Base(file), match[1])
				}
			}
		}
	}
}

// TestMigrations_RequiredColumns checks the initial migration declares the
// columns the repositories scan, so a renamed column fails in CI instead
// of at runtime.
func TestMigrations_RequiredColumns(t *testing.T) {
	dir := migrationsDir(t)
	content, err := os.ReadFile(filepath.Join(dir, "000001_init.up.sql"))
	if err != nil {
		t.Fatalf("reading initial migration: %v", err)
	}
	sql := string(content)

	required := []string{
		"username", "email", "password_hash", "profile_photo",
		"title", "problem", "concept", "category", "difficulty", "sample_code", "test_cases",
		"content", "author", "slug", "published",
	}
	for _, col := range required {
		if !strings.Contains(sql, col) {
			t.Errorf("initial migration missing column %q", col)
		}
	}
}
