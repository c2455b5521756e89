// Package store persists canonicalization results in SQLite.
//
// Rows are keyed by input and by the digest of the rule tables that
// produced them, so results computed under a different ruleset are never
// returned.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	coreerrors "github.com/FocuswithJustin/configsub/core/errors"
	"github.com/FocuswithJustin/configsub/core/sqlite"
	"github.com/FocuswithJustin/configsub/core/triplet"
)

const schema = `CREATE TABLE IF NOT EXISTS results (
	input         TEXT NOT NULL,
	ruleset       TEXT NOT NULL,
	canonical     TEXT NOT NULL DEFAULT '',
	error_kind    TEXT NOT NULL DEFAULT '',
	error_message TEXT NOT NULL DEFAULT '',
	machine       TEXT NOT NULL DEFAULT '',
	cpu           TEXT NOT NULL DEFAULT '',
	kernel        TEXT NOT NULL DEFAULT '',
	os            TEXT NOT NULL DEFAULT '',
	object_format TEXT NOT NULL DEFAULT '',
	recorded_at   TEXT NOT NULL,
	PRIMARY KEY (input, ruleset)
)`

// Store is a SQLite-backed result cache. It is safe for concurrent use.
type Store struct {
	db      *sql.DB
	path    string
	ruleset string
}

// Entry is one persisted result.
type Entry struct {
	Input        string
	Ruleset      string
	Canonical    string
	ErrorKind    string
	ErrorMessage string
	RecordedAt   time.Time

	failure *triplet.Error
}

// Result returns the canonical form or the restored canonicalization error.
func (e Entry) Result() (string, error) {
	if e.failure != nil {
		return "", e.failure
	}
	return e.Canonical, nil
}

// Open opens or creates the store at path and prepares its schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sqlite.Open(path)
	if err != nil {
		return nil, coreerrors.NewIO("open", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, coreerrors.NewIO("open", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, coreerrors.Wrapf(err, "create schema in %s", path)
	}
	return &Store{db: db, path: path, ruleset: triplet.RulesetDigest()}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database path the store was opened with.
func (s *Store) Path() string {
	return s.path
}

// Ruleset returns the digest that keys rows written by this store.
func (s *Store) Ruleset() string {
	return s.ruleset
}

// Lookup returns the result recorded for input under the current ruleset.
func (s *Store) Lookup(ctx context.Context, input string) (Entry, bool, error) {
	var (
		e        Entry
		recorded string
		terr     triplet.Error
	)
	err := s.db.QueryRowContext(ctx, `SELECT input, ruleset, canonical, error_kind, error_message,
		machine, cpu, kernel, os, object_format, recorded_at
		FROM results WHERE input = ? AND ruleset = ?`, input, s.ruleset).Scan(
		&e.Input, &e.Ruleset, &e.Canonical, &e.ErrorKind, &e.ErrorMessage,
		&terr.Machine, &terr.CPU, &terr.Kernel, &terr.OS, &terr.ObjectFormat, &recorded)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, coreerrors.Wrapf(err, "lookup %q", input)
	}

	if t, err := time.Parse(time.RFC3339Nano, recorded); err == nil {
		e.RecordedAt = t
	}
	if e.ErrorKind != "" {
		kind, ok := triplet.KindByName(e.ErrorKind)
		if !ok {
			return Entry{}, false, fmt.Errorf("lookup %q: unknown error kind %q: %w",
				input, e.ErrorKind, coreerrors.ErrInternal)
		}
		terr.Kind = kind
		terr.Input = e.Input
		e.failure = &terr
	}
	return e, true, nil
}

// Record stores the outcome of canonicalizing input. err must be nil or a
// *triplet.Error.
func (s *Store) Record(ctx context.Context, input, canonical string, err error) error {
	var (
		terr    *triplet.Error
		kind    string
		message string
		failure triplet.Error
	)
	if err != nil {
		if !errors.As(err, &terr) {
			return fmt.Errorf("record %q: %T is not a canonicalization error: %w",
				input, err, coreerrors.ErrUnsupported)
		}
		kind, message, failure = terr.KindName(), terr.Error(), *terr
		canonical = ""
	}

	_, execErr := s.db.ExecContext(ctx, `INSERT OR REPLACE INTO results
		(input, ruleset, canonical, error_kind, error_message,
		 machine, cpu, kernel, os, object_format, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		input, s.ruleset, canonical, kind, message,
		failure.Machine, failure.CPU, failure.Kernel, failure.OS, failure.ObjectFormat,
		time.Now().UTC().Format(time.RFC3339Nano))
	if execErr != nil {
		return coreerrors.Wrapf(execErr, "record %q", input)
	}
	return nil
}

// Purge deletes rows recorded under any other ruleset and reports how many
// were removed.
func (s *Store) Purge(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM results WHERE ruleset <> ?`, s.ruleset)
	if err != nil {
		return 0, coreerrors.Wrap(err, "purge")
	}
	return res.RowsAffected()
}

// Len returns the number of rows for the current ruleset.
func (s *Store) Len(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM results WHERE ruleset = ?`, s.ruleset).Scan(&n)
	if err != nil {
		return 0, coreerrors.Wrap(err, "count")
	}
	return n, nil
}
