package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	sqlite3 "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/avoronov/flashdeck/internal/errs"
	"github.com/avoronov/flashdeck/internal/migrate"
	"github.com/avoronov/flashdeck/internal/model"
)

// SQLiteStore persists the collection in an embedded SQLite database,
// implementing the same whole-collection load/save contract as FileStore.
// Card order is kept in an explicit position column.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// OpenSQLite opens (or creates) the database at path and applies pending
// migrations.
func OpenSQLite(ctx context.Context, path string, logger *zap.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrStorageUnavailable, err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", errs.ErrStorageUnavailable, path, err)
	}
	if err := migrate.Up(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: migrate: %v", errs.ErrStorageUnavailable, err)
	}
	return &SQLiteStore{db: db, logger: logger}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// Load returns all cards ordered by position. Rows with missing required
// fields are skipped individually; an unknown schema version in deck_meta
// discards the collection.
func (s *SQLiteStore) Load(ctx context.Context) ([]model.Card, error) {
	var version string
	err := s.db.QueryRowContext(ctx, `SELECT schema_version FROM deck_meta WHERE id = 1`).Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("%w: read meta: %v", errs.ErrStorageUnavailable, err)
	case version != model.SchemaVersion:
		s.logger.Warn("unknown schema version, discarding", zap.String("version", version))
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, term, definition, mastered, created_at, part_of_speech, example_sentences
FROM cards
ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("%w: query cards: %v", errs.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	var cards []model.Card
	for rows.Next() {
		var (
			id, term, def, createdAt string
			mastered                 bool
			pos, examples            sql.NullString
		)
		if err := rows.Scan(&id, &term, &def, &mastered, &createdAt, &pos, &examples); err != nil {
			return nil, fmt.Errorf("%w: scan card: %v", errs.ErrStorageUnavailable, err)
		}
		card, ok := s.rowToCard(id, term, def, mastered, createdAt, pos, examples)
		if !ok {
			continue
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate cards: %v", errs.ErrStorageUnavailable, err)
	}
	return cards, nil
}

// Save replaces the stored collection in a single transaction and bumps
// the last-modified stamp. A rolled-back transaction leaves the previous
// collection untouched.
func (s *SQLiteStore) Save(ctx context.Context, cards []model.Card) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return classifySQLiteErr(err, len(cards))
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if e := tx.Commit(); e != nil {
			err = classifySQLiteErr(e, len(cards))
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM cards`); err != nil {
		return classifySQLiteErr(err, len(cards))
	}

	const ins = `
INSERT INTO cards (id, term, definition, mastered, created_at, part_of_speech, example_sentences, position)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for i, c := range cards {
		var pos any
		if c.PartOfSpeech != nil {
			pos = *c.PartOfSpeech
		}
		var examples any
		if len(c.ExampleSentences) > 0 {
			b, jerr := json.Marshal(c.ExampleSentences)
			if jerr != nil {
				return fmt.Errorf("%w: marshal examples: %v", errs.ErrStorageUnavailable, jerr)
			}
			examples = string(b)
		}
		if _, err = tx.ExecContext(ctx, ins,
			c.ID.String(), c.Term, c.Definition, c.Mastered,
			c.CreatedAt.UTC().Format(time.RFC3339Nano), pos, examples, i,
		); err != nil {
			return classifySQLiteErr(err, len(cards))
		}
	}

	if _, err = tx.ExecContext(ctx, `
UPDATE deck_meta SET schema_version = ?, last_modified = ? WHERE id = 1`,
		model.SchemaVersion, time.Now().UTC().Format(time.RFC3339Nano),
	); err != nil {
		return classifySQLiteErr(err, len(cards))
	}
	return nil
}

func (s *SQLiteStore) rowToCard(id, term, def string, mastered bool, createdAt string, pos, examples sql.NullString) (model.Card, bool) {
	uid, err := uuid.FromString(id)
	if err != nil || uid == uuid.Nil {
		s.logger.Warn("skipping card with invalid id", zap.String("id", id))
		return model.Card{}, false
	}
	if strings.TrimSpace(term) == "" || strings.TrimSpace(def) == "" {
		s.logger.Warn("skipping card with missing required fields", zap.String("id", id))
		return model.Card{}, false
	}
	created, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		s.logger.Warn("skipping card with invalid created_at", zap.String("id", id))
		return model.Card{}, false
	}

	card := model.Card{ID: uid, Term: term, Definition: def, Mastered: mastered, CreatedAt: created}
	if pos.Valid && pos.String != "" {
		p := pos.String
		card.PartOfSpeech = &p
	}
	if examples.Valid && examples.String != "" {
		if err := json.Unmarshal([]byte(examples.String), &card.ExampleSentences); err != nil {
			s.logger.Warn("dropping unreadable example sentences", zap.String("id", id))
		}
	}
	return card, true
}

func classifySQLiteErr(err error, count int) error {
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		switch serr.Code {
		case sqlite3.ErrFull:
			return fmt.Errorf("%w: %d cards in memory, delete some to free space: %v",
				errs.ErrQuotaExceeded, count, err)
		}
	}
	return fmt.Errorf("%w: %v", errs.ErrStorageUnavailable, err)
}
