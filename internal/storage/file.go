package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/avoronov/flashdeck/internal/errs"
	"github.com/avoronov/flashdeck/internal/model"
)

// FileStore persists the collection as a single versioned JSON envelope.
// Writes go through a temp file + rename so a failed save never corrupts
// the previous envelope.
type FileStore struct {
	path   string
	logger *zap.Logger
}

// NewFileStore creates a file-backed store at path. The file need not exist.
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{path: path, logger: logger}
}

// rawEnvelope defers card decoding so one malformed entry does not take
// down an otherwise valid envelope.
type rawEnvelope struct {
	Version      string            `json:"version"`
	Cards        []json.RawMessage `json:"cards"`
	LastModified time.Time         `json:"lastModified"`
}

// Load reads the envelope. Missing file yields an empty list; a corrupted
// payload is copied to a timestamped backup and discarded. The only error
// returned is errs.ErrStorageUnavailable.
func (f *FileStore) Load(_ context.Context) ([]model.Card, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", errs.ErrStorageUnavailable, f.path, err)
	}

	var env rawEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		f.backupCorrupt(data, err)
		return nil, nil
	}

	if env.Version != model.SchemaVersion {
		cards, ok := f.migrate(env)
		if !ok {
			f.logger.Warn("unknown envelope version, discarding",
				zap.String("version", env.Version))
			return nil, nil
		}
		return cards, nil
	}
	return f.decodeCards(env.Cards), nil
}

// Save writes the full collection atomically. Fails only with
// errs.ErrQuotaExceeded (disk full, message carries the card count) or
// errs.ErrStorageUnavailable.
func (f *FileStore) Save(_ context.Context, cards []model.Card) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return classifySaveErr(err, len(cards))
	}

	if cards == nil {
		cards = []model.Card{}
	}
	env := model.Envelope{
		Version:      model.SchemaVersion,
		Cards:        cards,
		LastModified: time.Now().UTC(),
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal envelope: %v", errs.ErrStorageUnavailable, err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		_ = os.Remove(tmp)
		return classifySaveErr(err, len(cards))
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return classifySaveErr(err, len(cards))
	}
	return nil
}

// decodeCards unmarshals entries one by one, skipping the structurally
// invalid instead of failing the whole load.
func (f *FileStore) decodeCards(raw []json.RawMessage) []model.Card {
	var cards []model.Card
	for i, r := range raw {
		var c model.Card
		if err := json.Unmarshal(r, &c); err != nil {
			f.logger.Warn("skipping invalid card entry", zap.Int("index", i), zap.Error(err))
			continue
		}
		if c.ID == uuid.Nil || strings.TrimSpace(c.Term) == "" || strings.TrimSpace(c.Definition) == "" {
			f.logger.Warn("skipping card with missing required fields", zap.Int("index", i))
			continue
		}
		cards = append(cards, c)
	}
	return cards
}

// migrate upgrades an old-version envelope in place. There is a single
// schema version today, so no path exists and every mismatch discards.
func (f *FileStore) migrate(env rawEnvelope) ([]model.Card, bool) {
	return nil, false
}

func (f *FileStore) backupCorrupt(data []byte, cause error) {
	backup := fmt.Sprintf("%s.corrupt-%d", f.path, time.Now().Unix())
	if err := os.WriteFile(backup, data, 0o600); err != nil {
		f.logger.Warn("could not back up corrupted envelope", zap.Error(err))
	}
	f.logger.Warn("corrupted envelope, starting empty",
		zap.String("backup", backup), zap.Error(cause))
}

func classifySaveErr(err error, count int) error {
	if errors.Is(err, syscall.ENOSPC) || errors.Is(err, syscall.EDQUOT) {
		return fmt.Errorf("%w: %d cards in memory, delete some to free space: %v",
			errs.ErrQuotaExceeded, count, err)
	}
	return fmt.Errorf("%w: %v", errs.ErrStorageUnavailable, err)
}
