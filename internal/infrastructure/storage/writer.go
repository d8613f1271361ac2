package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"delve/internal/domain"
	"delve/pkg/logger"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SaveExt - расширение файлов сейва
const SaveExt = ".dlvs"

// SaveService пишет сейвы в каталог. Одна партия - один слот (файл), каждое
// сохранение перезаписывает его атомарно. Индекс необязателен.
type SaveService struct {
	SaveDir string

	codec *Codec
	index *Index
	slot  string
	log   *logrus.Entry
}

func NewSaveService(dir string, index *Index) (*SaveService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create save dir: %w", err)
	}
	codec, err := NewCodec()
	if err != nil {
		return nil, err
	}
	return &SaveService{
		SaveDir: dir,
		codec:   codec,
		index:   index,
		slot:    uuid.NewString(),
		log:     logger.Log.WithField("component", "storage"),
	}, nil
}

// Slot - идентификатор текущего слота
func (s *SaveService) Slot() string { return s.slot }

// SlotPath - путь к файлу слота
func (s *SaveService) SlotPath(slot string) string {
	return filepath.Join(s.SaveDir, slot+SaveExt)
}

// UseSlot продолжает запись в существующий слот (после загрузки)
func (s *SaveService) UseSlot(slot string) {
	s.slot = slot
}

// Save сохраняет состояние в текущий слот
func (s *SaveService) Save(ctx context.Context, state *domain.GameState) error {
	data, err := s.codec.Encode(state)
	if err != nil {
		return err
	}
	path := s.SlotPath(s.slot)
	if err := writeAtomic(path, data); err != nil {
		s.log.WithError(err).WithField("path", path).Error("Failed to write save")
		return err
	}

	if s.index != nil {
		entry := SlotEntry{
			ID:      s.slot,
			Path:    path,
			Seed:    state.Seed,
			Depth:   state.World.Depth,
			Round:   state.Round,
			SavedAt: time.Now().UTC(),
		}
		if p := state.World.Player(); p != nil {
			entry.Level = p.Progression.Level
		}
		if err := s.index.Record(ctx, entry); err != nil {
			// файл уже записан, индекс можно перестроить
			s.log.WithError(err).WithField("slot", s.slot).Error("Failed to index save")
			return err
		}
	}

	s.log.WithFields(logrus.Fields{
		"slot":  s.slot,
		"depth": state.World.Depth,
		"round": state.Round,
		"bytes": len(data),
	}).Info("Save written")
	return nil
}

// writeAtomic пишет во временный файл рядом и переименовывает его поверх цели.
// Прежний файл либо остается целым, либо заменяется полностью.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp save: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write temp save: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("sync temp save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp save: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("replace save: %w", err)
	}
	return nil
}
