package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"delve/internal/domain"

	"github.com/sirupsen/logrus"
)

// Load читает сейв по пути. Ошибки формата - *domain.SaveFormatError,
// ошибки файловой системы возвращаются как есть.
func (s *SaveService) Load(path string) (*domain.GameState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	state, err := s.codec.Decode(data)
	if err != nil {
		s.log.WithError(err).WithField("path", path).Warn("Rejected save file")
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"path":  path,
		"depth": state.World.Depth,
		"round": state.Round,
	}).Info("Save loaded")
	return state, nil
}

// Continue загружает сейв и переключает запись на его слот,
// чтобы следующие сохранения перезаписывали тот же файл.
func (s *SaveService) Continue(path string) (*domain.GameState, error) {
	state, err := s.Load(path)
	if err != nil {
		return nil, err
	}
	if slot, ok := slotFromPath(path); ok {
		s.UseSlot(slot)
	}
	return state, nil
}

// ContinueLatest продолжает самый свежий сейв из индекса
func (s *SaveService) ContinueLatest(ctx context.Context) (*domain.GameState, error) {
	if s.index == nil {
		return nil, fmt.Errorf("save index is disabled: %w", ErrNoSaves)
	}
	entry, err := s.index.Latest(ctx)
	if err != nil {
		return nil, err
	}
	state, err := s.Load(entry.Path)
	if err != nil {
		return nil, err
	}
	s.UseSlot(entry.ID)
	return state, nil
}

func slotFromPath(path string) (string, bool) {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, SaveExt) {
		return "", false
	}
	return strings.TrimSuffix(base, SaveExt), true
}
