package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrGeneration - генератор не смог построить уровень (фатально для входа на уровень)
	ErrGeneration = errors.New("level generation failed")
	// ErrInvalidCommand - команда отклонена, ход при этом тратится
	ErrInvalidCommand = errors.New("invalid command")
	// ErrSaveFormat - сейв поврежден, обрезан или другой версии
	ErrSaveFormat = errors.New("save format error")
	// ErrOutOfBounds - обращение за границы карты
	ErrOutOfBounds = errors.New("position out of bounds")
	// ErrWorldInvariant - состояние мира противоречит правилам занятости/владения
	ErrWorldInvariant = errors.New("world invariant violated")
)

// CommandError - причина отказа, понятная игроку. Попадает в лог раунда.
type CommandError struct {
	Kind   CommandKind
	Reason string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *CommandError) Unwrap() error { return ErrInvalidCommand }

// Rejectf - короткий конструктор для хендлеров
func Rejectf(kind CommandKind, format string, args ...any) *CommandError {
	return &CommandError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// SaveFormatError фиксирует стадию декодирования, на которой сейв был отвергнут.
type SaveFormatError struct {
	Stage string
	Err   error
}

func (e *SaveFormatError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("save format: %s", e.Stage)
	}
	return fmt.Sprintf("save format: %s: %v", e.Stage, e.Err)
}

func (e *SaveFormatError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrSaveFormat}
	}
	return []error{ErrSaveFormat, e.Err}
}

func invariantf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrWorldInvariant, fmt.Sprintf(format, args...))
}
