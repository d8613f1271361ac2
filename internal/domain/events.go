package domain

import "strings"

// StatusKind - тип временного статуса на акторе
type StatusKind uint8

const (
	StatusUnknown StatusKind = iota
	StatusConfused
	StatusPoisoned
	StatusStrengthened
)

var statusStringToKind = map[string]StatusKind{
	"CONFUSED":     StatusConfused,
	"POISONED":     StatusPoisoned,
	"STRENGTHENED": StatusStrengthened,
}

var statusKindToString = map[StatusKind]string{
	StatusConfused:     "CONFUSED",
	StatusPoisoned:     "POISONED",
	StatusStrengthened: "STRENGTHENED",
}

// ParseStatus конвертирует строку в StatusKind
func ParseStatus(s string) StatusKind {
	if val, ok := statusStringToKind[strings.ToUpper(s)]; ok {
		return val
	}
	return StatusUnknown
}

func (k StatusKind) String() string {
	if val, ok := statusKindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

// StatusEffect - статус с оставшейся длительностью в раундах.
// Magnitude: урон за раунд для яда, бонус атаки для силы, у смятения не используется.
type StatusEffect struct {
	Kind      StatusKind `json:"kind"`
	Remaining int        `json:"remaining"`
	Magnitude int        `json:"magnitude,omitempty"`
}
