package domain

// MessageType - категория записи в логе раунда
type MessageType string

const (
	MsgInfo   MessageType = "INFO"
	MsgCombat MessageType = "COMBAT"
	MsgLevel  MessageType = "LEVEL"
	MsgError  MessageType = "ERROR"
)

// LogEntry - запись в логе
type LogEntry struct {
	Round int         `json:"round"`
	Text  string      `json:"text"`
	Type  MessageType `json:"type"`
}

// MessageLog - сообщения текущего раунда. Сбрасывается в начале каждого раунда.
type MessageLog struct {
	Round   int
	Entries []LogEntry
}

func (l *MessageLog) Reset(round int) {
	l.Round = round
	l.Entries = nil
}

func (l *MessageLog) Add(kind MessageType, text string) {
	l.Entries = append(l.Entries, LogEntry{Round: l.Round, Text: text, Type: kind})
}

// Snapshot - копия записей для внешних потребителей
func (l *MessageLog) Snapshot() []LogEntry {
	out := make([]LogEntry, len(l.Entries))
	copy(out, l.Entries)
	return out
}
