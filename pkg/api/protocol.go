package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// Snapshot это корневой объект, который ядро отдает наружу.
// Полный "снимок" того, что видит игрок. Только для чтения: ядро каждый раз строит новый.
type Snapshot struct {
	// Type тип сообщения: "UPDATE" или "GAME_OVER".
	Type string `json:"type"`

	// Round номер раунда. Увеличивается с каждым ходом игрока.
	Round int `json:"round"`

	// Depth текущая глубина подземелья (с 1).
	Depth int `json:"depth"`

	// Grid метаданные о размере всей карты.
	Grid GridMeta `json:"grid"`

	// Map срез всех исследованных тайлов. Неисследованные не отправляются.
	Map []TileView `json:"map"`

	// Entities видимые акторы (игрок всегда среди них).
	Entities []EntityView `json:"entities"`

	// Items видимые предметы на полу.
	Items []ItemView `json:"items"`

	// Player полное состояние героя.
	Player PlayerView `json:"player"`

	// Logs сообщения последнего раунда.
	Logs []LogEntry `json:"logs"`
}

// GridMeta содержит общие размеры карты, чтобы клиент знал,
// какую сетку для рендеринга нужно подготовить.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileView это DTO для одного тайла карты.
type TileView struct {
	X int `json:"x"`
	Y int `json:"y"`

	// Kind тип тайла (WALL, FLOOR, STAIRS_DOWN, ...), Symbol - его глиф.
	Kind   string `json:"kind"`
	Symbol string `json:"symbol"`

	// IsVisible true, если тайл находится в текущем поле зрения. Рендерится ярко.
	IsVisible bool `json:"isVisible"`

	// IsExplored true, если тайл когда-либо был увиден.
	// Если IsVisible=false, а IsExplored=true, рендерится тускло.
	IsExplored bool `json:"isExplored"`
}

// Position - координаты на карте
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// EntityView это DTO для видимого актора.
type EntityView struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Kind    string   `json:"kind"` // шаблон: player, orc, troll
	Faction string   `json:"faction"`
	Pos     Position `json:"pos"`
	HP      int      `json:"hp"`
	MaxHP   int      `json:"maxHp"`
}

// ItemView представляет предмет для клиента
type ItemView struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Kind     string    `json:"kind"`
	Template string    `json:"template,omitempty"`
	Pos      *Position `json:"pos,omitempty"` // только для предметов на полу
	Attack   int       `json:"attack,omitempty"`
	Defense  int       `json:"defense,omitempty"`
	MaxHP    int       `json:"maxHp,omitempty"`
	Amount   int       `json:"amount,omitempty"`
	// Targeted - предмету нужна цель (x, y) при использовании
	Targeted bool `json:"targeted,omitempty"`
}

// StatsView - эффективные характеристики (с учетом экипировки и статусов)
type StatsView struct {
	HP      int `json:"hp"`
	MaxHP   int `json:"maxHp"`
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
}

// ProgressionView - уровень и опыт. NextLevelXP - суммарный порог следующего уровня.
type ProgressionView struct {
	Level       int `json:"level"`
	XP          int `json:"xp"`
	NextLevelXP int `json:"nextLevelXp"`
}

// StatusView - активный статус
type StatusView struct {
	Kind      string `json:"kind"`
	Remaining int    `json:"remaining"`
}

// EquipmentView представляет экипированные предметы
type EquipmentView struct {
	Weapon *ItemView `json:"weapon,omitempty"`
	Armor  *ItemView `json:"armor,omitempty"`
}

// PlayerView - все о герое
type PlayerView struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Pos         Position        `json:"pos"`
	Stats       StatsView       `json:"stats"`
	Progression ProgressionView `json:"progression"`
	Gold        int             `json:"gold"`
	Inventory   []ItemView      `json:"inventory"`
	MaxSlots    int             `json:"maxSlots"`
	Equipment   EquipmentView   `json:"equipment"`
	Statuses    []StatusView    `json:"statuses,omitempty"`
	IsDead      bool            `json:"isDead"`
}

// LogEntry представляет одну запись в игровом логе.
type LogEntry struct {
	Round int    `json:"round"`
	Text  string `json:"text"`
	Type  string `json:"type"` // INFO, COMBAT, LEVEL, ERROR
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Action название действия: MOVE, ATTACK, USE, EQUIP, UNEQUIP, PICKUP, DROP, DESCEND, WAIT, SAVE, QUIT.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Payloads ---

// DirectionPayload используется для действий, связанных с направлением (MOVE, ATTACK).
type DirectionPayload struct {
	Dx int `json:"dx"` // Смещение по X (-1, 0, 1)
	Dy int `json:"dy"` // Смещение по Y (-1, 0, 1)
}

// PositionPayload - точка на карте (цель свитка)
type PositionPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ItemPayload используется для действий с предметами (USE, EQUIP, UNEQUIP, DROP).
type ItemPayload struct {
	ItemID string           `json:"itemId"`
	Target *PositionPayload `json:"target,omitempty"` // Для USE со свитками по площади
}

// ServerError - ответ клиенту на команду, которую не удалось разобрать
type ServerError struct {
	Type  string `json:"type"` // всегда "ERROR"
	Error string `json:"error"`
}

func NewServerError(err error) *ServerError {
	return &ServerError{Type: "ERROR", Error: err.Error()}
}
