package domain

// TileKind - тип клетки карты. Нулевое значение - стена: свежая сетка целиком из камня.
type TileKind uint8

const (
	TileWall TileKind = iota
	TileFloor
	TileStairsDown
	TileStairsUp
	TileDoorClosed
	TileDoorOpen
)

var tileKindToString = map[TileKind]string{
	TileWall:       "WALL",
	TileFloor:      "FLOOR",
	TileStairsDown: "STAIRS_DOWN",
	TileStairsUp:   "STAIRS_UP",
	TileDoorClosed: "DOOR_CLOSED",
	TileDoorOpen:   "DOOR_OPEN",
}

// Глифы используются в компактной записи карты (сейвы, тесты, отладка)
var tileKindToGlyph = map[TileKind]byte{
	TileWall:       '#',
	TileFloor:      '.',
	TileStairsDown: '>',
	TileStairsUp:   '<',
	TileDoorClosed: '+',
	TileDoorOpen:   '\'',
}

func (k TileKind) String() string {
	if val, ok := tileKindToString[k]; ok {
		return val
	}
	return "UNKNOWN"
}

func (k TileKind) Glyph() byte {
	if g, ok := tileKindToGlyph[k]; ok {
		return g
	}
	return '?'
}

// ParseTileGlyph - обратное к Glyph.
func ParseTileGlyph(g byte) (TileKind, bool) {
	for k, v := range tileKindToGlyph {
		if v == g {
			return k, true
		}
	}
	return TileWall, false
}

// IsWalkable - можно ли стоять на клетке. Закрытая дверь не проходима, ее сначала открывают.
func (k TileKind) IsWalkable() bool {
	switch k {
	case TileFloor, TileStairsDown, TileStairsUp, TileDoorOpen:
		return true
	}
	return false
}

// BlocksSight - непрозрачные клетки для FOV.
func (k TileKind) BlocksSight() bool {
	return k == TileWall || k == TileDoorClosed
}

type Tile struct {
	Kind     TileKind `json:"kind"`
	Explored bool     `json:"explored"`
	// Visible пересчитывается FOV после каждого хода игрока и не сохраняется
	Visible bool `json:"-"`
}
