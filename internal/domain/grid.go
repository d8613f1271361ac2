package domain

import (
	"fmt"
	"strings"
)

// OutOfBoundsError - обращение к клетке за пределами карты.
// Это нарушение инварианта, поэтому Grid.At паникует этим значением.
type OutOfBoundsError struct {
	Pos           Position
	Width, Height int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("position %s outside %dx%d grid", e.Pos, e.Width, e.Height)
}

func (e *OutOfBoundsError) Unwrap() error { return ErrOutOfBounds }

// Grid - прямоугольная карта, плоский массив в порядке строк (Y * Width + X).
type Grid struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Tiles  []Tile `json:"tiles"`
}

// NewGrid создает карту, целиком заполненную стенами
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		Tiles:  make([]Tile, width*height),
	}
}

func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

func (g *Grid) Index(p Position) int {
	return p.Y*g.Width + p.X
}

func (g *Grid) PositionOf(idx int) Position {
	return Position{X: idx % g.Width, Y: idx / g.Width}
}

// At возвращает клетку. Выход за границы - паника с *OutOfBoundsError.
func (g *Grid) At(p Position) *Tile {
	if !g.InBounds(p) {
		panic(&OutOfBoundsError{Pos: p, Width: g.Width, Height: g.Height})
	}
	return &g.Tiles[g.Index(p)]
}

// Kind - безопасный запрос: все за краем карты считается стеной.
func (g *Grid) Kind(p Position) TileKind {
	if !g.InBounds(p) {
		return TileWall
	}
	return g.Tiles[g.Index(p)].Kind
}

func (g *Grid) Set(p Position, kind TileKind) {
	g.At(p).Kind = kind
}

func (g *Grid) IsWalkable(p Position) bool {
	return g.Kind(p).IsWalkable()
}

func (g *Grid) BlocksSight(p Position) bool {
	return g.Kind(p).BlocksSight()
}

// ClearVisible сбрасывает флаг видимости перед пересчетом FOV
func (g *Grid) ClearVisible() {
	for i := range g.Tiles {
		g.Tiles[i].Visible = false
	}
}

// Find возвращает первую клетку заданного типа (в порядке строк)
func (g *Grid) Find(kind TileKind) (Position, bool) {
	for i, t := range g.Tiles {
		if t.Kind == kind {
			return g.PositionOf(i), true
		}
	}
	return Position{}, false
}

// Clone - глубокая копия для снапшотов
func (g *Grid) Clone() *Grid {
	tiles := make([]Tile, len(g.Tiles))
	copy(tiles, g.Tiles)
	return &Grid{Width: g.Width, Height: g.Height, Tiles: tiles}
}

// Rows - компактная запись карты глифами, по строке на ряд.
func (g *Grid) Rows() []string {
	rows := make([]string, g.Height)
	var sb strings.Builder
	for y := 0; y < g.Height; y++ {
		sb.Reset()
		for x := 0; x < g.Width; x++ {
			sb.WriteByte(g.Tiles[y*g.Width+x].Kind.Glyph())
		}
		rows[y] = sb.String()
	}
	return rows
}

// ParseGrid собирает карту из строк глифов (обратное к Rows)
func ParseGrid(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("grid: no rows")
	}
	g := NewGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != g.Width {
			return nil, fmt.Errorf("grid: row %d has width %d, want %d", y, len(row), g.Width)
		}
		for x := 0; x < len(row); x++ {
			kind, ok := ParseTileGlyph(row[x])
			if !ok {
				return nil, fmt.Errorf("grid: unknown glyph %q at (%d,%d)", row[x], x, y)
			}
			g.Tiles[y*g.Width+x].Kind = kind
		}
	}
	return g, nil
}
