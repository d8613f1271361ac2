package domain

import "strings"

// Direction - одно из восьми направлений шага. Ось Y растет вниз.
type Direction uint8

const (
	DirNone Direction = iota
	DirN
	DirNE
	DirE
	DirSE
	DirS
	DirSW
	DirW
	DirNW
)

var directionDeltas = [...][2]int{
	DirNone: {0, 0},
	DirN:    {0, -1},
	DirNE:   {1, -1},
	DirE:    {1, 0},
	DirSE:   {1, 1},
	DirS:    {0, 1},
	DirSW:   {-1, 1},
	DirW:    {-1, 0},
	DirNW:   {-1, -1},
}

var directionToString = map[Direction]string{
	DirN:  "N",
	DirNE: "NE",
	DirE:  "E",
	DirSE: "SE",
	DirS:  "S",
	DirSW: "SW",
	DirW:  "W",
	DirNW: "NW",
}

var directionStringToType = map[string]Direction{
	"N":  DirN,
	"NE": DirNE,
	"E":  DirE,
	"SE": DirSE,
	"S":  DirS,
	"SW": DirSW,
	"W":  DirW,
	"NW": DirNW,
}

// Directions - все восемь направлений в фиксированном порядке (для детерминированного перебора).
var Directions = []Direction{DirN, DirNE, DirE, DirSE, DirS, DirSW, DirW, DirNW}

// Delta возвращает смещение (dx, dy). Для DirNone и мусора - (0, 0).
func (d Direction) Delta() (int, int) {
	if int(d) >= len(directionDeltas) {
		return 0, 0
	}
	v := directionDeltas[d]
	return v[0], v[1]
}

func (d Direction) IsValid() bool {
	return d >= DirN && d <= DirNW
}

func (d Direction) String() string {
	if val, ok := directionToString[d]; ok {
		return val
	}
	return "NONE"
}

// ParseDirection конвертирует строку ("n", "SE") в Direction
func ParseDirection(s string) Direction {
	if val, ok := directionStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return DirNone
}

// DirectionFromDelta - обратное к Delta. Смещения нормализуются по знаку.
func DirectionFromDelta(dx, dy int) Direction {
	dx, dy = sign(dx), sign(dy)
	for _, d := range Directions {
		ddx, ddy := d.Delta()
		if ddx == dx && ddy == dy {
			return d
		}
	}
	return DirNone
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
