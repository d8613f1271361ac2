package utils

import (
	"hash/fnv"
	"math/rand"
	"strconv"
)

// Mix сворачивает набор чисел в один сид (splitmix64).
// Одинаковые входы дают одинаковый сид, порядок аргументов важен.
func Mix(values ...int64) int64 {
	var h uint64 = 0x9E3779B97F4A7C15
	for _, v := range values {
		h ^= uint64(v)
		h += 0x9E3779B97F4A7C15
		z := h
		z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
		z = (z ^ (z >> 27)) * 0x94D049BB133111EB
		h = z ^ (z >> 31)
	}
	return int64(h)
}

// NewRand - детерминированный генератор для набора координат (сид, глубина, раунд...)
func NewRand(values ...int64) *rand.Rand {
	return rand.New(rand.NewSource(Mix(values...)))
}

// RandRange возвращает число в [min, max] включительно
func RandRange(rng *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return rng.Intn(max-min+1) + min
}

// StringToSeed превращает строку в сид. Числа берутся как есть, иначе - FNV хеш.
func StringToSeed(s string) int64 {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
