package domain

// Параметры восприятия
const (
	// PlayerVisionRadius - радиус факела игрока
	PlayerVisionRadius = 10
	// MonsterVisionRadius - по умолчанию для шаблонов без явного радиуса
	MonsterVisionRadius = 8
)

// InventoryCapacity - по букве на слот, a..z
const InventoryCapacity = 26

// Размеры карты по умолчанию
const (
	DefaultMapWidth  = 80
	DefaultMapHeight = 43
)
