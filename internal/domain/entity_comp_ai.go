package domain

import "strings"

// AIBehavior - тег поведения монстра. Вся логика в одной функции systems.Decide.
type AIBehavior uint8

const (
	BehaviorNone   AIBehavior = iota // игрок
	BehaviorIdle                     // стоит на месте, пока не увидит игрока
	BehaviorWander                   // бродит, пока не увидит игрока
	BehaviorChase                    // преследует игрока
)

var behaviorToString = map[AIBehavior]string{
	BehaviorNone:   "NONE",
	BehaviorIdle:   "IDLE",
	BehaviorWander: "WANDER",
	BehaviorChase:  "CHASE",
}

var behaviorStringToType = map[string]AIBehavior{
	"NONE":   BehaviorNone,
	"IDLE":   BehaviorIdle,
	"WANDER": BehaviorWander,
	"CHASE":  BehaviorChase,
}

// ParseBehavior конвертирует строку из YAML/сейва в AIBehavior
func ParseBehavior(s string) (AIBehavior, bool) {
	val, ok := behaviorStringToType[strings.ToUpper(s)]
	return val, ok
}

func (b AIBehavior) String() string {
	if val, ok := behaviorToString[b]; ok {
		return val
	}
	return "UNKNOWN"
}
