package actions

import (
	"delve/internal/engine/handlers"
)

// HandleWait - пропуск хода
func HandleWait(ctx handlers.Context) (handlers.Result, error) {
	return handlers.EmptyResult(), nil
}
