package handlers

import (
	"github.com/sirupsen/logrus"

	"delve/internal/domain"
	"delve/pkg/logger"
)

// EmptyHandlerFunc - хендлер, которому НЕ нужны данные команды (PICKUP, WAIT, DESCEND)
type EmptyHandlerFunc func(ctx Context) (Result, error)

// WithValidation проверяет форму команды и живость актора до вызова логики.
func WithValidation(handler HandlerFunc) HandlerFunc {
	return func(ctx Context, cmd domain.Command) (Result, error) {
		// 1. Мертвые не ходят
		if ctx.Actor.IsDead() {
			return Result{}, domain.Rejectf(cmd.Kind, "%s мертв", ctx.Actor.Name)
		}

		// 2. Автоматическая валидация
		if err := cmd.Validate(); err != nil {
			logger.Log.WithFields(logrus.Fields{
				"component": "handlers",
				"actor_id":  ctx.Actor.ID,
				"command":   cmd.String(),
			}).WithError(err).Debug("Command failed validation")
			return Result{}, err
		}

		// 3. Вызов чистой логики
		return handler(ctx, cmd)
	}
}

// WithEmptyPayload - обертка для команд без данных
func WithEmptyPayload(handler EmptyHandlerFunc) HandlerFunc {
	return WithValidation(func(ctx Context, _ domain.Command) (Result, error) {
		return handler(ctx)
	})
}

// PlayerOnly - команда доступна только игроку (спуск по лестнице)
func PlayerOnly(handler HandlerFunc) HandlerFunc {
	return func(ctx Context, cmd domain.Command) (Result, error) {
		if !ctx.Actor.IsPlayer() {
			return Result{}, domain.Rejectf(cmd.Kind, "only the player can do this")
		}
		return handler(ctx, cmd)
	}
}
