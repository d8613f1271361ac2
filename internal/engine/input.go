package engine

import (
	"context"

	"delve/internal/domain"
	"delve/pkg/api"
)

// Input - источник команд игрока. NextCommand - единственная точка, где ядро ждет:
// начало хода игрока. Снимок передается только для чтения.
type Input interface {
	NextCommand(ctx context.Context, snap *api.Snapshot) (domain.Command, error)
}

// InputFunc позволяет использовать обычную функцию как Input
type InputFunc func(ctx context.Context, snap *api.Snapshot) (domain.Command, error)

func (f InputFunc) NextCommand(ctx context.Context, snap *api.Snapshot) (domain.Command, error) {
	return f(ctx, snap)
}

// Saver сохраняет состояние. Вызывается только на границе раунда.
type Saver interface {
	Save(ctx context.Context, state *domain.GameState) error
}

// Observer получает снимок после каждого раунда
type Observer func(snap *api.Snapshot)

// ChannelInput читает команды из канала (его наполняет websocket-сервер).
// Закрытый канал означает выход из игры.
type ChannelInput struct {
	C <-chan domain.Command
	// OnPrompt вызывается перед ожиданием команды (рассылка снимка зрителям)
	OnPrompt func(snap *api.Snapshot)
}

func (in *ChannelInput) NextCommand(ctx context.Context, snap *api.Snapshot) (domain.Command, error) {
	if in.OnPrompt != nil {
		in.OnPrompt(snap)
	}
	select {
	case <-ctx.Done():
		return domain.Command{}, ctx.Err()
	case cmd, ok := <-in.C:
		if !ok {
			return domain.Quit(), nil
		}
		return cmd, nil
	}
}

// Script - заранее записанная последовательность команд. Когда она кончается - Quit.
func Script(cmds ...domain.Command) Input {
	i := 0
	return InputFunc(func(ctx context.Context, _ *api.Snapshot) (domain.Command, error) {
		if err := ctx.Err(); err != nil {
			return domain.Command{}, err
		}
		if i >= len(cmds) {
			return domain.Quit(), nil
		}
		cmd := cmds[i]
		i++
		return cmd, nil
	})
}
