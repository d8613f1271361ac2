package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"delve/internal/domain"
	"delve/internal/infrastructure/storage"
)

func main() {
	if len(os.Args) < 3 {
		printHelp()
		return
	}

	var err error
	switch os.Args[1] {
	case "show":
		err = show(os.Args[2])
	case "list":
		err = list(os.Args[2])
	default:
		printHelp()
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// show печатает сводку по файлу сейва или стадию, на которой он отвергнут
func show(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	codec, err := storage.NewCodec()
	if err != nil {
		return err
	}
	state, err := codec.Decode(data)
	if err != nil {
		var sfe *domain.SaveFormatError
		if errors.As(err, &sfe) {
			return fmt.Errorf("rejected at stage %q: %w", sfe.Stage, err)
		}
		return err
	}

	w := state.World
	fmt.Printf("seed:    %d\n", state.Seed)
	fmt.Printf("round:   %d\n", state.Round)
	fmt.Printf("depth:   %d\n", w.Depth)
	fmt.Printf("map:     %dx%d\n", w.Grid.Width, w.Grid.Height)
	fmt.Printf("actors:  %d\n", len(w.Actors))
	fmt.Printf("items:   %d\n", len(w.Items))
	if p := w.Player(); p != nil {
		fmt.Printf("player:  %s lvl %d xp %d hp %d/%d gold %d at %s\n",
			p.Name, p.Progression.Level, p.Progression.XP, p.Stats.HP, p.Stats.MaxHP, p.Gold, p.Pos)
	}
	return nil
}

// list печатает слоты из sqlite-индекса, свежие первыми
func list(indexPath string) error {
	index, err := storage.OpenIndex(indexPath)
	if err != nil {
		return err
	}
	defer index.Close()

	slots, err := index.List(context.Background())
	if err != nil {
		return err
	}
	if len(slots) == 0 {
		fmt.Println("no saves")
		return nil
	}
	for _, s := range slots {
		fmt.Printf("%s  depth %-3d round %-6d lvl %-3d %s  %s\n",
			s.ID, s.Depth, s.Round, s.Level, s.SavedAt.Local().Format(time.DateTime), s.Path)
	}
	return nil
}

func printHelp() {
	fmt.Println(`Save Utility - просмотр сейвов Delve
Commands:
  show <file.dlvs>    - сводка по сейву (или стадия, на которой он отвергнут)
  list <index.db>     - слоты из индекса, свежие первыми`)
}
