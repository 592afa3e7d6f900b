package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/echoform/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	opts, err := config.Load("echoform", os.Args[1:])
	if err != nil {
		return err
	}
	logger := config.NewLogger(os.Stderr, opts.LogLevel, opts.LogFormat)
	slog.SetDefault(logger)

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("echoform")
	ebiten.SetTPS(opts.TPS)

	game, err := NewGame(opts, logger)
	if err != nil {
		return err
	}
	defer game.Close()

	return ebiten.RunGame(game)
}
