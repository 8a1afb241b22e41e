//go:build android

package main

import (
	"context"
	"errors"

	"snejk/internal/game"
)

func runViewer(context.Context, game.Config, *game.EventBus, *game.Metrics) error {
	return errors.New("desktop viewer is not available on android, use -headless")
}
