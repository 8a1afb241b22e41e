//go:build !android

package main

import (
	"context"

	"snejk/internal/game"
	"snejk/internal/render"
)

func runViewer(ctx context.Context, cfg game.Config, bus *game.EventBus, metrics *game.Metrics) error {
	v, err := render.NewViewer()
	if err != nil {
		return err
	}
	defer v.Destroy()

	s, err := game.NewSession(cfg, game.WithEventBus(bus), game.WithMetrics(metrics), game.WithSink(v))
	if err != nil {
		return err
	}
	return v.Run(ctx, s)
}
