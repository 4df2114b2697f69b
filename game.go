package main

import (
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/suntan-superman/galageaux-sub001/config"
	"github.com/suntan-superman/galageaux-sub001/sim"
)

// Game is the demo driver around the simulation: it feeds normalized input
// into the loop once per ebiten frame and draws the resulting snapshot with
// plain shapes. It never reaches into engine internals.
type Game struct {
	latest *atomic.Pointer[config.Config]
	loop   *sim.Loop
	logger *zap.Logger
	snap   sim.Snapshot
	seed   int64
}

func NewGame(latest *atomic.Pointer[config.Config], seed int64, logger *zap.Logger) (*Game, error) {
	g := &Game{
		latest: latest,
		logger: logger,
		seed:   seed,
	}
	if err := g.startSession(); err != nil {
		return nil, err
	}
	return g, nil
}

// startSession builds a fresh engine from the latest tables.
func (g *Game) startSession() error {
	opts := []sim.Option{sim.WithLogger(g.logger)}
	if g.seed != 0 {
		opts = append(opts, sim.WithSeed(g.seed))
	}
	eng, err := sim.New(*g.latest.Load(), opts...)
	if err != nil {
		return err
	}
	g.loop = sim.NewLoop(eng)
	g.snap = g.loop.Latest()
	return nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if g.loop.Paused() {
			g.loop.Resume()
		} else {
			g.loop.Pause()
		}
	}

	if g.snap.Status == sim.StatusGameOver && inpututil.IsKeyJustPressed(ebiten.KeyR) {
		// restart picks up hot-reloaded tables, so rebuild rather than reset
		if err := g.startSession(); err != nil {
			return err
		}
	}

	g.snap = g.loop.Tick(readInput())

	for _, evt := range g.loop.Engine().Drain() {
		// stand-in for the audio/achievement collaborators
		g.logger.Debug("event",
			zap.String("kind", evt.Kind.String()),
			zap.Int("score_delta", evt.ScoreDelta),
		)
	}
	return nil
}

// readInput normalizes the keyboard into the simulation's input contract.
func readInput() sim.Input {
	var in sim.Input
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		in.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		in.MoveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		in.MoveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		in.MoveY += 1
	}
	in.Fire = ebiten.IsKeyPressed(ebiten.KeySpace)
	return in
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	screen := g.latest.Load().Screen
	return int(screen.Width), int(screen.Height)
}
