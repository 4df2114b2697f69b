package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/suntan-superman/galageaux-sub001/geom"
	"github.com/suntan-superman/galageaux-sub001/sim"
)

var enemyColors = map[sim.EnemyType]color.RGBA{
	sim.EnemyGrunt:    colornames.Indianred,
	sim.EnemyShooter:  colornames.Orange,
	sim.EnemyDive:     colornames.Orchid,
	sim.EnemyScout:    colornames.Turquoise,
	sim.EnemyTank:     colornames.Peru,
	sim.EnemyElite:    colornames.Gold,
	sim.EnemyKamikaze: colornames.Crimson,
}

var powerupColors = map[sim.PowerupKind]color.RGBA{
	sim.PowerupShield: colornames.Deepskyblue,
	sim.PowerupRapid:  colornames.Yellow,
	sim.PowerupSpread: colornames.Violet,
	sim.PowerupWeapon: colornames.Lime,
	sim.PowerupLife:   colornames.Hotpink,
}

func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.snap
	screen.Fill(colornames.Black)

	for _, p := range snap.Particles {
		fade := p.Life / p.MaxLife
		c := colornames.Lightsteelblue
		c.A = uint8(255 * fade)
		vector.DrawFilledCircle(screen, float32(p.Pos.X), float32(p.Pos.Y), float32(p.Size), c, false)
	}

	for _, pu := range snap.Powerups {
		drawBox(screen, pu.Rect(), powerupColors[pu.Kind])
	}

	for _, en := range snap.Enemies {
		drawBox(screen, en.Rect(), enemyColors[en.Type])
	}

	if b := snap.Boss; b != nil {
		drawBox(screen, b.Rect(), colornames.Darkred)
		// hp bar over the boss
		w := float32(b.Size) * float32(b.HP) / float32(b.MaxHP)
		vector.DrawFilledRect(screen, float32(b.Pos.X-b.Size/2), float32(b.Pos.Y-b.Size/2-10), w, 4, colornames.Red, false)
	}

	for _, bl := range snap.PlayerBullets {
		drawBox(screen, bl.Rect(), colornames.White)
	}
	for _, bl := range snap.EnemyBullets {
		drawBox(screen, bl.Rect(), colornames.Orangered)
	}

	if snap.Player.Alive {
		c := colornames.Skyblue
		if snap.Player.Invincibility > 0 && int(snap.Frame/4)%2 == 0 {
			c.A = 90 // blink through the i-frames
		}
		drawBox(screen, snap.Player.Rect(), c)
		if snap.Player.Shield {
			vector.StrokeCircle(screen, float32(snap.Player.Pos.X), float32(snap.Player.Pos.Y),
				float32(snap.Player.Size), 2, colornames.Deepskyblue, false)
		}
	}

	for _, x := range snap.Explosions {
		fade := x.Life / x.MaxLife
		c := colornames.Orange
		c.A = uint8(200 * fade)
		r := x.Radius * (1.5 - fade)
		vector.StrokeCircle(screen, float32(x.Pos.X), float32(x.Pos.Y), float32(r), 3, c, false)
	}

	for _, st := range snap.ScoreTexts {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("+%d", st.Value), int(st.Pos.X), int(st.Pos.Y))
	}

	hud := fmt.Sprintf("score %d  combo x%d  lives %d  level %d  stage %s  fps %.0f",
		snap.Score, snap.Combo, snap.Player.Lives, snap.Level, snap.Stage, ebiten.ActualFPS())
	if snap.BonusActive {
		hud += fmt.Sprintf("  BONUS %.0fs", snap.BonusTimer)
	}
	ebitenutil.DebugPrint(screen, hud)

	switch {
	case g.loop.Paused():
		ebitenutil.DebugPrintAt(screen, "PAUSED", int(snap.Player.Pos.X)-20, 60)
	case snap.Status == sim.StatusGameOver:
		ebitenutil.DebugPrintAt(screen, "GAME OVER - press R", 180, 300)
	case snap.Status == sim.StatusStageClear:
		ebitenutil.DebugPrintAt(screen, "STAGE CLEAR", 200, 300)
	}
}

func drawBox(screen *ebiten.Image, r geom.Rect, c color.RGBA) {
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), c, false)
}
