package sim

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/suntan-superman/galageaux-sub001/geom"
)

// stepPlayer integrates movement from the input axes, clamps the ship to the
// screen and runs fire control. Instantaneous input effects (a ready fire
// press) apply even on a zero-delta step; only motion scales with dt.
func (e *Engine) stepPlayer(dt float64, in Input) {
	st := e.st
	p := &st.Player
	if !p.Alive {
		return
	}

	speed := e.cfg.Tunables.Player.Speed
	p.Pos.X += in.MoveX * speed * dt
	p.Pos.Y += in.MoveY * speed * dt

	half := p.Size / 2
	p.Pos.X = geom.Clamp(p.Pos.X, half, e.cfg.Screen.Width-half)
	p.Pos.Y = geom.Clamp(p.Pos.Y, half, e.cfg.Screen.Height-half)

	if p.FireCooldown > 0 {
		p.FireCooldown -= dt
	}
	if in.Fire && p.FireCooldown <= 0 {
		e.firePlayerVolley()
		if p.WeaponType == WeaponRapid {
			p.FireCooldown = e.cfg.Tunables.Player.RapidFireCooldown
		} else {
			p.FireCooldown = e.cfg.Tunables.Player.FireCooldown
		}
	}
}

// firePlayerVolley emits the shot pattern for the current weapon level:
// one, two or three mounts. A spread weapon fans the outer mounts instead
// of firing them parallel.
func (e *Engine) firePlayerVolley() {
	st := e.st
	p := st.Player
	speed := e.cfg.Tunables.Player.BulletSpeed
	muzzle := p.Pos.Add(cp.Vector{Y: -p.Size / 2})

	var offsets []float64
	switch p.WeaponLevel {
	case 1:
		offsets = []float64{0}
	case 2:
		offsets = []float64{-8, 8}
	default:
		offsets = []float64{-11, 0, 11}
	}

	limit := e.cfg.Tunables.Caps.PlayerBullets
	for i, off := range offsets {
		if len(st.PlayerBullets) >= limit {
			break
		}
		vel := cp.Vector{Y: -speed}
		if p.WeaponType == WeaponSpread && len(offsets) > 1 {
			// fan the volley: outer mounts angle away from straight up
			fan := 0.3 * (float64(i)/float64(len(offsets)-1)*2 - 1)
			vel = cp.ForAngle(-math.Pi/2 + fan).Mult(speed)
		}
		st.PlayerBullets = append(st.PlayerBullets, Bullet{
			Pos:    muzzle.Add(cp.Vector{X: off}),
			Vel:    vel,
			Size:   6,
			Owner:  OwnerPlayer,
			Damage: 1,
		})
	}
	e.spawnMuzzleFlash(muzzle)
}
