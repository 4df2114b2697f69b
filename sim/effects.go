package sim

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Visual-timer entities. These never influence gameplay; they exist so
// renderers can draw blasts and score pops without owning any state of
// their own. Spawns past a cap are silently dropped.

func (e *Engine) spawnExplosion(pos cp.Vector, size float64) {
	st := e.st
	if len(st.Explosions) < e.cfg.Tunables.Caps.Explosions {
		st.Explosions = append(st.Explosions, Explosion{
			Pos:     pos,
			Radius:  size,
			Life:    0.4,
			MaxLife: 0.4,
		})
	}
	e.spawnDebris(pos, size)
}

// spawnDebris scatters a ring of particles from a blast point. The spread
// comes from the session RNG so replays scatter identically.
func (e *Engine) spawnDebris(pos cp.Vector, size float64) {
	st := e.st
	n := 6 + int(size/8)
	for i := 0; i < n; i++ {
		if len(st.Particles) >= e.cfg.Tunables.Caps.Particles {
			return
		}
		a := e.rng.Float64() * 2 * math.Pi
		speed := 40 + e.rng.Float64()*120
		life := 0.3 + e.rng.Float64()*0.5
		st.Particles = append(st.Particles, Particle{
			Pos:     pos,
			Vel:     cp.ForAngle(a).Mult(speed),
			Size:    2 + e.rng.Float64()*3,
			Life:    life,
			MaxLife: life,
		})
	}
}

func (e *Engine) spawnScoreText(pos cp.Vector, value int) {
	st := e.st
	if len(st.ScoreTexts) >= e.cfg.Tunables.Caps.ScoreTexts {
		return
	}
	st.ScoreTexts = append(st.ScoreTexts, ScoreText{
		Pos:     pos,
		Value:   value,
		Life:    0.8,
		MaxLife: 0.8,
	})
}

func (e *Engine) spawnMuzzleFlash(pos cp.Vector) {
	st := e.st
	if len(st.MuzzleFlashes) >= e.cfg.Tunables.Caps.MuzzleFlashes {
		return
	}
	st.MuzzleFlashes = append(st.MuzzleFlashes, MuzzleFlash{
		Pos:     pos,
		Life:    0.08,
		MaxLife: 0.08,
	})
}

// decayEffects counts every visual timer down and drops what expired, plus
// the HUD pulse and hit flash scalars.
func (e *Engine) decayEffects(dt float64) {
	st := e.st

	particles := st.Particles[:0]
	for _, p := range st.Particles {
		p.Life -= dt
		if p.Life <= 0 {
			continue
		}
		p.Pos = p.Pos.Add(p.Vel.Mult(dt))
		particles = append(particles, p)
	}
	st.Particles = particles

	explosions := st.Explosions[:0]
	for _, x := range st.Explosions {
		x.Life -= dt
		if x.Life <= 0 {
			continue
		}
		explosions = append(explosions, x)
	}
	st.Explosions = explosions

	texts := st.ScoreTexts[:0]
	for _, t := range st.ScoreTexts {
		t.Life -= dt
		if t.Life <= 0 {
			continue
		}
		t.Pos.Y -= 40 * dt // drift up as it fades
		texts = append(texts, t)
	}
	st.ScoreTexts = texts

	flashes := st.MuzzleFlashes[:0]
	for _, f := range st.MuzzleFlashes {
		f.Life -= dt
		if f.Life <= 0 {
			continue
		}
		flashes = append(flashes, f)
	}
	st.MuzzleFlashes = flashes

	st.HitFlash = math.Max(0, st.HitFlash-dt)
	st.HUDPulse = math.Max(0, st.HUDPulse-dt)
}
