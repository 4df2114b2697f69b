package sim

import (
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/suntan-superman/galageaux-sub001/config"
)

// awardScore adds base plus the combo bonus for the current combo level,
// doubled during a bonus round, and floats a score pop at pos. It returns
// the actual delta for event payloads.
func (e *Engine) awardScore(base int, pos cp.Vector) int {
	st := e.st
	delta := base + e.cfg.Tunables.Combo.BonusPoints*st.Combo
	if st.BonusActive {
		delta *= 2
	}
	st.Score += delta
	e.spawnScoreText(pos, delta)
	return delta
}

// bumpCombo counts a kill toward the combo and refreshes its timeout. A
// kill with any time left on the clock keeps the chain alive, however close
// the timer was to zero.
func (e *Engine) bumpCombo() {
	st := e.st
	st.Combo++
	st.ComboTimer = e.cfg.Tunables.Combo.Timeout
	st.HUDPulse = 0.3
}

// recordKill advances the level counters and promotes the difficulty level
// when the per-level kill target is met.
func (e *Engine) recordKill() {
	st := e.st
	st.LevelKills++
	if st.BonusActive {
		st.BonusKills++
	}
	d := e.cfg.Tunables.Difficulty
	target := d.KillTarget + d.KillStep*(st.Level-1)
	if st.LevelKills >= target {
		st.Level++
		st.LevelKills = 0
		st.HUDPulse = 0.6
		e.log.Info("difficulty level up", zap.Int("level", st.Level))
	}
}

// difficultyMultiplier scales enemy fire chance and spawn density. Levels
// inside the explicit table read it directly; past the table the multiplier
// keeps growing linearly so difficulty stays monotonic.
func (e *Engine) difficultyMultiplier() float64 {
	d := e.cfg.Tunables.Difficulty
	level := e.st.Level
	if level <= len(d.Multipliers) {
		return d.Multipliers[level-1]
	}
	last := d.Multipliers[len(d.Multipliers)-1]
	return last + d.Growth*float64(level-len(d.Multipliers))
}

// spawnPowerup rolls a kind from the weight table and drops it at pos.
// Silently skipped at the powerup cap.
func (e *Engine) spawnPowerup(pos cp.Vector) {
	st := e.st
	if len(st.Powerups) >= e.cfg.Tunables.Caps.Powerups {
		return
	}
	st.Powerups = append(st.Powerups, Powerup{
		Pos:  pos,
		Size: 18,
		Kind: e.rollPowerupKind(),
	})
}

// rollPowerupKind draws from the configured kind weights in canonical order
// so the draw depends only on the RNG stream.
func (e *Engine) rollPowerupKind() PowerupKind {
	weights := e.cfg.Tunables.Powerups.Weights
	total := 0.0
	for _, name := range config.PowerupKinds {
		total += weights[name]
	}
	if total <= 0 {
		return PowerupShield
	}
	roll := e.rng.Float64() * total
	for _, name := range config.PowerupKinds {
		w := weights[name]
		if w <= 0 {
			continue
		}
		if roll < w {
			k, _ := ParsePowerupKind(name)
			return k
		}
		roll -= w
	}
	return PowerupShield
}

// applyPowerup applies a pickup. Timed effects refresh their countdown
// rather than stacking; rapid and spread occupy the same weapon slot, so
// picking up the other kind replaces both type and timer.
func (e *Engine) applyPowerup(kind PowerupKind) {
	p := &e.st.Player
	duration := e.cfg.Tunables.Powerups.Duration
	switch kind {
	case PowerupShield:
		p.Shield = true
		p.ShieldTimer = duration
	case PowerupRapid:
		p.WeaponType = WeaponRapid
		p.WeaponTimer = duration
	case PowerupSpread:
		p.WeaponType = WeaponSpread
		p.WeaponTimer = duration
	case PowerupWeapon:
		if p.WeaponLevel < 3 {
			p.WeaponLevel++
		}
	case PowerupLife:
		p.Lives++
	}
}

// decayRuleTimers runs the per-frame countdowns that are independent of the
// collision pass: combo decay, timed powerup effects, invincibility and the
// bonus round clock.
func (e *Engine) decayRuleTimers(dt float64) {
	st := e.st
	p := &st.Player

	if st.Combo > 0 {
		st.ComboTimer -= dt
		if st.ComboTimer <= 0 {
			st.Combo = 0
			st.ComboTimer = 0
		}
	}

	if p.Shield {
		p.ShieldTimer -= dt
		if p.ShieldTimer <= 0 {
			p.Shield = false
			p.ShieldTimer = 0
		}
	}

	if p.WeaponType != WeaponNone {
		p.WeaponTimer -= dt
		if p.WeaponTimer <= 0 {
			p.WeaponType = WeaponNone
			p.WeaponTimer = 0
		}
	}

	if p.Invincibility > 0 {
		p.Invincibility -= dt
		if p.Invincibility < 0 {
			p.Invincibility = 0
		}
	}

	if st.BonusActive {
		st.BonusTimer -= dt
		if st.BonusTimer <= 0 {
			st.BonusActive = false
			st.BonusTimer = 0
		}
	}
}
