package sim

import (
	"github.com/jakecoffman/cp"

	"github.com/suntan-superman/galageaux-sub001/geom"
)

// resolveCombat runs the frame's collision passes in a fixed order: player
// bullets against enemies and the boss, enemy fire against the player,
// enemy bodies against the player, then powerup pickups. All relations
// between entities are resolved here transiently; nothing persists a
// reference past the pass.
func (e *Engine) resolveCombat() {
	e.resolvePlayerBullets()
	e.resolveEnemyBullets()
	e.resolveRams()
	e.resolvePickups()
	e.sweepDeadEnemies()
}

// resolvePlayerBullets lets each player bullet land at most one hit, on the
// first enemy (or the boss) it overlaps in iteration order. An enemy already
// killed this frame still absorbs bullets — overkill consumes the shot but
// the kill effects have already fired.
func (e *Engine) resolvePlayerBullets() {
	st := e.st
	kept := st.PlayerBullets[:0]
	for _, b := range st.PlayerBullets {
		if e.bulletLands(b) {
			continue
		}
		kept = append(kept, b)
	}
	st.PlayerBullets = kept
}

func (e *Engine) bulletLands(b Bullet) bool {
	st := e.st
	br := b.Rect()
	for i := range st.Enemies {
		en := &st.Enemies[i]
		if !geom.Overlaps(br, en.Rect()) {
			continue
		}
		wasAlive := en.HP > 0
		en.HP -= b.Damage
		if wasAlive && en.HP <= 0 {
			e.killEnemy(en)
		}
		return true
	}
	if st.Boss != nil && st.Boss.State != BossDefeated && geom.Overlaps(br, st.Boss.Rect()) {
		e.damageBoss(b.Damage)
		return true
	}
	return false
}

// resolveEnemyBullets checks hostile fire against the player. The
// invincibility window opened by the first hit shields the rest of the
// frame's bullets as a side effect, which is the intended grace period.
func (e *Engine) resolveEnemyBullets() {
	st := e.st
	kept := st.EnemyBullets[:0]
	for _, b := range st.EnemyBullets {
		if st.Player.Alive && st.Player.Invincibility <= 0 &&
			geom.Overlaps(b.Rect(), st.Player.Rect()) {
			e.hitPlayer(b.Pos)
			continue
		}
		kept = append(kept, b)
	}
	st.EnemyBullets = kept
}

// resolveRams handles enemy bodies crashing into the player. The rammer is
// destroyed either way; it scores base points but feeds no combo and rolls
// no drop.
func (e *Engine) resolveRams() {
	st := e.st
	if !st.Player.Alive {
		return
	}
	pr := st.Player.Rect()
	for i := range st.Enemies {
		en := &st.Enemies[i]
		if en.HP <= 0 || st.Player.Invincibility > 0 {
			continue
		}
		if !geom.Overlaps(pr, en.Rect()) {
			continue
		}
		e.hitPlayer(en.Pos)
		en.HP = 0
		delta := e.awardScore(en.Points, en.Pos)
		e.spawnExplosion(en.Pos, en.Size)
		e.emit(Event{
			Kind:       EventEnemyDestroyed,
			Pos:        en.Pos,
			EnemyType:  en.Type,
			ScoreDelta: delta,
			Combo:      st.Combo,
		})
	}
}

// resolvePickups applies powerups the player overlaps. Pickup uses the same
// box test as combat, not circle overlap.
func (e *Engine) resolvePickups() {
	st := e.st
	if !st.Player.Alive {
		return
	}
	pr := st.Player.Rect()
	kept := st.Powerups[:0]
	for _, p := range st.Powerups {
		if geom.Overlaps(pr, p.Rect()) {
			e.applyPowerup(p.Kind)
			e.emit(Event{Kind: EventPowerupCollected, Pos: p.Pos, Powerup: p.Kind})
			continue
		}
		kept = append(kept, p)
	}
	st.Powerups = kept
}

// sweepDeadEnemies drops everything killed during the pass.
func (e *Engine) sweepDeadEnemies() {
	st := e.st
	kept := st.Enemies[:0]
	for _, en := range st.Enemies {
		if en.HP <= 0 {
			continue
		}
		kept = append(kept, en)
	}
	st.Enemies = kept
}

// killEnemy applies the one-shot kill effects: score with the current combo
// bonus, combo bump, drop roll, kill counters and the destroyed event. The
// caller is responsible for calling this exactly once per enemy.
func (e *Engine) killEnemy(en *Enemy) {
	st := e.st
	delta := e.awardScore(en.Points, en.Pos)
	e.bumpCombo()
	if e.rng.Float64() < e.cfg.Tunables.Powerups.DropChance {
		e.spawnPowerup(en.Pos)
	}
	e.spawnExplosion(en.Pos, en.Size)
	e.recordKill()
	e.emit(Event{
		Kind:       EventEnemyDestroyed,
		Pos:        en.Pos,
		EnemyType:  en.Type,
		ScoreDelta: delta,
		Combo:      st.Combo,
	})
}

// hitPlayer lands one hit on the player: a shield absorbs it (and is
// consumed), otherwise a life is lost, the combo collapses and the hit
// invincibility window opens.
func (e *Engine) hitPlayer(from cp.Vector) {
	st := e.st
	p := &st.Player

	if p.Shield {
		p.Shield = false
		p.ShieldTimer = 0
		p.Invincibility = 0.5 // brief grace so the same volley can't double-tap
		e.emit(Event{Kind: EventPlayerHit, Pos: from, LivesLeft: p.Lives})
		return
	}

	p.Lives--
	st.Combo = 0
	st.ComboTimer = 0
	p.Invincibility = e.cfg.Tunables.Player.HitInvincibility
	st.HitFlash = 0.25
	e.spawnExplosion(p.Pos, p.Size)
	if p.Lives <= 0 {
		p.Lives = 0
		p.Alive = false
	}
	e.emit(Event{Kind: EventPlayerHit, Pos: from, LivesLeft: p.Lives})
}
