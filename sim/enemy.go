package sim

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/suntan-superman/galageaux-sub001/config"
	"github.com/suntan-superman/galageaux-sub001/geom"
)

// enemyStats are the per-type base stats applied at spawn.
type enemyStats struct {
	HP         int
	Size       float64
	Speed      float64
	Points     int
	CanShoot   bool
	FireChance float64 // base fire probability per second
	Behavior   Behavior
}

var enemyTable = map[EnemyType]enemyStats{
	EnemyGrunt:    {HP: 1, Size: 28, Speed: 70, Points: 100, Behavior: BehaviorNormal},
	EnemyShooter:  {HP: 2, Size: 30, Speed: 60, Points: 150, CanShoot: true, FireChance: 0.5, Behavior: BehaviorNormal},
	EnemyDive:     {HP: 1, Size: 26, Speed: 110, Points: 200, Behavior: BehaviorNormal},
	EnemyScout:    {HP: 1, Size: 22, Speed: 160, Points: 250, Behavior: BehaviorIdle},
	EnemyTank:     {HP: 5, Size: 40, Speed: 40, Points: 300, CanShoot: true, FireChance: 0.3, Behavior: BehaviorNormal},
	EnemyElite:    {HP: 3, Size: 32, Speed: 80, Points: 400, CanShoot: true, FireChance: 0.8, Behavior: BehaviorIdle},
	EnemyKamikaze: {HP: 1, Size: 26, Speed: 130, Points: 200, Behavior: BehaviorChase},
}

// newEnemy builds an enemy of the given type at a formation slot position.
func newEnemy(t EnemyType, pos cp.Vector) Enemy {
	stats := enemyTable[t]
	return Enemy{
		Pos:        pos,
		Size:       stats.Size,
		Type:       t,
		HP:         stats.HP,
		Speed:      stats.Speed,
		Points:     stats.Points,
		CanShoot:   stats.CanShoot,
		FireChance: stats.FireChance,
		Behavior:   stats.Behavior,
		HomeY:      math.Max(pos.Y, 60),
		SwayPhase:  pos.X * 0.05, // desync sway across a formation
	}
}

// Behavior transition triggers. Each is a pure predicate over the enemy and
// the player's last known position so the state machine can be tested one
// transition at a time.
const (
	swoopStartFraction = 0.25 // normal→swoop once this deep into the screen
	swoopEndFraction   = 0.75 // swoop→return below this line
	scoutChaseRange    = 180.0
	eliteIdleTime      = 2.5
	eliteAttackTime    = 2.0
)

// nextBehavior returns the behavior the enemy should transition to this
// frame, or ok=false to stay put.
func nextBehavior(e *Enemy, player cp.Vector, screen config.Screen) (Behavior, bool) {
	switch e.Behavior {
	case BehaviorNormal:
		// dive ships bail out of the formation descent into a swoop
		if e.Type == EnemyDive && e.Pos.Y >= screen.Height*swoopStartFraction {
			return BehaviorSwoop, true
		}
	case BehaviorSwoop:
		// pull out of the dive before leaving the screen
		if e.Pos.Y >= screen.Height*swoopEndFraction {
			return BehaviorReturn, true
		}
	case BehaviorReturn:
		// climb finished: resume holding at patrol altitude
		if e.Pos.Y <= e.HomeY {
			return BehaviorIdle, true
		}
	case BehaviorIdle:
		// scouts break into a chase when the player drifts underneath
		if e.Type == EnemyScout && math.Abs(player.X-e.Pos.X) < scoutChaseRange {
			return BehaviorChase, true
		}
		// elites strafe in on a timer
		if e.Type == EnemyElite && e.StateTime >= eliteIdleTime {
			return BehaviorAttack, true
		}
	case BehaviorAttack:
		if e.StateTime >= eliteAttackTime {
			return BehaviorReturn, true
		}
	case BehaviorChase:
		// terminal: chasers commit until they ram or leave the screen
	}
	return e.Behavior, false
}

// stepEnemy advances one enemy by dt: apply any behavior transition, then
// move according to the active behavior.
func stepEnemy(e *Enemy, dt float64, player cp.Vector, screen config.Screen) {
	if next, ok := nextBehavior(e, player, screen); ok {
		e.Behavior = next
		e.StateTime = 0
	}
	e.StateTime += dt
	e.SwayPhase += dt * 2.5

	switch e.Behavior {
	case BehaviorNormal:
		e.Pos.Y += e.Speed * dt
		e.Pos.X += math.Sin(e.SwayPhase) * e.Speed * 0.4 * dt
	case BehaviorChase:
		dir := player.Sub(e.Pos)
		if dir.Length() > 1 {
			e.Pos = e.Pos.Add(dir.Normalize().Mult(e.Speed * dt))
		}
	case BehaviorIdle:
		e.Pos.X += math.Sin(e.SwayPhase) * 30 * dt
		e.Pos.Y += (e.HomeY - e.Pos.Y) * 2 * dt
	case BehaviorSwoop:
		dir := player.Sub(e.Pos)
		dir.Y = math.Max(dir.Y, screen.Height*0.2) // always keep diving
		e.Pos = e.Pos.Add(dir.Normalize().Mult(e.Speed * 1.8 * dt))
	case BehaviorAttack:
		dx := player.X - e.Pos.X
		e.Pos.X += geom.Clamp(dx, -1, 1) * e.Speed * 1.4 * dt
		e.Pos.Y += e.Speed * 0.3 * dt
	case BehaviorReturn:
		e.Pos.Y -= e.Speed * dt
	}
}

// enemyGone reports whether the enemy has left the playfield for good:
// out the bottom or far off a side. A side margin tolerates sway, and the
// top is never an exit — everything up there is either spawning in or
// climbing back to its patrol altitude.
func enemyGone(e *Enemy, screen config.Screen) bool {
	const margin = 80
	if e.Pos.Y > screen.Height+e.Size {
		return true
	}
	return e.Pos.X < -margin || e.Pos.X > screen.Width+margin
}
