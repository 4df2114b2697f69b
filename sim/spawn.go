package sim

import (
	"math"
	"math/rand"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/suntan-superman/galageaux-sub001/config"
)

// formationSlots places count spawn slots just above the screen according to
// the named formation. Placement is deterministic given (name, count, screen
// width); only the type drawn per slot consumes randomness. Unknown names
// fall back to "line".
func formationSlots(name string, count int, screen config.Screen) []cp.Vector {
	if count <= 0 {
		return nil
	}
	cx := screen.Width / 2
	slots := make([]cp.Vector, 0, count)

	switch name {
	case "v":
		// symmetric wedge around top-center, lead ship lowest
		for i := 0; i < count; i++ {
			k := float64(i) - float64(count-1)/2
			slots = append(slots, cp.Vector{
				X: cx + k*54,
				Y: -30 - math.Abs(k)*36,
			})
		}
	case "column":
		for i := 0; i < count; i++ {
			slots = append(slots, cp.Vector{X: cx, Y: -40 - float64(i)*52})
		}
	case "diamond":
		// slots on the perimeter of a rhombus above the screen
		for i := 0; i < count; i++ {
			a := 2 * math.Pi * float64(i) / float64(count)
			dx, dy := math.Cos(a), math.Sin(a)
			s := math.Abs(dx) + math.Abs(dy)
			slots = append(slots, cp.Vector{
				X: cx + dx/s*90,
				Y: -90 + dy/s*55,
			})
		}
	case "swarm":
		// low-discrepancy scatter: jittered but fully determined by the slot index
		for i := 0; i < count; i++ {
			fx := math.Mod(float64(i)*0.6180339887+0.31, 1)
			fy := math.Mod(float64(i)*0.7548776662+0.17, 1)
			slots = append(slots, cp.Vector{
				X: screen.Width*0.1 + fx*screen.Width*0.8,
				Y: -30 - fy*110,
			})
		}
	default: // "line" and anything unrecognized
		for i := 0; i < count; i++ {
			slots = append(slots, cp.Vector{
				X: screen.Width * float64(i+1) / float64(count+1),
				Y: -40,
			})
		}
	}
	return slots
}

// pickEnemyType draws one type from a wave's weight table. Iteration runs in
// the canonical type order so the draw depends only on the RNG stream, not
// on map ordering.
func pickEnemyType(rng *rand.Rand, weights map[string]float64) EnemyType {
	total := 0.0
	for _, name := range config.EnemyTypes {
		total += weights[name]
	}
	if total <= 0 {
		return EnemyGrunt
	}
	roll := rng.Float64() * total
	for _, name := range config.EnemyTypes {
		w := weights[name]
		if w <= 0 {
			continue
		}
		if roll < w {
			t, _ := ParseEnemyType(name)
			return t
		}
		roll -= w
	}
	return EnemyGrunt
}

// runSpawner counts the spawn interval down and releases the next wave when
// it elapses. Hitting the enemy cap mid-batch drops the remaining slots;
// the wave is consumed either way, never retried.
func (e *Engine) runSpawner(dt float64) {
	st := e.st
	if st.Boss != nil {
		return
	}

	stage := st.stage(e.cfg)
	if len(stage.Waves) == 0 {
		return
	}
	if st.wavesDone(e.cfg) {
		if !st.BonusActive {
			return
		}
		// bonus rounds cycle their waves until the round timer runs out
		st.WaveIndex = 0
	}

	st.SpawnTimer -= dt
	if st.SpawnTimer > 0 {
		return
	}

	wave := stage.Waves[st.WaveIndex]
	e.spawnWave(wave)
	st.WaveIndex++

	next := wave
	if st.WaveIndex < len(stage.Waves) {
		next = stage.Waves[st.WaveIndex]
	}
	interval := next.Interval / e.difficultyMultiplier()
	if st.BonusActive {
		interval /= 2 // doubled spawn density during a bonus round
	}
	st.SpawnTimer = interval
}

func (e *Engine) spawnWave(wave config.Wave) {
	st := e.st
	limit := e.cfg.Tunables.Caps.Enemies
	for _, slot := range formationSlots(wave.Formation, wave.Count, e.cfg.Screen) {
		if len(st.Enemies) >= limit {
			break
		}
		t := pickEnemyType(e.rng, wave.Weights)
		enemy := newEnemy(t, slot)
		if st.BonusActive {
			// bonus rounds are target practice: nothing shoots back
			enemy.CanShoot = false
			enemy.FireChance = 0
		}
		st.Enemies = append(st.Enemies, enemy)
	}
}

// spawnBoss brings in the stage boss once all waves are down.
func (e *Engine) spawnBoss(table config.Boss) {
	e.st.Boss = newBoss(table, e.cfg.Screen)
	e.log.Info("boss entering",
		zap.String("stage", e.st.stage(e.cfg).Name),
		zap.Int("hp", table.HP),
	)
}
