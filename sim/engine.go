package sim

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/suntan-superman/galageaux-sub001/config"
)

// maxDelta caps the per-step time delta so a stalled frame cannot blow the
// physics up with a huge catch-up integration.
const maxDelta = 0.1

const stageClearDelay = 2.5

// Engine owns one session's simulation state and advances it one step per
// frame. It is single-threaded by design: a step runs to completion before
// anything observes the state, and observers only ever see snapshots.
type Engine struct {
	cfg     config.Config
	log     *zap.Logger
	rng     *rand.Rand
	seed    int64
	session uuid.UUID
	frame   uint64
	st      *State
	queue   eventQueue
	hooks   []func(Event)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger attaches a structured logger. The default is a nop logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithSeed fixes the RNG seed so a session can be replayed deterministically.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithHook registers a callback invoked for every event as it is emitted,
// in addition to the drained queue.
func WithHook(hook func(Event)) Option {
	return func(e *Engine) {
		if hook != nil {
			e.hooks = append(e.hooks, hook)
		}
	}
}

// New validates the config and builds a session. Configuration errors are
// returned here, before the loop starts; nothing fails mid-frame later.
func New(cfg config.Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sim: refusing session: %w", err)
	}
	e := &Engine{
		cfg:  cfg,
		log:  zap.NewNop(),
		seed: time.Now().UnixNano(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.rng = rand.New(rand.NewSource(e.seed))
	e.session = uuid.New()
	e.st = newState(cfg)
	e.log.Info("session start",
		zap.String("session", e.session.String()),
		zap.Int64("seed", e.seed),
		zap.String("stage", e.st.stage(cfg).Name),
	)
	return e, nil
}

// Reset replaces the whole state and starts a fresh session with the same
// tables and seed, so a reset run replays identically.
func (e *Engine) Reset() {
	e.rng = rand.New(rand.NewSource(e.seed))
	e.session = uuid.New()
	e.frame = 0
	e.st = newState(e.cfg)
	e.queue.items = nil
	e.log.Info("session reset", zap.String("session", e.session.String()))
}

// Session returns the session id carried on snapshots and events.
func (e *Engine) Session() uuid.UUID { return e.session }

// Drain returns the events emitted since the last drain, oldest first.
func (e *Engine) Drain() []Event { return e.queue.drain() }

func (e *Engine) emit(evt Event) {
	evt.Frame = e.frame
	e.queue.push(evt)
	for _, hook := range e.hooks {
		hook(evt)
	}
}

// Step advances the simulation by dt seconds under the given input snapshot
// and returns the frame's immutable state snapshot. The phase order is
// fixed: input and player movement, entity advancement, spawning, boss AI,
// combat, timer decay, terminal checks. All entities observe the same dt
// and the same input within one step.
func (e *Engine) Step(dt float64, in Input) Snapshot {
	if dt < 0 {
		dt = 0
	}
	if dt > maxDelta {
		dt = maxDelta
	}
	in = in.normalized()
	e.frame++

	st := e.st
	if st.Status == StatusGameOver {
		// terminal: let the last effects burn out, nothing else moves
		e.decayEffects(dt)
		return e.snapshot()
	}

	e.stepPlayer(dt, in)
	e.advanceEntities(dt)
	if st.Status == StatusPlaying {
		e.runSpawner(dt)
		e.maybeSpawnBoss()
	}
	e.stepBoss(dt)
	if st.Status == StatusPlaying {
		e.resolveCombat()
	}
	e.decayRuleTimers(dt)
	e.decayEffects(dt)
	e.checkTerminal(dt)
	e.enforceCaps()

	return e.snapshot()
}

// advanceEntities moves every projectile, enemy and powerup by velocity*dt
// and culls what left the screen. Enemy fire rolls happen here so a shot is
// taken from the position the renderer will draw this frame.
func (e *Engine) advanceEntities(dt float64) {
	st := e.st
	screen := e.cfg.Screen

	st.PlayerBullets = advanceBullets(st.PlayerBullets, dt, screen)
	st.EnemyBullets = advanceBullets(st.EnemyBullets, dt, screen)

	mult := e.difficultyMultiplier()
	enemies := st.Enemies[:0]
	for _, en := range st.Enemies {
		stepEnemy(&en, dt, st.Player.Pos, screen)
		if enemyGone(&en, screen) {
			continue
		}
		if en.CanShoot && en.Pos.Y > 0 && e.rng.Float64() < en.FireChance*mult*dt {
			e.enemyShot(en)
		}
		enemies = append(enemies, en)
	}
	st.Enemies = enemies

	fall := e.cfg.Tunables.Powerups.FallSpeed
	powerups := st.Powerups[:0]
	for _, p := range st.Powerups {
		p.Pos.Y += fall * dt
		if p.Pos.Y > screen.Height+p.Size {
			continue
		}
		powerups = append(powerups, p)
	}
	st.Powerups = powerups
}

func advanceBullets(bullets []Bullet, dt float64, screen config.Screen) []Bullet {
	const margin = 24
	kept := bullets[:0]
	for _, b := range bullets {
		b.Pos = b.Pos.Add(b.Vel.Mult(dt))
		if b.Pos.X < -margin || b.Pos.X > screen.Width+margin ||
			b.Pos.Y < -margin || b.Pos.Y > screen.Height+margin {
			continue
		}
		kept = append(kept, b)
	}
	return kept
}

// enemyShot emits one enemy bullet: tanks lob straight down, everything
// else leads on the player's position.
func (e *Engine) enemyShot(en Enemy) {
	st := e.st
	if len(st.EnemyBullets) >= e.cfg.Tunables.Caps.EnemyBullets {
		return
	}
	const speed = 170.0
	vel := cp.Vector{Y: speed}
	if en.Type != EnemyTank {
		vel = aimAt(en.Pos, st.Player.Pos).Mult(speed)
	}
	st.EnemyBullets = append(st.EnemyBullets, Bullet{
		Pos:    en.Pos,
		Vel:    vel,
		Size:   8,
		Owner:  OwnerEnemy,
		Damage: 1,
	})
}

// maybeSpawnBoss brings the stage boss in once every wave is spawned and
// the field is clear.
func (e *Engine) maybeSpawnBoss() {
	st := e.st
	stage := st.stage(e.cfg)
	if st.Boss != nil || stage.Boss == nil {
		return
	}
	if !st.wavesDone(e.cfg) || len(st.Enemies) > 0 || st.BonusActive {
		return
	}
	e.spawnBoss(*stage.Boss)
}

// checkTerminal runs the frame's end-state checks: player death ends the
// session; a defeated boss (or an expired bonus round) clears the stage, and
// the next stage begins after a short delay, wrapping past the last stage.
func (e *Engine) checkTerminal(dt float64) {
	st := e.st
	stage := st.stage(e.cfg)

	if !st.Player.Alive {
		st.Status = StatusGameOver
		e.emit(Event{Kind: EventGameOver, Pos: st.Player.Pos, ScoreDelta: st.Score})
		e.log.Info("game over",
			zap.Int("score", st.Score),
			zap.Uint64("frame", e.frame),
		)
		return
	}

	switch st.Status {
	case StatusPlaying:
		cleared := false
		if st.Boss != nil && st.Boss.State == BossDefeated {
			cleared = true
		}
		if stage.Bonus && !st.BonusActive {
			cleared = true
		}
		if stage.Boss == nil && !stage.Bonus && st.wavesDone(e.cfg) && len(st.Enemies) == 0 {
			cleared = true
		}
		if cleared {
			st.Status = StatusStageClear
			st.ClearTimer = stageClearDelay
			e.emit(Event{Kind: EventStageComplete, Pos: st.Player.Pos, Stage: stage.Name})
			e.log.Info("stage complete",
				zap.String("stage", stage.Name),
				zap.Int("score", st.Score),
			)
		}
	case StatusStageClear:
		st.ClearTimer -= dt
		if st.ClearTimer <= 0 {
			next := st.StageIndex + 1
			if next >= len(e.cfg.Stages) {
				// arcade wrap: the table loops and difficulty keeps climbing
				next = 0
				st.StageLoop++
			}
			st.enterStage(e.cfg, next)
			st.Status = StatusPlaying
		}
	}
}

// enforceCaps is the defensive backstop for the per-entity ceilings. The
// spawn paths already respect the caps, so any clamp here is a bug being
// contained: the excess is dropped (oldest first) and logged, never a
// mid-frame crash.
func (e *Engine) enforceCaps() {
	st := e.st
	caps := e.cfg.Tunables.Caps
	st.PlayerBullets = clampTail(e, "player_bullets", st.PlayerBullets, caps.PlayerBullets)
	st.EnemyBullets = clampTail(e, "enemy_bullets", st.EnemyBullets, caps.EnemyBullets)
	st.Enemies = clampTail(e, "enemies", st.Enemies, caps.Enemies)
	st.Powerups = clampTail(e, "powerups", st.Powerups, caps.Powerups)
	st.Particles = clampTail(e, "particles", st.Particles, caps.Particles)
	st.Explosions = clampTail(e, "explosions", st.Explosions, caps.Explosions)
	st.ScoreTexts = clampTail(e, "score_texts", st.ScoreTexts, caps.ScoreTexts)
	st.MuzzleFlashes = clampTail(e, "muzzle_flashes", st.MuzzleFlashes, caps.MuzzleFlashes)
}

func clampTail[T any](e *Engine, name string, items []T, limit int) []T {
	if len(items) <= limit {
		return items
	}
	e.log.Warn("entity cap exceeded, clamping",
		zap.String("kind", name),
		zap.Int("count", len(items)),
		zap.Int("cap", limit),
	)
	return items[len(items)-limit:]
}
