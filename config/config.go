// Package config holds the data tables a simulation session is built from:
// per-stage wave and boss tables plus global tunables. Everything here is
// plain data loaded before a session starts; the simulation never reads
// files mid-frame.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Enemy type names accepted in wave weight tables.
var EnemyTypes = []string{"grunt", "shooter", "dive", "scout", "tank", "elite", "kamikaze"}

// Boss fire pattern names accepted in phase tables.
var BossPatterns = []string{"radial", "spread", "burst", "spiral", "aimed"}

// Powerup kind names accepted in drop weight tables.
var PowerupKinds = []string{"shield", "rapid", "spread", "weapon", "life"}

// Formation names the spawner knows. An unknown formation in a wave table is
// not a load error: the spawner falls back to "line" at runtime.
var Formations = []string{"line", "v", "column", "diamond", "swarm"}

// Config is the full data set for one session: screen geometry, global
// tunables and the ordered stage list.
type Config struct {
	Screen   Screen   `yaml:"screen"`
	Tunables Tunables `yaml:"tunables"`
	Stages   []Stage  `yaml:"stages"`
}

// Screen is the logical playfield size the simulation runs in.
type Screen struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Tunables are the global knobs: entity caps, player handling, combo,
// powerup and difficulty tables.
type Tunables struct {
	Caps       Caps       `yaml:"caps"`
	Player     Player     `yaml:"player"`
	Combo      Combo      `yaml:"combo"`
	Powerups   Powerups   `yaml:"powerups"`
	Difficulty Difficulty `yaml:"difficulty"`
}

// Caps are the hard ceilings on concurrent entities, enforced every frame
// for predictable per-frame cost.
type Caps struct {
	PlayerBullets int `yaml:"player_bullets"`
	EnemyBullets  int `yaml:"enemy_bullets"`
	Enemies       int `yaml:"enemies"`
	Particles     int `yaml:"particles"`
	Explosions    int `yaml:"explosions"`
	ScoreTexts    int `yaml:"score_texts"`
	MuzzleFlashes int `yaml:"muzzle_flashes"`
	Powerups      int `yaml:"powerups"`
}

// Player tunables. Times are in seconds.
type Player struct {
	Speed             float64 `yaml:"speed"`
	Size              float64 `yaml:"size"`
	Lives             int     `yaml:"lives"`
	FireCooldown      float64 `yaml:"fire_cooldown"`
	RapidFireCooldown float64 `yaml:"rapid_fire_cooldown"`
	BulletSpeed       float64 `yaml:"bullet_speed"`
	HitInvincibility  float64 `yaml:"hit_invincibility"`
}

// Combo tunables: the decay timeout and the per-combo-level score bonus.
type Combo struct {
	Timeout     float64 `yaml:"timeout"`
	BonusPoints int     `yaml:"bonus_points"`
}

// Powerups tunables: base drop chance on a kill, fall speed, timed-effect
// duration and the kind weights used when rolling a drop.
type Powerups struct {
	DropChance float64            `yaml:"drop_chance"`
	FallSpeed  float64            `yaml:"fall_speed"`
	Duration   float64            `yaml:"duration"`
	Weights    map[string]float64 `yaml:"weights"`
}

// Difficulty tunables. Multipliers holds the explicit per-level table for
// the early levels; past the table the multiplier grows by Growth per level.
// Level advances every time level kills reach KillTarget + KillStep*(level-1).
type Difficulty struct {
	Multipliers []float64 `yaml:"multipliers"`
	Growth      float64   `yaml:"growth"`
	KillTarget  int       `yaml:"kill_target"`
	KillStep    int       `yaml:"kill_step"`
}

// Stage is one stage's wave list and boss table. A stage with Bonus set runs
// as a bonus round: harmless scouts at doubled density for BonusTime seconds,
// double points, no boss.
type Stage struct {
	Name      string  `yaml:"name"`
	Bonus     bool    `yaml:"bonus"`
	BonusTime float64 `yaml:"bonus_time"`
	Waves     []Wave  `yaml:"waves"`
	Boss      *Boss   `yaml:"boss"`
}

// Wave describes one spawned batch: formation shape, slot count, the delay
// before the batch spawns and the enemy type weights drawn per slot.
type Wave struct {
	Formation string             `yaml:"formation"`
	Count     int                `yaml:"count"`
	Interval  float64            `yaml:"interval"`
	Weights   map[string]float64 `yaml:"weights"`
}

// Boss is one stage's boss table. Phases must be ordered by strictly
// descending HPThreshold; the loader rejects unsorted tables instead of
// trusting authoring discipline.
type Boss struct {
	HP           int         `yaml:"hp"`
	Speed        float64     `yaml:"speed"`
	EnterY       float64     `yaml:"enter_y"`
	Size         float64     `yaml:"size"`
	FireCooldown float64     `yaml:"fire_cooldown"`
	BulletSpeed  float64     `yaml:"bullet_speed"`
	Points       int         `yaml:"points"`
	Phases       []BossPhase `yaml:"phases"`
}

// BossPhase maps an HP percentage threshold to the pattern fired while the
// boss's hp ratio still exceeds it.
type BossPhase struct {
	HPThreshold float64 `yaml:"hp_threshold"`
	Pattern     string  `yaml:"pattern"`
}

// Load reads and validates a config file.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(b)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates YAML config bytes.
func Parse(b []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate fails fast on malformed tables so a session is refused before the
// loop starts, never mid-frame.
func (c Config) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen: size %gx%g must be positive", c.Screen.Width, c.Screen.Height)
	}
	if err := c.Tunables.validate(); err != nil {
		return err
	}
	if len(c.Stages) == 0 {
		return fmt.Errorf("stages: at least one stage required")
	}
	seen := make(map[string]bool, len(c.Stages))
	for i, st := range c.Stages {
		if st.Name == "" {
			return fmt.Errorf("stage %d: missing name", i)
		}
		if seen[st.Name] {
			return fmt.Errorf("stage %q: duplicate name", st.Name)
		}
		seen[st.Name] = true
		if err := st.validate(c.Screen); err != nil {
			return fmt.Errorf("stage %q: %w", st.Name, err)
		}
	}
	return nil
}

func (t Tunables) validate() error {
	caps := map[string]int{
		"player_bullets": t.Caps.PlayerBullets,
		"enemy_bullets":  t.Caps.EnemyBullets,
		"enemies":        t.Caps.Enemies,
		"particles":      t.Caps.Particles,
		"explosions":     t.Caps.Explosions,
		"score_texts":    t.Caps.ScoreTexts,
		"muzzle_flashes": t.Caps.MuzzleFlashes,
		"powerups":       t.Caps.Powerups,
	}
	for name, v := range caps {
		if v <= 0 {
			return fmt.Errorf("caps.%s: %d must be positive", name, v)
		}
	}
	if t.Player.Speed <= 0 {
		return fmt.Errorf("player.speed: %g must be positive", t.Player.Speed)
	}
	if t.Player.Lives <= 0 {
		return fmt.Errorf("player.lives: %d must be positive", t.Player.Lives)
	}
	if t.Player.FireCooldown <= 0 || t.Player.RapidFireCooldown <= 0 {
		return fmt.Errorf("player: fire cooldowns must be positive")
	}
	if t.Combo.Timeout <= 0 {
		return fmt.Errorf("combo.timeout: %g must be positive", t.Combo.Timeout)
	}
	if t.Powerups.DropChance < 0 || t.Powerups.DropChance > 1 {
		return fmt.Errorf("powerups.drop_chance: %g must be within [0,1]", t.Powerups.DropChance)
	}
	if t.Powerups.Duration <= 0 {
		return fmt.Errorf("powerups.duration: %g must be positive", t.Powerups.Duration)
	}
	if err := validateWeights(t.Powerups.Weights, PowerupKinds, "powerups.weights"); err != nil {
		return err
	}
	if len(t.Difficulty.Multipliers) == 0 {
		return fmt.Errorf("difficulty.multipliers: explicit table required")
	}
	prev := 0.0
	for i, m := range t.Difficulty.Multipliers {
		if m < 1 || m < prev {
			return fmt.Errorf("difficulty.multipliers[%d]: %g must be ≥1 and non-decreasing", i, m)
		}
		prev = m
	}
	if t.Difficulty.Growth < 0 {
		return fmt.Errorf("difficulty.growth: %g must not be negative", t.Difficulty.Growth)
	}
	if t.Difficulty.KillTarget <= 0 {
		return fmt.Errorf("difficulty.kill_target: %d must be positive", t.Difficulty.KillTarget)
	}
	return nil
}

func (s Stage) validate(screen Screen) error {
	if s.Bonus {
		if s.BonusTime <= 0 {
			return fmt.Errorf("bonus stage needs bonus_time > 0, got %g", s.BonusTime)
		}
		if s.Boss != nil {
			return fmt.Errorf("bonus stage cannot carry a boss table")
		}
	}
	if len(s.Waves) == 0 && !s.Bonus {
		return fmt.Errorf("no waves configured")
	}
	for i, w := range s.Waves {
		if w.Count <= 0 {
			return fmt.Errorf("wave %d: count %d must be positive", i, w.Count)
		}
		if w.Interval <= 0 {
			return fmt.Errorf("wave %d: interval %g must be positive", i, w.Interval)
		}
		if err := validateWeights(w.Weights, EnemyTypes, fmt.Sprintf("wave %d weights", i)); err != nil {
			return err
		}
	}
	if s.Boss != nil {
		if err := s.Boss.validate(screen); err != nil {
			return fmt.Errorf("boss: %w", err)
		}
	}
	return nil
}

func (b Boss) validate(screen Screen) error {
	if b.HP <= 0 {
		return fmt.Errorf("hp %d must be positive", b.HP)
	}
	if b.Speed <= 0 {
		return fmt.Errorf("speed %g must be positive", b.Speed)
	}
	if b.EnterY <= 0 || b.EnterY >= screen.Height {
		return fmt.Errorf("enter_y %g must lie inside the screen (0, %g)", b.EnterY, screen.Height)
	}
	if b.FireCooldown <= 0 {
		return fmt.Errorf("fire_cooldown %g must be positive", b.FireCooldown)
	}
	if len(b.Phases) == 0 {
		return fmt.Errorf("phase table is empty")
	}
	for i, ph := range b.Phases {
		if !knownName(ph.Pattern, BossPatterns) {
			return fmt.Errorf("phase %d: unknown pattern %q", i, ph.Pattern)
		}
		if ph.HPThreshold < 0 || ph.HPThreshold >= 100 {
			return fmt.Errorf("phase %d: hp_threshold %g must be within [0,100)", i, ph.HPThreshold)
		}
		if i > 0 && ph.HPThreshold >= b.Phases[i-1].HPThreshold {
			return fmt.Errorf("phase %d: hp_threshold %g not strictly descending after %g",
				i, ph.HPThreshold, b.Phases[i-1].HPThreshold)
		}
	}
	return nil
}

func validateWeights(weights map[string]float64, known []string, where string) error {
	if len(weights) == 0 {
		return fmt.Errorf("%s: empty weight table", where)
	}
	total := 0.0
	for name, w := range weights {
		if !knownName(name, known) {
			return fmt.Errorf("%s: unknown entry %q", where, name)
		}
		if w < 0 {
			return fmt.Errorf("%s: weight for %q must not be negative", where, name)
		}
		total += w
	}
	if total <= 0 {
		return fmt.Errorf("%s: weights sum to zero", where)
	}
	return nil
}

func knownName(name string, known []string) bool {
	for _, k := range known {
		if name == k {
			return true
		}
	}
	return false
}
