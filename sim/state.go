package sim

import (
	"github.com/jakecoffman/cp"

	"github.com/suntan-superman/galageaux-sub001/config"
)

// Status is the session's terminal-state flag.
type Status uint8

const (
	StatusPlaying Status = iota
	StatusStageClear
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusStageClear:
		return "stage_clear"
	case StatusGameOver:
		return "game_over"
	default:
		return "playing"
	}
}

// State is the aggregate root: it exclusively owns every entity collection
// plus the scoring, combo and progression counters. Exactly one live State
// exists per session and it is replaced wholesale on reset, never patched
// field by field.
type State struct {
	Player        Player
	PlayerBullets []Bullet
	EnemyBullets  []Bullet
	Enemies       []Enemy
	Boss          *Boss
	Powerups      []Powerup
	Particles     []Particle
	Explosions    []Explosion
	ScoreTexts    []ScoreText
	MuzzleFlashes []MuzzleFlash

	Score      int
	Combo      int
	ComboTimer float64
	Level      int
	LevelKills int

	StageIndex int
	StageLoop  int
	WaveIndex  int
	SpawnTimer float64
	ClearTimer float64

	BonusActive bool
	BonusTimer  float64
	BonusKills  int

	Status   Status
	HitFlash float64
	HUDPulse float64
}

// newState builds the fresh aggregate a session starts from.
func newState(cfg config.Config) *State {
	st := &State{
		Player: Player{
			Pos: cp.Vector{
				X: cfg.Screen.Width / 2,
				Y: cfg.Screen.Height - cfg.Tunables.Player.Size*2,
			},
			Size:        cfg.Tunables.Player.Size,
			Alive:       true,
			Lives:       cfg.Tunables.Player.Lives,
			WeaponLevel: 1,
			WeaponType:  WeaponNone,
		},
		Level:  1,
		Status: StatusPlaying,
	}
	st.enterStage(cfg, 0)
	return st
}

// enterStage resets the wave cursor and bonus flags for the given stage.
func (st *State) enterStage(cfg config.Config, index int) {
	stage := cfg.Stages[index]
	st.StageIndex = index
	st.WaveIndex = 0
	st.ClearTimer = 0
	st.Boss = nil
	st.BonusActive = stage.Bonus
	st.BonusTimer = stage.BonusTime
	if len(stage.Waves) > 0 {
		st.SpawnTimer = stage.Waves[0].Interval
	} else {
		st.SpawnTimer = 0
	}
}

// stage returns the current stage's tables.
func (st *State) stage(cfg config.Config) config.Stage {
	return cfg.Stages[st.StageIndex]
}

// wavesDone reports whether every wave of the current stage has spawned.
func (st *State) wavesDone(cfg config.Config) bool {
	return st.WaveIndex >= len(st.stage(cfg).Waves)
}
