package sim

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
)

// Snapshot is the immutable per-frame state handed to renderer, audio and
// stats collaborators. Every slice is a fresh copy; holding a snapshot
// across frames never observes later mutation.
type Snapshot struct {
	Session uuid.UUID
	Frame   uint64
	Status  Status

	Score      int
	Combo      int
	ComboTimer float64
	Level      int
	LevelKills int
	Stage      string
	StageLoop  int

	BonusActive bool
	BonusTimer  float64
	BonusKills  int

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

	HitFlash float64
	HUDPulse float64
}

// snapshot deep-copies the current state.
func (e *Engine) snapshot() Snapshot {
	st := e.st
	snap := Snapshot{
		Session:       e.session,
		Frame:         e.frame,
		Status:        st.Status,
		Score:         st.Score,
		Combo:         st.Combo,
		ComboTimer:    st.ComboTimer,
		Level:         st.Level,
		LevelKills:    st.LevelKills,
		Stage:         st.stage(e.cfg).Name,
		StageLoop:     st.StageLoop,
		BonusActive:   st.BonusActive,
		BonusTimer:    st.BonusTimer,
		BonusKills:    st.BonusKills,
		Player:        st.Player,
		PlayerBullets: append([]Bullet(nil), st.PlayerBullets...),
		EnemyBullets:  append([]Bullet(nil), st.EnemyBullets...),
		Enemies:       append([]Enemy(nil), st.Enemies...),
		Powerups:      append([]Powerup(nil), st.Powerups...),
		Particles:     append([]Particle(nil), st.Particles...),
		Explosions:    append([]Explosion(nil), st.Explosions...),
		ScoreTexts:    append([]ScoreText(nil), st.ScoreTexts...),
		MuzzleFlashes: append([]MuzzleFlash(nil), st.MuzzleFlashes...),
		HitFlash:      st.HitFlash,
		HUDPulse:      st.HUDPulse,
	}
	if st.Boss != nil {
		boss := *st.Boss
		snap.Boss = &boss
	}
	return snap
}

// Fingerprint digests the gameplay-relevant parts of the snapshot into a
// 64-bit hash. Two replays of the same session diverge exactly when their
// per-frame fingerprints do, which makes regressions in determinism cheap
// to detect. Visual timers are included; the session id is not, so replays
// under different ids still compare equal.
func (s *Snapshot) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [8]byte

	writeU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}
	writeF := func(v float64) { writeU64(math.Float64bits(v)) }
	writeI := func(v int) { writeU64(uint64(int64(v))) }
	writeVec := func(v cp.Vector) { writeF(v.X); writeF(v.Y) }

	writeU64(s.Frame)
	writeU64(uint64(s.Status))
	writeI(s.Score)
	writeI(s.Combo)
	writeF(s.ComboTimer)
	writeI(s.Level)
	writeI(s.LevelKills)
	writeI(s.StageLoop)
	writeI(s.BonusKills)

	writeVec(s.Player.Pos)
	writeI(s.Player.Lives)
	writeI(s.Player.WeaponLevel)
	writeU64(uint64(s.Player.WeaponType))
	if s.Player.Shield {
		writeU64(1)
	} else {
		writeU64(0)
	}
	writeF(s.Player.Invincibility)

	for _, b := range s.PlayerBullets {
		writeVec(b.Pos)
	}
	for _, b := range s.EnemyBullets {
		writeVec(b.Pos)
	}
	for _, en := range s.Enemies {
		writeVec(en.Pos)
		writeU64(uint64(en.Type))
		writeI(en.HP)
		writeU64(uint64(en.Behavior))
	}
	if s.Boss != nil {
		writeVec(s.Boss.Pos)
		writeI(s.Boss.HP)
		writeU64(uint64(s.Boss.State))
	}
	for _, p := range s.Powerups {
		writeVec(p.Pos)
		writeU64(uint64(p.Kind))
	}

	return d.Sum64()
}
