package sim

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/suntan-superman/galageaux-sub001/config"
	"github.com/suntan-superman/galageaux-sub001/geom"
)

// BossState is the boss's lifecycle phase.
type BossState uint8

const (
	BossEntering BossState = iota
	BossCombat
	BossDefeated
)

func (s BossState) String() string {
	switch s {
	case BossEntering:
		return "entering"
	case BossCombat:
		return "combat"
	default:
		return "defeated"
	}
}

// Boss is the one boss of a stage. Its fire pattern is selected per volley
// from the phase table against the current HP ratio; spiral patterns keep
// their arm angle on the record between volleys.
type Boss struct {
	Pos          cp.Vector
	Size         float64
	HP           int
	MaxHP        int
	Speed        float64
	EnterY       float64
	State        BossState
	FireCooldown float64
	FireInterval float64
	BulletSpeed  float64
	Points       int
	Phases       []config.BossPhase
	DriftPhase   float64
	SpiralAngle  float64
	defeated     bool // one-shot latch for the defeat event
}

func newBoss(table config.Boss, screen config.Screen) *Boss {
	return &Boss{
		Pos:          cp.Vector{X: screen.Width / 2, Y: -table.Size},
		Size:         table.Size,
		HP:           table.HP,
		MaxHP:        table.HP,
		Speed:        table.Speed,
		EnterY:       table.EnterY,
		State:        BossEntering,
		FireInterval: table.FireCooldown,
		FireCooldown: table.FireCooldown,
		BulletSpeed:  table.BulletSpeed,
		Points:       table.Points,
		Phases:       table.Phases,
	}
}

// Rect is the boss's collision box.
func (b *Boss) Rect() geom.Rect {
	return geom.RectCentered(b.Pos, b.Size, b.Size)
}

// CurrentPattern selects the active fire pattern: the first entry of the
// descending threshold table whose threshold the HP percentage still
// exceeds, or the last entry once nothing matches. The loader guarantees
// the table is sorted, so the scan intensifies patterns as HP drops.
func (b *Boss) CurrentPattern() string {
	if len(b.Phases) == 0 {
		return "aimed"
	}
	hpPct := float64(b.HP) / float64(b.MaxHP) * 100
	for _, ph := range b.Phases {
		if hpPct > ph.HPThreshold {
			return ph.Pattern
		}
	}
	return b.Phases[len(b.Phases)-1].Pattern
}

// stepBoss runs one boss AI tick. The fire cooldown counts down in every
// state; firing itself only happens in combat.
func (e *Engine) stepBoss(dt float64) {
	b := e.st.Boss
	if b == nil {
		return
	}

	b.FireCooldown -= dt

	switch b.State {
	case BossEntering:
		b.Pos.Y += b.Speed * dt
		if b.Pos.Y >= b.EnterY {
			b.Pos.Y = b.EnterY
			b.State = BossCombat
		}
	case BossCombat:
		b.DriftPhase += dt
		b.Pos.X = e.cfg.Screen.Width/2 + math.Sin(b.DriftPhase*0.8)*e.cfg.Screen.Width*0.3
		if b.FireCooldown <= 0 {
			e.bossVolley(b)
			b.FireCooldown = b.FireInterval
		}
	case BossDefeated:
	}
}

// bossVolley emits one volley of the active pattern, respecting the enemy
// bullet cap.
func (e *Engine) bossVolley(b *Boss) {
	player := e.st.Player.Pos
	var volley []Bullet

	switch b.CurrentPattern() {
	case "radial":
		// 12 bullets evenly around the full circle
		const n = 12
		for i := 0; i < n; i++ {
			a := 2 * math.Pi * float64(i) / n
			volley = append(volley, bossBullet(b, cp.ForAngle(a).Mult(b.BulletSpeed)))
		}
	case "spread":
		// 5-way fan about straight down
		for i := -2; i <= 2; i++ {
			a := math.Pi/2 + float64(i)*(math.Pi/9)
			volley = append(volley, bossBullet(b, cp.ForAngle(a).Mult(b.BulletSpeed)))
		}
	case "burst":
		// speed-staggered cluster chasing the player's position
		dir := aimAt(b.Pos, player)
		for i := 0; i < 6; i++ {
			speed := b.BulletSpeed * (0.7 + 0.12*float64(i))
			volley = append(volley, bossBullet(b, dir.Mult(speed)))
		}
	case "spiral":
		// 3 arms advancing a fixed step per volley; the cursor persists on
		// the boss so the arms keep rotating across volleys
		const arms = 3
		for i := 0; i < arms; i++ {
			a := b.SpiralAngle + 2*math.Pi*float64(i)/arms
			volley = append(volley, bossBullet(b, cp.ForAngle(a).Mult(b.BulletSpeed)))
		}
		b.SpiralAngle += math.Pi / 7
	case "aimed":
		// three mounts, all locked on the player's last known position
		for i := -1; i <= 1; i++ {
			mount := b.Pos.Add(cp.Vector{X: float64(i) * b.Size * 0.35})
			volley = append(volley, Bullet{
				Pos:    mount,
				Vel:    aimAt(mount, player).Mult(b.BulletSpeed * 1.2),
				Size:   10,
				Owner:  OwnerBoss,
				Damage: 1,
			})
		}
	}

	limit := e.cfg.Tunables.Caps.EnemyBullets
	for _, bl := range volley {
		if len(e.st.EnemyBullets) >= limit {
			break
		}
		e.st.EnemyBullets = append(e.st.EnemyBullets, bl)
	}
}

func bossBullet(b *Boss, vel cp.Vector) Bullet {
	return Bullet{
		Pos:    b.Pos,
		Vel:    vel,
		Size:   10,
		Owner:  OwnerBoss,
		Damage: 1,
	}
}

// aimAt returns the unit vector from a toward b, falling straight down when
// the two coincide.
func aimAt(from, to cp.Vector) cp.Vector {
	dir := to.Sub(from)
	if dir.Length() < 1e-6 {
		return cp.Vector{Y: 1}
	}
	return dir.Normalize()
}

// damageBoss applies bullet damage and fires the defeat sequence exactly
// once, no matter how many hits drive HP below zero within one frame.
func (e *Engine) damageBoss(damage int) {
	b := e.st.Boss
	if b == nil || b.State == BossDefeated {
		return
	}
	b.HP -= damage
	e.st.HitFlash = 0.06
	if b.HP > 0 || b.defeated {
		return
	}
	b.defeated = true
	b.HP = 0
	b.State = BossDefeated
	delta := e.awardScore(b.Points, b.Pos)
	e.bumpCombo()
	e.spawnExplosion(b.Pos, b.Size)
	e.spawnPowerup(b.Pos) // bosses always drop
	e.emit(Event{
		Kind:       EventBossDefeated,
		Pos:        b.Pos,
		ScoreDelta: delta,
		Stage:      e.st.stage(e.cfg).Name,
	})
}
