// Package sim is the real-time simulation core of the shooter: it advances
// player, bullets, enemies, boss, particles and powerups one frame at a
// time, resolves collisions, drives enemy and boss AI, and produces the
// scoring, combo and difficulty state downstream collaborators consume.
package sim

import (
	"github.com/jakecoffman/cp"

	"github.com/suntan-superman/galageaux-sub001/geom"
)

// BulletOwner tags who fired a bullet.
type BulletOwner uint8

const (
	OwnerPlayer BulletOwner = iota
	OwnerEnemy
	OwnerBoss
)

// Bullet is a projectile in flight. Removed when it leaves the screen or
// lands a hit.
type Bullet struct {
	Pos    cp.Vector
	Vel    cp.Vector
	Size   float64
	Owner  BulletOwner
	Damage int
}

// Rect is the bullet's collision box.
func (b Bullet) Rect() geom.Rect {
	return geom.RectCentered(b.Pos, b.Size, b.Size)
}

// WeaponType is the player's active timed weapon modifier.
type WeaponType uint8

const (
	WeaponNone WeaponType = iota
	WeaponRapid
	WeaponSpread
)

func (w WeaponType) String() string {
	switch w {
	case WeaponRapid:
		return "rapid"
	case WeaponSpread:
		return "spread"
	default:
		return "none"
	}
}

// Player is the one player ship of a session.
type Player struct {
	Pos           cp.Vector
	Size          float64
	Alive         bool
	Lives         int
	WeaponLevel   int
	WeaponType    WeaponType
	Shield        bool
	ShieldTimer   float64
	WeaponTimer   float64
	Invincibility float64
	FireCooldown  float64
}

// Rect is the player's collision box.
func (p Player) Rect() geom.Rect {
	return geom.RectCentered(p.Pos, p.Size, p.Size)
}

// EnemyType selects an enemy's stats and initial behavior.
type EnemyType uint8

const (
	EnemyGrunt EnemyType = iota
	EnemyShooter
	EnemyDive
	EnemyScout
	EnemyTank
	EnemyElite
	EnemyKamikaze
)

func (t EnemyType) String() string {
	switch t {
	case EnemyGrunt:
		return "grunt"
	case EnemyShooter:
		return "shooter"
	case EnemyDive:
		return "dive"
	case EnemyScout:
		return "scout"
	case EnemyTank:
		return "tank"
	case EnemyElite:
		return "elite"
	case EnemyKamikaze:
		return "kamikaze"
	default:
		return "unknown"
	}
}

// ParseEnemyType maps a config table name to an EnemyType.
func ParseEnemyType(name string) (EnemyType, bool) {
	switch name {
	case "grunt":
		return EnemyGrunt, true
	case "shooter":
		return EnemyShooter, true
	case "dive":
		return EnemyDive, true
	case "scout":
		return EnemyScout, true
	case "tank":
		return EnemyTank, true
	case "elite":
		return EnemyElite, true
	case "kamikaze":
		return EnemyKamikaze, true
	default:
		return EnemyGrunt, false
	}
}

// Behavior is an enemy's movement state. Transitions are handled by
// stepEnemy; see enemy.go for the trigger conditions.
type Behavior uint8

const (
	BehaviorNormal Behavior = iota
	BehaviorChase
	BehaviorIdle
	BehaviorSwoop
	BehaviorAttack
	BehaviorReturn
)

func (b Behavior) String() string {
	switch b {
	case BehaviorNormal:
		return "normal"
	case BehaviorChase:
		return "chase"
	case BehaviorIdle:
		return "idle"
	case BehaviorSwoop:
		return "swoop"
	case BehaviorAttack:
		return "attack"
	case BehaviorReturn:
		return "return"
	default:
		return "unknown"
	}
}

// Enemy is one hostile ship. Behavior-specific bookkeeping (state timer,
// sway phase, patrol altitude) lives on the record so the state machine has
// no hidden storage.
type Enemy struct {
	Pos        cp.Vector
	Size       float64
	Type       EnemyType
	HP         int
	Speed      float64
	Points     int
	CanShoot   bool
	FireChance float64
	Behavior   Behavior
	StateTime  float64
	SwayPhase  float64
	HomeY      float64
}

// Rect is the enemy's collision box.
func (e Enemy) Rect() geom.Rect {
	return geom.RectCentered(e.Pos, e.Size, e.Size)
}

// PowerupKind selects a powerup's pickup effect.
type PowerupKind uint8

const (
	PowerupShield PowerupKind = iota
	PowerupRapid
	PowerupSpread
	PowerupWeapon
	PowerupLife
)

func (k PowerupKind) String() string {
	switch k {
	case PowerupShield:
		return "shield"
	case PowerupRapid:
		return "rapid"
	case PowerupSpread:
		return "spread"
	case PowerupWeapon:
		return "weapon"
	case PowerupLife:
		return "life"
	default:
		return "unknown"
	}
}

// ParsePowerupKind maps a config weight table name to a PowerupKind.
func ParsePowerupKind(name string) (PowerupKind, bool) {
	switch name {
	case "shield":
		return PowerupShield, true
	case "rapid":
		return PowerupRapid, true
	case "spread":
		return PowerupSpread, true
	case "weapon":
		return PowerupWeapon, true
	case "life":
		return PowerupLife, true
	default:
		return PowerupShield, false
	}
}

// Powerup falls straight down until picked up or off screen.
type Powerup struct {
	Pos  cp.Vector
	Size float64
	Kind PowerupKind
}

// Rect is the powerup's pickup box.
func (p Powerup) Rect() geom.Rect {
	return geom.RectCentered(p.Pos, p.Size, p.Size)
}

// Particle is a short-lived visual fleck.
type Particle struct {
	Pos     cp.Vector
	Vel     cp.Vector
	Size    float64
	Life    float64
	MaxLife float64
}

// Explosion is an expanding blast marker.
type Explosion struct {
	Pos     cp.Vector
	Radius  float64
	Life    float64
	MaxLife float64
}

// ScoreText is a floating score pop shown where points were earned.
type ScoreText struct {
	Pos     cp.Vector
	Value   int
	Life    float64
	MaxLife float64
}

// MuzzleFlash marks a gun muzzle for a few frames after a shot.
type MuzzleFlash struct {
	Pos     cp.Vector
	Life    float64
	MaxLife float64
}
