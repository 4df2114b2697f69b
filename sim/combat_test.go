package sim

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"
)

func addEnemy(e *Engine, t EnemyType, pos cp.Vector) *Enemy {
	e.st.Enemies = append(e.st.Enemies, newEnemy(t, pos))
	return &e.st.Enemies[len(e.st.Enemies)-1]
}

func addPlayerBullet(e *Engine, pos cp.Vector) {
	e.st.PlayerBullets = append(e.st.PlayerBullets, Bullet{
		Pos: pos, Size: 6, Owner: OwnerPlayer, Damage: 1,
	})
}

func TestKillAwardsScoreComboAndEvent(t *testing.T) {
	e := newTestEngine(t)
	pos := cp.Vector{X: 200, Y: 200}
	addEnemy(e, EnemyGrunt, pos)
	addPlayerBullet(e, pos)

	e.resolveCombat()

	require.Empty(t, e.st.Enemies)
	require.Empty(t, e.st.PlayerBullets, "the bullet is consumed by the hit")
	require.Equal(t, enemyTable[EnemyGrunt].Points, e.st.Score)
	require.Equal(t, 1, e.st.Combo)
	require.Equal(t, e.cfg.Tunables.Combo.Timeout, e.st.ComboTimer)
	require.Equal(t, 1, e.st.LevelKills)
	require.Equal(t, 1, drainKinds(e)[EventEnemyDestroyed])
}

func TestComboBonusScalesScore(t *testing.T) {
	e := newTestEngine(t)
	e.st.Combo = 5
	e.st.ComboTimer = 1
	pos := cp.Vector{X: 200, Y: 200}
	addEnemy(e, EnemyGrunt, pos)
	addPlayerBullet(e, pos)

	e.resolveCombat()

	want := enemyTable[EnemyGrunt].Points + e.cfg.Tunables.Combo.BonusPoints*5
	require.Equal(t, want, e.st.Score)
	require.Equal(t, 6, e.st.Combo)
}

func TestOverkillAwardsOnce(t *testing.T) {
	e := newTestEngine(t)
	pos := cp.Vector{X: 200, Y: 200}
	en := addEnemy(e, EnemyTank, pos)
	en.HP = 10

	// two bullets, each enough to kill on its own, land the same frame
	addPlayerBullet(e, pos)
	addPlayerBullet(e, pos)
	e.st.PlayerBullets[0].Damage = 10
	e.st.PlayerBullets[1].Damage = 10

	e.resolveCombat()

	require.Empty(t, e.st.Enemies, "the enemy is removed")
	require.Empty(t, e.st.PlayerBullets, "overkill still consumes the second bullet")
	require.Equal(t, enemyTable[EnemyTank].Points, e.st.Score, "score awarded exactly once")
	require.Equal(t, 1, e.st.Combo, "combo counted exactly once")
	require.LessOrEqual(t, len(e.st.Powerups), 1, "at most one drop roll performed")
	require.Equal(t, 1, drainKinds(e)[EventEnemyDestroyed])
}

func TestBulletHitsAtMostOneEnemy(t *testing.T) {
	e := newTestEngine(t)
	pos := cp.Vector{X: 200, Y: 200}
	addEnemy(e, EnemyTank, pos)
	addEnemy(e, EnemyTank, pos) // stacked on the same spot
	addPlayerBullet(e, pos)

	e.resolveCombat()

	require.Equal(t, enemyTable[EnemyTank].HP-1, e.st.Enemies[0].HP, "first in iteration order takes the hit")
	require.Equal(t, enemyTable[EnemyTank].HP, e.st.Enemies[1].HP, "second enemy untouched")
}

func TestShieldAbsorbsHit(t *testing.T) {
	e := newTestEngine(t)
	p := &e.st.Player
	p.Shield = true
	p.ShieldTimer = 3
	lives := p.Lives
	e.st.EnemyBullets = append(e.st.EnemyBullets, Bullet{
		Pos: p.Pos, Size: 8, Owner: OwnerEnemy, Damage: 1,
	})

	e.resolveCombat()

	require.Equal(t, lives, p.Lives, "a shielded hit costs no life")
	require.False(t, p.Shield, "the shield is consumed instead")
	require.Zero(t, p.ShieldTimer)
	require.Empty(t, e.st.EnemyBullets)
	require.Equal(t, 1, drainKinds(e)[EventPlayerHit])
}

func TestUnshieldedHitCostsLifeAndCombo(t *testing.T) {
	e := newTestEngine(t)
	p := &e.st.Player
	lives := p.Lives
	e.st.Combo = 7
	e.st.ComboTimer = 1.5
	e.st.EnemyBullets = append(e.st.EnemyBullets, Bullet{
		Pos: p.Pos, Size: 8, Owner: OwnerEnemy, Damage: 1,
	})

	e.resolveCombat()

	require.Equal(t, lives-1, p.Lives)
	require.Zero(t, e.st.Combo, "a hit collapses the combo")
	require.Equal(t, e.cfg.Tunables.Player.HitInvincibility, p.Invincibility)
}

func TestInvincibilityBlocksFollowupHits(t *testing.T) {
	e := newTestEngine(t)
	p := &e.st.Player
	lives := p.Lives
	for i := 0; i < 3; i++ {
		e.st.EnemyBullets = append(e.st.EnemyBullets, Bullet{
			Pos: p.Pos, Size: 8, Owner: OwnerEnemy, Damage: 1,
		})
	}

	e.resolveCombat()

	require.Equal(t, lives-1, p.Lives, "one volley, one life: i-frames cover the rest")
	require.Len(t, e.st.EnemyBullets, 2, "blocked bullets survive the pass")
}

func TestRamDestroysEnemyWithoutComboOrDrop(t *testing.T) {
	e := newTestEngine(t)
	p := &e.st.Player
	lives := p.Lives
	addEnemy(e, EnemyKamikaze, p.Pos)

	e.resolveCombat()

	require.Empty(t, e.st.Enemies, "the rammer is destroyed")
	require.Equal(t, lives-1, p.Lives)
	require.Zero(t, e.st.Combo, "ram kills feed no combo")
	require.Empty(t, e.st.Powerups, "ram kills roll no drop")
	require.Equal(t, enemyTable[EnemyKamikaze].Points, e.st.Score)
}

func TestPickupUsesBoxOverlap(t *testing.T) {
	e := newTestEngine(t)
	p := &e.st.Player

	// corner-touching boxes overlap under the strict-inequality policy
	corner := p.Rect()
	e.st.Powerups = append(e.st.Powerups, Powerup{
		Pos:  cp.Vector{X: corner.X + corner.Width + 9, Y: corner.Y + corner.Height + 9},
		Size: 18,
		Kind: PowerupShield,
	})

	e.resolveCombat()

	require.Empty(t, e.st.Powerups, "edge contact collects the powerup")
	require.True(t, p.Shield)
	require.Equal(t, 1, drainKinds(e)[EventPowerupCollected])
}

func TestDeadPlayerCollectsNothing(t *testing.T) {
	e := newTestEngine(t)
	e.st.Player.Alive = false
	e.st.Powerups = append(e.st.Powerups, Powerup{Pos: e.st.Player.Pos, Size: 18, Kind: PowerupLife})

	e.resolveCombat()

	require.Len(t, e.st.Powerups, 1)
}
