package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/suntan-superman/galageaux-sub001/config"
)

func testBossTable() config.Boss {
	return config.Boss{
		HP:           100,
		Speed:        80,
		EnterY:       120,
		Size:         80,
		FireCooldown: 1.0,
		BulletSpeed:  200,
		Points:       3000,
		Phases: []config.BossPhase{
			{HPThreshold: 80, Pattern: "radial"},
			{HPThreshold: 50, Pattern: "spread"},
			{HPThreshold: 20, Pattern: "burst"},
		},
	}
}

func TestBossCurrentPattern(t *testing.T) {
	cases := []struct {
		name string
		hp   int
		want string
	}{
		{"full health", 100, "radial"},
		{"just above first threshold", 81, "radial"},
		{"at first threshold falls through", 80, "spread"},
		{"mid table", 55, "spread"},
		{"above last threshold", 21, "spread"},
		{"low health", 15, "burst"},
		{"nothing matches falls to last entry", 1, "burst"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := newBoss(testBossTable(), config.Screen{Width: 480, Height: 720})
			b.HP = tc.hp
			require.Equal(t, tc.want, b.CurrentPattern())
		})
	}
}

func TestBossEntranceThenCombat(t *testing.T) {
	e := newTestEngine(t)
	e.st.Boss = newBoss(testBossTable(), e.cfg.Screen)
	b := e.st.Boss
	require.Equal(t, BossEntering, b.State)

	// descend; no fire while entering, whatever the cooldown says
	for i := 0; i < 600 && b.State == BossEntering; i++ {
		e.stepBoss(frameDt)
		require.Empty(t, e.st.EnemyBullets, "an entering boss cannot fire")
	}

	require.Equal(t, BossCombat, b.State)
	require.Equal(t, b.EnterY, b.Pos.Y, "entrance stops exactly at the configured line")
}

func TestBossCooldownGatesVolleys(t *testing.T) {
	e := newTestEngine(t)
	e.st.Boss = newBoss(testBossTable(), e.cfg.Screen)
	b := e.st.Boss
	b.State = BossCombat
	b.Pos.Y = b.EnterY

	// cooldown still counting: no volley
	e.stepBoss(frameDt)
	require.Empty(t, e.st.EnemyBullets)

	// run the cooldown out: exactly one volley, then the gate closes again
	for i := 0; i < 70; i++ {
		e.stepBoss(frameDt)
	}
	require.NotEmpty(t, e.st.EnemyBullets)
	require.Equal(t, 12, len(e.st.EnemyBullets), "radial volley is 12 bullets around the circle")
	require.Greater(t, b.FireCooldown, 0.0, "cooldown reset after the volley")
}

func TestBossSpiralCursorPersists(t *testing.T) {
	e := newTestEngine(t)
	table := testBossTable()
	table.Phases = []config.BossPhase{{HPThreshold: 0, Pattern: "spiral"}}
	e.st.Boss = newBoss(table, e.cfg.Screen)
	b := e.st.Boss
	b.State = BossCombat
	b.HP = 10 // falls through to the last (only) entry

	e.bossVolley(b)
	first := b.SpiralAngle
	e.bossVolley(b)
	require.Greater(t, b.SpiralAngle, first, "spiral arms advance between volleys")
}

func TestBossDefeatIsIdempotent(t *testing.T) {
	e := newTestEngine(t)
	e.st.Boss = newBoss(testBossTable(), e.cfg.Screen)
	e.st.Boss.State = BossCombat
	e.st.Boss.HP = 1

	// two hits land in the same frame; hp is driven well below zero
	e.damageBoss(10)
	e.damageBoss(10)

	require.Equal(t, BossDefeated, e.st.Boss.State)
	require.Equal(t, 0, e.st.Boss.HP)
	counts := drainKinds(e)
	require.Equal(t, 1, counts[EventBossDefeated], "exactly one defeat event despite overkill")
	require.Equal(t, 3000, e.st.Score, "points awarded once")
	require.Len(t, e.st.Powerups, 1, "a boss always drops exactly one powerup")
}

func TestBossVolleyRespectsBulletCap(t *testing.T) {
	e := newTestEngine(t)
	e.st.Boss = newBoss(testBossTable(), e.cfg.Screen)
	b := e.st.Boss
	b.State = BossCombat

	limit := e.cfg.Tunables.Caps.EnemyBullets
	e.st.EnemyBullets = make([]Bullet, limit-3)
	e.bossVolley(b)
	require.Len(t, e.st.EnemyBullets, limit, "volley fills to the cap and drops the rest")
}

func TestAimedPatternTracksPlayer(t *testing.T) {
	e := newTestEngine(t)
	table := testBossTable()
	table.Phases = []config.BossPhase{{HPThreshold: 0, Pattern: "aimed"}}
	e.st.Boss = newBoss(table, e.cfg.Screen)
	b := e.st.Boss
	b.State = BossCombat
	b.Pos.Y = b.EnterY
	e.st.Player.Pos.X = b.Pos.X // directly underneath

	e.bossVolley(b)
	require.NotEmpty(t, e.st.EnemyBullets)
	for _, bl := range e.st.EnemyBullets {
		require.Greater(t, bl.Vel.Y, 0.0, "aimed bullets head down toward the player")
	}
}
