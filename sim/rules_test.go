package sim

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"
)

func TestComboResetsExactlyAtZero(t *testing.T) {
	e := newTestEngine(t)
	e.st.Combo = 4
	e.st.ComboTimer = 0.05

	e.decayRuleTimers(0.04)
	require.Equal(t, 4, e.st.Combo, "time left on the clock keeps the chain")

	e.decayRuleTimers(0.01)
	require.Zero(t, e.st.Combo, "combo resets the moment the timer reaches zero")
	require.Zero(t, e.st.ComboTimer)
}

func TestKillJustBeforeTimeoutKeepsChain(t *testing.T) {
	e := newTestEngine(t)
	e.st.Combo = 4
	e.st.ComboTimer = 0.01

	pos := cp.Vector{X: 200, Y: 200}
	addEnemy(e, EnemyGrunt, pos)
	addPlayerBullet(e, pos)
	e.resolveCombat()
	e.decayRuleTimers(frameDt)

	require.Equal(t, 5, e.st.Combo, "a kill at 0.01 still increments")
	require.InDelta(t, e.cfg.Tunables.Combo.Timeout-frameDt, e.st.ComboTimer, 1e-9, "and refreshes the clock")
}

func TestTimedEffectsRefreshNotStack(t *testing.T) {
	e := newTestEngine(t)
	p := &e.st.Player
	duration := e.cfg.Tunables.Powerups.Duration

	e.applyPowerup(PowerupShield)
	e.decayRuleTimers(duration / 2)
	require.True(t, p.Shield)
	require.InDelta(t, duration/2, p.ShieldTimer, 1e-9)

	// second pickup refreshes to the full duration, it does not add
	e.applyPowerup(PowerupShield)
	require.InDelta(t, duration, p.ShieldTimer, 1e-9)

	e.decayRuleTimers(duration + frameDt)
	require.False(t, p.Shield, "effect reverts on expiry")
}

func TestRapidAndSpreadShareTheWeaponSlot(t *testing.T) {
	e := newTestEngine(t)
	p := &e.st.Player
	duration := e.cfg.Tunables.Powerups.Duration

	e.applyPowerup(PowerupRapid)
	require.Equal(t, WeaponRapid, p.WeaponType)

	e.decayRuleTimers(duration / 2)
	e.applyPowerup(PowerupSpread)
	require.Equal(t, WeaponSpread, p.WeaponType, "the other kind replaces the slot")
	require.InDelta(t, duration, p.WeaponTimer, 1e-9, "and the timer starts over")

	e.decayRuleTimers(duration + frameDt)
	require.Equal(t, WeaponNone, p.WeaponType)
}

func TestWeaponLevelCapsAtThree(t *testing.T) {
	e := newTestEngine(t)
	for i := 0; i < 5; i++ {
		e.applyPowerup(PowerupWeapon)
	}
	require.Equal(t, 3, e.st.Player.WeaponLevel)
}

func TestLifePowerupIsInstant(t *testing.T) {
	e := newTestEngine(t)
	lives := e.st.Player.Lives
	e.applyPowerup(PowerupLife)
	require.Equal(t, lives+1, e.st.Player.Lives)
}

func TestDifficultyMultiplierTableThenFormula(t *testing.T) {
	e := newTestEngine(t)
	d := e.cfg.Tunables.Difficulty

	cases := []struct {
		level int
		want  float64
	}{
		{1, d.Multipliers[0]},
		{2, d.Multipliers[1]},
		{3, d.Multipliers[2]},
		{4, d.Multipliers[2] + d.Growth},
		{7, d.Multipliers[2] + 4*d.Growth},
	}
	prev := 0.0
	for _, tc := range cases {
		e.st.Level = tc.level
		got := e.difficultyMultiplier()
		require.InDelta(t, tc.want, got, 1e-9, "level %d", tc.level)
		require.GreaterOrEqual(t, got, prev, "difficulty is monotonic in level")
		prev = got
	}
}

func TestLevelAdvancesOnKillTarget(t *testing.T) {
	e := newTestEngine(t)
	d := e.cfg.Tunables.Difficulty

	for i := 0; i < d.KillTarget; i++ {
		e.recordKill()
	}
	require.Equal(t, 2, e.st.Level)
	require.Zero(t, e.st.LevelKills, "kill counter restarts per level")

	// the next level needs more kills
	for i := 0; i < d.KillTarget; i++ {
		e.recordKill()
	}
	require.Equal(t, 2, e.st.Level)
	for i := 0; i < d.KillStep; i++ {
		e.recordKill()
	}
	require.Equal(t, 3, e.st.Level)
}

func TestBonusRoundDoublesScoreAndTalliesKills(t *testing.T) {
	e := newTestEngine(t)
	e.st.BonusActive = true
	e.st.BonusTimer = 10

	pos := cp.Vector{X: 200, Y: 200}
	addEnemy(e, EnemyScout, pos)
	addPlayerBullet(e, pos)
	e.resolveCombat()

	require.Equal(t, enemyTable[EnemyScout].Points*2, e.st.Score)
	require.Equal(t, 1, e.st.BonusKills)

	e.decayRuleTimers(11)
	require.False(t, e.st.BonusActive, "the round ends on its own countdown")
}

func TestPowerupRollDrawsConfiguredKindsOnly(t *testing.T) {
	e := newTestEngine(t)
	e.cfg.Tunables.Powerups.Weights = map[string]float64{"life": 1}
	for i := 0; i < 20; i++ {
		require.Equal(t, PowerupLife, e.rollPowerupKind())
	}
}
