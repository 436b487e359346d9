package scripting

import (
	"testing"

	"go.uber.org/zap"
)

// fixedSource always rolls the top of the range, making formula output exact.
type fixedSource struct{}

func (fixedSource) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return n - 1
}
func (fixedSource) Roll(min, max int) int {
	if max <= min {
		return min
	}
	return max
}
func (fixedSource) Float64() float64   { return 0 }
func (fixedSource) Chance(float64) bool { return false }

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine("../../scripts", fixedSource{}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(e.Close)
	return e
}

func TestCalcHitMaxRoll(t *testing.T) {
	e := newTestEngine(t)
	// max_hit = floor(attack*(skill+4)/28 + level/5); fixed source rolls it.
	got := e.CalcHit(HitContext{Attack: 28, SkillLevel: 24, Level: 10})
	want := 28*28/28 + 10/5
	if got != want {
		t.Errorf("CalcHit = %d, want %d", got, want)
	}
}

func TestCalcHitNeverZero(t *testing.T) {
	e := newTestEngine(t)
	if got := e.CalcHit(HitContext{Attack: 0, SkillLevel: 10, Level: 1}); got < 1 {
		t.Errorf("fist hit = %d, want >= 1", got)
	}
}

func TestCalcMonsterHit(t *testing.T) {
	e := newTestEngine(t)
	if got := e.CalcMonsterHit(MonsterHitContext{MinDamage: 5, MaxDamage: 12}); got != 12 {
		t.Errorf("CalcMonsterHit = %d, want 12 on max roll", got)
	}
	if got := e.CalcMonsterHit(MonsterHitContext{MinDamage: 7, MaxDamage: 7}); got != 7 {
		t.Errorf("degenerate range = %d, want 7", got)
	}
}

func TestCalcSpellDamage(t *testing.T) {
	e := newTestEngine(t)
	// value + dice_count × max die + floor(magic*2 + level/5)
	got := e.CalcSpellDamage(SpellContext{Value: 10, Dice: 6, DiceCount: 2, MagicLevel: 15, Level: 20})
	want := 10 + 2*6 + 15*2 + 20/5
	if got != want {
		t.Errorf("CalcSpellDamage = %d, want %d", got, want)
	}
}

func TestCalcDeathPenalty(t *testing.T) {
	e := newTestEngine(t)
	p := e.CalcDeathPenalty(30)
	if p.XPPct != 10 || p.GoldPct != 10 {
		t.Errorf("penalty = %+v, want 10/10", p)
	}
}

func TestMissingScriptsDirFallsBack(t *testing.T) {
	e, err := NewEngine(t.TempDir(), fixedSource{}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()
	// No calc_hit loaded: the engine must degrade to the fallback, not fail.
	if got := e.CalcHit(HitContext{Attack: 30, SkillLevel: 30, Level: 30}); got != 1 {
		t.Errorf("fallback hit = %d, want 1", got)
	}
}
