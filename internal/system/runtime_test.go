package system

import (
	"testing"

	"github.com/tornfelipe3-maker/customtibia-sub000/internal/formula"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/world"
)

func TestGainXPBatchCrossesOneLevel(t *testing.T) {
	rt := newTestRuntime(t, &stubSource{})
	p := rt.Player
	p.Name = "tester"
	p.Level = 30
	p.Exp = formula.XPForLevel(30) - 1 // one point short

	ups := countLevelUps(rt.Bus)

	// Two kills worth 5000 XP each, credited in one batch.
	rt.GainXP(5000)
	rt.GainXP(5000)
	flushBus(rt.Bus)

	if p.Level != 31 {
		t.Fatalf("level = %d, want 31", p.Level)
	}
	if *ups != 1 {
		t.Fatalf("level-up events = %d, want exactly 1", *ups)
	}
	wantExp := formula.XPForLevel(30) - 1 + 10000 - formula.XPForLevel(30)
	if p.Exp != wantExp {
		t.Errorf("carried exp = %d, want %d", p.Exp, wantExp)
	}
}

func TestGainXPMultiLevelOverflow(t *testing.T) {
	rt := newTestRuntime(t, &stubSource{})
	p := rt.Player
	p.Name = "tester"

	ups := countLevelUps(rt.Bus)

	// Exactly enough for levels 1→4.
	rt.GainXP(formula.XPForLevel(1) + formula.XPForLevel(2) + formula.XPForLevel(3))
	flushBus(rt.Bus)

	if p.Level != 4 || p.Exp != 0 {
		t.Fatalf("level/exp = %d/%d, want 4/0", p.Level, p.Exp)
	}
	if *ups != 3 {
		t.Errorf("level-up events = %d, want 3", *ups)
	}
	if p.HP != p.EffectiveMaxHP() {
		t.Error("level-up should refill vitals")
	}
}

func TestGainXPUnlocks(t *testing.T) {
	rt := newTestRuntime(t, &stubSource{})
	p := rt.Player // unnamed, no vocation

	rt.GainXP(formula.XPForLevel(1)) // reach level 2
	if !p.Unlocks.Named {
		t.Error("naming unlock should fire at level 2")
	}
	if p.Unlocks.HazardWarned {
		t.Error("hazard warning fired early")
	}

	for p.Level < 12 {
		rt.GainXP(formula.XPForLevel(p.Level))
	}
	if !p.Unlocks.HazardWarned {
		t.Error("hazard warning should fire at level 12")
	}
}

func TestGainSkillLoopsThresholds(t *testing.T) {
	rt := newTestRuntime(t, &stubSource{})
	s := rt.Player.Skill(world.SkillSword)

	rt.GainSkill(world.SkillSword, formula.SkillThreshold(10)+formula.SkillThreshold(11))
	if s.Level != 12 || s.Progress != 0 {
		t.Fatalf("skill = %d/%d, want 12/0", s.Level, s.Progress)
	}

	rt.GainSkill(world.SkillSword, 0)
	if s.Level != 12 {
		t.Error("zero points must not advance")
	}
}

func TestSpawnEncounterPoolsArea(t *testing.T) {
	rt := newTestRuntime(t, &stubSource{}) // Chance never fires: no affix
	startHuntOn(rt, 1, 4)                  // 4 rats, 20 HP each

	m := rt.SpawnEncounter()
	if m == nil {
		t.Fatal("spawn failed")
	}
	if m.Count != 4 || m.MaxHP != 80 {
		t.Errorf("pool = %d×, %d HP, want 4×, 80", m.Count, m.MaxHP)
	}
	if m.Affix != world.AffixNone {
		t.Errorf("unexpected affix %v", m.Affix)
	}
	if m.AttackCD != m.Template.AtkInterval {
		t.Error("spawn should arm the first attack window")
	}
}

func TestSpawnEncounterAffixCollapses(t *testing.T) {
	rt := newTestRuntime(t, &stubSource{chance: true, intnVal: 0})
	startHuntOn(rt, 1, 4)

	m := rt.SpawnEncounter()
	if m.Affix == world.AffixNone {
		t.Fatal("armed chance should roll an affix")
	}
	if m.Count != 1 {
		t.Errorf("influenced spawn count = %d, want 1", m.Count)
	}
	want := int64(float64(20) * m.Affix.HPMultiplier())
	if m.MaxHP != want {
		t.Errorf("influenced pool = %d, want %d", m.MaxHP, want)
	}
}

func TestSpawnEncounterBossIgnoresCount(t *testing.T) {
	rt := newTestRuntime(t, &stubSource{chance: true})
	startHuntOn(rt, 100, 10)

	m := rt.SpawnEncounter()
	if m.Count != 1 {
		t.Errorf("boss count = %d, want 1", m.Count)
	}
	if m.Affix != world.AffixNone {
		t.Error("bosses never roll affixes")
	}
}

func TestSpawnEncounterUnknownMonsterStops(t *testing.T) {
	rt := newTestRuntime(t, &stubSource{})
	rt.Player.Activity = world.Activity{Kind: world.ActivityHunt, MonsterID: 9999, Count: 1}

	if m := rt.SpawnEncounter(); m != nil {
		t.Fatal("spawned a monster missing from the catalog")
	}
	if !rt.Player.Activity.Idle() {
		t.Error("bad hunt target should drop to idle")
	}
}

func TestStopActivityClearsStagedActions(t *testing.T) {
	rt := newTestRuntime(t, &stubSource{})
	startHuntOn(rt, 1, 1)
	rt.SpawnEncounter()
	rt.PendingCast = rt.Spells.Get(10)

	rt.StopActivity()
	if rt.Encounter != nil || rt.PendingCast != nil || rt.PendingRune != nil {
		t.Error("stop must clear encounter and staged actions")
	}
	if !rt.Player.Activity.Idle() {
		t.Error("activity not idle after stop")
	}
}
