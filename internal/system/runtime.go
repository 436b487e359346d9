// Package system implements the per-tick simulation: regeneration, cooldowns,
// the automation governor, combat resolution, training, sub-system timers and
// the death check. Systems run in fixed phase order under a single scheduler;
// nothing in here is safe for concurrent use.
package system

import (
	"go.uber.org/zap"

	"github.com/tornfelipe3-maker/customtibia-sub000/internal/config"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/core/event"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/data"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/formula"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/rng"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/scripting"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/world"
)

// Tick pacing constants, in ticks (1 tick = 1 game-second).
const (
	AttackIntervalTicks = 2 // player basic attack cadence
	PotionCooldownTicks = 1
	RuneCooldownTicks   = 1
	RegenIntervalTicks  = 6 // pulse interval for passive regen

	// AffixChance is the per-spawn probability of an influenced monster.
	AffixChance = 0.02

	// ExecuteThresholdPct gates the executioner equipment bonus.
	ExecuteThresholdPct = 25

	// CritMultiplier scales a critical player hit.
	CritMultiplier = 2.0

	// StaminaRegenIdleTicks is how many idle ticks restore one stamina second.
	StaminaRegenIdleTicks = 3
)

// Runtime is the shared mutable state every system operates on. It is owned
// by the session facade; the scheduler is the only writer during a tick.
type Runtime struct {
	Player *world.Player

	Monsters *data.MonsterTable
	Items    *data.ItemTable
	Spells   *data.SpellTable
	Loot     *data.LootTable
	Tasks    *data.TaskTable

	RNG rng.Source
	Lua *scripting.Engine
	Bus *event.Bus
	Log *zap.Logger

	Gameplay config.GameplayConfig

	Tick      int64
	Encounter *world.MonsterInstance

	// Bot decisions for the current tick, consumed by the combat system.
	PendingCast *data.SpellInfo
	PendingRune *data.ItemTemplate

	// Death is the write-once report of the most recent death, consumed by
	// the facade.
	Death *world.DeathReport

	// Quiet suppresses presentation events during offline replay; gameplay
	// state changes still happen.
	Quiet  bool
	Report *world.OfflineReport

	// Kills accumulates settled kills by monster id for the global stat
	// sync, live and replayed alike. Drained by the facade on save.
	Kills map[int32]int64

	splatID int64
}

// NewRuntime assembles a runtime around a loaded player and catalogs.
func NewRuntime(p *world.Player, monsters *data.MonsterTable, items *data.ItemTable,
	spells *data.SpellTable, loot *data.LootTable, tasks *data.TaskTable,
	src rng.Source, lua *scripting.Engine, bus *event.Bus,
	gameplay config.GameplayConfig, log *zap.Logger) *Runtime {
	return &Runtime{
		Player:   p,
		Monsters: monsters,
		Items:    items,
		Spells:   spells,
		Loot:     loot,
		Tasks:    tasks,
		RNG:      src,
		Lua:      lua,
		Bus:      bus,
		Gameplay: gameplay,
		Log:      log,
		Kills:    make(map[int32]int64),
	}
}

// StopActivity returns the character to idle and clears encounter state.
func (rt *Runtime) StopActivity() {
	rt.Player.Activity = world.Activity{}
	rt.Encounter = nil
	rt.PendingCast = nil
	rt.PendingRune = nil
}

// SpawnEncounter creates the monster instance for the current hunt activity.
// Area hunts pool Count monsters; a rolled affix collapses the spawn to a
// single influenced target.
func (rt *Runtime) SpawnEncounter() *world.MonsterInstance {
	act := rt.Player.Activity
	tpl := rt.Monsters.Get(act.MonsterID)
	if tpl == nil {
		rt.Log.Error("hunt target missing from catalog", zap.Int32("monster_id", act.MonsterID))
		rt.StopActivity()
		return nil
	}

	affix := world.AffixNone
	if !tpl.Boss && rt.RNG.Chance(AffixChance) {
		affix = world.Affix(1 + rt.RNG.Intn(3))
	}

	count := act.Count
	if count < 1 || affix != world.AffixNone || tpl.Boss {
		count = 1
	}

	pool := int64(float64(int64(tpl.HP)*int64(count)) * affix.HPMultiplier())
	m := &world.MonsterInstance{
		Template: tpl,
		Affix:    affix,
		Count:    count,
		HP:       pool,
		MaxHP:    pool,
		AttackCD: tpl.AtkInterval,
	}
	rt.Encounter = m

	if !rt.Quiet && affix != world.AffixNone {
		rt.Log.Info("influenced monster appeared",
			zap.String("name", m.Name()),
			zap.Int64("hp", m.MaxHP))
	}
	return m
}

// Mods returns the summed equipment modifier block.
func (rt *Runtime) Mods() data.Modifiers {
	return rt.Player.Equip.ModSums(rt.Items)
}

// EmitHit queues a hit splat for the presentation layer. Suppressed during
// offline replay.
func (rt *Runtime) EmitHit(attacker, target string, amount int, source string, crit, miss bool) {
	if rt.Quiet {
		return
	}
	rt.splatID++
	event.Emit(rt.Bus, event.HitSplat{
		ID:       rt.splatID,
		Attacker: attacker,
		Target:   target,
		Amount:   amount,
		Source:   source,
		Crit:     crit,
		Miss:     miss,
	})
}

// ---------- offline report accumulation ----------

func (rt *Runtime) recordKill(name string, count int) {
	if rt.Report == nil {
		return
	}
	if rt.Report.Kills == nil {
		rt.Report.Kills = make(map[string]int64)
	}
	rt.Report.Kills[name] += int64(count)
}

func (rt *Runtime) recordLoot(name string, qty int64) {
	if rt.Report == nil {
		return
	}
	if rt.Report.Loot == nil {
		rt.Report.Loot = make(map[string]int64)
	}
	rt.Report.Loot[name] += qty
}

func (rt *Runtime) recordXP(n int64) {
	if rt.Report != nil {
		rt.Report.XPGained += n
	}
}

func (rt *Runtime) recordGold(n int64) {
	if rt.Report != nil {
		rt.Report.GoldGained += n
	}
}

func (rt *Runtime) recordSkillUp(id world.SkillID) {
	if rt.Report == nil {
		return
	}
	if rt.Report.SkillGained == nil {
		rt.Report.SkillGained = make(map[world.SkillID]int)
	}
	rt.Report.SkillGained[id]++
}

func (rt *Runtime) recordDeath() {
	if rt.Report != nil {
		rt.Report.Deaths++
	}
}

// ---------- shared progression helpers ----------

// GainXP adds experience and loops level-ups, carrying overflow so a large
// batch can cross several levels. Each new level refills vitals and fires the
// gated unlock events.
func (rt *Runtime) GainXP(amount int64) {
	if amount <= 0 {
		return
	}
	p := rt.Player
	p.Exp += amount
	rt.recordXP(amount)

	for p.Exp >= formula.XPForLevel(p.Level) {
		p.Exp -= formula.XPForLevel(p.Level)
		p.Level++
		p.RestoreVitals()
		if !rt.Quiet {
			event.Emit(rt.Bus, event.LevelUp{NewLevel: p.Level})
		}
		rt.checkUnlocks()
	}
}

// checkUnlocks fires the one-shot level-gated content events.
func (rt *Runtime) checkUnlocks() {
	p := rt.Player
	if p.Level >= 2 && !p.Unlocks.Named && p.Name == "" {
		p.Unlocks.Named = true
		rt.emitUnlock("naming", 2)
	}
	if p.Level >= 8 && !p.Unlocks.VocationChosen && p.Vocation == formula.VocationNone {
		rt.emitUnlock("vocation", 8)
	}
	if p.Level >= 12 && !p.Unlocks.HazardWarned {
		p.Unlocks.HazardWarned = true
		rt.emitUnlock("hazard", 12)
	}
}

func (rt *Runtime) emitUnlock(feature string, level int) {
	if rt.Quiet {
		return
	}
	event.Emit(rt.Bus, event.ContentUnlocked{Feature: feature, Level: level})
}

// GainSkill adds progress points to a skill, scaled by the configured rate,
// and loops threshold crossings.
func (rt *Runtime) GainSkill(id world.SkillID, points int64) {
	if points <= 0 {
		return
	}
	scaled := int64(float64(points) * rt.Gameplay.SkillRate)
	if scaled < 1 {
		scaled = 1
	}
	s := rt.Player.Skill(id)
	s.Progress += scaled
	for s.Progress >= formula.SkillThreshold(s.Level) {
		s.Progress -= formula.SkillThreshold(s.Level)
		s.Level++
		rt.recordSkillUp(id)
		if !rt.Quiet {
			event.Emit(rt.Bus, event.SkillAdvanced{Skill: string(id), NewLevel: s.Level})
		}
	}
}
