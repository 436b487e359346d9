package system

import (
	coresys "github.com/tornfelipe3-maker/customtibia-sub000/internal/core/system"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/data"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/formula"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/scripting"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/world"
)

// CombatSystem resolves one hunting tick: spawn, the player's staged or basic
// attack, then the monster side. Damage pipelines apply their multipliers in
// a fixed order so replay over the same RNG stream reproduces every hit.
type CombatSystem struct {
	rt *Runtime
}

func NewCombatSystem(rt *Runtime) *CombatSystem { return &CombatSystem{rt: rt} }

func (s *CombatSystem) Phase() coresys.Phase { return coresys.PhaseCombat }

func (s *CombatSystem) Update(_ int64) {
	rt := s.rt
	p := rt.Player
	if p.Activity.Kind != world.ActivityHunt {
		return
	}

	m := rt.Encounter
	if m == nil {
		// Spawning takes the tick; combat starts on the next one.
		rt.SpawnEncounter()
		return
	}

	s.playerTurn(m)

	if m.Dead() {
		s.handleKill(m)
		return
	}

	s.monsterTurn(m)
}

// ---------- player side ----------

func (s *CombatSystem) playerTurn(m *world.MonsterInstance) {
	rt := s.rt
	p := rt.Player

	switch {
	case rt.PendingCast != nil:
		sp := rt.PendingCast
		rt.PendingCast = nil
		amount := rt.Lua.CalcSpellDamage(scripting.SpellContext{
			Value:      sp.DamageValue,
			Dice:       sp.DamageDice,
			DiceCount:  sp.DiceCount,
			MagicLevel: p.Skill(world.SkillMagic).Level,
			Level:      p.Level,
		})
		p.MP -= sp.MpConsume
		p.CD.SetSpell(sp.SpellID, sp.ReuseDelay)
		s.dealDamage(m, amount, sp.Element, "spell")
		rt.GainSkill(world.SkillMagic, 1)

	case rt.PendingRune != nil:
		tpl := rt.PendingRune
		rt.PendingRune = nil
		if !p.Inv.RemoveStack(tpl.ItemID, 1) {
			return
		}
		p.CD.Rune = RuneCooldownTicks
		amount := rt.RNG.Roll(tpl.RuneMin, tpl.RuneMax)
		s.dealDamage(m, amount, tpl.Element, "rune")
		rt.GainSkill(world.SkillMagic, 1)

	case p.CD.Attack <= 0:
		skill := p.WeaponSkill(rt.Items)
		amount := rt.Lua.CalcHit(scripting.HitContext{
			Attack:     p.Equip.AttackValue(),
			SkillLevel: p.Skill(skill).Level,
			Level:      p.Level,
		})
		p.CD.Attack = AttackIntervalTicks
		s.dealDamage(m, amount, data.ElementPhysical, "basic")
		rt.GainSkill(skill, 1)
	}
}

// dealDamage runs the full player→monster pipeline: elemental multiplier,
// then prey damage, ascension damage and equipment bonuses, then the crit
// roll. Hazard grants non-boss monsters a dodge roll before anything lands.
func (s *CombatSystem) dealDamage(m *world.MonsterInstance, base int, el data.Element, source string) {
	rt := s.rt
	p := rt.Player

	if !m.Template.Boss && rt.RNG.Chance(p.Hazard.DodgeChance()) {
		rt.EmitHit(p.Name, m.Name(), 0, source, false, true)
		return
	}

	dmg := float64(base) * m.Template.ResistMultiplier(el)
	if dmg <= 0 {
		rt.EmitHit(p.Name, m.Name(), 0, source, false, true)
		return
	}

	mods := rt.Mods()
	bonuses := []float64{
		p.Prey.Bonus(world.PreyBonusDamage, m.Template.MonsterID),
		p.Ascension.Bonus(world.PerkDamage),
	}
	if m.HPPct() < ExecuteThresholdPct {
		bonuses = append(bonuses, float64(mods.Executioner)/100)
	}
	if m.Template.Boss {
		bonuses = append(bonuses, float64(mods.BossSlayer)/100)
	}
	dmg = formula.StackMultipliers(dmg, bonuses...)

	critChance := float64(mods.Crit)/100 + p.Imbu.Bonus(world.ImbuCritStrike)
	crit := rt.RNG.Chance(critChance)
	if crit {
		dmg *= CritMultiplier
	}

	final := int(dmg)
	if final < 1 {
		final = 1
	}
	m.HP -= int64(final)
	if m.HP < 0 {
		m.HP = 0
	}
	rt.EmitHit(p.Name, m.Name(), final, source, crit, false)

	// Leech imbuements convert a share of finalized damage.
	if steal := p.Imbu.Bonus(world.ImbuLifeSteal); steal > 0 {
		p.HP += int(float64(final) * steal)
	}
	if leech := p.Imbu.Bonus(world.ImbuManaLeech); leech > 0 {
		p.MP += int(float64(final) * leech)
	}
	p.ClampVitals()
}

// ---------- monster side ----------

// monsterTurn swings once per alive pooled monster when the shared attack
// window opens. The alive count shrinks with the HP pool so a half-dead wave
// hits half as hard.
func (s *CombatSystem) monsterTurn(m *world.MonsterInstance) {
	rt := s.rt
	p := rt.Player
	if m.AttackCD > 0 {
		return
	}
	m.AttackCD = m.Template.AtkInterval

	for i := 0; i < s.aliveCount(m); i++ {
		s.monsterSwing(m)
		if p.HP <= 0 {
			return
		}
	}
}

func (s *CombatSystem) aliveCount(m *world.MonsterInstance) int {
	if m.Count <= 1 {
		return 1
	}
	per := m.MaxHP / int64(m.Count)
	if per <= 0 {
		return 1
	}
	alive := int((m.HP + per - 1) / per)
	if alive < 1 {
		alive = 1
	}
	if alive > m.Count {
		alive = m.Count
	}
	return alive
}

// monsterSwing runs the monster→player pipeline: dodge roll, base hit, affix
// and hazard damage scaling, armor roll, prey defense, then reflection.
func (s *CombatSystem) monsterSwing(m *world.MonsterInstance) {
	rt := s.rt
	p := rt.Player
	mods := rt.Mods()

	if rt.RNG.Chance(float64(mods.Dodge) / 100) {
		rt.EmitHit(m.Name(), p.Name, 0, "basic", false, true)
		return
	}

	base := rt.Lua.CalcMonsterHit(scripting.MonsterHitContext{
		MinDamage: m.Template.MinDamage,
		MaxDamage: m.Template.MaxDamage,
		Level:     int(m.Template.Level),
	})

	dmg := float64(base) * m.Affix.DamageMultiplier()
	if !m.Template.Boss {
		dmg = formula.StackMultipliers(dmg, p.Hazard.DamageBonus())
	}

	// Armor absorbs a rolled slice of the hit.
	if armor := p.Equip.ArmorValue(); armor > 0 {
		dmg -= float64(rt.RNG.Roll(armor/2, armor))
	}
	dmg *= 1 - p.Prey.Bonus(world.PreyBonusDefense, m.Template.MonsterID)

	final := int(dmg)
	if final < 1 {
		final = 1
	}
	p.HP -= final
	rt.EmitHit(m.Name(), p.Name, final, "basic", false, false)
	rt.GainSkill(world.SkillShielding, 1)

	if refl := float64(mods.Reflection) / 100; refl > 0 && !m.Dead() {
		back := int(float64(final) * refl)
		if back > 0 {
			m.HP -= int64(back)
			if m.HP < 0 {
				m.HP = 0
			}
			rt.EmitHit(p.Name, m.Name(), back, "reflect", false, false)
		}
	}
}
