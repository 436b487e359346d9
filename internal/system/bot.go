package system

import (
	coresys "github.com/tornfelipe3-maker/customtibia-sub000/internal/core/system"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/data"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/scripting"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/world"
)

// BotSystem is the automation governor: an ordered list of independent rules
// evaluated top to bottom each hunting tick, first match wins. Failed
// preconditions are silent no-ops. Attack decisions are staged on the runtime
// and executed by the combat system in the same tick.
type BotSystem struct {
	rt    *Runtime
	rules []botRule
}

// botRule pairs a name with a fire func that either acts and returns true or
// declines and returns false.
type botRule struct {
	name string
	fire func() bool
}

func NewBotSystem(rt *Runtime) *BotSystem {
	s := &BotSystem{rt: rt}
	s.rules = []botRule{
		{name: "heal_spell", fire: s.healSpell},
		{name: "heal_potion", fire: s.healPotion},
		{name: "mana_potion", fire: s.manaPotion},
		{name: "attack_rotation", fire: s.attackRotation},
		{name: "attack_rune", fire: s.attackRune},
	}
	return s
}

func (s *BotSystem) Phase() coresys.Phase { return coresys.PhaseAutomation }

func (s *BotSystem) Update(_ int64) {
	s.rt.PendingCast = nil
	s.rt.PendingRune = nil
	if s.rt.Player.Activity.Kind != world.ActivityHunt {
		return
	}
	for _, r := range s.rules {
		if r.fire() {
			return
		}
	}
}

func (s *BotSystem) hpPct() int {
	p := s.rt.Player
	max := p.EffectiveMaxHP()
	if max <= 0 {
		return 100
	}
	return p.HP * 100 / max
}

func (s *BotSystem) mpPct() int {
	p := s.rt.Player
	max := p.EffectiveMaxMP()
	if max <= 0 {
		return 100
	}
	return p.MP * 100 / max
}

// canCast checks level, vocation, cooldown and mana for a spell.
func (s *BotSystem) canCast(sp *data.SpellInfo) bool {
	p := s.rt.Player
	if sp == nil || p.Level < sp.MinLevel {
		return false
	}
	if sp.Vocation != "" && sp.Vocation != p.Vocation.String() {
		return false
	}
	return p.CD.SpellReady(sp.SpellID) && p.MP >= sp.MpConsume
}

func (s *BotSystem) healSpell() bool {
	p := s.rt.Player
	set := p.Settings
	if set.HealSpellID == 0 || s.hpPct() > set.HealSpellPct {
		return false
	}
	sp := s.rt.Spells.Get(set.HealSpellID)
	if sp == nil || !sp.Heal || !s.canCast(sp) {
		return false
	}

	amount := s.rt.Lua.CalcSpellDamage(scripting.SpellContext{
		Value:      sp.DamageValue,
		Dice:       sp.DamageDice,
		DiceCount:  sp.DiceCount,
		MagicLevel: p.Skill(world.SkillMagic).Level,
		Level:      p.Level,
	})
	p.MP -= sp.MpConsume
	p.CD.SetSpell(sp.SpellID, sp.ReuseDelay)
	p.HP += amount
	p.ClampVitals()
	s.rt.GainSkill(world.SkillMagic, 1)
	s.rt.EmitHit(p.Name, p.Name, amount, "heal", false, false)
	return true
}

func (s *BotSystem) healPotion() bool {
	p := s.rt.Player
	set := p.Settings
	if set.HealPotionID == 0 || s.hpPct() > set.HealPotionPct || p.CD.Potion > 0 {
		return false
	}
	return s.drinkPotion(set.HealPotionID, data.KindHealthPot)
}

func (s *BotSystem) manaPotion() bool {
	p := s.rt.Player
	set := p.Settings
	if set.ManaPotionID == 0 || s.mpPct() > set.ManaPotionPct || p.CD.Potion > 0 {
		return false
	}
	return s.drinkPotion(set.ManaPotionID, data.KindManaPot)
}

func (s *BotSystem) drinkPotion(itemID int32, kind string) bool {
	p := s.rt.Player
	tpl := s.rt.Items.Get(itemID)
	if tpl == nil || tpl.Kind != kind || p.Inv.CountOf(itemID) < 1 {
		return false
	}
	p.Inv.RemoveStack(itemID, 1)
	p.CD.Potion = PotionCooldownTicks
	switch kind {
	case data.KindHealthPot:
		p.HP += tpl.Heal
	case data.KindManaPot:
		p.MP += tpl.Heal
	}
	p.ClampVitals()
	s.rt.EmitHit(p.Name, p.Name, tpl.Heal, "heal", false, false)
	return true
}

// attackRotation stages the first castable spell from the player's ordered
// rotation for the combat phase.
func (s *BotSystem) attackRotation() bool {
	if s.rt.Encounter == nil {
		return false
	}
	for _, id := range s.rt.Player.Settings.Rotation {
		sp := s.rt.Spells.Get(id)
		if sp == nil || sp.Heal || !s.canCast(sp) {
			continue
		}
		s.rt.PendingCast = sp
		return true
	}
	return false
}

// attackRune stages a rune throw when enabled and stocked.
func (s *BotSystem) attackRune() bool {
	p := s.rt.Player
	set := p.Settings
	if !set.RuneEnabled || set.RuneID == 0 || s.rt.Encounter == nil || p.CD.Rune > 0 {
		return false
	}
	tpl := s.rt.Items.Get(set.RuneID)
	if tpl == nil || tpl.Kind != data.KindRune || p.Inv.CountOf(set.RuneID) < 1 {
		return false
	}
	s.rt.PendingRune = tpl
	return true
}
