package system

import (
	coresys "github.com/tornfelipe3-maker/customtibia-sub000/internal/core/system"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/formula"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/world"
)

// RegenSystem applies passive HP/MP regeneration on a fixed pulse. Amounts
// come from the vocation table, scaled by the ascension regen perk and
// premium status.
type RegenSystem struct {
	rt *Runtime
}

func NewRegenSystem(rt *Runtime) *RegenSystem { return &RegenSystem{rt: rt} }

func (s *RegenSystem) Phase() coresys.Phase { return coresys.PhaseRegen }

func (s *RegenSystem) Update(tick int64) {
	if tick%RegenIntervalTicks != 0 {
		return
	}
	p := s.rt.Player
	maxHP, maxMP := p.EffectiveMaxHP(), p.EffectiveMaxMP()
	if p.HP >= maxHP && p.MP >= maxMP {
		return
	}

	hp, mp := formula.RegenAmounts(p.Vocation)
	mult := formula.StackMultipliers(1,
		p.Ascension.Bonus(world.PerkRegen),
		premiumBonus(p))
	hp = int(float64(hp) * mult)
	mp = int(float64(mp) * mult)

	if p.HP < maxHP {
		p.HP += hp
		if p.HP > maxHP {
			p.HP = maxHP
		}
	}
	if p.MP < maxMP {
		p.MP += mp
		if p.MP > maxMP {
			p.MP = maxMP
		}
	}
}

func premiumBonus(p *world.Player) float64 {
	if p.Premium {
		return world.PremiumBonus
	}
	return 0
}
