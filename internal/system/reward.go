package system

import (
	coreevent "github.com/tornfelipe3-maker/customtibia-sub000/internal/core/event"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/data"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/formula"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/world"
)

// Base rarity bands on a 0-99 roll. Equipment blessed% shifts the roll
// upward, squeezing the common band; a GM forced rarity bypasses the roll.
const (
	rarityBandUncommon  = 60
	rarityBandRare      = 85
	rarityBandEpic      = 95
	rarityBandLegendary = 99
)

// handleKill settles a dead encounter: XP, gold and loot for every pooled
// kill, task credit, the hazard gate, then respawn or hunt end.
func (s *CombatSystem) handleKill(m *world.MonsterInstance) {
	rt := s.rt
	p := rt.Player
	tpl := m.Template
	count := m.Count
	affixMult := m.Affix.LootMultiplier()

	xp := s.awardXP(m)
	s.awardGold(m)
	s.rollLoot(tpl, count, affixMult)

	rt.recordKill(m.Name(), count)
	rt.Kills[tpl.MonsterID] += int64(count)
	if !rt.Quiet {
		coreevent.Emit(rt.Bus, coreevent.MonsterKilled{
			MonsterID: tpl.MonsterID,
			Name:      m.Name(),
			Count:     count,
			Boss:      tpl.Boss,
			Exp:       xp,
		})
	}

	for _, uuid := range p.Tasks.CreditKill(tpl.MonsterID, count) {
		if !rt.Quiet {
			coreevent.Emit(rt.Bus, coreevent.TaskCompleted{TaskID: uuid})
		}
	}

	if tpl.HazardGate && p.Hazard.Level < world.HazardMaxLevel {
		p.Hazard.Level++
	}

	if tpl.Boss {
		rt.StopActivity()
		return
	}
	rt.Encounter = nil // next spawn wave on the following tick
}

// awardXP pays the pooled kill experience through the full modifier stack and
// returns the amount granted.
func (s *CombatSystem) awardXP(m *world.MonsterInstance) int64 {
	rt := s.rt
	p := rt.Player
	tpl := m.Template
	mods := rt.Mods()

	base := float64(tpl.Exp) * float64(m.Count) * rt.Gameplay.ExpRate * m.Affix.LootMultiplier()
	bonuses := []float64{
		premiumBonus(p),
		float64(mods.XPBoost) / 100,
		p.Ascension.Bonus(world.PerkXP),
		p.Prey.Bonus(world.PreyBonusXP, tpl.MonsterID),
	}
	if !tpl.Boss {
		bonuses = append(bonuses, p.Hazard.XPBonus())
	}
	xp := int64(formula.StackMultipliers(base, bonuses...))
	rt.GainXP(xp)
	return xp
}

// awardGold rolls a gold purse per pooled kill. Hazard never boosts gold.
func (s *CombatSystem) awardGold(m *world.MonsterInstance) {
	rt := s.rt
	p := rt.Player
	tpl := m.Template
	mods := rt.Mods()

	var purse int64
	for i := 0; i < m.Count; i++ {
		purse += int64(rt.RNG.Roll(int(tpl.GoldMin), int(tpl.GoldMax)))
	}
	if purse <= 0 {
		return
	}
	gold := int64(formula.StackMultipliers(
		float64(purse)*rt.Gameplay.GoldRate*m.Affix.LootMultiplier(),
		float64(mods.GoldFind)/100,
		p.Ascension.Bonus(world.PerkGold),
	))
	p.Gold += gold
	rt.recordGold(gold)
}

// rollLoot runs every loot-table entry as an independent Bernoulli trial per
// pooled kill. Non-stackable equipment drops become unique instances with a
// baked rarity.
func (s *CombatSystem) rollLoot(tpl *data.MonsterTemplate, count int, affixMult float64) {
	rt := s.rt
	p := rt.Player
	entries := rt.Loot.Get(tpl.LootTableID)
	if len(entries) == 0 {
		return
	}
	mods := rt.Mods()

	bonus := 1 + p.Hazard.LootBonus() +
		p.Ascension.Bonus(world.PerkLoot) +
		p.Prey.Bonus(world.PreyBonusLoot, tpl.MonsterID) +
		float64(mods.LootBoost)/100

	for kill := 0; kill < count; kill++ {
		for _, entry := range entries {
			chance := float64(entry.Chance) / 1_000_000 * bonus * rt.Gameplay.DropRate * affixMult
			if chance > 1 {
				chance = 1
			}
			if !rt.RNG.Chance(chance) {
				continue
			}
			s.grantDrop(entry)
		}
	}
}

func (s *CombatSystem) grantDrop(entry data.LootEntry) {
	rt := s.rt
	p := rt.Player
	item := rt.Items.Get(entry.ItemID)
	if item == nil {
		return
	}

	if item.Kind == data.KindEquipment && !item.Stackable {
		rarity := s.rollRarity()
		u := world.NewUniqueItem(item.ItemID, rarity, item.Attack, item.Armor, item.HP, item.MP)
		p.Inv.AddUnique(u)
		rt.recordLoot(item.Name, 1)
		return
	}

	qty := int64(rt.RNG.Roll(1, entry.MaxAmount))
	p.Inv.AddStack(item.ItemID, qty)
	rt.recordLoot(item.Name, qty)
}

// rollRarity picks the tier of a dropped unique. The forced-rarity override
// short-circuits; otherwise a 0-99 roll shifted by blessed% maps onto the
// fixed bands.
func (s *CombatSystem) rollRarity() world.Rarity {
	rt := s.rt
	if forced := rt.Player.Settings.ForcedRarity; forced != world.RarityNone {
		return forced
	}
	roll := rt.RNG.Intn(100) + rt.Mods().Blessed
	switch {
	case roll < rarityBandUncommon:
		return world.RarityCommon
	case roll < rarityBandRare:
		return world.RarityUncommon
	case roll < rarityBandEpic:
		return world.RarityRare
	case roll < rarityBandLegendary:
		return world.RarityEpic
	default:
		return world.RarityLegendary
	}
}
