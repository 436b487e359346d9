// Package formula holds the fixed progression curves. Everything here is a
// pure function of its inputs; moddable combat math lives in Lua instead.
package formula

import "math"

// Vocation identifiers. Characters start without a vocation and choose one at
// level 8.
type Vocation int8

const (
	VocationNone Vocation = iota
	VocationKnight
	VocationPaladin
	VocationSorcerer
	VocationDruid
)

func (v Vocation) String() string {
	switch v {
	case VocationKnight:
		return "knight"
	case VocationPaladin:
		return "paladin"
	case VocationSorcerer:
		return "sorcerer"
	case VocationDruid:
		return "druid"
	default:
		return "none"
	}
}

// VocationChoiceLevel is the level at which a vocation may be picked.
const VocationChoiceLevel = 8

// hpGain / mpGain per level beyond 1, by vocation.
var hpGain = map[Vocation]int{
	VocationNone:     5,
	VocationKnight:   15,
	VocationPaladin:  10,
	VocationSorcerer: 5,
	VocationDruid:    5,
}

var mpGain = map[Vocation]int{
	VocationNone:     5,
	VocationKnight:   5,
	VocationPaladin:  15,
	VocationSorcerer: 30,
	VocationDruid:    30,
}

// regenPerTick returns HP and MP restored per regen interval, by vocation.
var regenHP = map[Vocation]int{
	VocationNone:     1,
	VocationKnight:   3,
	VocationPaladin:  2,
	VocationSorcerer: 1,
	VocationDruid:    2,
}

var regenMP = map[Vocation]int{
	VocationNone:     1,
	VocationKnight:   1,
	VocationPaladin:  2,
	VocationSorcerer: 4,
	VocationDruid:    4,
}

// BaseMaxHP returns the unmodified hit point maximum for a level and vocation.
func BaseMaxHP(level int, voc Vocation) int {
	if level < 1 {
		level = 1
	}
	return 150 + hpGain[voc]*(level-1)
}

// BaseMaxMP returns the unmodified mana maximum for a level and vocation.
func BaseMaxMP(level int, voc Vocation) int {
	if level < 1 {
		level = 1
	}
	return 55 + mpGain[voc]*(level-1)
}

// RegenAmounts returns the HP and MP restored on each regeneration pulse.
func RegenAmounts(voc Vocation) (hp, mp int) {
	return regenHP[voc], regenMP[voc]
}

// XPForLevel returns the experience required to advance FROM the given level
// to the next one.
func XPForLevel(level int) int64 {
	if level < 1 {
		level = 1
	}
	return int64(level) * int64(level) * 100
}

// SkillThreshold returns the progress points needed to advance a skill from
// the given skill level. Skills start at 10.
func SkillThreshold(skillLevel int) int64 {
	if skillLevel < 10 {
		skillLevel = 10
	}
	return int64(math.Floor(50 * math.Pow(1.1, float64(skillLevel-10))))
}

// SoulPointGain returns the soul points awarded by an ascension performed at
// the given level, with progressPct the percentage (0-99) of the way into the
// next level.
func SoulPointGain(level int, progressPct int) int {
	if level < 20 {
		return 0
	}
	base := (level - 20) * (level - 20) / 10
	return base + progressPct/20
}

// PerkBonus returns the fractional bonus (0.05 = +5%) granted by a perk at
// the given perk level. perPct is the per-level percentage from the perk
// definition.
func PerkBonus(perkLevel int, perPct int) float64 {
	if perkLevel < 0 {
		perkLevel = 0
	}
	return float64(perkLevel*perPct) / 100.0
}

// BlessingCost returns the gold price of the one-shot death blessing.
func BlessingCost(playerLevel int) int64 {
	if playerLevel < 1 {
		playerLevel = 1
	}
	return int64(playerLevel) * 200
}

// RerollCost returns the gold price of one paid task or prey reroll.
func RerollCost(playerLevel int) int64 {
	if playerLevel < 1 {
		playerLevel = 1
	}
	return int64(playerLevel) * 100
}

// ReforgeCost returns the gold surcharge of applying an imbuement of the given
// tier (1-3) on top of its token cost.
func ReforgeCost(tier int) int64 {
	if tier < 1 {
		tier = 1
	}
	return 500 << (2 * (tier - 1))
}

// StackMultipliers applies independent percentage bonuses multiplicatively:
// base × Π(1+bonus). Bonuses are fractions (0.10 = +10%).
func StackMultipliers(base float64, bonuses ...float64) float64 {
	v := base
	for _, b := range bonuses {
		v *= 1 + b
	}
	return v
}
