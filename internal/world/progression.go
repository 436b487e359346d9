package world

import "github.com/tornfelipe3-maker/customtibia-sub000/internal/formula"

// ==================== Ascension ====================

// Ascension perk identifiers.
const (
	PerkDamage = "damage"
	PerkHealth = "health"
	PerkMana   = "mana"
	PerkXP     = "xp"
	PerkLoot   = "loot"
	PerkGold   = "gold"
	PerkRegen  = "regen"
)

// PerkDef fixes the per-level percentage of a perk.
type PerkDef struct {
	PerPct   int
	MaxLevel int
	Cost     int // soul points per level
}

// Perks is the full perk catalog. Perk levels persist across ascensions.
var Perks = map[string]PerkDef{
	PerkDamage: {PerPct: 5, MaxLevel: 20, Cost: 2},
	PerkHealth: {PerPct: 4, MaxLevel: 20, Cost: 2},
	PerkMana:   {PerPct: 4, MaxLevel: 20, Cost: 1},
	PerkXP:     {PerPct: 3, MaxLevel: 25, Cost: 3},
	PerkLoot:   {PerPct: 3, MaxLevel: 25, Cost: 3},
	PerkGold:   {PerPct: 3, MaxLevel: 25, Cost: 2},
	PerkRegen:  {PerPct: 5, MaxLevel: 10, Cost: 1},
}

// AscensionMinLevel gates the prestige reset.
const AscensionMinLevel = 30

// AscensionState survives the prestige reset in full. Soul points are spent
// on perks and otherwise only ever increase.
type AscensionState struct {
	SoulPoints int
	Ascensions int
	Perks      map[string]int // perk id → level
}

// Bonus returns the fractional bonus of a perk at its current level.
func (a *AscensionState) Bonus(perk string) float64 {
	def, ok := Perks[perk]
	if !ok {
		return 0
	}
	return formula.PerkBonus(a.Perks[perk], def.PerPct)
}

// ==================== Hazard ====================

// Per-hazard-level fractional modifiers. Hazard boosts monster damage and
// grants monsters dodge, in exchange for better XP and loot. Gold is
// deliberately unaffected.
const (
	HazardDamagePerLevel = 0.10
	HazardDodgePerLevel  = 0.02
	HazardXPPerLevel     = 0.08
	HazardLootPerLevel   = 0.08
)

// HazardMaxLevel caps how far the gating boss can raise the hazard ceiling.
const HazardMaxLevel = 10

// HazardState tracks the boss-gated maximum and the freely chosen active
// level. Level only ever rises; Active stays within [0, Level].
type HazardState struct {
	Level  int // max ever reached
	Active int // player-selected, applies to all non-boss encounters
}

// DamageBonus is the extra monster→player damage fraction.
func (h *HazardState) DamageBonus() float64 { return float64(h.Active) * HazardDamagePerLevel }

// DodgeChance is the monster dodge probability granted by hazard.
func (h *HazardState) DodgeChance() float64 { return float64(h.Active) * HazardDodgePerLevel }

// XPBonus is the extra XP fraction.
func (h *HazardState) XPBonus() float64 { return float64(h.Active) * HazardXPPerLevel }

// LootBonus is the extra loot-chance fraction.
func (h *HazardState) LootBonus() float64 { return float64(h.Active) * HazardLootPerLevel }

// ==================== Imbuement ====================

// Imbuement types.
type ImbuType string

const (
	ImbuLifeSteal  ImbuType = "life_steal"
	ImbuManaLeech  ImbuType = "mana_leech"
	ImbuCritStrike ImbuType = "crit_strike"
)

// ImbuTypes lists the imbuement kinds in a fixed order.
var ImbuTypes = []ImbuType{ImbuLifeSteal, ImbuManaLeech, ImbuCritStrike}

const (
	ImbuMaxTier       = 3
	ImbuDurationTicks = 20 * 3600 // per application, any tier
)

// imbuPct maps type and tier (1-3) to the whole-percent effect.
var imbuPct = map[ImbuType][3]int{
	ImbuLifeSteal:  {5, 10, 15},
	ImbuManaLeech:  {3, 6, 9},
	ImbuCritStrike: {4, 8, 12},
}

// ImbuPct returns the whole-percent effect of a type at a tier, 0 when idle.
func ImbuPct(t ImbuType, tier int) int {
	if tier < 1 || tier > ImbuMaxTier {
		return 0
	}
	return imbuPct[t][tier-1]
}

// Imbuement is one slot: tier 0 = empty. Applying a new tier overwrites the
// old tier and timer with no refund.
type Imbuement struct {
	Tier      int
	Remaining int64 // ticks; only decremented while imbuements are switched on and an activity runs
}

// ImbuementState is the per-player imbuement block with its global switch.
type ImbuementState struct {
	Active bool
	Slots  map[ImbuType]*Imbuement
}

func NewImbuementState() ImbuementState {
	s := ImbuementState{Slots: make(map[ImbuType]*Imbuement, len(ImbuTypes))}
	for _, t := range ImbuTypes {
		s.Slots[t] = &Imbuement{}
	}
	return s
}

// Bonus returns the running fractional effect of a type, 0 when the global
// switch is off or the slot is empty/expired.
func (s *ImbuementState) Bonus(t ImbuType) float64 {
	if !s.Active {
		return 0
	}
	slot := s.Slots[t]
	if slot == nil || slot.Tier == 0 || slot.Remaining <= 0 {
		return 0
	}
	return float64(ImbuPct(t, slot.Tier)) / 100.0
}
