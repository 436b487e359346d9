package world

// Prey bonus kinds.
type PreyBonus string

const (
	PreyBonusXP      PreyBonus = "xp"
	PreyBonusLoot    PreyBonus = "loot"
	PreyBonusDamage  PreyBonus = "damage"
	PreyBonusDefense PreyBonus = "defense"
)

// PreyBonuses lists the rollable bonus kinds in a fixed order.
var PreyBonuses = []PreyBonus{PreyBonusXP, PreyBonusLoot, PreyBonusDamage, PreyBonusDefense}

const (
	PreySlotCount     = 5
	PreyDurationTicks = 2 * 3600 // 2h of game time
	PreyFreeRerollMax = 5
	// PreyRerollRefill is the tick interval at which one free reroll returns.
	PreyRerollRefill = 20 * 3600
)

// PreyPhase is the explicit lifecycle state of a slot. The persisted shape
// stays flat (active flag + start time) for save compatibility; the phase is
// derived.
type PreyPhase int8

const (
	PreyUnrolled PreyPhase = iota
	PreyRolled
	PreyActive
	PreyExpired
)

// PreySlot is one timed per-monster bonus contract. Value is fixed at roll
// time; activation starts the timer.
type PreySlot struct {
	MonsterID   int32
	MonsterName string
	Bonus       PreyBonus
	Value       int // whole percent
	Active      bool
	StartUnix   int64 // >0 once the slot has ever been activated
	Remaining   int64 // ticks left while active
}

// Phase derives the lifecycle state from the flat fields. A slot that expired
// keeps StartUnix > 0, distinguishing it from one never activated.
func (s *PreySlot) Phase() PreyPhase {
	switch {
	case s.MonsterID == 0:
		return PreyUnrolled
	case s.Active:
		return PreyActive
	case s.StartUnix > 0:
		return PreyExpired
	default:
		return PreyRolled
	}
}

// BonusFor returns the slot's fractional bonus of the given kind against the
// given monster, or 0 when the slot does not apply.
func (s *PreySlot) BonusFor(kind PreyBonus, monsterID int32) float64 {
	if !s.Active || s.Bonus != kind || s.MonsterID != monsterID {
		return 0
	}
	return float64(s.Value) / 100.0
}

// PreyState is the per-player prey book.
type PreyState struct {
	Slots       [PreySlotCount]PreySlot
	FreeRerolls int
	RefillIn    int64 // ticks until the next free reroll returns
}

// Bonus sums the active fractional bonus of a kind against a monster across
// all slots.
func (ps *PreyState) Bonus(kind PreyBonus, monsterID int32) float64 {
	total := 0.0
	for i := range ps.Slots {
		total += ps.Slots[i].BonusFor(kind, monsterID)
	}
	return total
}
