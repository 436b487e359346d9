package world

import "github.com/tornfelipe3-maker/customtibia-sub000/internal/data"

// Affix is a rarity modifier rolled onto a monster at spawn.
type Affix int8

const (
	AffixNone Affix = iota
	AffixEnraged
	AffixBlessed
	AffixCorrupted
)

func (a Affix) String() string {
	switch a {
	case AffixEnraged:
		return "enraged"
	case AffixBlessed:
		return "blessed"
	case AffixCorrupted:
		return "corrupted"
	default:
		return ""
	}
}

// HPMultiplier scales the spawned pool.
func (a Affix) HPMultiplier() float64 {
	switch a {
	case AffixEnraged:
		return 1.2
	case AffixBlessed:
		return 1.5
	case AffixCorrupted:
		return 1.25
	default:
		return 1.0
	}
}

// DamageMultiplier scales the monster's outgoing hits.
func (a Affix) DamageMultiplier() float64 {
	switch a {
	case AffixEnraged:
		return 1.5
	case AffixCorrupted:
		return 1.25
	default:
		return 1.0
	}
}

// LootMultiplier scales drop chances and XP/gold on death.
func (a Affix) LootMultiplier() float64 {
	switch a {
	case AffixEnraged:
		return 1.25
	case AffixBlessed:
		return 1.5
	case AffixCorrupted:
		return 2.0
	default:
		return 1.0
	}
}

// MonsterInstance is the ephemeral combat-side of an encounter. Owned by the
// tick scheduler for the lifetime of one spawn wave; destroyed on death or
// when the activity stops.
//
// Area hunts pool Count monsters into one instance: the HP pool is Count ×
// base and the monster side swings Count times per attack window. An
// influenced (affixed) spawn always collapses to a single target.
type MonsterInstance struct {
	Template *data.MonsterTemplate
	Affix    Affix
	Count    int
	HP       int64
	MaxHP    int64
	AttackCD int // ticks until the next swing window
}

// Name returns the display name with any affix prefix.
func (m *MonsterInstance) Name() string {
	if m.Affix == AffixNone {
		return m.Template.Name
	}
	return m.Affix.String() + " " + m.Template.Name
}

// HPPct returns remaining pool percentage, 0-100.
func (m *MonsterInstance) HPPct() int {
	if m.MaxHP <= 0 {
		return 0
	}
	return int(m.HP * 100 / m.MaxHP)
}

// Dead reports whether the pool is exhausted.
func (m *MonsterInstance) Dead() bool { return m.HP <= 0 }
