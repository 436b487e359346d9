package world

import "github.com/google/uuid"

// Rarity of a unique (non-stackable) item instance.
type Rarity int8

const (
	RarityNone Rarity = iota // "no override" sentinel for GM forcing
	RarityCommon
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
)

func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "common"
	case RarityUncommon:
		return "uncommon"
	case RarityRare:
		return "rare"
	case RarityEpic:
		return "epic"
	case RarityLegendary:
		return "legendary"
	default:
		return "none"
	}
}

// StatMultiplier returns the factor baked into a dropped instance's stats.
func (r Rarity) StatMultiplier() float64 {
	switch r {
	case RarityUncommon:
		return 1.10
	case RarityRare:
		return 1.25
	case RarityEpic:
		return 1.50
	case RarityLegendary:
		return 2.00
	default:
		return 1.00
	}
}

// UniqueItem is one non-stackable item instance. Its stats are rolled once at
// creation from the template and rarity, and never recomputed.
type UniqueItem struct {
	UID    string
	ItemID int32
	Rarity Rarity
	Attack int
	Armor  int
	HP     int // flat max-HP bonus while worn
	MP     int // flat max-MP bonus while worn
}

// NewUniqueItem bakes an instance from template stats and a rolled rarity.
func NewUniqueItem(itemID int32, rarity Rarity, attack, armor, hp, mp int) *UniqueItem {
	m := rarity.StatMultiplier()
	return &UniqueItem{
		UID:    uuid.NewString(),
		ItemID: itemID,
		Rarity: rarity,
		Attack: int(float64(attack) * m),
		Armor:  int(float64(armor) * m),
		HP:     int(float64(hp) * m),
		MP:     int(float64(mp) * m),
	}
}

// Inventory holds stackable counts by item id plus unique instances.
// Accessed only from the session goroutine.
type Inventory struct {
	Stacks  map[int32]int64
	Uniques []*UniqueItem
}

func NewInventory() *Inventory {
	return &Inventory{Stacks: make(map[int32]int64)}
}

// CountOf returns the stack count for an item id.
func (inv *Inventory) CountOf(itemID int32) int64 {
	return inv.Stacks[itemID]
}

// AddStack adds n units of a stackable item.
func (inv *Inventory) AddStack(itemID int32, n int64) {
	if n <= 0 {
		return
	}
	inv.Stacks[itemID] += n
}

// RemoveStack removes n units; returns false (and removes nothing) if the
// stack is short.
func (inv *Inventory) RemoveStack(itemID int32, n int64) bool {
	if n <= 0 {
		return true
	}
	if inv.Stacks[itemID] < n {
		return false
	}
	inv.Stacks[itemID] -= n
	if inv.Stacks[itemID] == 0 {
		delete(inv.Stacks, itemID)
	}
	return true
}

// AddUnique appends a unique instance.
func (inv *Inventory) AddUnique(u *UniqueItem) {
	inv.Uniques = append(inv.Uniques, u)
}

// FindUnique returns the instance with the given UID, or nil.
func (inv *Inventory) FindUnique(uid string) *UniqueItem {
	for _, u := range inv.Uniques {
		if u.UID == uid {
			return u
		}
	}
	return nil
}

// RemoveUnique detaches and returns the instance with the given UID, or nil.
func (inv *Inventory) RemoveUnique(uid string) *UniqueItem {
	for i, u := range inv.Uniques {
		if u.UID == uid {
			inv.Uniques = append(inv.Uniques[:i], inv.Uniques[i+1:]...)
			return u
		}
	}
	return nil
}
