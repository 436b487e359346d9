package world

import "github.com/tornfelipe3-maker/customtibia-sub000/internal/data"

// Equipment maps slots to worn unique instances.
type Equipment struct {
	Slots map[data.Slot]*UniqueItem
}

func NewEquipment() Equipment {
	return Equipment{Slots: make(map[data.Slot]*UniqueItem)}
}

// Get returns the item worn in a slot, or nil.
func (e *Equipment) Get(slot data.Slot) *UniqueItem {
	return e.Slots[slot]
}

// Set wears an instance in a slot and returns whatever was there before.
func (e *Equipment) Set(slot data.Slot, u *UniqueItem) *UniqueItem {
	prev := e.Slots[slot]
	if u == nil {
		delete(e.Slots, slot)
	} else {
		e.Slots[slot] = u
	}
	return prev
}

// FlatHP sums the baked max-HP bonuses of everything worn.
func (e *Equipment) FlatHP() int {
	total := 0
	for _, u := range e.Slots {
		total += u.HP
	}
	return total
}

// FlatMP sums the baked max-MP bonuses of everything worn.
func (e *Equipment) FlatMP() int {
	total := 0
	for _, u := range e.Slots {
		total += u.MP
	}
	return total
}

// AttackValue returns the baked attack of the worn weapon (0 unarmed).
func (e *Equipment) AttackValue() int {
	if w := e.Slots[data.SlotWeapon]; w != nil {
		return w.Attack
	}
	return 0
}

// ArmorValue sums baked armor across every worn piece.
func (e *Equipment) ArmorValue() int {
	total := 0
	for _, u := range e.Slots {
		total += u.Armor
	}
	return total
}

// ModSums accumulates the percentage modifier block across worn templates.
func (e *Equipment) ModSums(items *data.ItemTable) data.Modifiers {
	var sum data.Modifiers
	for _, u := range e.Slots {
		tpl := items.Get(u.ItemID)
		if tpl == nil {
			continue
		}
		sum.Crit += tpl.Mods.Crit
		sum.Executioner += tpl.Mods.Executioner
		sum.BossSlayer += tpl.Mods.BossSlayer
		sum.Reflection += tpl.Mods.Reflection
		sum.LootBoost += tpl.Mods.LootBoost
		sum.GoldFind += tpl.Mods.GoldFind
		sum.XPBoost += tpl.Mods.XPBoost
		sum.Blessed += tpl.Mods.Blessed
		sum.Dodge += tpl.Mods.Dodge
	}
	return sum
}
