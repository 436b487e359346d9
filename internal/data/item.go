package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Equipment slots.
type Slot string

const (
	SlotWeapon Slot = "weapon"
	SlotHelmet Slot = "helmet"
	SlotArmor  Slot = "armor"
	SlotLegs   Slot = "legs"
	SlotBoots  Slot = "boots"
	SlotShield Slot = "shield"
	SlotAmulet Slot = "amulet"
	SlotRing   Slot = "ring"
)

// Item kinds beyond plain equipment.
const (
	KindEquipment = "equipment"
	KindHealthPot = "health_potion"
	KindManaPot   = "mana_potion"
	KindRune      = "rune"
	KindCurrency  = "currency"
	KindImbuToken = "imbu_token"
	KindMisc      = "misc"
)

// Modifiers is the block of percentage bonuses an equipment piece can carry.
// All values are whole percentages (5 = +5%).
type Modifiers struct {
	Crit        int `yaml:"crit"`
	Executioner int `yaml:"executioner"` // bonus damage vs targets below 25% HP
	BossSlayer  int `yaml:"boss_slayer"`
	Reflection  int `yaml:"reflection"`
	LootBoost   int `yaml:"loot_boost"`
	GoldFind    int `yaml:"gold_find"`
	XPBoost     int `yaml:"xp_boost"`
	Blessed     int `yaml:"blessed"` // shifts unique-drop rarity weights
	Dodge       int `yaml:"dodge"`
}

// ItemTemplate holds static data for an item type.
type ItemTemplate struct {
	ItemID    int32     `yaml:"item_id"`
	Name      string    `yaml:"name"`
	Kind      string    `yaml:"kind"`
	Slot      Slot      `yaml:"slot"`  // empty for non-equipment
	Skill     string    `yaml:"skill"` // weapon skill trained by this weapon
	Stackable bool      `yaml:"stackable"`
	Attack    int       `yaml:"attack"`
	Armor     int       `yaml:"armor"`
	HP        int       `yaml:"hp"`   // flat max-HP bonus while worn
	MP        int       `yaml:"mp"`   // flat max-MP bonus while worn
	Heal      int       `yaml:"heal"`     // potion restore amount
	RuneMin   int       `yaml:"rune_min"` // attack rune damage range
	RuneMax   int       `yaml:"rune_max"`
	Element   Element   `yaml:"element"`
	Price     int64     `yaml:"price"` // shop buy price; sells at half
	Mods      Modifiers `yaml:"mods"`
}

type itemListFile struct {
	Items []ItemTemplate `yaml:"items"`
}

// ItemTable holds all item templates indexed by ItemID.
type ItemTable struct {
	templates map[int32]*ItemTemplate
}

// LoadItemTable loads item templates from a YAML file.
func LoadItemTable(path string) (*ItemTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read item_list: %w", err)
	}
	var f itemListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse item_list: %w", err)
	}
	t := &ItemTable{templates: make(map[int32]*ItemTemplate, len(f.Items))}
	for i := range f.Items {
		it := &f.Items[i]
		t.templates[it.ItemID] = it
	}
	return t, nil
}

// Get returns an item template by ID, or nil if not found.
func (t *ItemTable) Get(id int32) *ItemTemplate {
	return t.templates[id]
}

// Count returns the number of loaded templates.
func (t *ItemTable) Count() int {
	return len(t.templates)
}

// All invokes fn for every template. Lookup order is unspecified.
func (t *ItemTable) All(fn func(*ItemTemplate)) {
	for _, it := range t.templates {
		fn(it)
	}
}
