package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Element identifies a damage type for resistance lookups.
type Element string

const (
	ElementPhysical Element = "physical"
	ElementFire     Element = "fire"
	ElementIce      Element = "ice"
	ElementEnergy   Element = "energy"
	ElementEarth    Element = "earth"
	ElementHoly     Element = "holy"
	ElementDeath    Element = "death"
)

// MonsterTemplate holds static data for a huntable monster or boss.
type MonsterTemplate struct {
	MonsterID   int32               `yaml:"monster_id"`
	Name        string              `yaml:"name"`
	Boss        bool                `yaml:"boss"`
	HazardGate  bool                `yaml:"hazard_gate"` // defeating this boss raises the hazard cap
	Level       int16               `yaml:"level"`
	HP          int32               `yaml:"hp"`
	MinDamage   int                 `yaml:"min_damage"`
	MaxDamage   int                 `yaml:"max_damage"`
	Element     Element             `yaml:"element"`      // element of the monster's own attacks
	AtkInterval int                 `yaml:"atk_interval"` // ticks between attacks
	Exp         int64               `yaml:"exp"`
	GoldMin     int64               `yaml:"gold_min"`
	GoldMax     int64               `yaml:"gold_max"`
	LootTableID int32               `yaml:"loot_table_id"`
	Resists     map[Element]float64 `yaml:"resists"` // multiplier per element; 0 = immune, missing = 1.0
}

// ResistMultiplier returns the damage multiplier against this monster for an
// element. Elements absent from the map take no modifier.
func (m *MonsterTemplate) ResistMultiplier(el Element) float64 {
	if m.Resists == nil {
		return 1.0
	}
	v, ok := m.Resists[el]
	if !ok {
		return 1.0
	}
	return v
}

type monsterListFile struct {
	Monsters []MonsterTemplate `yaml:"monsters"`
}

// MonsterTable holds all monster templates indexed by MonsterID.
type MonsterTable struct {
	templates map[int32]*MonsterTemplate
}

// LoadMonsterTable loads monster and boss templates from a YAML file.
func LoadMonsterTable(path string) (*MonsterTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read monster_list: %w", err)
	}
	var f monsterListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse monster_list: %w", err)
	}
	t := &MonsterTable{templates: make(map[int32]*MonsterTemplate, len(f.Monsters))}
	for i := range f.Monsters {
		m := &f.Monsters[i]
		t.templates[m.MonsterID] = m
	}
	return t, nil
}

// Get returns a monster template by ID, or nil if not found.
func (t *MonsterTable) Get(id int32) *MonsterTemplate {
	return t.templates[id]
}

// Count returns the number of loaded templates.
func (t *MonsterTable) Count() int {
	return len(t.templates)
}

// All invokes fn for every template. Lookup order is unspecified.
func (t *MonsterTable) All(fn func(*MonsterTemplate)) {
	for _, m := range t.templates {
		fn(m)
	}
}
