package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SpellInfo holds a single castable spell template.
type SpellInfo struct {
	SpellID     int32   `yaml:"spell_id"`
	Name        string  `yaml:"name"`
	Heal        bool    `yaml:"heal"` // true = restores HP instead of dealing damage
	MpConsume   int     `yaml:"mp_consume"`
	ReuseDelay  int     `yaml:"reuse_delay"` // ticks
	DamageValue int     `yaml:"damage_value"`
	DamageDice  int     `yaml:"damage_dice"`
	DiceCount   int     `yaml:"dice_count"`
	Element     Element `yaml:"element"`
	MinLevel    int     `yaml:"min_level"`
	Vocation    string  `yaml:"vocation"` // empty = any
}

type spellListFile struct {
	Spells []SpellInfo `yaml:"spells"`
}

// SpellTable holds all spells indexed by SpellID.
type SpellTable struct {
	spells map[int32]*SpellInfo
	byName map[string]*SpellInfo
}

// LoadSpellTable loads spell templates from a YAML file.
func LoadSpellTable(path string) (*SpellTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spell_list: %w", err)
	}
	var f spellListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse spell_list: %w", err)
	}
	t := &SpellTable{
		spells: make(map[int32]*SpellInfo, len(f.Spells)),
		byName: make(map[string]*SpellInfo, len(f.Spells)),
	}
	for i := range f.Spells {
		sp := &f.Spells[i]
		t.spells[sp.SpellID] = sp
		t.byName[sp.Name] = sp
	}
	return t, nil
}

// Get returns a spell by ID, or nil if not found.
func (t *SpellTable) Get(id int32) *SpellInfo {
	return t.spells[id]
}

// GetByName returns a spell by its exact name, or nil if not found.
func (t *SpellTable) GetByName(name string) *SpellInfo {
	return t.byName[name]
}

// Count returns total loaded spells.
func (t *SpellTable) Count() int {
	return len(t.spells)
}
