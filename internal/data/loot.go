package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LootEntry represents a single possible drop from a loot table. Each entry is
// an independent trial; Chance is out of 1,000,000 (100% = 1000000).
type LootEntry struct {
	ItemID    int32 `yaml:"item_id"`
	MaxAmount int   `yaml:"max_amount"`
	Chance    int   `yaml:"chance"`
}

type lootTableEntry struct {
	TableID int32       `yaml:"table_id"`
	Items   []LootEntry `yaml:"items"`
}

type lootListFile struct {
	Tables []lootTableEntry `yaml:"tables"`
}

// LootTable holds all drop lists indexed by table ID.
type LootTable struct {
	tables map[int32][]LootEntry
}

// Get returns the loot entries for a table, or nil if none defined.
func (t *LootTable) Get(tableID int32) []LootEntry {
	return t.tables[tableID]
}

// Count returns the number of loot tables.
func (t *LootTable) Count() int {
	return len(t.tables)
}

// LoadLootTable loads drop tables from a YAML file.
func LoadLootTable(path string) (*LootTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read loot_list: %w", err)
	}
	var f lootListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse loot_list: %w", err)
	}
	t := &LootTable{tables: make(map[int32][]LootEntry, len(f.Tables))}
	for _, entry := range f.Tables {
		t.tables[entry.TableID] = entry.Items
	}
	return t, nil
}
