package session

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/tornfelipe3-maker/customtibia-sub000/internal/config"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/data"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/persist"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/world"
)

// memStore is an in-memory persist.Store. Players round-trip through JSON so
// tests exercise the same serialization shape the real stores use.
type memStore struct {
	mu       sync.Mutex
	accounts map[string]*persist.AccountRow
	players  map[string][]byte
	stamps   map[string]int64
	deaths   int
	kills    map[int32]int64
}

func newMemStore() *memStore {
	return &memStore{
		accounts: make(map[string]*persist.AccountRow),
		players:  make(map[string][]byte),
		stamps:   make(map[string]int64),
		kills:    make(map[int32]int64),
	}
}

func (m *memStore) LoadAccount(_ context.Context, name string) (*persist.AccountRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[name]
	if !ok {
		return nil, nil
	}
	cp := *acc
	return &cp, nil
}

func (m *memStore) CreateAccount(_ context.Context, name, rawPassword string) (*persist.AccountRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	acc := &persist.AccountRow{Name: name, PasswordHash: string(hash)}
	m.accounts[name] = acc
	cp := *acc
	return &cp, nil
}

func (m *memStore) LoadPlayer(_ context.Context, accountID string) (*world.Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.players[accountID]
	if !ok {
		return nil, nil
	}
	var p world.Player
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *memStore) SavePlayer(_ context.Context, p *world.Player, prevSave int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stamps[p.AccountID] != prevSave {
		return 0, persist.ErrStaleSave
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return 0, err
	}
	stamp := prevSave + 1
	m.players[p.AccountID] = raw
	m.stamps[p.AccountID] = stamp
	return stamp, nil
}

func (m *memStore) RecordDeath(_ context.Context, _ string, _ int, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deaths++
	return nil
}

func (m *memStore) RecordKills(_ context.Context, kills map[int32]int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, n := range kills {
		m.kills[id] += n
	}
	return nil
}

func (m *memStore) Close() {}

// putPlayer seeds a stored aggregate directly, bypassing the session.
func (m *memStore) putPlayer(t *testing.T, p *world.Player) {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	m.players[p.AccountID] = raw
	m.stamps[p.AccountID] = p.LastSaveTime
}

func testDeps(t *testing.T, store persist.Store) Deps {
	t.Helper()
	monsters, err := data.LoadMonsterTable("../../data/yaml/monster_list.yaml")
	if err != nil {
		t.Fatal(err)
	}
	items, err := data.LoadItemTable("../../data/yaml/item_list.yaml")
	if err != nil {
		t.Fatal(err)
	}
	spells, err := data.LoadSpellTable("../../data/yaml/spell_list.yaml")
	if err != nil {
		t.Fatal(err)
	}
	loot, err := data.LoadLootTable("../../data/yaml/loot_list.yaml")
	if err != nil {
		t.Fatal(err)
	}
	tasks, err := data.LoadTaskTable("../../data/yaml/task_list.yaml")
	if err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Gameplay.RNGSeed = 1

	return Deps{
		Cfg:        cfg,
		Log:        zap.NewNop(),
		Store:      store,
		Monsters:   monsters,
		Items:      items,
		Spells:     spells,
		Loot:       loot,
		Tasks:      tasks,
		ScriptsDir: "../../scripts",
	}
}

func openTestSession(t *testing.T) (*Session, *memStore) {
	t.Helper()
	store := newMemStore()
	s, err := Open(context.Background(), "tester", "secret", testDeps(t, store))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s, store
}
