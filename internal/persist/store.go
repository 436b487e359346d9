// Package persist stores accounts, player aggregates and global stats. The
// player aggregate is saved as one JSON document guarded by a monotonic save
// timestamp; a stale caller gets ErrStaleSave instead of clobbering a newer
// save (last-write-wins with a server-side guard).
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tornfelipe3-maker/customtibia-sub000/internal/world"
)

// ErrStaleSave is returned when the caller's claimed prior-save timestamp no
// longer matches the stored row (another session saved in between).
var ErrStaleSave = errors.New("persist: save rejected, stored state is newer")

// AccountRow mirrors one accounts row.
type AccountRow struct {
	Name         string
	PasswordHash string
	GM           bool
	Banned       bool
	CreatedAt    int64
	LastActive   int64
}

// Store is the persistence collaborator consumed by the session facade.
// Load returns (nil, nil) when the account has no player yet.
type Store interface {
	LoadAccount(ctx context.Context, name string) (*AccountRow, error)
	CreateAccount(ctx context.Context, name, rawPassword string) (*AccountRow, error)

	LoadPlayer(ctx context.Context, accountID string) (*world.Player, error)
	// SavePlayer persists the aggregate and returns the new save timestamp.
	// prevSave must match the stored timestamp (0 for a first save).
	SavePlayer(ctx context.Context, p *world.Player, prevSave int64) (int64, error)

	// Global stats sync. Failures are logged by callers, never fatal.
	RecordDeath(ctx context.Context, name string, level int, vocation, killer string) error
	RecordKills(ctx context.Context, kills map[int32]int64) error

	Close()
}

// encodePlayer serializes the aggregate for the state column.
func encodePlayer(p *world.Player) ([]byte, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode player: %w", err)
	}
	return raw, nil
}

// decodePlayer restores an aggregate from the state column.
func decodePlayer(raw []byte) (*world.Player, error) {
	var p world.Player
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode player: %w", err)
	}
	normalize(&p)
	return &p, nil
}

// normalize backfills nil maps a defaulting merge step needs after decoding
// an older save.
func normalize(p *world.Player) {
	if p.Skills == nil {
		p.Skills = make(map[world.SkillID]*world.Skill, len(world.AllSkills))
	}
	for _, id := range world.AllSkills {
		if p.Skills[id] == nil {
			p.Skills[id] = &world.Skill{Level: 10}
		}
	}
	if p.Inv == nil {
		p.Inv = world.NewInventory()
	}
	if p.Inv.Stacks == nil {
		p.Inv.Stacks = make(map[int32]int64)
	}
	if p.Depot == nil {
		p.Depot = make(map[int32]int64)
	}
	if p.Equip.Slots == nil {
		p.Equip = world.NewEquipment()
	}
	if p.CD.Spells == nil {
		p.CD.Spells = make(map[int32]int)
	}
	if p.Ascension.Perks == nil {
		p.Ascension.Perks = make(map[string]int)
	}
	if p.Imbu.Slots == nil {
		p.Imbu = world.NewImbuementState()
	}
}

func nowUnix() int64 { return time.Now().Unix() }
