package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"github.com/tornfelipe3-maker/customtibia-sub000/internal/config"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/world"
)

// SQLiteStore implements Store on an embedded database file. This is the
// zero-setup default for single-host deployments and tests.
type SQLiteStore struct {
	db  *sql.DB
	log *zap.Logger
}

func NewSQLiteStore(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
	}
	// One writer at a time keeps the save guard honest.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite pragmas: %w", err)
	}
	if err := runMigrations(ctx, db, "sqlite3"); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db, log: log}, nil
}

func (s *SQLiteStore) Close() {
	s.db.Close()
}

func (s *SQLiteStore) LoadAccount(ctx context.Context, name string) (*AccountRow, error) {
	row := &AccountRow{}
	err := s.db.QueryRowContext(ctx,
		`SELECT name, password_hash, gm, banned, created_at, last_active
		 FROM accounts WHERE name = ?`, name,
	).Scan(&row.Name, &row.PasswordHash, &row.GM, &row.Banned, &row.CreatedAt, &row.LastActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (s *SQLiteStore) CreateAccount(ctx context.Context, name, rawPassword string) (*AccountRow, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	row := &AccountRow{
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    nowUnix(),
		LastActive:   nowUnix(),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO accounts (name, password_hash, created_at, last_active)
		 VALUES (?, ?, ?, ?)`,
		row.Name, row.PasswordHash, row.CreatedAt, row.LastActive,
	)
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (s *SQLiteStore) LoadPlayer(ctx context.Context, accountID string) (*world.Player, error) {
	var raw []byte
	var lastSave int64
	err := s.db.QueryRowContext(ctx,
		`SELECT state, last_save FROM players WHERE account_id = ?`, accountID,
	).Scan(&raw, &lastSave)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p, err := decodePlayer(raw)
	if err != nil {
		return nil, err
	}
	p.LastSaveTime = lastSave
	return p, nil
}

func (s *SQLiteStore) SavePlayer(ctx context.Context, p *world.Player, prevSave int64) (int64, error) {
	raw, err := encodePlayer(p)
	if err != nil {
		return 0, err
	}
	stamp := nowUnix()
	if stamp <= prevSave {
		stamp = prevSave + 1
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO players (account_id, name, level, vocation, state, last_save)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (account_id) DO UPDATE
		 SET name = excluded.name, level = excluded.level, vocation = excluded.vocation,
		     state = excluded.state, last_save = excluded.last_save
		 WHERE players.last_save = ?`,
		p.AccountID, p.Name, p.Level, p.Vocation.String(), raw, stamp, prevSave,
	)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, ErrStaleSave
	}
	return stamp, nil
}

func (s *SQLiteStore) RecordDeath(ctx context.Context, name string, level int, vocation, killer string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO deathlog (died_at, name, level, vocation, killer)
		 VALUES (?, ?, ?, ?, ?)`,
		nowUnix(), name, level, vocation, killer,
	)
	return err
}

func (s *SQLiteStore) RecordKills(ctx context.Context, kills map[int32]int64) error {
	for monsterID, count := range kills {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO kill_stats (monster_id, kills) VALUES (?, ?)
			 ON CONFLICT (monster_id) DO UPDATE SET kills = kill_stats.kills + excluded.kills`,
			monsterID, count,
		); err != nil {
			return err
		}
	}
	return nil
}

// Open selects the configured driver.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (Store, error) {
	switch cfg.Driver {
	case "postgres":
		return NewPostgresStore(ctx, cfg, log)
	default:
		return NewSQLiteStore(ctx, cfg, log)
	}
}
