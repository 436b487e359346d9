package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/tornfelipe3-maker/customtibia-sub000/internal/config"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/world"
)

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func NewPostgresStore(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.MaxIdleConns)
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	if err := runMigrations(ctx, db, "postgres"); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool, log: log}, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) LoadAccount(ctx context.Context, name string) (*AccountRow, error) {
	row := &AccountRow{}
	err := s.pool.QueryRow(ctx,
		`SELECT name, password_hash, gm, banned, created_at, last_active
		 FROM accounts WHERE name = $1`, name,
	).Scan(&row.Name, &row.PasswordHash, &row.GM, &row.Banned, &row.CreatedAt, &row.LastActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (s *PostgresStore) CreateAccount(ctx context.Context, name, rawPassword string) (*AccountRow, error) {
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
	_, err = s.pool.Exec(ctx,
		`INSERT INTO accounts (name, password_hash, created_at, last_active)
		 VALUES ($1, $2, $3, $4)`,
		row.Name, row.PasswordHash, row.CreatedAt, row.LastActive,
	)
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (s *PostgresStore) LoadPlayer(ctx context.Context, accountID string) (*world.Player, error) {
	var raw []byte
	var lastSave int64
	err := s.pool.QueryRow(ctx,
		`SELECT state, last_save FROM players WHERE account_id = $1`, accountID,
	).Scan(&raw, &lastSave)
	if errors.Is(err, pgx.ErrNoRows) {
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

func (s *PostgresStore) SavePlayer(ctx context.Context, p *world.Player, prevSave int64) (int64, error) {
	raw, err := encodePlayer(p)
	if err != nil {
		return 0, err
	}
	stamp := nowUnix()
	if stamp <= prevSave {
		stamp = prevSave + 1 // keep the guard monotonic across rapid saves
	}

	tag, err := s.pool.Exec(ctx,
		`INSERT INTO players (account_id, name, level, vocation, state, last_save)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (account_id) DO UPDATE
		 SET name = excluded.name, level = excluded.level, vocation = excluded.vocation,
		     state = excluded.state, last_save = excluded.last_save
		 WHERE players.last_save = $7`,
		p.AccountID, p.Name, p.Level, p.Vocation.String(), raw, stamp, prevSave,
	)
	if err != nil {
		return 0, err
	}
	if tag.RowsAffected() == 0 {
		return 0, ErrStaleSave
	}
	return stamp, nil
}

func (s *PostgresStore) RecordDeath(ctx context.Context, name string, level int, vocation, killer string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO deathlog (died_at, name, level, vocation, killer)
		 VALUES ($1, $2, $3, $4, $5)`,
		nowUnix(), name, level, vocation, killer,
	)
	return err
}

func (s *PostgresStore) RecordKills(ctx context.Context, kills map[int32]int64) error {
	for monsterID, count := range kills {
		if _, err := s.pool.Exec(ctx,
			`INSERT INTO kill_stats (monster_id, kills) VALUES ($1, $2)
			 ON CONFLICT (monster_id) DO UPDATE SET kills = kill_stats.kills + excluded.kills`,
			monsterID, count,
		); err != nil {
			return err
		}
	}
	return nil
}
