// Package session is the single entry surface for one playing character. It
// owns the player aggregate and the tick scheduler; every UI mutation is a
// synchronous state transition serialized against the tick loop, so nothing
// interleaves mid-tick. Invalid-state transitions are rejected here before
// they reach the simulation.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/tornfelipe3-maker/customtibia-sub000/internal/config"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/core/event"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/data"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/persist"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/rng"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/scripting"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/system"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/world"
)

// Gameplay rejection errors. Resource shortfalls never mutate state.
var (
	ErrInvalidState = errors.New("session: operation not allowed in current state")
	ErrNotFound     = errors.New("session: no such entity")
	ErrInsufficient = errors.New("session: insufficient resources")
	ErrBadPassword  = errors.New("session: wrong password")
	ErrBanned       = errors.New("session: account is banned")
)

// Deps bundles everything a session needs. Catalogs are shared and read-only.
type Deps struct {
	Cfg        *config.Config
	Log        *zap.Logger
	Store      persist.Store
	Monsters   *data.MonsterTable
	Items      *data.ItemTable
	Spells     *data.SpellTable
	Loot       *data.LootTable
	Tasks      *data.TaskTable
	ScriptsDir string
}

// Session owns one character. All exported methods lock; the zero value is
// not usable, construct through Open.
type Session struct {
	mu sync.Mutex

	deps    Deps
	log     *zap.Logger
	account *persist.AccountRow

	rt    *system.Runtime
	sched *system.Scheduler
	lua   *scripting.Engine

	hits    []event.HitSplat
	logs    []string
	offline *world.OfflineReport
	death   *world.DeathReport

	sinceSave int
}

// Open authenticates (creating the account on first login), loads or creates
// the character, replays the offline gap and returns an interactive session.
func Open(ctx context.Context, accountName, password string, d Deps) (*Session, error) {
	acc, err := d.Store.LoadAccount(ctx, accountName)
	if err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}
	if acc == nil {
		acc, err = d.Store.CreateAccount(ctx, accountName, password)
		if err != nil {
			return nil, fmt.Errorf("create account: %w", err)
		}
		d.Log.Info("account auto-created", zap.String("account", accountName))
	} else {
		if acc.Banned {
			return nil, ErrBanned
		}
		if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
			return nil, ErrBadPassword
		}
	}

	p, err := d.Store.LoadPlayer(ctx, accountName)
	if err != nil {
		return nil, fmt.Errorf("load player: %w", err)
	}
	fresh := p == nil
	if fresh {
		p = world.NewPlayer(accountName, d.Cfg.Gameplay.MaxStamina)
		p.Settings.HealSpellPct = d.Cfg.Bot.HealSpellPct
		p.Settings.HealPotionPct = d.Cfg.Bot.HealPotionPct
		p.Settings.ManaPotionPct = d.Cfg.Bot.ManaPotionPct
	}
	if !acc.GM {
		p.Settings.ForcedRarity = world.RarityNone
	}

	seed := d.Cfg.Gameplay.RNGSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	src := rng.New(seed)

	lua, err := scripting.NewEngine(d.ScriptsDir, src, d.Log)
	if err != nil {
		return nil, fmt.Errorf("scripting: %w", err)
	}

	bus := event.NewBus()
	rt := system.NewRuntime(p, d.Monsters, d.Items, d.Spells, d.Loot, d.Tasks,
		src, lua, bus, d.Cfg.Gameplay, d.Log)

	s := &Session{
		deps:    d,
		log:     d.Log.With(zap.String("account", accountName)),
		account: acc,
		rt:      rt,
		sched:   system.NewScheduler(rt),
		lua:     lua,
	}
	s.subscribe(bus)

	if !fresh && p.LastSaveTime > 0 {
		elapsed := time.Duration(time.Now().Unix()-p.LastSaveTime) * time.Second
		s.offline = system.RunOffline(s.sched, elapsed, d.Cfg.Offline)
		s.death = rt.Death
		rt.Death = nil
	}

	if err := s.save(ctx); err != nil {
		s.log.Warn("initial save failed", zap.Error(err))
	}
	return s, nil
}

// subscribe wires the presentation queues onto the event bus. Handlers run
// inside Tick under the session lock.
func (s *Session) subscribe(bus *event.Bus) {
	event.Subscribe(bus, func(ev event.HitSplat) {
		s.hits = append(s.hits, ev)
	})
	event.Subscribe(bus, func(ev event.MonsterKilled) {
		if ev.Count > 1 {
			s.logf("%dx %s died, worth %d experience.", ev.Count, ev.Name, ev.Exp)
		} else {
			s.logf("%s died, worth %d experience.", ev.Name, ev.Exp)
		}
	})
	event.Subscribe(bus, func(ev event.LevelUp) {
		s.logf("You advanced to level %d.", ev.NewLevel)
	})
	event.Subscribe(bus, func(ev event.SkillAdvanced) {
		s.logf("Your %s skill reached %d.", ev.Skill, ev.NewLevel)
	})
	event.Subscribe(bus, func(ev event.TaskCompleted) {
		s.logf("Hunting task complete. Claim your reward.")
	})
	event.Subscribe(bus, func(ev event.ContentUnlocked) {
		s.logf("New content unlocked at level %d: %s.", ev.Level, ev.Feature)
	})
	event.Subscribe(bus, func(ev event.PreyExpired) {
		s.logf("Prey slot %d has run out.", ev.Slot+1)
	})
	event.Subscribe(bus, func(ev event.PlayerDied) {
		s.logf("You were slain by %s.", ev.Killer)
	})
}

func (s *Session) logf(format string, args ...any) {
	s.logs = append(s.logs, fmt.Sprintf(format, args...))
}

// Tick advances the simulation one game-second. Called by the tick loop, not
// the presentation layer.
func (s *Session) Tick(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sched.Tick()

	if s.rt.Death != nil {
		s.death = s.rt.Death
		s.rt.Death = nil
		s.recordDeath(s.death)
	}

	s.sinceSave++
	if s.sinceSave >= s.deps.Cfg.Gameplay.SaveInterval {
		s.sinceSave = 0
		if err := s.save(ctx); err != nil {
			s.log.Warn("auto-save failed", zap.Error(err))
		}
	}
}

// recordDeath hands the kill attribution to the global deathlog. Fire and
// forget; a failure is a log line, never a blocked tick.
func (s *Session) recordDeath(r *world.DeathReport) {
	p := s.rt.Player
	name, level, voc, killer := p.Name, p.Level, p.Vocation.String(), r.Killer
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.deps.Store.RecordDeath(ctx, name, level, voc, killer); err != nil {
			s.log.Warn("deathlog write failed", zap.Error(err))
		}
	}()
}

// save flushes the aggregate and drains the runtime's kill-stat batch, which
// replayed offline kills feed the same as live ones. The save timestamp guard
// rejects writes when another session saved in between.
func (s *Session) save(ctx context.Context) error {
	p := s.rt.Player
	stamp, err := s.deps.Store.SavePlayer(ctx, p, p.LastSaveTime)
	if err != nil {
		return err
	}
	p.LastSaveTime = stamp

	if len(s.rt.Kills) > 0 {
		batch := s.rt.Kills
		s.rt.Kills = make(map[int32]int64)
		go func() {
			kctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.deps.Store.RecordKills(kctx, batch); err != nil {
				s.log.Warn("kill-stat sync failed", zap.Error(err))
			}
		}()
	}
	return nil
}

// Save is the explicit flush used by the shutdown path.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx)
}

// Close saves and releases the Lua VM.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.save(ctx)
	s.lua.Close()
	return err
}

// ---------- snapshot reads ----------

// Player returns a copy of the aggregate for display. Reference fields still
// point into live state; the presentation layer must treat them as read-only.
func (s *Session) Player() world.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.rt.Player
}

// ActiveMonster returns a copy of the current encounter, or nil.
func (s *Session) ActiveMonster() *world.MonsterInstance {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rt.Encounter == nil {
		return nil
	}
	m := *s.rt.Encounter
	return &m
}

// Hits drains the pending hit splats.
func (s *Session) Hits() []event.HitSplat {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.hits
	s.hits = nil
	return out
}

// Logs drains the pending log lines.
func (s *Session) Logs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.logs
	s.logs = nil
	return out
}

// OfflineReport returns the catch-up report exactly once.
func (s *Session) OfflineReport() *world.OfflineReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.offline
	s.offline = nil
	return r
}

// DeathReport returns the latest death report exactly once.
func (s *Session) DeathReport() *world.DeathReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.death
	s.death = nil
	return r
}
