package system

import (
	"testing"
	"time"

	"github.com/tornfelipe3-maker/customtibia-sub000/internal/config"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/core/event"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/world"
)

func offlineCfg() config.OfflineConfig {
	return config.OfflineConfig{Enabled: true, MaxHours: 24}
}

// Offline catch-up replays the live tick path over the same seeded stream, so
// a replayed gap must land on exactly the state live ticking produces.
func TestOfflineMatchesLiveExactly(t *testing.T) {
	const seed, ticks = 4242, 3000

	live := newSeededScheduler(t, seed)
	startHuntOn(live.Runtime(), 2, 3)
	for i := 0; i < ticks; i++ {
		live.Tick()
	}

	replay := newSeededScheduler(t, seed)
	startHuntOn(replay.Runtime(), 2, 3)
	report := RunOffline(replay, ticks*time.Second, offlineCfg())
	if report == nil {
		t.Fatal("no offline report")
	}

	lp, rp := live.Runtime().Player, replay.Runtime().Player
	if lp.Level != rp.Level || lp.Exp != rp.Exp {
		t.Errorf("progress diverged: live %d/%d, replay %d/%d", lp.Level, lp.Exp, rp.Level, rp.Exp)
	}
	if lp.Gold != rp.Gold {
		t.Errorf("gold diverged: %d vs %d", lp.Gold, rp.Gold)
	}
	if lp.HP != rp.HP || lp.MP != rp.MP {
		t.Errorf("vitals diverged: %d/%d vs %d/%d", lp.HP, lp.MP, rp.HP, rp.MP)
	}
	for _, id := range world.AllSkills {
		if lp.Skills[id].Level != rp.Skills[id].Level || lp.Skills[id].Progress != rp.Skills[id].Progress {
			t.Errorf("skill %s diverged", id)
		}
	}
	for id, n := range lp.Inv.Stacks {
		if rp.Inv.Stacks[id] != n {
			t.Errorf("stack %d diverged: %d vs %d", id, n, rp.Inv.Stacks[id])
		}
	}
	if len(lp.Inv.Uniques) != len(rp.Inv.Uniques) {
		t.Errorf("unique drops diverged: %d vs %d", len(lp.Inv.Uniques), len(rp.Inv.Uniques))
	}
}

func TestOfflineReportAccumulates(t *testing.T) {
	s := newSeededScheduler(t, 7)
	startHuntOn(s.Runtime(), 1, 2)

	report := RunOffline(s, time.Hour, offlineCfg())
	if report == nil {
		t.Fatal("no report")
	}
	if report.SimulatedSeconds != 3600 {
		t.Errorf("simulated = %d, want 3600", report.SimulatedSeconds)
	}
	var kills int64
	for _, n := range report.Kills {
		kills += n
	}
	if kills == 0 {
		t.Error("an hour of rat hunting should record kills")
	}
	if report.XPGained == 0 {
		t.Error("no XP recorded")
	}
	if report.EndLevel < report.StartLevel {
		t.Error("levels went backwards")
	}
}

func TestOfflineHuntCapped(t *testing.T) {
	s := newSeededScheduler(t, 7)
	startHuntOn(s.Runtime(), 1, 1)

	cfg := config.OfflineConfig{Enabled: true, MaxHours: 1}
	report := RunOffline(s, 10*time.Hour, cfg)
	if report == nil {
		t.Fatal("no report")
	}
	if report.SimulatedSeconds != 3600 {
		t.Errorf("simulated = %d, want capped 3600", report.SimulatedSeconds)
	}
	if report.ElapsedSeconds != 36000 {
		t.Errorf("elapsed = %d, want 36000", report.ElapsedSeconds)
	}
}

func TestOfflineTrainingUncappedByHours(t *testing.T) {
	s := newSeededScheduler(t, 7)
	rt := s.Runtime()
	rt.Player.Stamina = 100
	rt.Player.Activity = world.Activity{Kind: world.ActivityTrain, Skill: world.SkillSword}

	cfg := config.OfflineConfig{Enabled: true, MaxHours: 1}
	report := RunOffline(s, 2*time.Hour, cfg)
	if report == nil {
		t.Fatal("no report")
	}
	// Training replays the full gap; the stamina reserve is its own cap.
	if report.SimulatedSeconds != 7200 {
		t.Errorf("simulated = %d, want 7200", report.SimulatedSeconds)
	}
	if rt.Player.Stamina != 0 {
		t.Errorf("stamina = %d, want drained", rt.Player.Stamina)
	}
}

func TestOfflineSkippedWhenIdleOrDisabled(t *testing.T) {
	s := newSeededScheduler(t, 7)
	if RunOffline(s, time.Hour, offlineCfg()) != nil {
		t.Error("idle character produced a report")
	}

	startHuntOn(s.Runtime(), 1, 1)
	if RunOffline(s, time.Hour, config.OfflineConfig{Enabled: false}) != nil {
		t.Error("disabled catch-up produced a report")
	}
	if RunOffline(s, 0, offlineCfg()) != nil {
		t.Error("zero gap produced a report")
	}
}

func TestOfflineQuietSuppressesEvents(t *testing.T) {
	s := newSeededScheduler(t, 7)
	rt := s.Runtime()
	hits := 0
	event.Subscribe(rt.Bus, func(event.HitSplat) { hits++ })
	startHuntOn(rt, 1, 1)

	RunOffline(s, time.Hour, offlineCfg())
	// Drain whatever could still sit in the buffers.
	rt.Bus.Drain()
	if hits != 0 {
		t.Errorf("%d hit splats leaked from replay", hits)
	}
	if rt.Quiet {
		t.Error("quiet flag must reset after replay")
	}
	if rt.Report != nil {
		t.Error("report accumulator must detach after replay")
	}
}

func TestSchedulerDeliversEventsNextTick(t *testing.T) {
	s := newSeededScheduler(t, 11)
	rt := s.Runtime()
	hits := 0
	event.Subscribe(rt.Bus, func(event.HitSplat) { hits++ })
	startHuntOn(rt, 1, 1)

	s.Tick() // spawn
	s.Tick() // first swing, emitted into the back buffer
	if hits != 0 {
		t.Fatal("splat delivered in its own tick")
	}
	s.Tick()
	if hits == 0 {
		t.Fatal("splat never delivered")
	}
}

func TestSchedulerDeathMidHuntGoesIdle(t *testing.T) {
	s := newSeededScheduler(t, 3)
	rt := s.Runtime()
	startHuntOn(rt, 10, 1) // a demon against a level-1 character
	rt.Player.Gold = 100

	for i := 0; i < 400 && rt.Death == nil; i++ {
		s.Tick()
	}
	if rt.Death == nil {
		t.Fatal("character survived a demon far too long")
	}
	if !rt.Player.Activity.Idle() {
		t.Error("death should end the hunt")
	}
	if rt.Player.HP <= 0 {
		t.Error("vitals not restored after death")
	}
}
