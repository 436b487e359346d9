package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/tornfelipe3-maker/customtibia-sub000/internal/config"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/world"
)

// RunOffline replays the elapsed wall-clock gap through the regular tick
// path in a tight loop, suppressing transient events and accumulating an
// aggregate report. Hunting catch-up is capped by configuration; training is
// implicitly bounded by the stamina reserve. Runs to completion before the
// session becomes interactive.
func RunOffline(s *Scheduler, elapsed time.Duration, cfg config.OfflineConfig) *world.OfflineReport {
	rt := s.Runtime()
	ticks := int64(elapsed / rt.Gameplay.TickRate)
	if !cfg.Enabled || ticks <= 0 || rt.Player.Activity.Idle() {
		return nil
	}

	simulated := ticks
	if rt.Player.Activity.Kind == world.ActivityHunt {
		if limit := int64(cfg.MaxHours) * 3600; limit > 0 && simulated > limit {
			simulated = limit
		}
	}

	report := &world.OfflineReport{
		ElapsedSeconds:   int64(elapsed / time.Second),
		SimulatedSeconds: simulated,
		StartLevel:       rt.Player.Level,
	}

	rt.Quiet = true
	rt.Report = report
	start := time.Now()
	// A death or boss kill mid-replay drops the activity to idle; the rest
	// of the gap still ticks so regen and refill timers advance.
	for i := int64(0); i < simulated; i++ {
		s.Tick()
	}
	rt.Quiet = false
	rt.Report = nil

	report.EndLevel = rt.Player.Level
	rt.Log.Info("offline catch-up complete",
		zap.Int64("elapsed_s", report.ElapsedSeconds),
		zap.Int64("simulated_s", report.SimulatedSeconds),
		zap.Int("levels_gained", report.EndLevel-report.StartLevel),
		zap.Duration("took", time.Since(start)))
	return report
}
