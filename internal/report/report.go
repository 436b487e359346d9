// Package report renders the write-once report objects into display lines.
package report

import (
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tornfelipe3-maker/customtibia-sub000/internal/world"
)

var printer = message.NewPrinter(language.English)

// FormatOffline renders an offline catch-up report, one line per fact,
// grouped kills and loot sorted by name for stable output.
func FormatOffline(r *world.OfflineReport) []string {
	if r == nil {
		return nil
	}
	lines := []string{
		printer.Sprintf("Welcome back! You were away for %d minutes (%d simulated).",
			r.ElapsedSeconds/60, r.SimulatedSeconds/60),
	}
	if r.EndLevel != r.StartLevel {
		lines = append(lines, printer.Sprintf("Level %d -> %d.", r.StartLevel, r.EndLevel))
	}
	if r.XPGained > 0 {
		lines = append(lines, printer.Sprintf("Experience gained: %d.", r.XPGained))
	}
	if r.GoldGained > 0 {
		lines = append(lines, printer.Sprintf("Gold gained: %d.", r.GoldGained))
	}
	for _, k := range sortedKeys(r.Kills) {
		lines = append(lines, printer.Sprintf("Killed %d x %s.", r.Kills[k], k))
	}
	for _, k := range sortedKeys(r.Loot) {
		lines = append(lines, printer.Sprintf("Looted %d x %s.", r.Loot[k], k))
	}
	skills := make([]string, 0, len(r.SkillGained))
	for id := range r.SkillGained {
		skills = append(skills, string(id))
	}
	sort.Strings(skills)
	for _, id := range skills {
		lines = append(lines, printer.Sprintf("%s advanced %d levels.", id, r.SkillGained[world.SkillID(id)]))
	}
	if r.Deaths > 0 {
		lines = append(lines, printer.Sprintf("You died %d times.", r.Deaths))
	}
	return lines
}

// FormatDeath renders a death report.
func FormatDeath(r *world.DeathReport) []string {
	if r == nil {
		return nil
	}
	lines := []string{
		printer.Sprintf("You were slain by %s.", r.Killer),
		printer.Sprintf("Lost %d experience and %d gold.", r.XPLost, r.GoldLost),
	}
	if r.LevelDown {
		lines = append(lines, "You dropped a level.")
	}
	if r.Blessed {
		lines = append(lines, "Your blessing absorbed most of the loss.")
	}
	return lines
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
