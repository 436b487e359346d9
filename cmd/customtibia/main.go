package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tornfelipe3-maker/customtibia-sub000/internal/config"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/data"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/logging"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/persist"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/report"
	"github.com/tornfelipe3-maker/customtibia-sub000/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(serverName string, serverID int) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m          CustomTibia  v0.1.0              \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m       idle RPG simulation server          \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mserver:\033[0m %s \033[90m(id: %d)\033[0m\n\n", serverName, serverID)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main server logic ─────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/server.toml"
	if p := os.Getenv("CUSTOMTIBIA_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = config.Default()
	}

	// 2. Init logger
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name, cfg.Server.ID)

	// 3. Open the store and run migrations
	printSection("database")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := persist.Open(ctx, cfg.Database, log)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer store.Close()
	printOK(fmt.Sprintf("%s store ready, migrations applied", cfg.Database.Driver))
	fmt.Println()

	// 4. Load catalogs
	printSection("catalogs")

	monsters, err := data.LoadMonsterTable("data/yaml/monster_list.yaml")
	if err != nil {
		return fmt.Errorf("load monsters: %w", err)
	}
	printStat("monsters", monsters.Count())

	items, err := data.LoadItemTable("data/yaml/item_list.yaml")
	if err != nil {
		return fmt.Errorf("load items: %w", err)
	}
	printStat("items", items.Count())

	spells, err := data.LoadSpellTable("data/yaml/spell_list.yaml")
	if err != nil {
		return fmt.Errorf("load spells: %w", err)
	}
	printStat("spells", spells.Count())

	loot, err := data.LoadLootTable("data/yaml/loot_list.yaml")
	if err != nil {
		return fmt.Errorf("load loot: %w", err)
	}
	printStat("loot tables", loot.Count())

	tasks, err := data.LoadTaskTable("data/yaml/task_list.yaml")
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	printStat("tasks", tasks.Count())
	fmt.Println()

	// 5. Open the session (auth, load, offline catch-up)
	printSection("session")

	account := os.Getenv("CUSTOMTIBIA_ACCOUNT")
	if account == "" {
		account = "player1"
	}
	password := os.Getenv("CUSTOMTIBIA_PASSWORD")
	if password == "" {
		password = "secret"
	}

	sess, err := session.Open(ctx, account, password, session.Deps{
		Cfg:        cfg,
		Log:        log,
		Store:      store,
		Monsters:   monsters,
		Items:      items,
		Spells:     spells,
		Loot:       loot,
		Tasks:      tasks,
		ScriptsDir: "scripts",
	})
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	printOK(fmt.Sprintf("session open for %s", account))

	if offline := sess.OfflineReport(); offline != nil {
		for _, line := range report.FormatOffline(offline) {
			fmt.Printf("    %s\n", line)
		}
	}
	if death := sess.DeathReport(); death != nil {
		for _, line := range report.FormatDeath(death) {
			fmt.Printf("    %s\n", line)
		}
	}
	fmt.Println()

	printReady(fmt.Sprintf("ticking every %s, ctrl-c to stop", cfg.Gameplay.TickRate))
	fmt.Println()

	// 6. Tick loop until shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Gameplay.TickRate)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			tickCtx, tickCancel := context.WithTimeout(context.Background(), cfg.Gameplay.TickRate)
			sess.Tick(tickCtx)
			tickCancel()
			for _, line := range sess.Logs() {
				fmt.Printf("  %s\n", line)
			}
		case <-stop:
			log.Info("shutting down")
			saveCtx, saveCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer saveCancel()
			if err := sess.Close(saveCtx); err != nil {
				log.Error("final save failed", zap.Error(err))
				return err
			}
			printOK("state saved, goodbye")
			return nil
		}
	}
}
