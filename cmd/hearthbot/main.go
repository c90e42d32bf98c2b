// Hearth daemon: the household Discord bot and its background jobs
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hearthbot/hearth/internal/api"
	"github.com/hearthbot/hearth/internal/assist"
	"github.com/hearthbot/hearth/internal/bot"
	"github.com/hearthbot/hearth/internal/config"
	"github.com/hearthbot/hearth/internal/logging"
	"github.com/hearthbot/hearth/internal/reminder"
	"github.com/hearthbot/hearth/internal/scheduler"
	"github.com/hearthbot/hearth/internal/storage"
)

var (
	configPath string
	dataDir    string
	opsPort    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hearthbot",
		Short: "Hearth - household logistics bot for Discord",
		RunE:  runDaemon,
	}

	rootCmd.Flags().StringVar(&configPath, "config", "", "Config file path (default: <data-dir>/config.json)")
	rootCmd.Flags().StringVar(&dataDir, "data-dir", "", "Data directory (default: ~/.hearth)")
	rootCmd.Flags().IntVar(&opsPort, "ops-port", 0, "Ops HTTP port override")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runDaemon(cmd *cobra.Command, args []string) error {
	log := logging.WithField("component", "main")

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if opsPort != 0 {
		cfg.Ops.Port = opsPort
	}
	if cfg.Discord.Token == "" {
		return fmt.Errorf("DISCORD_BOT_TOKEN is not set")
	}

	dbPath := filepath.Join(cfg.DataDir, "hearth.db")
	db, err := storage.Open(storage.Config{Path: dbPath})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	log.Info("database ready at %s", dbPath)

	assistClient := assist.NewClient(assist.ClientConfig{
		APIKey: cfg.Claude.APIKey,
		Model:  cfg.Claude.Model,
	})
	if assistClient.IsConfigured() {
		log.Info("AI assist configured (%s)", cfg.Claude.Model)
	} else {
		log.Warn("ANTHROPIC_API_KEY not set, assist features use deterministic fallbacks")
	}
	assistSvc := assist.NewService(assistClient)

	// The reminder service needs the bot's notifier; the bot needs the
	// reminder service. Built bot-last with a late-bound notifier.
	var notifier lateNotifier
	reminders := reminder.NewService(db, &notifier, reminder.Config{
		PastDue:         cfg.Reminders.PastDue,
		CookingLeadHour: cfg.Reminders.CookingLeadHour,
		Timezone:        cfg.Reminders.Timezone,
	})

	discordBot, err := bot.New(bot.Config{
		Token:   cfg.Discord.Token,
		GuildID: cfg.Discord.GuildID,
	}, db, reminders, assistSvc)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}
	notifier.inner = discordBot.Notifier()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := discordBot.Start(ctx); err != nil {
		return fmt.Errorf("start bot: %w", err)
	}
	defer discordBot.Stop()

	sched := scheduler.New(cfg.Reminders.Timezone)
	tick := time.Duration(cfg.Reminders.TickInterval)
	if tick <= 0 {
		tick = 5 * time.Minute
	}
	sched.Register(scheduler.IntervalJob("reminder-tick", "Due reminder delivery", tick, reminders.Tick))
	sched.Register(scheduler.DailyJob("cooking-pregen", "Next-day cooking reminders", cfg.Reminders.PregenAt, reminders.GenerateDailyCookingReminders))
	if err := sched.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer sched.Stop()
	log.Info("scheduler running, reminder tick every %s", tick)

	var opsServer *api.Server
	if cfg.Ops.Enabled {
		opsServer = api.New(api.Config{
			Port:      cfg.Ops.Port,
			Scheduler: sched,
			DB:        db,
		})
		go func() {
			if err := opsServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("ops server: %v", err)
			}
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down")
	if opsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		opsServer.Stop(shutdownCtx)
	}
	return nil
}

// lateNotifier defers to a notifier bound after construction. SendDM
// before binding reports an error so the reminder stays unsent and is
// retried on a later tick.
type lateNotifier struct {
	inner reminder.Notifier
}

func (n *lateNotifier) SendDM(ctx context.Context, discordID string, msg reminder.Notification) error {
	if n.inner == nil {
		return fmt.Errorf("notifier not ready")
	}
	return n.inner.SendDM(ctx, discordID, msg)
}
