// Package bot is the Discord surface of Hearth: slash command
// registration, per-feature handlers, and DM delivery of reminders.
package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/hearthbot/hearth/internal/assist"
	"github.com/hearthbot/hearth/internal/logging"
	"github.com/hearthbot/hearth/internal/reminder"
	"github.com/hearthbot/hearth/internal/storage"
)

// Config for the bot
type Config struct {
	Token   string
	GuildID string // Optional; empty registers commands globally
}

// Bot wraps the Discord session and the feature handlers
type Bot struct {
	session *discordgo.Session
	guildID string

	users     *storage.UserStore
	events    *storage.EventStore
	cooking   *storage.CookingStore
	todos     *storage.TodoStore
	plans     *storage.PlanStore
	reminders *reminder.Service
	assist    *assist.Service

	log *logging.Logger
}

// New creates the bot. The session is not opened until Start.
func New(cfg Config, db *storage.DB, reminders *reminder.Service, assistSvc *assist.Service) (*Bot, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("discord token is required")
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	return &Bot{
		session:   session,
		guildID:   cfg.GuildID,
		users:     storage.NewUserStore(db),
		events:    storage.NewEventStore(db),
		cooking:   storage.NewCookingStore(db),
		todos:     storage.NewTodoStore(db),
		plans:     storage.NewPlanStore(db),
		reminders: reminders,
		assist:    assistSvc,
		log:       logging.WithField("component", "bot"),
	}, nil
}

// Start opens the gateway connection and registers slash commands
func (b *Bot) Start(ctx context.Context) error {
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.log.Info("connected as %s in %d guilds", r.User.Username, len(r.Guilds))
	})
	b.session.AddHandler(b.handleInteraction)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}

	appID := b.session.State.User.ID
	if _, err := b.session.ApplicationCommandBulkOverwrite(appID, b.guildID, commands()); err != nil {
		b.session.Close()
		return fmt.Errorf("register commands: %w", err)
	}

	b.log.Info("registered %d command groups", len(commands()))
	return nil
}

// Stop closes the gateway connection
func (b *Bot) Stop() error {
	return b.session.Close()
}

// Session exposes the underlying session for the DM notifier
func (b *Bot) Session() *discordgo.Session {
	return b.session
}

// handleInteraction routes an incoming slash command to its handler.
// Handler panics are contained so one bad interaction cannot take the
// gateway loop down.
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			b.log.Error("handler panic for /%s: %v", i.ApplicationCommandData().Name, r)
		}
	}()

	data := i.ApplicationCommandData()
	switch data.Name {
	case "event":
		b.handleEvent(s, i, data)
	case "cooking":
		b.handleCooking(s, i, data)
	case "todo":
		b.handleTodo(s, i, data)
	case "plan":
		b.handlePlan(s, i, data)
	case "help":
		b.handleHelp(s, i)
	default:
		b.respondError(s, i, "Unknown command")
	}
}

// interactionUser returns the invoking user, whether the command came
// from a guild channel or a DM.
func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}
