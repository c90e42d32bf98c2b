package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/hearthbot/hearth/internal/core"
)

const defaultEventTime = "18:00"

func (b *Bot) handleEvent(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	sub := data.Options[0]
	opts := optionMap(sub.Options)

	switch sub.Name {
	case "create":
		b.eventCreate(s, i, opts)
	case "list":
		b.eventList(s, i)
	case "join":
		b.eventJoin(s, i, opts)
	default:
		b.respondError(s, i, "Unknown event subcommand")
	}
}

func (b *Bot) eventCreate(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	title := stringOption(opts, "title")
	date := stringOption(opts, "date")
	timeStr := stringOption(opts, "time")
	if timeStr == "" {
		timeStr = defaultEventTime
	}

	startsAt, err := time.ParseInLocation("2006-01-02 15:04", date+" "+timeStr, time.Local)
	if err != nil {
		b.respondError(s, i, "Invalid date or time. Use YYYY-MM-DD and HH:MM.")
		return
	}
	if !startsAt.After(time.Now()) {
		b.respondError(s, i, "Event must be in the future.")
		return
	}

	du := interactionUser(i)
	user, err := b.users.GetOrCreate(du.ID, du.Username)
	if err != nil {
		b.log.Error("get or create user: %v", err)
		b.respondError(s, i, "Something went wrong saving the event.")
		return
	}

	event := &core.Event{
		Title:       title,
		Description: stringOption(opts, "description"),
		StartsAt:    startsAt,
		CreatedBy:   user.ID,
		Remind24h:   true,
		Remind1h:    true,
	}
	if err := b.events.Create(event); err != nil {
		b.log.Error("create event: %v", err)
		b.respondError(s, i, "Something went wrong saving the event.")
		return
	}

	// The creator attends their own event; reminders follow from that
	if err := b.events.SetAttendee(event.ID, user.ID, core.AttendeeAccepted); err != nil {
		b.log.Error("set creator attendee: %v", err)
	}
	if err := b.reminders.ScheduleEventReminders(context.Background(), event); err != nil {
		b.log.Error("schedule event reminders: %v", err)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📅 Event Created",
		Description: fmt.Sprintf("**%s**", event.Title),
		Color:       colorGreen,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "When", Value: startsAt.Format("Mon, Jan 2 2006 at 15:04"), Inline: true},
			{Name: "ID", Value: fmt.Sprintf("%d", event.ID), Inline: true},
			{Name: "Reminders", Value: "24h and 1h before, by DM", Inline: false},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Others can RSVP with /event join event_id:%d", event.ID),
		},
	}
	if event.Description != "" {
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{Name: "Details", Value: clampField(event.Description)})
	}
	b.respondEmbed(s, i, embed, false)
}

func (b *Bot) eventList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	events, err := b.events.ListUpcoming(time.Now(), 10)
	if err != nil {
		b.log.Error("list events: %v", err)
		b.respondError(s, i, "Could not load events.")
		return
	}
	if len(events) == 0 {
		b.respondText(s, i, "No upcoming events. Create one with `/event create`.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "📅 Upcoming Events",
		Color: colorBlue,
	}
	for _, event := range events {
		value := event.StartsAt.Format("Mon, Jan 2 at 15:04")
		if event.Description != "" {
			value += "\n" + event.Description
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("#%d · %s", event.ID, event.Title),
			Value: clampField(value),
		})
	}
	b.respondEmbed(s, i, embed, false)
}

func (b *Bot) eventJoin(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	eventID := core.EventID(intOption(opts, "event_id", 0))

	event, err := b.events.GetByID(eventID)
	if errors.Is(err, core.ErrEventNotFound) {
		b.respondError(s, i, fmt.Sprintf("Event %d not found.", eventID))
		return
	}
	if err != nil {
		b.log.Error("get event %d: %v", eventID, err)
		b.respondError(s, i, "Could not load the event.")
		return
	}

	du := interactionUser(i)
	user, err := b.users.GetOrCreate(du.ID, du.Username)
	if err != nil {
		b.log.Error("get or create user: %v", err)
		b.respondError(s, i, "Something went wrong.")
		return
	}

	if err := b.events.SetAttendee(event.ID, user.ID, core.AttendeeAccepted); err != nil {
		b.log.Error("set attendee: %v", err)
		b.respondError(s, i, "Could not record your RSVP.")
		return
	}

	// Re-running covers the new attendee; existing rows are untouched
	if err := b.reminders.ScheduleEventReminders(context.Background(), event); err != nil {
		b.log.Error("schedule event reminders: %v", err)
	}

	b.respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "✅ You're In",
		Description: fmt.Sprintf("RSVP'd to **%s** on %s. Reminders will arrive by DM.", event.Title, event.StartsAt.Format("Mon, Jan 2 at 15:04")),
		Color:       colorGreen,
	}, true)
}
