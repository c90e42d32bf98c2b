package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/hearthbot/hearth/internal/core"
)

const planAvailableHours = 8

func (b *Bot) handlePlan(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	sub := data.Options[0]
	opts := optionMap(sub.Options)

	date := stringOption(opts, "date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		b.respondError(s, i, "Invalid date. Use YYYY-MM-DD.")
		return
	}

	switch sub.Name {
	case "day":
		b.planDay(s, i, date)
	case "view":
		b.planView(s, i, date)
	default:
		b.respondError(s, i, "Unknown plan subcommand")
	}
}

// planDay builds a plan from the caller's pending tasks and replaces
// any existing plan for the date. Optimization can hit the AI so the
// response is deferred.
func (b *Bot) planDay(s *discordgo.Session, i *discordgo.InteractionCreate, date string) {
	du := interactionUser(i)
	user, err := b.users.GetOrCreate(du.ID, du.Username)
	if err != nil {
		b.log.Error("get or create user: %v", err)
		b.respondError(s, i, "Something went wrong.")
		return
	}

	pending, err := b.todos.ListByOwner(user.ID, core.TodoPending, 50)
	if err != nil {
		b.log.Error("list pending todos: %v", err)
		b.respondError(s, i, "Could not load your tasks.")
		return
	}
	if len(pending) == 0 {
		b.respondText(s, i, "Nothing to plan. Add tasks with `/todo add` first.")
		return
	}

	if err := b.deferResponse(s, i, true); err != nil {
		b.log.Warn("defer failed: %v", err)
		return
	}

	slots, source := b.assist.OptimizeSchedule(context.Background(), pending, planAvailableHours)

	if err := b.plans.Replace(user.ID, date, slots, source); err != nil {
		b.log.Error("replace plan: %v", err)
		b.followupEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "❌ Not Saved",
			Description: "Something went wrong saving the plan.",
			Color:       colorRed,
		})
		return
	}

	embed := b.planEmbedFromSlots(date, slots, pending)
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("%d of %d tasks scheduled · plan %s", len(slots), len(pending), source),
	}
	b.followupEmbed(s, i, embed)
}

func (b *Bot) planView(s *discordgo.Session, i *discordgo.InteractionCreate, date string) {
	du := interactionUser(i)
	user, err := b.users.GetOrCreate(du.ID, du.Username)
	if err != nil {
		b.log.Error("get or create user: %v", err)
		b.respondError(s, i, "Something went wrong.")
		return
	}

	entries, err := b.plans.Get(user.ID, date)
	if err != nil {
		b.log.Error("get plan: %v", err)
		b.respondError(s, i, "Could not load your plan.")
		return
	}
	if len(entries) == 0 {
		b.respondText(s, i, fmt.Sprintf("No plan for %s yet. Build one with `/plan day`.", date))
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "🗓️ Plan for " + date,
		Color: colorPurple,
	}
	for _, entry := range entries {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s · %s (%dm)", entry.StartTime, b.todoTitle(entry.TodoID), entry.DurationMinutes),
			Value: clampField(planRationale(entry.Rationale)),
		})
	}
	b.respondEmbed(s, i, embed, true)
}

func (b *Bot) planEmbedFromSlots(date string, slots []core.PlanSlot, todos []*core.TodoItem) *discordgo.MessageEmbed {
	titles := make(map[core.TodoID]string, len(todos))
	for _, t := range todos {
		titles[t.ID] = t.Title
	}

	embed := &discordgo.MessageEmbed{
		Title: "🗓️ Plan for " + date,
		Color: colorPurple,
	}
	for _, slot := range slots {
		title := titles[slot.TodoID]
		if title == "" {
			title = fmt.Sprintf("task %d", slot.TodoID)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s · %s (%dm)", slot.StartTime, title, slot.DurationMinutes),
			Value: clampField(planRationale(slot.Rationale)),
		})
	}
	if len(slots) == 0 {
		embed.Description = "No tasks fit in today's window."
	}
	return embed
}

func (b *Bot) todoTitle(id core.TodoID) string {
	item, err := b.todos.GetByID(id)
	if err != nil {
		return fmt.Sprintf("task %d", id)
	}
	return item.Title
}

func planRationale(r string) string {
	if r == "" {
		return "​" // Embed fields reject empty values
	}
	return r
}
