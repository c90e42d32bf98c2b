package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/hearthbot/hearth/internal/core"
)

func (b *Bot) handleTodo(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	sub := data.Options[0]
	opts := optionMap(sub.Options)

	switch sub.Name {
	case "add":
		b.todoAdd(s, i, opts)
	case "quick":
		b.todoQuick(s, i, opts)
	case "list":
		b.todoList(s, i, opts)
	case "complete":
		b.todoComplete(s, i, opts)
	case "delete":
		b.todoDelete(s, i, opts)
	default:
		b.respondError(s, i, "Unknown todo subcommand")
	}
}

func (b *Bot) todoAdd(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	dueDate := stringOption(opts, "due_date")
	if dueDate != "" {
		if _, err := time.Parse("2006-01-02", dueDate); err != nil {
			b.respondError(s, i, "Invalid due date. Use YYYY-MM-DD.")
			return
		}
	}
	minutes := int(intOption(opts, "minutes", 30))
	if minutes <= 0 {
		minutes = 30
	}

	du := interactionUser(i)
	user, err := b.users.GetOrCreate(du.ID, du.Username)
	if err != nil {
		b.log.Error("get or create user: %v", err)
		b.respondError(s, i, "Something went wrong.")
		return
	}

	item := &core.TodoItem{
		OwnerID:          user.ID,
		Title:            stringOption(opts, "title"),
		EstimatedMinutes: minutes,
		Importance:       3,
		Category:         core.CategoryGeneral,
		DueDate:          dueDate,
	}
	if err := b.todos.Create(item); err != nil {
		b.log.Error("create todo: %v", err)
		b.respondError(s, i, "Something went wrong saving the task.")
		return
	}

	b.respondEmbed(s, i, todoCreatedEmbed(item, ""), true)
}

// todoQuick parses a free-text description into structured fields
// before saving. The parse can hit the AI so the response is deferred.
func (b *Bot) todoQuick(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	text := stringOption(opts, "task")

	du := interactionUser(i)
	user, err := b.users.GetOrCreate(du.ID, du.Username)
	if err != nil {
		b.log.Error("get or create user: %v", err)
		b.respondError(s, i, "Something went wrong.")
		return
	}

	if err := b.deferResponse(s, i, true); err != nil {
		b.log.Warn("defer failed: %v", err)
		return
	}

	fields, source := b.assist.ParseTask(context.Background(), text)

	item := &core.TodoItem{
		OwnerID:          user.ID,
		Title:            fields.Title,
		Description:      fields.Description,
		EstimatedMinutes: fields.EstimatedMinutes,
		Importance:       fields.Importance,
		Category:         fields.Category,
		DueDate:          fields.DueDate,
	}
	if err := b.todos.Create(item); err != nil {
		b.log.Error("create todo: %v", err)
		b.followupEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "❌ Not Saved",
			Description: "Something went wrong saving the task.",
			Color:       colorRed,
		})
		return
	}

	b.followupEmbed(s, i, todoCreatedEmbed(item, fmt.Sprintf("parsed by %s", source)))
}

func (b *Bot) todoList(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	filter := stringOption(opts, "filter")
	var status core.TodoStatus
	switch filter {
	case "", "pending":
		status = core.TodoPending
	case "completed":
		status = core.TodoCompleted
	case "all":
		status = ""
	}

	du := interactionUser(i)
	user, err := b.users.GetOrCreate(du.ID, du.Username)
	if err != nil {
		b.log.Error("get or create user: %v", err)
		b.respondError(s, i, "Something went wrong.")
		return
	}

	items, err := b.todos.ListByOwner(user.ID, status, 20)
	if err != nil {
		b.log.Error("list todos: %v", err)
		b.respondError(s, i, "Could not load your tasks.")
		return
	}
	if len(items) == 0 {
		b.respondText(s, i, "No tasks here. Add one with `/todo add` or `/todo quick`.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📝 Tasks for %s", du.Username),
		Color: colorBlue,
	}
	for _, item := range items {
		value := fmt.Sprintf("%s · %dm · %s", stars(item.Importance), item.EstimatedMinutes, item.Category)
		if item.DueDate != "" {
			value += " · due " + item.DueDate
		}
		name := fmt.Sprintf("#%d · %s", item.ID, item.Title)
		if item.Status == core.TodoCompleted {
			name = fmt.Sprintf("#%d · ~~%s~~", item.ID, item.Title)
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  name,
			Value: clampField(value),
		})
	}
	b.respondEmbed(s, i, embed, true)
}

func (b *Bot) todoComplete(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	id := core.TodoID(intOption(opts, "todo_id", 0))

	if msg := b.ownershipProblem(i, id); msg != "" {
		b.respondError(s, i, msg)
		return
	}
	if err := b.todos.Complete(id); err != nil {
		if errors.Is(err, core.ErrTodoNotFound) {
			b.respondError(s, i, fmt.Sprintf("Task %d not found.", id))
		} else {
			b.log.Error("complete todo %d: %v", id, err)
			b.respondError(s, i, "Could not complete the task.")
		}
		return
	}
	b.respondText(s, i, fmt.Sprintf("✅ Task %d completed. Nice work!", id))
}

func (b *Bot) todoDelete(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	id := core.TodoID(intOption(opts, "todo_id", 0))

	if msg := b.ownershipProblem(i, id); msg != "" {
		b.respondError(s, i, msg)
		return
	}
	if err := b.todos.Delete(id); err != nil {
		if errors.Is(err, core.ErrTodoNotFound) {
			b.respondError(s, i, fmt.Sprintf("Task %d not found.", id))
		} else {
			b.log.Error("delete todo %d: %v", id, err)
			b.respondError(s, i, "Could not delete the task.")
		}
		return
	}
	b.respondText(s, i, fmt.Sprintf("🗑️ Task %d deleted.", id))
}

// ownershipProblem rejects completes and deletes against another
// member's task. Returns a user-facing message, empty when allowed.
func (b *Bot) ownershipProblem(i *discordgo.InteractionCreate, id core.TodoID) string {
	item, err := b.todos.GetByID(id)
	if errors.Is(err, core.ErrTodoNotFound) {
		return fmt.Sprintf("Task %d not found.", id)
	}
	if err != nil {
		b.log.Error("get todo %d: %v", id, err)
		return "Could not load the task."
	}

	du := interactionUser(i)
	user, err := b.users.GetByDiscordID(du.ID)
	if err != nil || user.ID != item.OwnerID {
		return fmt.Sprintf("Task %d belongs to someone else.", id)
	}
	return ""
}

func todoCreatedEmbed(item *core.TodoItem, footer string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "📝 Task Added",
		Description: fmt.Sprintf("**%s**", item.Title),
		Color:       colorGreen,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "ID", Value: fmt.Sprintf("%d", item.ID), Inline: true},
			{Name: "Estimate", Value: fmt.Sprintf("%dm", item.EstimatedMinutes), Inline: true},
			{Name: "Importance", Value: stars(item.Importance), Inline: true},
			{Name: "Category", Value: string(item.Category), Inline: true},
		},
	}
	if item.DueDate != "" {
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{Name: "Due", Value: item.DueDate, Inline: true})
	}
	if item.Description != "" {
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{Name: "Details", Value: clampField(item.Description)})
	}
	if footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: footer}
	}
	return embed
}
