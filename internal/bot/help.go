package bot

import (
	"github.com/bwmarrin/discordgo"
)

func (b *Bot) handleHelp(s *discordgo.Session, i *discordgo.InteractionCreate) {
	embed := &discordgo.MessageEmbed{
		Title:       "🏠 Hearth Commands",
		Description: "Household logistics: events, cooking, todos and daily plans.",
		Color:       colorGold,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "📅 Events",
				Value: "`/event create` · new event with 24h and 1h DM reminders\n" +
					"`/event list` · upcoming events\n" +
					"`/event join` · RSVP and get its reminders",
			},
			{
				Name: "🍳 Cooking",
				Value: "`/cooking schedule` · plan a meal, recipe generated for you\n" +
					"`/cooking quick` · same, minimal questions\n" +
					"`/cooking view` · schedule, or a full recipe by ID",
			},
			{
				Name: "📝 Todos",
				Value: "`/todo add` · add a task\n" +
					"`/todo quick` · describe it naturally, fields are extracted\n" +
					"`/todo list` · your tasks\n" +
					"`/todo complete` / `/todo delete` · by ID",
			},
			{
				Name: "🗓️ Planner",
				Value: "`/plan day` · build an optimized day from pending tasks\n" +
					"`/plan view` · see your plan",
			},
			{
				Name:  "⏰ Reminders",
				Value: "Sent automatically by DM. Cooks get a heads-up the morning before their day.",
			},
		},
	}
	b.respondEmbed(s, i, embed, true)
}
