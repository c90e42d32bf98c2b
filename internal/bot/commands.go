package bot

import (
	"github.com/bwmarrin/discordgo"
)

// commands returns the slash command tree registered on startup.
func commands() []*discordgo.ApplicationCommand {
	mealChoices := []*discordgo.ApplicationCommandOptionChoice{
		{Name: "Breakfast", Value: "breakfast"},
		{Name: "Lunch", Value: "lunch"},
		{Name: "Dinner", Value: "dinner"},
		{Name: "Other", Value: "other"},
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        "event",
			Description: "Manage household events",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Create a new event with reminders",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "title", Description: "Event title", Required: true},
						{Type: discordgo.ApplicationCommandOptionString, Name: "date", Description: "Date (YYYY-MM-DD)", Required: true},
						{Type: discordgo.ApplicationCommandOptionString, Name: "time", Description: "Time (HH:MM), defaults to 18:00", Required: false},
						{Type: discordgo.ApplicationCommandOptionString, Name: "description", Description: "Details", Required: false},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "View upcoming events",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "join",
					Description: "RSVP to an event (enables its reminders for you)",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "event_id", Description: "Event ID", Required: true},
					},
				},
			},
		},
		{
			Name:        "cooking",
			Description: "Manage the cooking schedule",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "schedule",
					Description: "Schedule a meal to cook",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "dish", Description: "Dish name", Required: true},
						{Type: discordgo.ApplicationCommandOptionString, Name: "meal", Description: "Meal type", Required: true, Choices: mealChoices},
						{Type: discordgo.ApplicationCommandOptionString, Name: "date", Description: "Date (YYYY-MM-DD), defaults to today", Required: false},
						{Type: discordgo.ApplicationCommandOptionString, Name: "notes", Description: "Dietary notes", Required: false},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "view",
					Description: "View the schedule or a full recipe",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "date", Description: "Date (YYYY-MM-DD)", Required: false},
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "schedule_id", Description: "Schedule ID for the full recipe", Required: false},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "quick",
					Description: "Quick add with an AI-generated recipe",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "dish", Description: "Dish name", Required: true},
						{Type: discordgo.ApplicationCommandOptionString, Name: "meal", Description: "Meal type", Required: true, Choices: mealChoices},
						{Type: discordgo.ApplicationCommandOptionString, Name: "date", Description: "Date (YYYY-MM-DD), defaults to today", Required: false},
					},
				},
			},
		},
		{
			Name:        "todo",
			Description: "Manage your todo list",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "add",
					Description: "Add a task",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "title", Description: "Task title", Required: true},
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "minutes", Description: "Estimated minutes (default 30)", Required: false},
						{Type: discordgo.ApplicationCommandOptionString, Name: "due_date", Description: "Due date (YYYY-MM-DD)", Required: false},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "quick",
					Description: "Describe a task naturally; fields are extracted for you",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "task", Description: "e.g. \"buy milk tomorrow, 15 min, important\"", Required: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "View your tasks",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type: discordgo.ApplicationCommandOptionString, Name: "filter", Description: "Status filter", Required: false,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "Pending", Value: "pending"},
								{Name: "Completed", Value: "completed"},
								{Name: "All", Value: "all"},
							},
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "complete",
					Description: "Mark a task complete",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "todo_id", Description: "Task ID", Required: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "delete",
					Description: "Delete a task",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "todo_id", Description: "Task ID", Required: true},
					},
				},
			},
		},
		{
			Name:        "plan",
			Description: "Plan your day",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "day",
					Description: "Build an optimized plan from your pending tasks",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "date", Description: "Date (YYYY-MM-DD), defaults to today", Required: false},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "view",
					Description: "View your plan",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "date", Description: "Date (YYYY-MM-DD), defaults to today", Required: false},
					},
				},
			},
		},
		{
			Name:        "help",
			Description: "Show all available commands",
		},
	}
}

// optionMap flattens a subcommand's options by name
func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

// stringOption returns a string option value, or empty if absent
func stringOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt, ok := opts[name]; ok {
		return opt.StringValue()
	}
	return ""
}

// intOption returns an integer option value, or def if absent
func intOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string, def int64) int64 {
	if opt, ok := opts[name]; ok {
		return opt.IntValue()
	}
	return def
}
