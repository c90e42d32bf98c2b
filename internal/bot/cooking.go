package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/hearthbot/hearth/internal/core"
)

func (b *Bot) handleCooking(s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	sub := data.Options[0]
	opts := optionMap(sub.Options)

	switch sub.Name {
	case "schedule", "quick":
		b.cookingSchedule(s, i, opts)
	case "view":
		b.cookingView(s, i, opts)
	default:
		b.respondError(s, i, "Unknown cooking subcommand")
	}
}

// cookingSchedule creates an assignment with a recipe generated up
// front. Both subcommands take this path; recipe generation can be slow
// so the response is deferred.
func (b *Bot) cookingSchedule(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	dish := stringOption(opts, "dish")
	meal := core.MealType(stringOption(opts, "meal"))
	date := stringOption(opts, "date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	if !core.ValidMealType(meal) {
		b.respondError(s, i, "Meal must be breakfast, lunch, dinner or other.")
		return
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		b.respondError(s, i, "Invalid date. Use YYYY-MM-DD.")
		return
	}

	du := interactionUser(i)
	user, err := b.users.GetOrCreate(du.ID, du.Username)
	if err != nil {
		b.log.Error("get or create user: %v", err)
		b.respondError(s, i, "Something went wrong.")
		return
	}

	if err := b.deferResponse(s, i, false); err != nil {
		b.log.Warn("defer failed: %v", err)
		return
	}

	recipe, source := b.assist.GenerateRecipe(context.Background(), dish, 4)

	assignment := &core.CookingAssignment{
		Date:     date,
		Meal:     meal,
		CookID:   user.ID,
		DishName: dish,
		Recipe:   recipe,
		Source:   source,
		Notes:    stringOption(opts, "notes"),
	}
	if err := b.cooking.Create(assignment); err != nil {
		b.log.Error("create cooking assignment: %v", err)
		b.followupEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "❌ Not Saved",
			Description: "Something went wrong saving the assignment.",
			Color:       colorRed,
		})
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🍳 Meal Scheduled",
		Description: fmt.Sprintf("**%s** cooks **%s** for %s on %s", du.Username, dish, meal, date),
		Color:       colorOrange,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "ID", Value: fmt.Sprintf("%d", assignment.ID), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Full recipe: /cooking view schedule_id:%d · recipe %s", assignment.ID, source),
		},
	}
	if recipe != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Time",
			Value:  fmt.Sprintf("Prep %dm · Cook %dm", recipe.PrepMinutes, recipe.CookMinutes),
			Inline: true,
		})
		if len(recipe.Ingredients) > 0 {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
				Name:  "Ingredients",
				Value: bulletList(recipe.Ingredients, 8),
			})
		}
	}
	if assignment.Notes != "" {
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{Name: "Notes", Value: clampField(assignment.Notes)})
	}
	b.followupEmbed(s, i, embed)
}

func (b *Bot) cookingView(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	if id := intOption(opts, "schedule_id", 0); id > 0 {
		b.cookingViewRecipe(s, i, core.CookingID(id))
		return
	}

	date := stringOption(opts, "date")
	var meals []*core.CookingAssignment
	var err error
	var title string
	if date != "" {
		if _, perr := time.Parse("2006-01-02", date); perr != nil {
			b.respondError(s, i, "Invalid date. Use YYYY-MM-DD.")
			return
		}
		meals, err = b.cooking.ListByDate(date)
		title = "🍳 Cooking Schedule for " + date
	} else {
		meals, err = b.cooking.ListUpcoming(time.Now().Format("2006-01-02"), 10)
		title = "🍳 Upcoming Cooking Schedule"
	}
	if err != nil {
		b.log.Error("list cooking: %v", err)
		b.respondError(s, i, "Could not load the schedule.")
		return
	}
	if len(meals) == 0 {
		b.respondText(s, i, "Nothing scheduled. Add a meal with `/cooking schedule`.")
		return
	}

	embed := &discordgo.MessageEmbed{Title: title, Color: colorOrange}
	for _, meal := range meals {
		value := fmt.Sprintf("%s · %s · cook <@%s>", meal.Date, meal.Meal, b.cookMention(meal.CookID))
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("#%d · %s", meal.ID, meal.DishName),
			Value: clampField(value),
		})
	}
	b.respondEmbed(s, i, embed, false)
}

func (b *Bot) cookingViewRecipe(s *discordgo.Session, i *discordgo.InteractionCreate, id core.CookingID) {
	meal, err := b.cooking.GetByID(id)
	if errors.Is(err, core.ErrCookingNotFound) {
		b.respondError(s, i, fmt.Sprintf("Schedule entry %d not found.", id))
		return
	}
	if err != nil {
		b.log.Error("get cooking %d: %v", id, err)
		b.respondError(s, i, "Could not load the recipe.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📖 " + meal.DishName,
		Description: fmt.Sprintf("%s on %s", meal.Meal, meal.Date),
		Color:       colorGold,
	}
	if meal.Recipe != nil {
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{
				Name:   "Time",
				Value:  fmt.Sprintf("Prep %dm · Cook %dm", meal.Recipe.PrepMinutes, meal.Recipe.CookMinutes),
				Inline: true,
			},
			&discordgo.MessageEmbedField{
				Name:  "Ingredients",
				Value: bulletList(meal.Recipe.Ingredients, 0),
			},
			&discordgo.MessageEmbedField{
				Name:  "Instructions",
				Value: numberedList(meal.Recipe.Instructions),
			},
		)
	} else {
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{Name: "Recipe", Value: "No recipe attached."})
	}
	if meal.Notes != "" {
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{Name: "Notes", Value: clampField(meal.Notes)})
	}
	b.respondEmbed(s, i, embed, false)
}

// cookMention resolves a cook's local ID to a Discord mention target,
// falling back to the raw ID when the user row is missing.
func (b *Bot) cookMention(id core.UserID) string {
	user, err := b.users.GetByID(id)
	if err != nil {
		return fmt.Sprintf("%d", id)
	}
	return user.DiscordID
}
