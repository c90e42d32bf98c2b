package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Embed accent colors, one per feature
const (
	colorGreen  = 0x57F287 // Confirmations
	colorBlue   = 0x5865F2 // Listings
	colorOrange = 0xE67E22 // Cooking
	colorPurple = 0x9B59B6 // Planner
	colorGold   = 0xF1C40F // Help / recipes
	colorRed    = 0xED4245 // Failures after a deferred response
)

const embedFieldLimit = 1024

// respondEmbed answers an interaction with a single embed
func (b *Bot) respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, ephemeral bool) {
	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		b.log.Warn("interaction respond failed: %v", err)
	}
}

// respondText answers an interaction with a plain ephemeral message
func (b *Bot) respondText(s *discordgo.Session, i *discordgo.InteractionCreate, msg string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		b.log.Warn("interaction respond failed: %v", err)
	}
}

// respondError surfaces a validation or lookup failure to the user.
// Always ephemeral; the operation was aborted with no partial write.
func (b *Bot) respondError(s *discordgo.Session, i *discordgo.InteractionCreate, msg string) {
	b.respondText(s, i, "❌ "+msg)
}

// deferResponse acknowledges an interaction that needs more than the
// three-second response window (AI calls)
func (b *Bot) deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: data,
	})
}

// followupEmbed completes a deferred interaction
func (b *Bot) followupEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		b.log.Warn("followup failed: %v", err)
	}
}

// bulletList renders items as markdown bullets, truncating the tail so
// the result fits in one embed field
func bulletList(items []string, max int) string {
	shown := items
	if max > 0 && len(shown) > max {
		shown = shown[:max]
	}

	var sb strings.Builder
	for _, item := range shown {
		fmt.Fprintf(&sb, "• %s\n", item)
	}
	if extra := len(items) - len(shown); extra > 0 {
		fmt.Fprintf(&sb, "*...and %d more*", extra)
	}

	return clampField(strings.TrimRight(sb.String(), "\n"))
}

// numberedList renders steps as "1. ..." lines, clamped to field size
func numberedList(items []string) string {
	var sb strings.Builder
	for n, item := range items {
		fmt.Fprintf(&sb, "%d. %s\n", n+1, item)
	}
	return clampField(strings.TrimRight(sb.String(), "\n"))
}

func clampField(s string) string {
	if len(s) <= embedFieldLimit {
		return s
	}
	return s[:embedFieldLimit-3] + "…"
}

// stars renders importance 1-5 as star glyphs
func stars(importance int) string {
	if importance < 1 {
		importance = 1
	}
	if importance > 5 {
		importance = 5
	}
	return strings.Repeat("⭐", importance)
}
