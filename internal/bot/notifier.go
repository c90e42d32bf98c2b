package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/hearthbot/hearth/internal/reminder"
)

// DMNotifier delivers reminder notifications as Discord direct
// messages. It satisfies reminder.Notifier.
type DMNotifier struct {
	session *discordgo.Session
}

// Notifier returns the bot's DM notifier
func (b *Bot) Notifier() *DMNotifier {
	return &DMNotifier{session: b.session}
}

// SendDM opens (or reuses) the DM channel with the user and sends the
// notification as an embed. Errors propagate so the caller can retry on
// a later tick.
func (n *DMNotifier) SendDM(ctx context.Context, discordID string, msg reminder.Notification) error {
	channel, err := n.session.UserChannelCreate(discordID)
	if err != nil {
		return fmt.Errorf("open dm channel: %w", err)
	}

	embed := &discordgo.MessageEmbed{
		Title:       msg.Title,
		Description: msg.Body,
		Color:       colorBlue,
	}
	if msg.Footer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: msg.Footer}
	}

	if _, err := n.session.ChannelMessageSendEmbed(channel.ID, embed); err != nil {
		return fmt.Errorf("send dm: %w", err)
	}
	return nil
}
