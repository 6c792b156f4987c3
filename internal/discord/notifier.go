package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/Sakemo/matchmake-bot/internal/handler"
	"github.com/Sakemo/matchmake-bot/internal/service"
)

// Notifier announces accepted matches by direct message
type Notifier struct {
	client RESTClient
}

// NewNotifier creates a new direct-message notifier
func NewNotifier(client RESTClient) *Notifier {
	return &Notifier{client: client}
}

// NotifyMatch sends the match embed to recipientID
func (n *Notifier) NotifyMatch(ctx context.Context, recipientID, originID, candidateID string) error {
	channel, err := n.client.UserChannelCreate(recipientID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("open dm with %s: %w", recipientID, err)
	}
	embed := ToEmbed(handler.MatchEmbed(originID, candidateID))
	if _, err := n.client.ChannelMessageSendEmbed(channel.ID, embed, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send dm to %s: %w", recipientID, err)
	}
	return nil
}

var _ service.Notifier = (*Notifier)(nil)
