package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// session is the subset of *discordgo.Session used to reply.
type session interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// interactionReplier answers one interaction: Acknowledge is the interaction
// response, Send posts a plain message to the interaction's channel.
type interactionReplier struct {
	s session
	i *discordgo.Interaction
}

func newInteractionReplier(s session, i *discordgo.Interaction) *interactionReplier {
	return &interactionReplier{s: s, i: i}
}

func (r *interactionReplier) Acknowledge(ctx context.Context, text string) error {
	err := r.s.InteractionRespond(r.i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: text,
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("respond to interaction: %w", err)
	}
	return nil
}

func (r *interactionReplier) Send(ctx context.Context, text string) error {
	if _, err := r.s.ChannelMessageSend(r.i.ChannelID, text, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send to channel %s: %w", r.i.ChannelID, err)
	}
	return nil
}
