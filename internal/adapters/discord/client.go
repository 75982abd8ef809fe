package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/deploy-champion-bot/internal/domain"
)

// El botón lleva el nombre del champion anunciado en el custom_id.
const rerollPrefix = "reroll_champion:"

func rerollCustomID(name string) string { return rerollPrefix + name }

func parseRerollCustomID(id string) (string, bool) {
	return strings.CutPrefix(id, rerollPrefix)
}

// Client publica y edita anuncios por REST; no necesita el gateway abierto.
type Client struct{ s *discordgo.Session }

func NewClient(s *discordgo.Session) *Client { return &Client{s: s} }

func (c *Client) PostMessage(ctx context.Context, channelID string, a domain.Announcement) (domain.MessageRef, error) {
	msg, err := c.s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:    a.Text,
		Components: announcementComponents(a),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return domain.MessageRef{}, fmt.Errorf("discord send: %w", err)
	}
	return domain.MessageRef{ChannelID: msg.ChannelID, MessageID: msg.ID}, nil
}

func (c *Client) UpdateMessage(ctx context.Context, ref domain.MessageRef, a domain.Announcement) error {
	content := a.Text
	comps := announcementComponents(a)
	_, err := c.s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    ref.ChannelID,
		ID:         ref.MessageID,
		Content:    &content,
		Components: &comps,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("discord edit: %w", err)
	}
	return nil
}

// announcementComponents: sin RerollFor devuelve un slice vacío, así el edit
// borra el botón.
func announcementComponents(a domain.Announcement) []discordgo.MessageComponent {
	if a.RerollFor == "" {
		return []discordgo.MessageComponent{}
	}
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Style:    discordgo.SecondaryButton,
					Label:    "Pick someone else",
					CustomID: rerollCustomID(a.RerollFor),
					Emoji:    &discordgo.ComponentEmoji{Name: "🎲"},
				},
			},
		},
	}
}
