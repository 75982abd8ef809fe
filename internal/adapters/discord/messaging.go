package discord

import (
	"errors"
	"log"

	"github.com/bwmarrin/discordgo"
)

// Defer público: el resultado del comando lo ve todo el canal.
func DeferPublic(s *discordgo.Session, ic *discordgo.InteractionCreate) error {
	err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		log.Printf("DeferPublic error: %v", err)
	}
	return err
}

// Defer de un click: no cambia el mensaje del botón (lo editamos después).
func DeferUpdate(s *discordgo.Session, ic *discordgo.InteractionCreate) error {
	err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if err != nil {
		log.Printf("DeferUpdate error: %v", err)
	}
	return err
}

func Followup(s *discordgo.Session, ic *discordgo.InteractionCreate, content string, ephemeral bool) error {
	params := &discordgo.WebhookParams{Content: content}
	if ephemeral {
		params.Flags = discordgo.MessageFlagsEphemeral
	}
	_, err := s.FollowupMessageCreate(ic.Interaction, true, params)
	if err != nil {
		// Fallback sólo si todavía no hay respuesta (webhook desconocido)
		var reqErr *discordgo.RESTError
		if errors.As(err, &reqErr) && reqErr.Message != nil && reqErr.Message.Code == 10015 {
			resp := &discordgo.InteractionResponseData{Content: content}
			if ephemeral {
				resp.Flags = discordgo.MessageFlagsEphemeral
			}
			return s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: resp,
			})
		}
		log.Printf("Followup error: %v", err)
	}
	return err
}

func ReplyEphemeral(s *discordgo.Session, ic *discordgo.InteractionCreate, content string) {
	_ = Followup(s, ic, content, true)
}
