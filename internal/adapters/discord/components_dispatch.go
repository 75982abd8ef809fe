package discord

import (
	"context"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/deploy-champion-bot/internal/app/service"
)

func (r *Router) handleMessageComponent(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	data := ic.MessageComponentData()
	previous, ok := parseRerollCustomID(data.CustomID)
	if !ok {
		return
	}
	log.Printf("component: reroll by=%s previous=%s", userID(ic), previous)

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("panic in component %s: %v", data.CustomID, rec)
			ReplyEphemeral(s, ic, "❌ Unexpected error while handling the button.")
		}
	}()

	if !r.clickLimiter.Allow(userID(ic)) {
		_ = DeferUpdate(s, ic)
		ReplyEphemeral(s, ic, "⏳ Wait a second…")
		return
	}

	_ = r.champion.OnRerollButton(context.Background(), service.Interaction{
		Ack: func() error { return DeferUpdate(s, ic) },
		Reply: func(ctx context.Context, text string) error {
			return Followup(s, ic, text, true)
		},
	}, previous)
}
