// lógica de InteractionApplicationCommand: solo traducimos la interacción y
// despachamos al servicio
package discord

import (
	"context"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/deploy-champion-bot/internal/app/service"
)

func (r *Router) handleSlashCommand(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	cmd := ic.ApplicationCommandData()
	log.Printf("cmd: /%s by=%s guild=%s", cmd.Name, userID(ic), ic.GuildID)

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("panic in cmd /%s: %v", cmd.Name, rec)
			ReplyEphemeral(s, ic, "❌ Unexpected error while handling the command.")
		}
	}()

	switch cmd.Name {
	case CommandReroll:
		_ = r.champion.OnRerollCommand(context.Background(), service.Interaction{
			Ack: func() error { return DeferPublic(s, ic) },
			Reply: func(ctx context.Context, text string) error {
				return Followup(s, ic, text, false)
			},
		})
	}
}
