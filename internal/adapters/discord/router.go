package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/deploy-champion-bot/internal/adapters/ratelimit"
	"github.com/jose-valero/deploy-champion-bot/internal/app/service"
)

// Lo implementa service.ChampionService
type Triggers interface {
	OnRerollCommand(ctx context.Context, in service.Interaction) error
	OnRerollButton(ctx context.Context, in service.Interaction, previous string) error
}

type Router struct {
	s       *discordgo.Session
	guildID string

	champion     Triggers
	clickLimiter *ratelimit.UserLimiter
}

func NewRouter(s *discordgo.Session, guildID string, champion Triggers) *Router {
	return &Router{
		s:            s,
		guildID:      guildID,
		champion:     champion,
		clickLimiter: ratelimit.NewUserLimiter(2 * time.Second),
	}
}

// Register crea los slash commands (guildID vacío = globales).
func (r *Router) Register() error {
	appID := r.s.State.User.ID
	for _, cmd := range Commands {
		if _, err := r.s.ApplicationCommandCreate(appID, r.guildID, cmd); err != nil {
			return err
		}
	}
	return nil
}

func (r *Router) Handlers() {
	r.s.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		switch ic.Type {
		case discordgo.InteractionApplicationCommand:
			r.handleSlashCommand(s, ic)
		case discordgo.InteractionMessageComponent:
			r.handleMessageComponent(s, ic)
		}
	})
}

// userID: en DMs no viene Member.
func userID(ic *discordgo.InteractionCreate) string {
	if ic.Member != nil && ic.Member.User != nil {
		return ic.Member.User.ID
	}
	if ic.User != nil {
		return ic.User.ID
	}
	return ""
}
