package service

import (
	"context"

	"github.com/jose-valero/deploy-champion-bot/internal/domain"
)

// Lo implementa internal/infra/storage.RosterRepo
type RosterStore interface {
	Load(ctx context.Context) (domain.Roster, error)
	Save(ctx context.Context, r domain.Roster) error
}

// Lo implementan internal/adapters/slack.Client e internal/adapters/discord.Client
type Messenger interface {
	PostMessage(ctx context.Context, channelID string, a domain.Announcement) (domain.MessageRef, error)
	UpdateMessage(ctx context.Context, ref domain.MessageRef, a domain.Announcement) error
}

// Interaction es el canal de vuelta hacia quien disparó un comando o botón.
// Ack confirma recepción a la plataforma (tiene que ir antes de todo lo demás);
// Reply muestra texto a quien hizo click o escribió el comando.
type Interaction struct {
	Ack   func() error
	Reply func(ctx context.Context, text string) error
}
