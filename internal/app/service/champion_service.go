package service

import (
	"context"
	"fmt"
	"log"

	"github.com/jose-valero/deploy-champion-bot/internal/app/rotation"
	"github.com/jose-valero/deploy-champion-bot/internal/domain"
)

// ChampionService atiende los tres disparadores: el cron, el comando
// /rerollchampion y el botón reroll_champion.
//
// No hay lock alrededor de Load/Save: dos disparadores simultáneos pueden leer
// el mismo roster y el último Save gana, aunque ambos ya hayan anunciado a su
// champion. Es el comportamiento heredado y se mantiene así.
type ChampionService struct {
	store     RosterStore
	chat      Messenger
	tracker   *AnnouncementTracker
	channelID string
}

func NewChampionService(store RosterStore, chat Messenger, tracker *AnnouncementTracker, channelID string) *ChampionService {
	return &ChampionService{store: store, chat: chat, tracker: tracker, channelID: channelID}
}

// OnScheduledTick elige al siguiente y publica un anuncio nuevo. No hay a
// quién responderle, los errores solo se loguean.
func (s *ChampionService) OnScheduledTick(ctx context.Context) error {
	defer step("champion.tick")()

	champion, err := s.announce(ctx)
	if err != nil {
		log.Printf("⚠️ scheduled tick: %v", err)
		return err
	}
	log.Printf("🚀 scheduled tick: champion=%s", champion.Name)
	return nil
}

// OnRerollCommand es /rerollchampion: publica un anuncio nuevo (no edita el
// anterior) y confirma a quien lo pidió.
func (s *ChampionService) OnRerollCommand(ctx context.Context, in Interaction) error {
	if err := in.Ack(); err != nil {
		return fmt.Errorf("ack command: %w", err)
	}
	defer step("champion.command")()

	champion, err := s.announce(ctx)
	if err != nil {
		log.Printf("⚠️ reroll command: %v", err)
		s.replyError(ctx, in, err)
		return err
	}
	log.Printf("🔁 reroll command: champion=%s", champion.Name)

	if err := in.Reply(ctx, manualRerollText(champion)); err != nil {
		return fmt.Errorf("%w: reply command: %w", domain.ErrDispatchFailure, err)
	}
	return nil
}

// OnRerollButton es el botón del anuncio. previous viene en el payload del
// botón y queda fuera del pool; el anuncio trackeado se edita en el lugar.
func (s *ChampionService) OnRerollButton(ctx context.Context, in Interaction, previous string) error {
	if err := in.Ack(); err != nil {
		return fmt.Errorf("ack button: %w", err)
	}
	defer step("champion.button")()

	champion, err := s.rerollInPlace(ctx, previous)
	if err != nil {
		log.Printf("⚠️ reroll button (previous=%s): %v", previous, err)
		s.replyError(ctx, in, err)
		return err
	}
	log.Printf("🎲 reroll button: previous=%s champion=%s", previous, champion.Name)
	return nil
}

func (s *ChampionService) announce(ctx context.Context) (domain.Participant, error) {
	roster, err := s.store.Load(ctx)
	if err != nil {
		return domain.Participant{}, err
	}
	champion, updated, err := rotation.PickNext(roster)
	if err != nil {
		return domain.Participant{}, err
	}
	// si el save falla no se anuncia nada
	if err := s.store.Save(ctx, updated); err != nil {
		return champion, err
	}

	ref, err := s.chat.PostMessage(ctx, s.channelID, domain.Announcement{
		Text:      announcementText(champion),
		RerollFor: champion.Name,
	})
	if err != nil {
		// el roster ya avanzó; no se vuelve atrás
		return champion, fmt.Errorf("%w: post announcement: %w", domain.ErrDispatchFailure, err)
	}
	s.tracker.RecordPost(ref)
	return champion, nil
}

func (s *ChampionService) rerollInPlace(ctx context.Context, previous string) (domain.Participant, error) {
	// sin anuncio trackeado no hay nada que editar: cortamos antes de tocar el roster
	ref, ok := s.tracker.Current()
	if !ok {
		return domain.Participant{}, domain.ErrNoActiveAnnouncement
	}

	roster, err := s.store.Load(ctx)
	if err != nil {
		return domain.Participant{}, err
	}
	if last, ok := roster.LastPicked(); ok && last.Name != previous {
		// botón de un anuncio viejo; seguimos igual
		log.Printf("reroll button: stale interaction previous=%s stored=%s", previous, last.Name)
	}

	champion, updated, err := rotation.PickReroll(roster, previous)
	if err != nil {
		return domain.Participant{}, err
	}
	if err := s.store.Save(ctx, updated); err != nil {
		return champion, err
	}

	if err := s.chat.UpdateMessage(ctx, ref, domain.Announcement{Text: rerolledText(champion)}); err != nil {
		return champion, fmt.Errorf("%w: update announcement: %w", domain.ErrDispatchFailure, err)
	}
	return champion, nil
}

func (s *ChampionService) replyError(ctx context.Context, in Interaction, err error) {
	if in.Reply == nil {
		return
	}
	if rerr := in.Reply(ctx, errorText(err)); rerr != nil {
		log.Printf("reply error: %v", rerr)
	}
}
