package main

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/bwmarrin/discordgo"

	discordrouter "github.com/jose-valero/deploy-champion-bot/internal/adapters/discord"
	"github.com/jose-valero/deploy-champion-bot/internal/adapters/slack"
	"github.com/jose-valero/deploy-champion-bot/internal/app/service"
	"github.com/jose-valero/deploy-champion-bot/internal/infra/config"
	"github.com/jose-valero/deploy-champion-bot/internal/infra/storage"
)

// Cada invocación (regla de EventBridge) corre un tick y termina. El tracker
// nace vacío en cada cold start, así que el botón de un anuncio publicado acá
// no lo conoce el bot; un /rerollchampion arranca un ciclo nuevo.
//
// Los errores vuelven como texto con err nil: un reintento de EventBridge
// publicaría otro anuncio.
func handler(ctx context.Context, ev events.CloudWatchEvent) (string, error) {
	log.Printf("⏰ tick event=%s at=%s", ev.ID, ev.Time)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Sprintf("config: %v", err), nil
	}

	roster, closeStore, err := openRoster(ctx, cfg)
	if err != nil {
		return fmt.Sprintf("roster: %v", err), nil
	}
	defer closeStore()

	chat, err := messenger(cfg)
	if err != nil {
		return fmt.Sprintf("chat: %v", err), nil
	}

	champion := service.NewChampionService(roster, chat, service.NewAnnouncementTracker(), cfg.ChannelID)
	if err := champion.OnScheduledTick(ctx); err != nil {
		return fmt.Sprintf("tick: %v", err), nil
	}
	return "ok", nil
}

// openRoster: en postgres usa pgxpool directo; sqlite sigue por database/sql.
// Las migraciones las corre el bot, acá no.
func openRoster(ctx context.Context, cfg config.Config) (*storage.RosterRepo, func(), error) {
	switch {
	case cfg.RosterBackend == config.BackendFile:
		return storage.NewRosterRepo(storage.NewFileBlob(cfg.RosterFile)), func() {}, nil

	case cfg.DatabaseDriver == storage.DriverSQLite:
		db, err := storage.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		blob := storage.NewSQLBlob(db, cfg.DatabaseDriver, cfg.RosterName)
		return storage.NewRosterRepo(blob), func() { _ = db.Close() }, nil

	default:
		pool, err := storage.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewRosterRepo(storage.NewPoolBlob(pool, cfg.RosterName)), pool.Close, nil
	}
}

// messenger: para discord alcanza con REST, no se abre el gateway.
func messenger(cfg config.Config) (service.Messenger, error) {
	if cfg.ChatPlatform == config.PlatformDiscord {
		s, err := discordgo.New(cfg.DiscordAuth())
		if err != nil {
			return nil, err
		}
		return discordrouter.NewClient(s), nil
	}
	return slack.New(cfg.SlackBotToken), nil
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	lambda.Start(handler)
}
