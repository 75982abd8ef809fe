package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"

	discordrouter "github.com/jose-valero/deploy-champion-bot/internal/adapters/discord"
	"github.com/jose-valero/deploy-champion-bot/internal/adapters/httpslack"
	"github.com/jose-valero/deploy-champion-bot/internal/adapters/slack"
	"github.com/jose-valero/deploy-champion-bot/internal/app/service"
	"github.com/jose-valero/deploy-champion-bot/internal/infra/config"
	"github.com/jose-valero/deploy-champion-bot/internal/infra/schedule"
	"github.com/jose-valero/deploy-champion-bot/internal/infra/storage"
)

func main() {
	seedFrom := flag.String("seed-from", "", "importa un data.json al backend configurado y sale")
	flag.Parse()

	_ = godotenv.Load()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()

	// Roster
	roster, closeStore, err := openRoster(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	if *seedFrom != "" {
		data, err := os.ReadFile(*seedFrom)
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
		n, err := roster.Import(ctx, data)
		if err != nil {
			log.Fatalf("seed: %v", err)
		}
		log.Printf("✅ %d participantes importados desde %s", n, *seedFrom)
		return
	}

	tracker := service.NewAnnouncementTracker()
	var champion *service.ChampionService

	switch cfg.ChatPlatform {
	case config.PlatformSlack:
		sc := slack.New(cfg.SlackBotToken)
		champion = service.NewChampionService(roster, sc, tracker, cfg.ChannelID)

		web := httpslack.New(cfg.SlackSigningSecret, champion, sc)
		go web.Start(cfg.HTTPAddr())

	case config.PlatformDiscord:
		s, err := discordgo.New(cfg.DiscordAuth())
		if err != nil {
			log.Fatal(err)
		}
		s.Identify.Intents = discordgo.IntentsGuilds
		if err := s.Open(); err != nil {
			log.Fatal(err)
		}
		defer s.Close()
		log.Printf("✅ Conectado como %s (%s)", s.State.User.Username, s.State.User.ID)

		champion = service.NewChampionService(roster, discordrouter.NewClient(s), tracker, cfg.ChannelID)

		r := discordrouter.NewRouter(s, cfg.DiscordGuild, champion)
		if err := r.Register(); err != nil {
			log.Fatalf("registrando comandos: %v", err)
		}
		r.Handlers()
		log.Printf("✅ comandos registrados (guild=%q)", cfg.DiscordGuild)
	}

	// Cron
	sched, err := schedule.New(cfg.Schedule, cfg.ScheduleZone, champion.OnScheduledTick)
	if err != nil {
		log.Fatal(err)
	}
	sched.Start()
	defer sched.Stop()

	// Esperar señal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-stop
	log.Println("👋 bye")
}

// openRoster arma el RosterRepo sobre el backend configurado. El close es
// no-op para el archivo.
func openRoster(ctx context.Context, cfg config.Config) (*storage.RosterRepo, func(), error) {
	if cfg.RosterBackend == config.BackendFile {
		log.Printf("📄 roster en %s", cfg.RosterFile)
		return storage.NewRosterRepo(storage.NewFileBlob(cfg.RosterFile)), func() {}, nil
	}

	db, err := storage.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := storage.Migrate(db, cfg.DatabaseDriver); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	log.Printf("✅ DB lista y migrada (driver=%s, roster=%s)", cfg.DatabaseDriver, cfg.RosterName)
	blob := storage.NewSQLBlob(db, cfg.DatabaseDriver, cfg.RosterName)
	return storage.NewRosterRepo(blob), func() { _ = db.Close() }, nil
}
