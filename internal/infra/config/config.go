package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

const (
	PlatformSlack   = "slack"
	PlatformDiscord = "discord"

	BackendFile = "file"
	BackendSQL  = "sql"
)

type Config struct {
	ChatPlatform string `env:"CHAT_PLATFORM" envDefault:"slack"`

	SlackSigningSecret string `env:"SLACK_SIGNING_SECRET"`
	SlackBotToken      string `env:"SLACK_BOT_TOKEN"`

	DiscordToken string `env:"DISCORD_BOT_TOKEN"`
	DiscordGuild string `env:"DISCORD_GUILD_ID"` // vacío = comandos globales

	ChannelID string `env:"CHANNEL_ID"`
	Port      string `env:"PORT" envDefault:"3000"`

	Schedule     string `env:"CHAMPION_SCHEDULE" envDefault:"0 9 * * 2,4"` // martes y jueves 9:00
	ScheduleZone string `env:"CHAMPION_TZ" envDefault:"Local"`

	RosterBackend  string `env:"ROSTER_BACKEND" envDefault:"file"`
	RosterFile     string `env:"ROSTER_FILE" envDefault:"./data.json"`
	DatabaseDriver string `env:"DATABASE_DRIVER" envDefault:"pgx"`
	DatabaseURL    string `env:"DATABASE_URL"`
	RosterName     string `env:"ROSTER_NAME" envDefault:"default"`
}

// Load lee el entorno (el .env lo carga main con godotenv) y valida que estén
// los valores que necesita la plataforma elegida. Nada más que presencia.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.ChatPlatform = strings.ToLower(strings.TrimSpace(cfg.ChatPlatform))
	cfg.RosterBackend = strings.ToLower(strings.TrimSpace(cfg.RosterBackend))

	var missing []string
	need := func(k, v string) {
		if v == "" {
			missing = append(missing, k)
		}
	}
	need("CHANNEL_ID", cfg.ChannelID)

	switch cfg.ChatPlatform {
	case PlatformSlack:
		need("SLACK_SIGNING_SECRET", cfg.SlackSigningSecret)
		need("SLACK_BOT_TOKEN", cfg.SlackBotToken)
	case PlatformDiscord:
		need("DISCORD_BOT_TOKEN", cfg.DiscordToken)
	default:
		return Config{}, fmt.Errorf("CHAT_PLATFORM must be %q or %q, got %q", PlatformSlack, PlatformDiscord, cfg.ChatPlatform)
	}

	switch cfg.RosterBackend {
	case BackendFile:
		need("ROSTER_FILE", cfg.RosterFile)
	case BackendSQL:
		need("DATABASE_URL", cfg.DatabaseURL)
	default:
		return Config{}, fmt.Errorf("ROSTER_BACKEND must be %q or %q, got %q", BackendFile, BackendSQL, cfg.RosterBackend)
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("faltante env %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

// DiscordAuth agrega el prefijo "Bot " si el token no lo trae.
func (c Config) DiscordAuth() string {
	auth := strings.TrimSpace(c.DiscordToken)
	if !strings.HasPrefix(strings.ToLower(auth), "bot ") {
		auth = "Bot " + auth
	}
	return auth
}

func (c Config) HTTPAddr() string { return ":" + c.Port }
