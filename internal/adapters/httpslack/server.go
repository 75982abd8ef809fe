// Package httpslack recibe los requests de Slack: eventos, slash commands e
// interacciones de botones.
package httpslack

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	slackgo "github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"

	"github.com/jose-valero/deploy-champion-bot/internal/adapters/ratelimit"
	"github.com/jose-valero/deploy-champion-bot/internal/adapters/slack"
	"github.com/jose-valero/deploy-champion-bot/internal/app/service"
)

const CommandReroll = "/rerollchampion"

// Lo implementa service.ChampionService
type Triggers interface {
	OnRerollCommand(ctx context.Context, in service.Interaction) error
	OnRerollButton(ctx context.Context, in service.Interaction, previous string) error
}

// Lo implementa slack.Client
type Responder interface {
	Respond(ctx context.Context, responseURL string, inChannel bool, text string) error
}

type Server struct {
	secret       string
	triggers     Triggers
	replies      Responder
	clickLimiter *ratelimit.UserLimiter
	mux          *http.ServeMux
}

func New(secret string, triggers Triggers, replies Responder) *Server {
	s := &Server{
		secret:       secret,
		triggers:     triggers,
		replies:      replies,
		clickLimiter: ratelimit.NewUserLimiter(2 * time.Second),
		mux:          http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/slack/events", s.handleEvents)
	s.mux.HandleFunc("/slack/commands", s.handleCommand)
	s.mux.HandleFunc("/slack/actions", s.handleAction)
	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.mux.ServeHTTP(w, r) }

func (s *Server) Start(addr string) {
	log.Printf("🌐 HTTP listening on %s", addr)
	if err := http.ListenAndServe(addr, s.mux); err != nil {
		log.Fatalf("http server: %v", err)
	}
}

// verified lee el body y valida la firma de Slack. Si falla ya respondió.
func (s *Server) verified(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}
	sv, err := slackgo.NewSecretsVerifier(r.Header, s.secret)
	if err != nil {
		log.Printf("slack: bad signature headers: %v", err)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	body, err := io.ReadAll(io.TeeReader(http.MaxBytesReader(w, r.Body, 1<<20), &sv))
	_ = r.Body.Close()
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return nil, false
	}
	if err := sv.Ensure(); err != nil {
		log.Printf("slack: invalid signature: %v", err)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	// el body ya se consumió; lo reponemos para los parsers de form
	r.Body = io.NopCloser(bytes.NewReader(body))
	return body, true
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	body, ok := s.verified(w, r)
	if !ok {
		return
	}
	ev, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if ev.Type == slackevents.URLVerification {
		var ch slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &ch); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(ch.Challenge))
		return
	}
	// no escuchamos otros eventos
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.verified(w, r); !ok {
		return
	}
	cmd, err := slackgo.SlashCommandParse(r)
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	log.Printf("cmd: %s by=%s channel=%s", cmd.Command, cmd.UserID, cmd.ChannelID)
	if cmd.Command != CommandReroll {
		w.WriteHeader(http.StatusOK)
		return
	}

	s.ackThenRun(w, r, func(ctx context.Context, ack func() error) {
		_ = s.triggers.OnRerollCommand(ctx, service.Interaction{
			Ack: ack,
			Reply: func(ctx context.Context, text string) error {
				return s.replies.Respond(ctx, cmd.ResponseURL, true, text)
			},
		})
	})
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.verified(w, r); !ok {
		return
	}
	var cb slackgo.InteractionCallback
	if err := json.Unmarshal([]byte(r.PostFormValue("payload")), &cb); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if cb.Type != slackgo.InteractionTypeBlockActions {
		w.WriteHeader(http.StatusOK)
		return
	}

	previous, found := "", false
	for _, a := range cb.ActionCallback.BlockActions {
		if a.ActionID == slack.ActionReroll {
			previous, found = a.Value, true
			break
		}
	}
	if !found {
		w.WriteHeader(http.StatusOK)
		return
	}
	log.Printf("action: %s by=%s previous=%s", slack.ActionReroll, cb.User.ID, previous)

	reply := func(ctx context.Context, text string) error {
		return s.replies.Respond(ctx, cb.ResponseURL, false, text)
	}
	if !s.clickLimiter.Allow(cb.User.ID) {
		w.WriteHeader(http.StatusOK)
		go func() { _ = reply(context.Background(), "⏳ Wait a second…") }()
		return
	}

	s.ackThenRun(w, r, func(ctx context.Context, ack func() error) {
		_ = s.triggers.OnRerollButton(ctx, service.Interaction{Ack: ack, Reply: reply}, previous)
	})
}

// ackThenRun corre work en otra goroutine y devuelve el 200 apenas work
// llama a ack; el resto sigue después de responderle a Slack.
func (s *Server) ackThenRun(w http.ResponseWriter, r *http.Request, work func(ctx context.Context, ack func() error)) {
	var once sync.Once
	acked := make(chan struct{})
	ack := func() error {
		once.Do(func() {
			w.WriteHeader(http.StatusOK)
			close(acked)
		})
		return nil
	}

	ctx := context.WithoutCancel(r.Context())
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic in slack handler %s: %v", r.URL.Path, rec)
			}
		}()
		work(ctx, ack)
	}()

	select {
	case <-acked:
	case <-done:
		_ = ack()
	}
}
