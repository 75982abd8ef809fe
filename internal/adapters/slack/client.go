package slack

import (
	"context"
	"fmt"
	"net/http"
	"time"

	slackgo "github.com/slack-go/slack"

	"github.com/jose-valero/deploy-champion-bot/internal/domain"
)

// ActionReroll es el action_id del botón "Pick someone else".
const ActionReroll = "reroll_champion"

type Client struct {
	api    *slackgo.Client
	http   *http.Client
	apiURL string
}

func New(token string, opts ...Option) *Client {
	c := &Client{http: &http.Client{Timeout: 10 * time.Second}}
	for _, o := range opts {
		o(c)
	}
	apiOpts := []slackgo.Option{slackgo.OptionHTTPClient(c.http)}
	if c.apiURL != "" {
		apiOpts = append(apiOpts, slackgo.OptionAPIURL(c.apiURL))
	}
	c.api = slackgo.New(token, apiOpts...)
	return c
}

// PostMessage es chat.postMessage; devuelve canal y ts para editar después.
func (c *Client) PostMessage(ctx context.Context, channelID string, a domain.Announcement) (domain.MessageRef, error) {
	ch, ts, err := c.api.PostMessageContext(ctx, channelID,
		slackgo.MsgOptionText(a.Text, false),
		slackgo.MsgOptionBlocks(Blocks(a)...),
	)
	if err != nil {
		return domain.MessageRef{}, fmt.Errorf("slack chat.postMessage: %w", err)
	}
	return domain.MessageRef{ChannelID: ch, MessageID: ts}, nil
}

// UpdateMessage es chat.update sobre un mensaje ya publicado.
func (c *Client) UpdateMessage(ctx context.Context, ref domain.MessageRef, a domain.Announcement) error {
	_, _, _, err := c.api.UpdateMessageContext(ctx, ref.ChannelID, ref.MessageID,
		slackgo.MsgOptionText(a.Text, false),
		slackgo.MsgOptionBlocks(Blocks(a)...),
	)
	if err != nil {
		return fmt.Errorf("slack chat.update: %w", err)
	}
	return nil
}

// Respond contesta por el response_url de un comando o de una interacción.
func (c *Client) Respond(ctx context.Context, responseURL string, inChannel bool, text string) error {
	msg := &slackgo.WebhookMessage{
		Text:         text,
		ResponseType: slackgo.ResponseTypeEphemeral,
	}
	if inChannel {
		msg.ResponseType = slackgo.ResponseTypeInChannel
	}
	if err := slackgo.PostWebhookCustomHTTPContext(ctx, responseURL, c.http, msg); err != nil {
		return fmt.Errorf("slack response_url: %w", err)
	}
	return nil
}

// Blocks arma la sección con el texto y, si corresponde, el botón de reroll.
func Blocks(a domain.Announcement) []slackgo.Block {
	blocks := []slackgo.Block{
		slackgo.NewSectionBlock(
			slackgo.NewTextBlockObject(slackgo.MarkdownType, a.Text, false, false),
			nil, nil,
		),
	}
	if a.RerollFor != "" {
		btn := slackgo.NewButtonBlockElement(ActionReroll, a.RerollFor,
			slackgo.NewTextBlockObject(slackgo.PlainTextType, "🎲 Pick someone else", true, false),
		)
		blocks = append(blocks, slackgo.NewActionBlock("", btn))
	}
	return blocks
}
