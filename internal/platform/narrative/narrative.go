// Package narrative turns a computed outcome prediction into clinician-facing
// prose via the Anthropic API. It is an optional collaborator: callers must
// treat any error here as non-fatal and fall back to the deterministic
// summary already present on the prediction.
package narrative

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/maternity/maternity/internal/domain/prediction"
)

const systemPrompt = `You are a clinical documentation assistant for an obstetric care team.
Given a structured outcome prediction, write a short narrative (3-5 sentences) for the
care team: lead with the dominant risk picture, mention the delivery outlook, and close
with a monitoring recommendation. Plain prose, no markdown, no disclaimers.`

// Generator produces a narrative for a prediction.
type Generator interface {
	Generate(ctx context.Context, res *prediction.Result) (string, error)
}

// Client is an anthropic-backed Generator.
type Client struct {
	client    sdk.Client
	model     string
	maxTokens int64
}

// NewClient creates a narrative client. model selects the Anthropic model ID.
func NewClient(apiKey, model string) *Client {
	return &Client{
		client:    sdk.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: 1024,
	}
}

func (c *Client) Generate(ctx context.Context, res *prediction.Result) (string, error) {
	msg, err := c.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: c.maxTokens,
		System:    []sdk.TextBlockParam{{Text: systemPrompt}},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(renderPrompt(res))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("narrative: create message: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("narrative: empty response from model")
	}
	return text, nil
}

// renderPrompt flattens the prediction into a compact plain-text block for the
// model.
func renderPrompt(res *prediction.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Current gestational age: %d weeks (%d visits on record).\n",
		res.Metadata.CurrentGestationalAge, res.Metadata.VisitCount)
	fmt.Fprintf(&b, "Delivery timing probabilities: matured %.0f%%, premature %.0f%%, mortality risk %.0f%%.\n",
		res.DeliveryType.Matured*100, res.DeliveryType.Premature*100, res.DeliveryType.MortalityRisk*100)
	fmt.Fprintf(&b, "Delivery mode probabilities: normal %.0f%%, c-section %.0f%%.\n",
		res.DeliveryMode.Normal*100, res.DeliveryMode.CSection*100)
	s := res.Metadata.RiskScores
	fmt.Fprintf(&b, "Risk scores (0-1): anemia %.1f, hypertension %.1f, growth restriction %.1f, preterm %.1f, maternal age %.1f, BMI %.1f.\n",
		s.Anemia, s.Hypertension, s.GrowthRestriction, s.PretermRisk, s.MaternalAgeRisk, s.BMIRisk)
	if res.IsFallback {
		b.WriteString("Note: population baseline estimates; visit history was insufficient for a personalized prediction.\n")
	}
	fmt.Fprintf(&b, "Rule-based summary: %s\n", res.Summary)
	return b.String()
}
