package gemini

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"google.golang.org/genai"

	"stylemuse-server/modules/common/config"
)

// ErrUnavailable - no API key configured or the client could not be created.
var ErrUnavailable = errors.New("text generation unavailable")

// ErrNoCandidates - the service answered but produced no usable text
// (blocked by safety filters or empty). Treated like a transport error.
var ErrNoCandidates = errors.New("no candidates returned")

const callTimeout = 15 * time.Second

// GenerateOptions - per-call generation knobs
type GenerateOptions struct {
	MaxOutputTokens int32
	Temperature     *float32
}

// Client wraps the genai SDK. A Client without an API key stays usable but
// permanently degraded: every call returns ErrUnavailable and callers fall
// back to their fixed values. This is the single "generation unavailable"
// state shared by refinement, descriptions and accessory suggestions.
type Client struct {
	genaiClient *genai.Client
	model       string
}

// NewClient - create the shared Gemini client
func NewClient(cfg *config.Config) *Client {
	if cfg.GeminiAPIKey == "" {
		log.Println("⚠️  [Gemini] No API key configured - running in fallback mode")
		return &Client{model: cfg.GeminiModel}
	}

	ctx := context.Background()
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Printf("❌ [Gemini] Failed to create client: %v", err)
		return &Client{model: cfg.GeminiModel}
	}

	log.Printf("✅ [Gemini] Client initialized (model: %s)", cfg.GeminiModel)
	return &Client{
		genaiClient: genaiClient,
		model:       cfg.GeminiModel,
	}
}

// Available - whether text generation can be attempted at all
func (c *Client) Available() bool {
	return c != nil && c.genaiClient != nil
}

// safetySettings - block medium and above across all four harm categories
func safetySettings() []*genai.SafetySetting {
	return []*genai.SafetySetting{
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
	}
}

// GenerateText - single prompt call with one retry on rate limiting
func (c *Client) GenerateText(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	if !c.Available() {
		return "", ErrUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	genConfig := &genai.GenerateContentConfig{
		SafetySettings: safetySettings(),
	}
	if opts.MaxOutputTokens > 0 {
		genConfig.MaxOutputTokens = opts.MaxOutputTokens
	}
	if opts.Temperature != nil {
		genConfig.Temperature = opts.Temperature
	}

	contents := []*genai.Content{
		{
			Parts: []*genai.Part{genai.NewPartFromText(prompt)},
		},
	}

	const maxAttempts = 2
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := c.genaiClient.Models.GenerateContent(ctx, c.model, contents, genConfig)
		if err != nil {
			lastErr = err
			if is429Error(err) && attempt < maxAttempts {
				log.Printf("⚠️  [Gemini] Rate limited (attempt %d/%d), retrying...", attempt, maxAttempts)
				time.Sleep(2 * time.Second)
				continue
			}
			return "", err
		}

		if len(result.Candidates) == 0 {
			return "", ErrNoCandidates
		}

		text := strings.TrimSpace(result.Text())
		if text == "" {
			return "", ErrNoCandidates
		}
		return text, nil
	}

	return "", lastErr
}

// FloatPtr - convert float64 to *float32 for generation configs
func FloatPtr(f float64) *float32 {
	f32 := float32(f)
	return &f32
}

// is429Error - whether the error is a rate limit response
func is429Error(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	return strings.Contains(errStr, "429") ||
		strings.Contains(strings.ToLower(errStr), "rate limit") ||
		strings.Contains(strings.ToLower(errStr), "quota")
}
