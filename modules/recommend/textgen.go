package recommend

import (
	"context"
	"log"
	"strings"

	"stylemuse-server/modules/common/fallback"
	"stylemuse-server/modules/common/gemini"
)

// maxRefinedTokens caps the refined query length for image search.
const maxRefinedTokens = 8

// TextGenerator - the three text operations the pipeline needs. Total-fallback
// contract: implementations return degraded outcomes, never errors.
type TextGenerator interface {
	Refine(ctx context.Context, rawQuery string) TextOutcome
	Describe(ctx context.Context, prefs PreferenceSet) TextOutcome
	SuggestAccessories(ctx context.Context, outfit, gender string, items []string) TextOutcome
}

// textService - the slice of the Gemini client this package uses
type textService interface {
	Available() bool
	GenerateText(ctx context.Context, prompt string, opts gemini.GenerateOptions) (string, error)
}

// GeminiTextGenerator implements TextGenerator on the shared Gemini client.
// A single unavailable client degrades all three operations together.
type GeminiTextGenerator struct {
	svc textService
}

func NewTextGenerator(client *gemini.Client) *GeminiTextGenerator {
	return &GeminiTextGenerator{
		svc: client,
	}
}

// Refine - shorten the raw query to at most 8 keywords for image search.
// Any failure falls back to the raw query unchanged.
func (g *GeminiTextGenerator) Refine(ctx context.Context, rawQuery string) TextOutcome {
	if !g.svc.Available() {
		return degradedOutcome(rawQuery, "generation unavailable")
	}

	text, err := g.svc.GenerateText(ctx, RefinePrompt(rawQuery), gemini.GenerateOptions{
		MaxOutputTokens: 60,
		Temperature:     gemini.FloatPtr(0.5),
	})
	if err != nil {
		log.Printf("⚠️  [TextGen] Query refinement failed: %v", err)
		return degradedOutcome(rawQuery, err.Error())
	}

	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return degradedOutcome(rawQuery, "empty refinement")
	}
	if len(tokens) > maxRefinedTokens {
		tokens = tokens[:maxRefinedTokens]
	}

	return okOutcome(strings.Join(tokens, " "))
}

// Describe - 4-5 line outfit description with a fixed generic fallback
func (g *GeminiTextGenerator) Describe(ctx context.Context, prefs PreferenceSet) TextOutcome {
	if !g.svc.Available() {
		return degradedOutcome(fallback.GenericDescription, "generation unavailable")
	}

	text, err := g.svc.GenerateText(ctx, DescriptionPrompt(prefs), gemini.GenerateOptions{})
	if err != nil {
		log.Printf("⚠️  [TextGen] Description generation failed: %v", err)
		return degradedOutcome(fallback.GenericDescription, err.Error())
	}

	return okOutcome(text)
}

// SuggestAccessories - accessory recommendation paragraph with a fixed fallback
func (g *GeminiTextGenerator) SuggestAccessories(ctx context.Context, outfit, gender string, items []string) TextOutcome {
	if !g.svc.Available() {
		return degradedOutcome(fallback.GenericAccessories, "generation unavailable")
	}

	text, err := g.svc.GenerateText(ctx, AccessoriesPrompt(outfit, gender, items), gemini.GenerateOptions{})
	if err != nil {
		log.Printf("⚠️  [TextGen] Accessory suggestion failed: %v", err)
		return degradedOutcome(fallback.GenericAccessories, err.Error())
	}

	return okOutcome(text)
}
