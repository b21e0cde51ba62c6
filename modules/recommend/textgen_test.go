package recommend

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"stylemuse-server/modules/common/config"
	"stylemuse-server/modules/common/fallback"
	"stylemuse-server/modules/common/gemini"
)

// fakeTextService - scripted stand-in for the Gemini client
type fakeTextService struct {
	available  bool
	text       string
	err        error
	lastPrompt string
}

func (f *fakeTextService) Available() bool {
	return f.available
}

func (f *fakeTextService) GenerateText(ctx context.Context, prompt string, opts gemini.GenerateOptions) (string, error) {
	f.lastPrompt = prompt
	return f.text, f.err
}

func TestRefineUnavailableReturnsRawQuery(t *testing.T) {
	g := &GeminiTextGenerator{svc: &fakeTextService{available: false}}

	outcome := g.Refine(context.Background(), "red elegant dress for party female")

	require.True(t, outcome.Degraded)
	require.Equal(t, "red elegant dress for party female", outcome.Text)
}

func TestRefineTruncatesToEightTokens(t *testing.T) {
	g := &GeminiTextGenerator{svc: &fakeTextService{
		available: true,
		text:      "one two three four five six seven eight nine ten",
	}}

	outcome := g.Refine(context.Background(), "raw query")

	require.False(t, outcome.Degraded)
	require.Len(t, strings.Fields(outcome.Text), 8)
	require.Equal(t, "one two three four five six seven eight", outcome.Text)
}

func TestRefineErrorFallsBackToRawQuery(t *testing.T) {
	g := &GeminiTextGenerator{svc: &fakeTextService{
		available: true,
		err:       errors.New("boom"),
	}}

	outcome := g.Refine(context.Background(), "raw query")

	require.True(t, outcome.Degraded)
	require.Equal(t, "raw query", outcome.Text)
}

func TestRefineNeverReturnsEmptyForNonEmptyInput(t *testing.T) {
	// blocked response surfaces as ErrNoCandidates
	g := &GeminiTextGenerator{svc: &fakeTextService{
		available: true,
		err:       gemini.ErrNoCandidates,
	}}

	outcome := g.Refine(context.Background(), "blue jeans")

	require.True(t, outcome.Degraded)
	require.Equal(t, "blue jeans", outcome.Text)
	require.NotEmpty(t, outcome.Text)
}

func TestDescribeFallback(t *testing.T) {
	g := &GeminiTextGenerator{svc: &fakeTextService{available: false}}

	outcome := g.Describe(context.Background(), PreferenceSet{})

	require.True(t, outcome.Degraded)
	require.Equal(t, fallback.GenericDescription, outcome.Text)
}

func TestDescribePromptDefaultsToAny(t *testing.T) {
	svc := &fakeTextService{available: true, text: "A lovely outfit."}
	g := &GeminiTextGenerator{svc: svc}

	outcome := g.Describe(context.Background(), PreferenceSet{Color: "red"})

	require.False(t, outcome.Degraded)
	require.Contains(t, svc.lastPrompt, "Color: red")
	require.Contains(t, svc.lastPrompt, "Gender: any")
	require.Contains(t, svc.lastPrompt, "Style: any")
}

func TestSuggestAccessoriesFallback(t *testing.T) {
	g := &GeminiTextGenerator{svc: &fakeTextService{
		available: true,
		err:       errors.New("timeout"),
	}}

	outcome := g.SuggestAccessories(context.Background(), "red dress", "female", []string{"watch", "belt"})

	require.True(t, outcome.Degraded)
	require.Equal(t, fallback.GenericAccessories, outcome.Text)
}

func TestSuggestAccessoriesPromptIncludesItems(t *testing.T) {
	svc := &fakeTextService{available: true, text: "Try a gold watch."}
	g := &GeminiTextGenerator{svc: svc}

	outcome := g.SuggestAccessories(context.Background(), "red dress", "female", []string{"watch", "belt"})

	require.False(t, outcome.Degraded)
	require.Contains(t, svc.lastPrompt, "watch, belt")
	require.Contains(t, svc.lastPrompt, "Gender: female")
}

func TestTextGeneratorWithUnconfiguredClient(t *testing.T) {
	// a client built without an API key is the real "generation unavailable" state
	cfg := &config.Config{GeminiModel: "gemini-2.5-flash"}
	g := NewTextGenerator(gemini.NewClient(cfg))

	refined := g.Refine(context.Background(), "red dress")
	require.True(t, refined.Degraded)
	require.Equal(t, "red dress", refined.Text)

	described := g.Describe(context.Background(), PreferenceSet{})
	require.Equal(t, fallback.GenericDescription, described.Text)
}
