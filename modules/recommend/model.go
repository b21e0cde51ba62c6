package recommend

import (
	"encoding/json"
	"log"
	"strings"
)

// PreferenceSet - the five user-selected fashion attributes. All fields are
// optional free text; empty means "no preference". Constructed once per
// request and passed by value through the pipeline.
type PreferenceSet struct {
	Color    string `json:"color"`
	Gender   string `json:"gender"`
	Type     string `json:"type"`
	Occasion string `json:"occasion"`
	Style    string `json:"style"`
}

// normalized - trimmed copy of the preference set
func (p PreferenceSet) normalized() PreferenceSet {
	return PreferenceSet{
		Color:    strings.TrimSpace(p.Color),
		Gender:   strings.TrimSpace(p.Gender),
		Type:     strings.TrimSpace(p.Type),
		Occasion: strings.TrimSpace(p.Occasion),
		Style:    strings.TrimSpace(p.Style),
	}
}

// RecommendRequest - inbound shape for POST /api/recommend. AccessoryItems
// may ride along to fold the accessory phase into the same call.
type RecommendRequest struct {
	PreferenceSet
	AccessoryItems []string `json:"accessoryItems,omitempty"`
}

// AccessoriesRequest - inbound shape for POST /api/accessories. Preferences
// carries the serialized blob handed out by the recommendation response.
type AccessoriesRequest struct {
	Preferences string   `json:"preferences"`
	Items       []string `json:"items"`
}

// AccessoriesResponse - accessory suggestion text plus per-item images.
// Images holds entries only for items whose lookup succeeded.
type AccessoriesResponse struct {
	Outfit string            `json:"outfit,omitempty"`
	Text   string            `json:"text"`
	Images map[string]string `json:"images"`
}

// RecommendResponse - outbound shape for POST /api/recommend. Always complete:
// degraded pipelines fill the fields with fallback values instead of failing.
type RecommendResponse struct {
	Query       string               `json:"query"`
	ImageURLs   []string             `json:"imageUrls"`
	Description string               `json:"description"`
	Preferences string               `json:"preferences"`
	Accessories *AccessoriesResponse `json:"accessoriesResponse,omitempty"`
}

// TextOutcome - tagged result of a text generation operation. Operations
// never fail; Degraded marks Text as a fallback value and Reason records why.
type TextOutcome struct {
	Text     string
	Degraded bool
	Reason   string
}

func okOutcome(text string) TextOutcome {
	return TextOutcome{Text: text}
}

func degradedOutcome(text, reason string) TextOutcome {
	return TextOutcome{Text: text, Degraded: true, Reason: reason}
}

// ParsePreferences - tolerant decode of the serialized preference blob.
// Malformed input degrades to an empty set; the accessory phase must proceed.
func ParsePreferences(blob string) PreferenceSet {
	if strings.TrimSpace(blob) == "" {
		return PreferenceSet{}
	}

	var prefs PreferenceSet
	if err := json.Unmarshal([]byte(blob), &prefs); err != nil {
		log.Printf("⚠️  [Recommend] Failed to parse preferences blob: %v", err)
		return PreferenceSet{}
	}
	return prefs.normalized()
}
