package recommend

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"stylemuse-server/modules/common/config"
	"stylemuse-server/modules/common/ddg"
	"stylemuse-server/modules/common/gemini"
)

// accessoryLookupWorkers bounds the concurrent per-item image lookups.
const accessoryLookupWorkers = 4

// Service - the recommendation orchestrator. Stateless across requests:
// every call runs its own two-phase pipeline to completion, degrading
// individual steps instead of aborting.
type Service struct {
	textgen   TextGenerator
	images    ImageSearcher
	maxImages int
}

// NewService - build the orchestrator from configuration
func NewService(cfg *config.Config) *Service {
	return NewServiceWith(
		NewTextGenerator(gemini.NewClient(cfg)),
		NewImageClient(ddg.NewClient(cfg.SearchBaseURL)),
		cfg.MaxImages,
	)
}

// NewServiceWith - dependency-injected constructor
func NewServiceWith(textgen TextGenerator, images ImageSearcher, maxImages int) *Service {
	if maxImages <= 0 {
		maxImages = DefaultMaxImages
	}
	return &Service{
		textgen:   textgen,
		images:    images,
		maxImages: maxImages,
	}
}

// Recommend - Phase 1: build the raw query, refine it, then fetch images and
// the outfit description. The image search needs the refined query while the
// description only needs the preferences, so those two run side by side.
func (s *Service) Recommend(ctx context.Context, req *RecommendRequest) *RecommendResponse {
	prefs := req.PreferenceSet.normalized()

	rawQuery := BuildQuery(prefs)
	log.Printf("🔍 [Recommend] Raw query: %q", rawQuery)

	refined := s.textgen.Refine(ctx, rawQuery)
	if refined.Degraded {
		log.Printf("⚠️  [Recommend] Refinement degraded: %s", refined.Reason)
	}
	log.Printf("🔍 [Recommend] Refined query: %q", refined.Text)

	var (
		imageURLs   []string
		description TextOutcome
	)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		imageURLs = s.images.SearchImages(ctx, refined.Text, s.maxImages)
	}()
	go func() {
		defer wg.Done()
		description = s.textgen.Describe(ctx, prefs)
	}()
	wg.Wait()

	if description.Degraded {
		log.Printf("⚠️  [Recommend] Description degraded: %s", description.Reason)
	}

	// serialized copy for the accessory-phase round trip
	serialized, _ := json.Marshal(prefs)

	response := &RecommendResponse{
		Query:       refined.Text,
		ImageURLs:   imageURLs,
		Description: description.Text,
		Preferences: string(serialized),
	}

	if len(req.AccessoryItems) > 0 {
		response.Accessories = s.accessorize(ctx, refined.Text, prefs.Gender, req.AccessoryItems)
	}

	return response
}

// Accessories - Phase 2: rebuild the outfit phrase from the serialized
// preferences (tolerating a malformed blob) and suggest matching accessories.
func (s *Service) Accessories(ctx context.Context, req *AccessoriesRequest) *AccessoriesResponse {
	prefs := ParsePreferences(req.Preferences)

	outfit := BuildQuery(prefs)
	gender := prefs.Gender
	if gender == "" {
		gender = "unisex"
	}

	log.Printf("💍 [Recommend] Accessory phase: outfit=%q gender=%s items=%d", outfit, gender, len(req.Items))

	response := s.accessorize(ctx, outfit, gender, req.Items)
	response.Outfit = outfit
	return response
}

// accessorize - shared accessory step for both phases
func (s *Service) accessorize(ctx context.Context, outfit, gender string, items []string) *AccessoriesResponse {
	suggestion := s.textgen.SuggestAccessories(ctx, outfit, gender, items)
	if suggestion.Degraded {
		log.Printf("⚠️  [Recommend] Accessory suggestion degraded: %s", suggestion.Reason)
	}

	return &AccessoriesResponse{
		Text:   suggestion.Text,
		Images: s.fetchAccessoryImages(ctx, items),
	}
}

// fetchAccessoryImages - independent per-item lookups on a bounded pool.
// Failed lookups are isolated: their items are simply absent from the map.
func (s *Service) fetchAccessoryImages(ctx context.Context, items []string) map[string]string {
	images := make(map[string]string, len(items))
	var mu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(accessoryLookupWorkers)

	for _, item := range items {
		g.Go(func() error {
			if url, found := s.images.SearchAccessoryImage(ctx, item); found {
				mu.Lock()
				images[item] = url
				mu.Unlock()
			}
			return nil
		})
	}

	g.Wait()
	return images
}
