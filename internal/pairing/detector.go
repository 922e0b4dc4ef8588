package pairing

import (
	"context"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/foodnjam/foodnjam-server/internal/domain"
	"github.com/foodnjam/foodnjam-server/internal/logger"
)

// MusicCatalog is the subset of the music collaborator the detector
// needs. The real implementation talks to the Spotify Web API.
type MusicCatalog interface {
	// GetPlaylistTracks returns the tracks of a playlist, possibly empty.
	GetPlaylistTracks(ctx context.Context, playlistID string) ([]domain.TrackRef, error)
	// GetAudioFeatures returns audio features for up to 100 track IDs.
	GetAudioFeatures(ctx context.Context, trackIDs []string) ([]domain.AudioFeatures, error)
}

const (
	// maxTracksAnalyzed caps how many tracks the audio-feature path
	// fetches features for. Keeps the feature request well under the
	// catalog's 100-id limit.
	maxTracksAnalyzed = 20

	// nameShortCircuitThreshold is the name-heuristic confidence above
	// which the detector skips the audio-feature path entirely, saving
	// two catalog calls.
	nameShortCircuitThreshold = 0.7
)

// Name heuristic scoring constants.
const (
	keywordBaseConfidence = 0.5
	standaloneWordBonus   = 0.3
	namePrefixBonus       = 0.2
	shortKeywordPenalty   = 0.1
	defaultNameConfidence = 0.3
	fallbackConfidence    = 0.2
)

// genreKeywords maps genres to name substrings that suggest them.
// Ordered slice rather than a map so scanning order is stable.
var genreKeywords = []struct {
	genre    string
	keywords []string
}{
	{"latin", []string{"latin", "latino", "salsa", "bachata", "merengue", "reggaeton", "spanish"}},
	{"reggae", []string{"reggae", "jamaica", "bob marley", "rastafari"}},
	{"jazz", []string{"jazz", "blues", "swing", "bebop", "smooth", "café"}},
	{"classical", []string{"classical", "orchestra", "symphony", "opera", "baroque", "piano"}},
	{"rock", []string{"rock", "metal", "punk", "alternative", "indie rock"}},
	{"pop", []string{"pop", "hits", "chart", "mainstream", "radio"}},
	{"hip-hop", []string{"hip hop", "rap", "hiphop", "trap", "drill"}},
	{"electronic", []string{"electronic", "edm", "techno", "house", "trance", "dubstep"}},
	{"country", []string{"country", "folk", "bluegrass", "americana"}},
	{"r&b", []string{"r&b", "rnb", "soul", "funk", "motown"}},
	{"indie", []string{"indie", "alternative", "hipster", "underground"}},
	{"chill", []string{"chill", "lofi", "ambient", "relax", "study", "sleep"}},
	{"world-music", []string{"world", "ethnic", "traditional", "cultural"}},
}

// relatedGenres feeds GenreSuggestions with genres adjacent to a
// detection result.
var relatedGenres = map[string][]string{
	"latin":      {"reggaeton", "salsa", "pop"},
	"reggae":     {"caribbean", "world-music", "chill"},
	"jazz":       {"blues", "soul", "classical"},
	"rock":       {"alternative", "indie", "metal"},
	"pop":        {"indie", "electronic", "r&b"},
	"electronic": {"house", "ambient", "pop"},
	"chill":      {"ambient", "indie", "jazz"},
}

// audioRules is the decision list for the audio-feature path, evaluated
// in order with the first match winning.
var audioRules = []struct {
	genre      string
	confidence float64
	matches    func(avg domain.AudioFeatures) bool
}{
	{"electronic", 0.7, func(a domain.AudioFeatures) bool {
		return a.Energy > 0.8 && a.Danceability > 0.7 && a.Tempo > 120
	}},
	{"folk", 0.6, func(a domain.AudioFeatures) bool {
		return a.Acousticness > 0.6 && a.Energy < 0.5
	}},
	{"ambient", 0.6, func(a domain.AudioFeatures) bool {
		return a.Instrumentalness > 0.5
	}},
	{"latin", 0.6, func(a domain.AudioFeatures) bool {
		return a.Danceability > 0.8 && a.Valence > 0.7
	}},
	{"rock", 0.5, func(a domain.AudioFeatures) bool {
		return a.Energy > 0.7 && a.Valence < 0.5
	}},
	{"indie", 0.5, func(a domain.AudioFeatures) bool {
		return a.Acousticness > 0.4 && a.Valence > 0.6
	}},
}

// Detector classifies a playlist's genre from two independent signals:
// keyword matches against the playlist name, and averaged audio
// features of its tracks. The name signal is free; the audio signal
// costs two catalog calls and is only consulted when the name signal is
// inconclusive.
type Detector struct {
	catalog MusicCatalog
	log     *logger.Logger
}

// NewDetector creates a genre detector backed by the given catalog.
func NewDetector(catalog MusicCatalog, log *logger.Logger) *Detector {
	return &Detector{catalog: catalog, log: log}
}

// DetectPlaylistGenre classifies the playlist. The name heuristic runs
// first and short-circuits when its confidence exceeds 0.7; otherwise
// the audio-feature heuristic runs and the higher-confidence result
// wins, with ties going to the audio result.
func (d *Detector) DetectPlaylistGenre(ctx context.Context, playlist domain.PlaylistRef) domain.GenreDetection {
	nameResult := d.detectFromName(playlist.Name)
	if nameResult.Confidence > nameShortCircuitThreshold {
		return nameResult
	}

	audioResult := d.detectFromTracks(ctx, playlist.ID)

	if nameResult.Confidence > audioResult.Confidence {
		return nameResult
	}
	return audioResult
}

// GenreSuggestions returns the detected genre plus up to two related
// genres, deduplicated.
func (d *Detector) GenreSuggestions(ctx context.Context, playlist domain.PlaylistRef) []string {
	detection := d.DetectPlaylistGenre(ctx, playlist)
	return ExpandGenre(detection.DetectedGenre)
}

// ExpandGenre returns the genre plus up to two related genres,
// deduplicated.
func ExpandGenre(genre string) []string {
	suggestions := []string{genre}
	related := relatedGenres[genre]
	if len(related) > 2 {
		related = related[:2]
	}
	for _, g := range related {
		if g != genre {
			suggestions = append(suggestions, g)
		}
	}
	return suggestions
}

// detectFromName scans the keyword table against the lower-cased
// playlist name and keeps the highest-confidence match. Defaults to
// pop/0.3 when nothing matches.
func (d *Detector) detectFromName(playlistName string) domain.GenreDetection {
	name := strings.ToLower(norm.NFC.String(playlistName))

	bestGenre := "pop"
	bestConfidence := defaultNameConfidence
	bestKeyword := ""

	for _, entry := range genreKeywords {
		for _, keyword := range entry.keywords {
			if !strings.Contains(name, keyword) {
				continue
			}
			if confidence := keywordConfidence(keyword, name); confidence > bestConfidence {
				bestGenre = entry.genre
				bestConfidence = confidence
				bestKeyword = keyword
			}
		}
	}

	details := map[string]any{"playlist_name": playlistName}
	if bestKeyword != "" {
		details["matched_keyword"] = bestKeyword
	}

	return domain.GenreDetection{
		DetectedGenre: bestGenre,
		Confidence:    bestConfidence,
		Method:        domain.DetectionMethodPlaylistName,
		Details:       details,
	}
}

// keywordConfidence scores one keyword match against the name. Base
// 0.5; standalone words and name prefixes score higher, short keywords
// buried in long names score lower. Clamped to 1.0.
func keywordConfidence(keyword, name string) float64 {
	confidence := keywordBaseConfidence

	for _, word := range strings.Fields(name) {
		if word == keyword {
			confidence += standaloneWordBonus
			break
		}
	}

	if strings.HasPrefix(name, keyword) {
		confidence += namePrefixBonus
	}

	if len(keyword) < 4 && len(name) > 20 {
		confidence -= shortKeywordPenalty
	}

	return min(confidence, 1.0)
}

// detectFromTracks fetches up to 20 tracks and their audio features,
// averages the features, and classifies via the decision list. Any
// fetch failure or empty result degrades to the pop/0.2 fallback rather
// than surfacing an error.
func (d *Detector) detectFromTracks(ctx context.Context, playlistID string) domain.GenreDetection {
	tracks, err := d.catalog.GetPlaylistTracks(ctx, playlistID)
	if err != nil {
		d.log.Debug("playlist tracks unavailable, using fallback genre", "playlist_id", playlistID, "error", err)
		return fallbackDetection("tracks unavailable")
	}
	if len(tracks) == 0 {
		return fallbackDetection("no tracks in playlist")
	}

	if len(tracks) > maxTracksAnalyzed {
		tracks = tracks[:maxTracksAnalyzed]
	}
	trackIDs := make([]string, len(tracks))
	for i, track := range tracks {
		trackIDs[i] = track.ID
	}

	features, err := d.catalog.GetAudioFeatures(ctx, trackIDs)
	if err != nil {
		d.log.Debug("audio features unavailable, using fallback genre", "playlist_id", playlistID, "error", err)
		return fallbackDetection("audio features unavailable")
	}
	if len(features) == 0 {
		return fallbackDetection("no audio features available")
	}

	avg := domain.AverageFeatures(features)
	genre, confidence := classifyAudioFeatures(avg)

	return domain.GenreDetection{
		DetectedGenre: genre,
		Confidence:    confidence,
		Method:        domain.DetectionMethodAudioFeatures,
		Details: map[string]any{
			"tracks_analyzed":  len(features),
			"average_features": avg,
		},
	}
}

// classifyAudioFeatures walks the decision list; the first matching
// rule wins, the default is pop/0.4.
func classifyAudioFeatures(avg domain.AudioFeatures) (string, float64) {
	for _, rule := range audioRules {
		if rule.matches(avg) {
			return rule.genre, rule.confidence
		}
	}
	return "pop", 0.4
}

func fallbackDetection(reason string) domain.GenreDetection {
	return domain.GenreDetection{
		DetectedGenre: "pop",
		Confidence:    fallbackConfidence,
		Method:        domain.DetectionMethodFallback,
		Details:       map[string]any{"reason": reason},
	}
}
