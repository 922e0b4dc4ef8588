package domain

// PlaylistRef identifies a playlist in the user's music catalog.
// Like Meal, it is a value object sourced from a collaborator.
type PlaylistRef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	TrackCount  int    `json:"track_count"`
	Owner       string `json:"owner,omitempty"`
	IsOwner     bool   `json:"is_owner"`
}

// TrackRef identifies a single track inside a playlist.
type TrackRef struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Artist  string `json:"artist,omitempty"`
	Album   string `json:"album,omitempty"`
	Preview string `json:"preview_url,omitempty"`
}

// AudioFeatures holds the per-track numeric descriptors used by the
// genre detector. All values except Tempo are in [0,1]; Tempo is BPM.
type AudioFeatures struct {
	ID               string  `json:"id"`
	Danceability     float64 `json:"danceability"`
	Energy           float64 `json:"energy"`
	Valence          float64 `json:"valence"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
	Tempo            float64 `json:"tempo"`
}

// AverageFeatures averages each audio feature across a set of tracks.
// Returns the zero value when the slice is empty; callers must check
// length before relying on the averages.
func AverageFeatures(features []AudioFeatures) AudioFeatures {
	if len(features) == 0 {
		return AudioFeatures{}
	}
	var avg AudioFeatures
	for _, f := range features {
		avg.Danceability += f.Danceability
		avg.Energy += f.Energy
		avg.Valence += f.Valence
		avg.Acousticness += f.Acousticness
		avg.Instrumentalness += f.Instrumentalness
		avg.Tempo += f.Tempo
	}
	n := float64(len(features))
	avg.Danceability /= n
	avg.Energy /= n
	avg.Valence /= n
	avg.Acousticness /= n
	avg.Instrumentalness /= n
	avg.Tempo /= n
	return avg
}

// DetectionMethod identifies which signal produced a genre detection.
type DetectionMethod string

const (
	// DetectionMethodPlaylistName means the genre came from keyword
	// matching against the playlist's name.
	DetectionMethodPlaylistName DetectionMethod = "playlist_name"
	// DetectionMethodAudioFeatures means the genre came from averaged
	// audio features of the playlist's tracks.
	DetectionMethodAudioFeatures DetectionMethod = "audio_features"
	// DetectionMethodFallback means no signal was usable and the
	// detector returned its low-confidence default.
	DetectionMethodFallback DetectionMethod = "fallback"
)

// GenreDetection is the outcome of classifying a playlist's genre.
type GenreDetection struct {
	DetectedGenre string          `json:"detected_genre"`
	Confidence    float64         `json:"confidence"` // [0,1]
	Method        DetectionMethod `json:"method"`
	// Details carries diagnostic info (matched keyword, averaged
	// features, fallback reason). Advisory only; nothing downstream
	// branches on it.
	Details map[string]any `json:"details,omitempty"`
}
