package music

import (
	"github.com/foodnjam/foodnjam-server/internal/domain"
)

// rawImage is one entry of a Spotify image set, largest first.
type rawImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

func firstImage(images []rawImage) string {
	if len(images) == 0 {
		return ""
	}
	return images[0].URL
}

// rawUser mirrors the /me response.
type rawUser struct {
	ID          string     `json:"id"`
	DisplayName string     `json:"display_name"`
	Email       string     `json:"email"`
	Images      []rawImage `json:"images"`
}

// User is the normalized Spotify profile.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`
	Image       string `json:"image,omitempty"`
}

// rawPlaylist mirrors a playlist object.
type rawPlaylist struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Images      []rawImage `json:"images"`
	Owner       struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
	} `json:"owner"`
	Tracks struct {
		Total int `json:"total"`
	} `json:"tracks"`
}

// toPlaylistRef normalizes a raw playlist. ownerID is the requesting
// user's Spotify ID, used to mark ownership.
func (p *rawPlaylist) toPlaylistRef(ownerID string) domain.PlaylistRef {
	return domain.PlaylistRef{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Image:       firstImage(p.Images),
		TrackCount:  p.Tracks.Total,
		Owner:       p.Owner.DisplayName,
		IsOwner:     ownerID != "" && p.Owner.ID == ownerID,
	}
}

// rawPlaylistTrack is one playlist item; the track can be null for
// removed or local-only entries.
type rawPlaylistTrack struct {
	Track *struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Artists []struct {
			Name string `json:"name"`
		} `json:"artists"`
		Album struct {
			Name string `json:"name"`
		} `json:"album"`
		PreviewURL string `json:"preview_url"`
	} `json:"track"`
}

// rawAudioFeatures mirrors an audio-features object; entries can be
// null for tracks Spotify has not analyzed.
type rawAudioFeatures struct {
	ID               string  `json:"id"`
	Danceability     float64 `json:"danceability"`
	Energy           float64 `json:"energy"`
	Valence          float64 `json:"valence"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
	Tempo            float64 `json:"tempo"`
}

func (f *rawAudioFeatures) toAudioFeatures() domain.AudioFeatures {
	return domain.AudioFeatures{
		ID:               f.ID,
		Danceability:     f.Danceability,
		Energy:           f.Energy,
		Valence:          f.Valence,
		Acousticness:     f.Acousticness,
		Instrumentalness: f.Instrumentalness,
		Tempo:            f.Tempo,
	}
}
