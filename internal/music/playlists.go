package music

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/foodnjam/foodnjam-server/internal/domain"
)

// GetCurrentUser fetches the profile of the token's owner.
func (c *Client) GetCurrentUser(ctx context.Context, accessToken string) (*User, error) {
	body, err := c.doRequest(ctx, accessToken, "/me", nil)
	if err != nil {
		return nil, wrapError("getCurrentUser", "", err)
	}

	var raw rawUser
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, wrapError("getCurrentUser", "", fmt.Errorf("parse response: %w", err))
	}

	return &User{
		ID:          raw.ID,
		DisplayName: raw.DisplayName,
		Email:       raw.Email,
		Image:       firstImage(raw.Images),
	}, nil
}

// GetUserPlaylists lists the current user's playlists, one page of up
// to 50.
func (c *Client) GetUserPlaylists(ctx context.Context, accessToken string) ([]domain.PlaylistRef, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(pageLimit))

	body, err := c.doRequest(ctx, accessToken, "/me/playlists", q)
	if err != nil {
		return nil, wrapError("getUserPlaylists", "", err)
	}

	var resp struct {
		Items []rawPlaylist `json:"items"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("getUserPlaylists", "", fmt.Errorf("parse response: %w", err))
	}

	// Ownership is marked against the token's own profile.
	user, err := c.GetCurrentUser(ctx, accessToken)
	if err != nil {
		return nil, wrapError("getUserPlaylists", "", err)
	}

	playlists := make([]domain.PlaylistRef, 0, len(resp.Items))
	for i := range resp.Items {
		playlists = append(playlists, resp.Items[i].toPlaylistRef(user.ID))
	}
	return playlists, nil
}

// GetPlaylist fetches one playlist's metadata.
func (c *Client) GetPlaylist(ctx context.Context, accessToken, playlistID string) (*domain.PlaylistRef, error) {
	body, err := c.doRequest(ctx, accessToken, "/playlists/"+playlistID, nil)
	if err != nil {
		return nil, wrapError("getPlaylist", playlistID, err)
	}

	var raw rawPlaylist
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, wrapError("getPlaylist", playlistID, fmt.Errorf("parse response: %w", err))
	}

	playlist := raw.toPlaylistRef("")
	return &playlist, nil
}

// GetPlaylistTracks lists a playlist's tracks, one page of up to 50.
// Removed and local-only entries are skipped.
func (c *Client) GetPlaylistTracks(ctx context.Context, accessToken, playlistID string) ([]domain.TrackRef, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(pageLimit))

	body, err := c.doRequest(ctx, accessToken, "/playlists/"+playlistID+"/tracks", q)
	if err != nil {
		return nil, wrapError("getTracks", playlistID, err)
	}

	var resp struct {
		Items []rawPlaylistTrack `json:"items"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("getTracks", playlistID, fmt.Errorf("parse response: %w", err))
	}

	tracks := make([]domain.TrackRef, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Track == nil || item.Track.ID == "" {
			continue
		}
		track := domain.TrackRef{
			ID:      item.Track.ID,
			Name:    item.Track.Name,
			Album:   item.Track.Album.Name,
			Preview: item.Track.PreviewURL,
		}
		if len(item.Track.Artists) > 0 {
			track.Artist = item.Track.Artists[0].Name
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}

// GetAudioFeatures fetches audio features for the given track IDs,
// chunking requests at the API's 100-id limit. Unanalyzed tracks
// (null entries) are skipped.
func (c *Client) GetAudioFeatures(ctx context.Context, accessToken string, trackIDs []string) ([]domain.AudioFeatures, error) {
	features := make([]domain.AudioFeatures, 0, len(trackIDs))

	for start := 0; start < len(trackIDs); start += maxFeatureIDs {
		end := min(start+maxFeatureIDs, len(trackIDs))

		q := url.Values{}
		q.Set("ids", strings.Join(trackIDs[start:end], ","))

		body, err := c.doRequest(ctx, accessToken, "/audio-features", q)
		if err != nil {
			return nil, wrapError("audioFeatures", "", err)
		}

		var resp struct {
			AudioFeatures []*rawAudioFeatures `json:"audio_features"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, wrapError("audioFeatures", "", fmt.Errorf("parse response: %w", err))
		}

		for _, raw := range resp.AudioFeatures {
			if raw == nil {
				continue
			}
			features = append(features, raw.toAudioFeatures())
		}
	}

	return features, nil
}

// SearchPlaylists searches the catalog for playlists matching the query.
func (c *Client) SearchPlaylists(ctx context.Context, accessToken, query string) ([]domain.PlaylistRef, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("type", "playlist")
	q.Set("limit", strconv.Itoa(pageLimit))

	body, err := c.doRequest(ctx, accessToken, "/search", q)
	if err != nil {
		return nil, wrapError("searchPlaylists", query, err)
	}

	var resp struct {
		Playlists struct {
			Items []rawPlaylist `json:"items"`
		} `json:"playlists"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, wrapError("searchPlaylists", query, fmt.Errorf("parse response: %w", err))
	}

	playlists := make([]domain.PlaylistRef, 0, len(resp.Playlists.Items))
	for i := range resp.Playlists.Items {
		playlists = append(playlists, resp.Playlists.Items[i].toPlaylistRef(""))
	}
	return playlists, nil
}
