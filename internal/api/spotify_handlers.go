package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/foodnjam/foodnjam-server/internal/domain"
)

func (s *Server) registerSpotifyRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "linkSpotify",
		Method:      http.MethodPost,
		Path:        "/api/v1/spotify/link",
		Summary:     "Link Spotify",
		Description: "Exchanges a PKCE authorization code and links the Spotify account",
		Tags:        []string{"Spotify"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleLinkSpotify)

	huma.Register(s.api, huma.Operation{
		OperationID: "unlinkSpotify",
		Method:      http.MethodDelete,
		Path:        "/api/v1/spotify/link",
		Summary:     "Unlink Spotify",
		Description: "Removes the Spotify link and stored tokens",
		Tags:        []string{"Spotify"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUnlinkSpotify)

	huma.Register(s.api, huma.Operation{
		OperationID: "listPlaylists",
		Method:      http.MethodGet,
		Path:        "/api/v1/playlists",
		Summary:     "List playlists",
		Description: "Returns the current user's Spotify playlists",
		Tags:        []string{"Playlists"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListPlaylists)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchPlaylists",
		Method:      http.MethodGet,
		Path:        "/api/v1/playlists/search",
		Summary:     "Search playlists",
		Description: "Searches the Spotify catalog for playlists",
		Tags:        []string{"Playlists"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSearchPlaylists)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPlaylist",
		Method:      http.MethodGet,
		Path:        "/api/v1/playlists/{id}",
		Summary:     "Get playlist",
		Description: "Returns a playlist by ID",
		Tags:        []string{"Playlists"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetPlaylist)
}

// === DTOs ===

// LinkSpotifyRequest is the request body for linking a Spotify account.
type LinkSpotifyRequest struct {
	Code         string `json:"code" doc:"Authorization code from the PKCE flow"`
	CodeVerifier string `json:"code_verifier" doc:"PKCE code verifier"`
}

// LinkSpotifyInput wraps the link request for Huma.
type LinkSpotifyInput struct {
	Authorization string `header:"Authorization"`
	Body          LinkSpotifyRequest
}

// UnlinkSpotifyInput contains parameters for unlinking Spotify.
type UnlinkSpotifyInput struct {
	Authorization string `header:"Authorization"`
}

// ListPlaylistsInput contains parameters for listing playlists.
type ListPlaylistsInput struct {
	Authorization string `header:"Authorization"`
}

// PlaylistsResponse contains a list of playlists.
type PlaylistsResponse struct {
	Playlists []domain.PlaylistRef `json:"playlists" doc:"Playlists"`
}

// PlaylistsOutput wraps the playlists response for Huma.
type PlaylistsOutput struct {
	Body PlaylistsResponse
}

// SearchPlaylistsInput contains parameters for searching playlists.
type SearchPlaylistsInput struct {
	Authorization string `header:"Authorization"`
	Query         string `query:"q" minLength:"1" doc:"Search query"`
}

// GetPlaylistInput contains parameters for fetching one playlist.
type GetPlaylistInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Playlist ID"`
}

// PlaylistOutput wraps a single playlist for Huma.
type PlaylistOutput struct {
	Body domain.PlaylistRef
}

// === Handlers ===

func (s *Server) handleLinkSpotify(ctx context.Context, input *LinkSpotifyInput) (*UserOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	user, err := s.services.Spotify.Link(ctx, userID, input.Body.Code, input.Body.CodeVerifier)
	if err != nil {
		return nil, err
	}

	return &UserOutput{Body: toUserResponse(user)}, nil
}

func (s *Server) handleUnlinkSpotify(ctx context.Context, input *UnlinkSpotifyInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Spotify.Unlink(ctx, userID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "spotify unlinked"}}, nil
}

func (s *Server) handleListPlaylists(ctx context.Context, input *ListPlaylistsInput) (*PlaylistsOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	playlists, err := s.services.Spotify.Playlists(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &PlaylistsOutput{Body: PlaylistsResponse{Playlists: playlists}}, nil
}

func (s *Server) handleSearchPlaylists(ctx context.Context, input *SearchPlaylistsInput) (*PlaylistsOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	playlists, err := s.services.Spotify.SearchPlaylists(ctx, userID, input.Query)
	if err != nil {
		return nil, err
	}

	return &PlaylistsOutput{Body: PlaylistsResponse{Playlists: playlists}}, nil
}

func (s *Server) handleGetPlaylist(ctx context.Context, input *GetPlaylistInput) (*PlaylistOutput, error) {
	userID, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	playlist, err := s.services.Spotify.GetPlaylist(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	return &PlaylistOutput{Body: *playlist}, nil
}
