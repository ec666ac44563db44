// Package spotify wraps the Spotify Web API lookup used by the remote
// resolution step.
package spotify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	spotifyapi "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/config"
	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/logging"
	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/resolve"
	"github.com/AbdulAahad2/DeadasDiscoBPM/internal/services"
)

const stepName = "remote_lookup"

const credentialsMessage = "Spotify API credentials not found. Set SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET environment variables. Visit https://developer.spotify.com/dashboard to set up credentials."

// Client resolves song names to tempos through the Spotify Web API using the
// client credentials flow.
type Client struct {
	api    *spotifyapi.Client
	logger *slog.Logger
}

type settings struct {
	httpClient *http.Client
	tokenURL   string
	apiURL     string
}

// Option customizes the Spotify client.
type Option func(*settings)

// WithHTTPClient overrides the HTTP client used for token and API traffic.
func WithHTTPClient(client *http.Client) Option {
	return func(s *settings) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithTokenURL overrides the OAuth token endpoint (useful for tests/mocks).
func WithTokenURL(tokenURL string) Option {
	return func(s *settings) {
		tokenURL = strings.TrimSpace(tokenURL)
		if tokenURL != "" {
			s.tokenURL = tokenURL
		}
	}
}

// WithAPIURL overrides the Web API base URL (useful for tests/mocks). The
// value must keep the trailing slash the upstream client expects.
func WithAPIURL(apiURL string) Option {
	return func(s *settings) {
		apiURL = strings.TrimSpace(apiURL)
		if apiURL != "" {
			s.apiURL = apiURL
		}
	}
}

// NewClient constructs a Spotify Web API client from configured credentials.
// Missing credentials come back as a configuration error; callers disable the
// remote step and keep the rest of the pipeline available.
func NewClient(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Client, error) {
	clientID, clientSecret, ok := cfg.SpotifyCredentials()
	if !ok {
		err := services.Wrap(services.ErrConfiguration, stepName, "credentials", "client id and secret required", nil)
		return nil, services.WithUserMessage(err, credentialsMessage)
	}

	st := settings{tokenURL: spotifyauth.TokenURL}
	for _, opt := range opts {
		opt(&st)
	}

	auth := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     st.tokenURL,
	}
	authCtx := context.Background()
	if st.httpClient != nil {
		authCtx = context.WithValue(authCtx, oauth2.HTTPClient, st.httpClient)
	}

	var apiOpts []spotifyapi.ClientOption
	if st.apiURL != "" {
		apiOpts = append(apiOpts, spotifyapi.WithBaseURL(st.apiURL))
	}

	return &Client{
		api:    spotifyapi.New(auth.Client(authCtx), apiOpts...),
		logger: logging.NewComponentLogger(logger, "spotify"),
	}, nil
}

// Lookup searches for songName and reports the top match with its tempo. The
// first search result is authoritative; alternates are never consulted.
func (c *Client) Lookup(ctx context.Context, songName string) (resolve.TrackMatch, error) {
	songName = strings.TrimSpace(songName)
	if songName == "" {
		return resolve.TrackMatch{}, services.Wrap(services.ErrLookup, stepName, "search", "song name required", nil)
	}

	results, err := c.api.Search(ctx, songName, spotifyapi.SearchTypeTrack, spotifyapi.Limit(1))
	if err != nil {
		return resolve.TrackMatch{}, c.failure("search", err)
	}
	if results.Tracks == nil || len(results.Tracks.Tracks) == 0 {
		wrapped := services.Wrap(services.ErrNoTrackFound, stepName, "search", fmt.Sprintf("no results for %q", songName), nil)
		return resolve.TrackMatch{}, services.WithUserMessage(wrapped, fmt.Sprintf("No tracks found for '%s' on Spotify.", songName))
	}

	track := results.Tracks.Tracks[0]
	var artist string
	if len(track.Artists) > 0 {
		artist = track.Artists[0].Name
	}
	logging.WithContext(ctx, c.logger).Debug("track matched",
		logging.String("track", track.Name),
		logging.String("artist", artist),
		logging.String("track_id", string(track.ID)))

	features, err := c.api.GetAudioFeatures(ctx, track.ID)
	if err != nil {
		return resolve.TrackMatch{}, c.failure("audio_features", err)
	}
	if len(features) == 0 || features[0] == nil || features[0].Tempo <= 0 {
		wrapped := services.Wrap(services.ErrNoTempoData, stepName, "audio_features", fmt.Sprintf("no tempo for track %s", track.ID), nil)
		return resolve.TrackMatch{}, services.WithUserMessage(wrapped, "No BPM data available on Spotify for this track.")
	}

	return resolve.TrackMatch{
		Title:  track.Name,
		Artist: artist,
		BPM:    float64(features[0].Tempo),
	}, nil
}

// failure classifies an upstream API error. Authorization and rate-limit
// rejections share one remediation path because the Web API reports both as
// access denials.
func (c *Client) failure(operation string, err error) error {
	var apiErr spotifyapi.Error
	if errors.As(err, &apiErr) && (apiErr.Status == http.StatusForbidden || apiErr.Status == http.StatusTooManyRequests) {
		wrapped := services.Wrap(services.ErrForbidden, stepName, operation, "access denied", err)
		return services.WithUserMessage(wrapped, remediationMessage(apiErr.Status))
	}

	marker := services.ErrLookup
	if errors.Is(err, context.DeadlineExceeded) {
		marker = services.ErrTimeout
	}
	wrapped := services.Wrap(marker, stepName, operation, "", err)
	return services.WithUserMessage(wrapped, fmt.Sprintf("Spotify API error: %v", err))
}

func remediationMessage(status int) string {
	return fmt.Sprintf("%d %s: Check your Spotify API credentials or try again later due to rate limits. Visit https://developer.spotify.com/dashboard.", status, http.StatusText(status))
}
