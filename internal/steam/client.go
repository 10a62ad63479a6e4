package steam

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/crateloop/steamshelf/internal/boot"
	"github.com/crateloop/steamshelf/internal/model"
)

// MaxBatchSize is the authority's documented per-call identifier ceiling.
const MaxBatchSize = 100

const vanityMatch = 1

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func New(config *boot.Config) *Client {
	return &Client{
		apiKey:  config.Steam.APIKey,
		baseURL: strings.TrimSuffix(config.Steam.BaseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// GetPlayerSummaries fetches profile entries for up to MaxBatchSize identifiers.
func (c *Client) GetPlayerSummaries(ctx context.Context, ids []model.SteamID) ([]PlayerSummary, error) {
	if len(ids) > MaxBatchSize {
		return nil, fmt.Errorf("requested %d summaries, ceiling is %d", len(ids), MaxBatchSize)
	}

	query := url.Values{}
	query.Set("steamids", joinIDs(ids))

	result := summariesResponse{}
	if err := c.get(ctx, "/ISteamUser/GetPlayerSummaries/v2/", query, &result); err != nil {
		return nil, fmt.Errorf("fetching player summaries: %w", err)
	}
	return result.Response.Players, nil
}

// GetPlayerBans fetches ban entries for up to MaxBatchSize identifiers.
func (c *Client) GetPlayerBans(ctx context.Context, ids []model.SteamID) ([]PlayerBans, error) {
	if len(ids) > MaxBatchSize {
		return nil, fmt.Errorf("requested %d ban records, ceiling is %d", len(ids), MaxBatchSize)
	}

	query := url.Values{}
	query.Set("steamids", joinIDs(ids))

	result := bansResponse{}
	if err := c.get(ctx, "/ISteamUser/GetPlayerBans/v1/", query, &result); err != nil {
		return nil, fmt.Errorf("fetching player bans: %w", err)
	}
	return result.Players, nil
}

// ResolveVanity maps a human-chosen alias to a canonical identifier. The second
// return value reports whether the alias matched anything.
func (c *Client) ResolveVanity(ctx context.Context, token string) (model.SteamID, bool, error) {
	query := url.Values{}
	query.Set("vanityurl", token)

	result := vanityResponse{}
	if err := c.get(ctx, "/ISteamUser/ResolveVanityURL/v1/", query, &result); err != nil {
		return 0, false, fmt.Errorf("resolving vanity alias: %w", err)
	}
	if result.Response.Success != vanityMatch {
		return 0, false, nil
	}

	id, err := model.ParseSteamID(result.Response.SteamID)
	if err != nil {
		return 0, false, fmt.Errorf("parsing resolved identifier %q: %w", result.Response.SteamID, err)
	}
	return id, true, nil
}

// Exists probes a single identifier via a one-entry summaries call.
func (c *Client) Exists(ctx context.Context, id model.SteamID) (bool, error) {
	players, err := c.GetPlayerSummaries(ctx, []model.SteamID{id})
	if err != nil {
		return false, fmt.Errorf("probing identifier %s: %w", id, err)
	}
	return len(players) > 0, nil
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, result interface{}) error {
	query.Set("key", c.apiKey)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	response, err := c.http.Do(request)
	if err != nil {
		return fmt.Errorf("calling %s: %w", endpoint, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("calling %s: unexpected status %d", endpoint, response.StatusCode)
	}

	if err := json.NewDecoder(response.Body).Decode(result); err != nil {
		return fmt.Errorf("decoding %s response: %w", endpoint, err)
	}
	return nil
}

func joinIDs(ids []model.SteamID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ",")
}
