package mailstats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"log/slog"

	"github.com/evlampy/storeboard/internal/analytics"
	"github.com/evlampy/storeboard/internal/entity"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"golang.org/x/sync/errgroup"
)

const (
	defaultHost = "https://api.sendgrid.com"

	// campaignLimit caps the per-campaign stats fan-out; the dashboard only
	// shows the most recent sends.
	campaignLimit = 20

	// fetchConcurrency bounds simultaneous stats requests to stay inside the
	// provider's rate limits.
	fetchConcurrency = 5
)

type Config struct {
	APIKey string `mapstructure:"sendgrid_api_key"`
	Host   string `mapstructure:"host"`
}

// Client fetches email campaign statistics from SendGrid's marketing API.
type Client struct {
	c *Config
}

func New(c *Config) (*Client, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("incomplete mailstats config: %+v", c)
	}
	if c.Host == "" {
		c.Host = defaultHost
	}
	return &Client{c: c}, nil
}

type rawSingleSend struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type rawSingleSendList struct {
	Result []rawSingleSend `json:"result"`
}

type rawSingleSendStats struct {
	Results []struct {
		ID    string `json:"id"`
		Stats struct {
			Delivered    int `json:"delivered"`
			UniqueOpens  int `json:"unique_opens"`
			UniqueClicks int `json:"unique_clicks"`
		} `json:"stats"`
	} `json:"results"`
}

func (c *Client) get(ctx context.Context, endpoint string, target any) error {
	req := sendgrid.GetRequest(c.c.APIKey, endpoint, c.c.Host)
	req.Method = rest.Get

	resp, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid request %s: %w", endpoint, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sendgrid request %s: status %d: %s", endpoint, resp.StatusCode, resp.Body)
	}
	if err := json.Unmarshal([]byte(resp.Body), target); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

// FetchCampaignStats lists recent single sends and fans out per-campaign
// stats requests, returning campaigns in listing order.
func (c *Client) FetchCampaignStats(ctx context.Context) ([]entity.CampaignStats, error) {
	var list rawSingleSendList
	if err := c.get(ctx, "/v3/marketing/singlesends", &list); err != nil {
		return nil, err
	}

	sends := list.Result
	if len(sends) > campaignLimit {
		sends = sends[:campaignLimit]
	}

	stats := make([]entity.CampaignStats, len(sends))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, send := range sends {
		i, send := i, send
		g.Go(func() error {
			cs, err := c.fetchOne(ctx, send)
			if err != nil {
				return err
			}
			stats[i] = cs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Default().InfoContext(ctx, "fetched campaign stats",
		slog.Int("campaigns", len(stats)),
	)
	return stats, nil
}

func (c *Client) fetchOne(ctx context.Context, send rawSingleSend) (entity.CampaignStats, error) {
	var raw rawSingleSendStats
	endpoint := fmt.Sprintf("/v3/marketing/stats/singlesends/%s", send.ID)
	if err := c.get(ctx, endpoint, &raw); err != nil {
		return entity.CampaignStats{}, err
	}

	cs := entity.CampaignStats{
		CampaignID: send.ID,
		Name:       send.Name,
	}
	for _, r := range raw.Results {
		cs.Delivered += r.Stats.Delivered
		cs.Opens += r.Stats.UniqueOpens
		cs.Clicks += r.Stats.UniqueClicks
	}
	if cs.Delivered > 0 {
		cs.OpenRate = analytics.SafeFloat(float64(cs.Opens) / float64(cs.Delivered) * 100)
		cs.ClickRate = analytics.SafeFloat(float64(cs.Clicks) / float64(cs.Delivered) * 100)
	}
	return cs, nil
}
