package mailstats

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	cli, err := New(&Config{APIKey: "fake_api_key", Host: server.URL})
	require.NoError(t, err)
	return cli
}

func statsBody(delivered, opens, clicks int) string {
	return fmt.Sprintf(`{"results":[{"id":"x","stats":{"delivered":%d,"unique_opens":%d,"unique_clicks":%d}}]}`,
		delivered, opens, clicks)
}

func TestFetchCampaignStats(t *testing.T) {
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer fake_api_key", r.Header.Get("Authorization"))
		switch {
		case strings.HasSuffix(r.URL.Path, "/marketing/singlesends"):
			fmt.Fprint(w, `{"result":[
				{"id":"c1","name":"March newsletter"},
				{"id":"c2","name":"Spring sale"}
			]}`)
		case strings.Contains(r.URL.Path, "/stats/singlesends/c1"):
			fmt.Fprint(w, statsBody(200, 80, 20))
		case strings.Contains(r.URL.Path, "/stats/singlesends/c2"):
			fmt.Fprint(w, statsBody(0, 0, 0))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	stats, err := cli.FetchCampaignStats(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, "c1", stats[0].CampaignID)
	assert.Equal(t, "March newsletter", stats[0].Name)
	assert.Equal(t, 200, stats[0].Delivered)
	assert.InDelta(t, 40.0, stats[0].OpenRate, 1e-9)
	assert.InDelta(t, 10.0, stats[0].ClickRate, 1e-9)

	// zero deliveries must not divide by zero
	assert.Equal(t, "c2", stats[1].CampaignID)
	assert.Zero(t, stats[1].OpenRate)
	assert.Zero(t, stats[1].ClickRate)
}

func TestFetchCampaignStats_CapsCampaigns(t *testing.T) {
	var statCalls atomic.Int32
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/marketing/singlesends") {
			ids := make([]string, 0, 30)
			for i := 0; i < 30; i++ {
				ids = append(ids, fmt.Sprintf(`{"id":"c%d","name":"n%d"}`, i, i))
			}
			fmt.Fprintf(w, `{"result":[%s]}`, strings.Join(ids, ","))
			return
		}
		statCalls.Add(1)
		fmt.Fprint(w, statsBody(10, 1, 1))
	})

	stats, err := cli.FetchCampaignStats(context.Background())
	require.NoError(t, err)
	assert.Len(t, stats, campaignLimit)
	assert.Equal(t, int32(campaignLimit), statCalls.Load())
}

func TestFetchCampaignStats_ErrorStatus(t *testing.T) {
	cli := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := cli.FetchCampaignStats(context.Background())
	assert.Error(t, err)
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(&Config{})
	assert.Error(t, err)
}
