package analytics

import (
	"testing"
	"time"

	"github.com/evlampy/storeboard/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeCustomers_NewVsReturning(t *testing.T) {
	window := entity.TimeRange{From: day(2024, time.March, 1), To: day(2024, time.March, 31)}
	allOrders := []entity.Order{
		// customer 7 first qualified in January, returns in March
		order(1, day(2024, time.January, 5), entity.OrderStatusCompleted, 7, "50"),
		order(2, day(2024, time.March, 10), entity.OrderStatusCompleted, 7, "70"),
		// customer 8 first qualifies inside the window
		order(3, day(2024, time.March, 12), entity.OrderStatusProcessing, 8, "30"),
		// customer 9 had only a cancelled order before, so March is their first
		order(4, day(2024, time.February, 2), entity.OrderStatusCancelled, 9, "10"),
		order(5, day(2024, time.March, 15), entity.OrderStatusCompleted, 9, "25"),
		// guest order in the window
		order(6, day(2024, time.March, 20), entity.OrderStatusCompleted, 0, "15"),
	}

	cs, err := SummarizeCustomers(allOrders, nil, window)
	require.NoError(t, err)

	assert.Equal(t, 2, cs.NewCustomers, "customers 8 and 9 are new")
	assert.Equal(t, 1, cs.ReturningCustomers, "customer 7 returns")
	assert.Equal(t, 1, cs.GuestOrders)
}

func TestSummarizeCustomers_RetentionAndLifetimeValue(t *testing.T) {
	window := entity.TimeRange{From: day(2024, time.March, 1), To: day(2024, time.March, 31)}
	customers := []entity.Customer{
		{ID: 1, OrdersCount: 3, TotalSpent: amount("300")},
		{ID: 2, OrdersCount: 1, TotalSpent: amount("100")},
	}

	cs, err := SummarizeCustomers(nil, customers, window)
	require.NoError(t, err)

	assert.Equal(t, 2, cs.TotalCustomers)
	assert.InDelta(t, 50, cs.RetentionRate, 0.001)
	assert.Equal(t, "200", cs.AvgLifetimeValue.String())
}

func TestSummarizeCustomers_AttributionRevenue(t *testing.T) {
	window := entity.TimeRange{From: day(2024, time.March, 1), To: day(2024, time.March, 31)}
	o1 := order(1, day(2024, time.March, 5), entity.OrderStatusCompleted, 1, "100")
	o1.AttributionMeta = map[string]string{"gclid": "abc123"}
	o2 := order(2, day(2024, time.March, 6), entity.OrderStatusCompleted, 2, "40")

	cs, err := SummarizeCustomers([]entity.Order{o1, o2}, nil, window)
	require.NoError(t, err)

	require.Len(t, cs.Attribution, 2)
	assert.Equal(t, SourceGoogleAds, cs.Attribution[0].Source)
	assert.Equal(t, "100", cs.Attribution[0].Revenue.String())
	assert.Equal(t, SourceDirectOrganic, cs.Attribution[1].Source)
}

func TestSummarizeCustomers_InvalidWindow(t *testing.T) {
	window := entity.TimeRange{From: day(2024, time.March, 2), To: day(2024, time.March, 1)}
	_, err := SummarizeCustomers(nil, nil, window)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestResolveOrderSource(t *testing.T) {
	tests := []struct {
		name string
		meta map[string]string
		want string
	}{
		{"gclid wins over utm", map[string]string{"gclid": "x", "utm_medium": "email"}, SourceGoogleAds},
		{"fbclid", map[string]string{"fbclid": "x"}, SourceFacebookAds},
		{"paid google", map[string]string{"utm_medium": "cpc", "utm_source": "google"}, SourceGoogleAds},
		{"paid facebook", map[string]string{"utm_medium": "paid-social", "utm_source": "facebook"}, SourceFacebookAds},
		{"paid instagram", map[string]string{"utm_medium": "ppc", "utm_source": "instagram"}, SourceInstagramAds},
		{"paid bing", map[string]string{"utm_medium": "cpc", "utm_source": "bing"}, SourceBingAds},
		{"paid generic", map[string]string{"utm_medium": "cpc", "utm_source": "newsletter-x"}, SourcePaid},
		{"social", map[string]string{"utm_medium": "social"}, SourceSocial},
		{"email", map[string]string{"utm_medium": "email"}, SourceEmail},
		{"referral medium", map[string]string{"utm_medium": "referral"}, SourceReferral},
		{"organic type", map[string]string{"source_type": "organic"}, SourceOrganic},
		{"referral type", map[string]string{"source_type": "referral"}, SourceReferral},
		{"direct type", map[string]string{"source_type": "direct"}, SourceDirect},
		{"unclassified", map[string]string{"utm_medium": "banner"}, SourceDirectOrganic},
		{"empty", nil, SourceDirectOrganic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveOrderSource(tt.meta))
		})
	}
}
