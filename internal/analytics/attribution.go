package analytics

import "strings"

// Source labels produced by attribution resolution.
const (
	SourceGoogleAds     = "Google Ads"
	SourceFacebookAds   = "Facebook Ads"
	SourceInstagramAds  = "Instagram Ads"
	SourceBingAds       = "Bing Ads"
	SourcePaid          = "Paid Advertising"
	SourceSocial        = "Social Media"
	SourceEmail         = "Email"
	SourceReferral      = "Referral"
	SourceOrganic       = "Organic Search"
	SourceDirect        = "Direct"
	SourceDirectOrganic = "Direct / Organic"
)

// attributionRule maps an order's attribution metadata onto a source label.
// Rules are evaluated in fixed priority order, first match wins, so the
// classification policy is data rather than nested conditionals.
type attributionRule struct {
	match func(meta metaReader) bool
	label func(meta metaReader) string
}

type metaReader map[string]string

func (m metaReader) get(key string) string {
	return strings.ToLower(strings.TrimSpace(m[key]))
}

func (m metaReader) has(key string) bool {
	return strings.TrimSpace(m[key]) != ""
}

var attributionRules = []attributionRule{
	// Explicit click id markers win over UTM tags.
	{
		match: func(m metaReader) bool { return m.has("gclid") },
		label: func(metaReader) string { return SourceGoogleAds },
	},
	{
		match: func(m metaReader) bool { return m.has("fbclid") },
		label: func(metaReader) string { return SourceFacebookAds },
	},
	{
		match: func(m metaReader) bool { return containsAny(m.get("utm_medium"), "cpc", "paid", "ppc") },
		label: func(m metaReader) string {
			src := m.get("utm_source")
			switch {
			case strings.Contains(src, "google"):
				return SourceGoogleAds
			case strings.Contains(src, "facebook"):
				return SourceFacebookAds
			case strings.Contains(src, "instagram"):
				return SourceInstagramAds
			case strings.Contains(src, "bing"):
				return SourceBingAds
			default:
				return SourcePaid
			}
		},
	},
	{
		match: func(m metaReader) bool { return strings.Contains(m.get("utm_medium"), "social") },
		label: func(metaReader) string { return SourceSocial },
	},
	{
		match: func(m metaReader) bool { return strings.Contains(m.get("utm_medium"), "email") },
		label: func(metaReader) string { return SourceEmail },
	},
	{
		match: func(m metaReader) bool { return strings.Contains(m.get("utm_medium"), "referral") },
		label: func(metaReader) string { return SourceReferral },
	},
	{
		match: func(m metaReader) bool { return m.get("source_type") == "organic" },
		label: func(metaReader) string { return SourceOrganic },
	},
	{
		match: func(m metaReader) bool { return m.get("source_type") == "referral" },
		label: func(metaReader) string { return SourceReferral },
	},
	{
		match: func(m metaReader) bool { return m.get("source_type") == "direct" },
		label: func(metaReader) string { return SourceDirect },
	},
}

// ResolveOrderSource classifies an order's acquisition source from its
// attribution metadata. Unclassifiable orders fall back to "Direct / Organic".
func ResolveOrderSource(meta map[string]string) string {
	m := metaReader(meta)
	for _, rule := range attributionRules {
		if rule.match(m) {
			return rule.label(m)
		}
	}
	return SourceDirectOrganic
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
