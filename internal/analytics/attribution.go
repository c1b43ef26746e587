package analytics

import (
	"net/url"
	"sort"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/guckert-dev/shopify-mcp/internal/entity"
)

// SourceRule matches a referrer against one traffic source. Hosts are exact
// hostnames, labels match any dot-separated hostname label (covering both
// subdomains and country TLDs, e.g. m.facebook.com and google.co.uk), and
// keywords drive the substring fallback for unparseable referrers.
type SourceRule struct {
	Source   entity.TrafficSource
	Hosts    []string
	Labels   []string
	Keywords []string
}

// sourceRules is evaluated strictly in order; the first match wins. The
// ordering is part of the attribution contract: it decides ambiguous strings
// like "email-marketing.co", so rules must not be reordered.
var sourceRules = []SourceRule{
	{Source: entity.SourceGoogle, Labels: []string{"google"}, Keywords: []string{"google"}},
	{Source: entity.SourceFacebook, Labels: []string{"facebook", "fb"}, Keywords: []string{"facebook", "fb."}},
	{Source: entity.SourceInstagram, Labels: []string{"instagram"}, Keywords: []string{"instagram"}},
	{Source: entity.SourceTwitter, Hosts: []string{"t.co", "x.com"}, Labels: []string{"twitter"}, Keywords: []string{"twitter", "t.co"}},
	{Source: entity.SourceTikTok, Labels: []string{"tiktok"}, Keywords: []string{"tiktok"}},
	{Source: entity.SourceEmail, Labels: []string{"klaviyo", "mailchimp", "omnisend", "constantcontact", "sendgrid"}, Keywords: []string{"klaviyo", "mailchimp", "omnisend", "email"}},
	{Source: entity.SourcePinterest, Labels: []string{"pinterest"}, Keywords: []string{"pinterest"}},
}

// Attributor classifies orders into traffic sources. The store's own domain
// is passed in explicitly so self-referrals never count as referral traffic.
type Attributor struct {
	storeDomain string
	rules       []SourceRule
}

func NewAttributor(storeDomain string) *Attributor {
	return &Attributor{
		storeDomain: strings.ToLower(strings.TrimSpace(storeDomain)),
		rules:       sourceRules,
	}
}

// Classify assigns exactly one traffic source to the order. The referrer URL
// is preferred, the landing page URL is the fallback; an empty referrer is
// direct traffic. Classification is a pure function of the two URLs.
func (a *Attributor) Classify(o entity.OrderRecord) entity.TrafficSource {
	ref := strings.TrimSpace(o.ReferrerURL)
	if ref == "" {
		ref = strings.TrimSpace(o.LandingPageURL)
	}
	if ref == "" {
		return entity.SourceDirect
	}

	lower := strings.ToLower(ref)
	if host := hostnameOf(lower); host != "" {
		for _, r := range a.rules {
			if r.matchHost(host) {
				return r.Source
			}
		}
		if a.isOwnDomain(host) {
			return entity.SourceDirect
		}
		return entity.SourceReferral
	}

	// Unparseable referrer: substring containment in the same rule order.
	for _, r := range a.rules {
		if r.matchKeyword(lower) {
			return r.Source
		}
	}
	if a.storeDomain != "" && strings.Contains(lower, a.storeDomain) {
		return entity.SourceDirect
	}
	return entity.SourceReferral
}

// Breakdown classifies every order and aggregates per-source counts, ordered
// by descending order count (ties broken by source name for determinism).
func (a *Attributor) Breakdown(orders []entity.OrderRecord) []entity.TrafficSourceStat {
	counts := make(map[entity.TrafficSource]int)
	for _, o := range orders {
		counts[a.Classify(o)]++
	}
	stats := make([]entity.TrafficSourceStat, 0, len(counts))
	for src, n := range counts {
		share := 0.0
		if len(orders) > 0 {
			share = float64(n) / float64(len(orders)) * 100
		}
		stats = append(stats, entity.TrafficSourceStat{Source: src, Orders: n, SharePct: share})
	}
	sortTrafficStats(stats)
	return stats
}

func sortTrafficStats(stats []entity.TrafficSourceStat) {
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Orders != stats[j].Orders {
			return stats[i].Orders > stats[j].Orders
		}
		return stats[i].Source < stats[j].Source
	})
}

func (r SourceRule) matchHost(host string) bool {
	for _, h := range r.Hosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	labels := strings.Split(host, ".")
	for _, l := range r.Labels {
		for i, label := range labels {
			// the final label is a TLD, not a brand
			if label == l && i < len(labels)-1 {
				return true
			}
		}
	}
	return false
}

func (r SourceRule) matchKeyword(s string) bool {
	for _, k := range r.Keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func (a *Attributor) isOwnDomain(host string) bool {
	if a.storeDomain == "" {
		return false
	}
	return host == a.storeDomain || strings.HasSuffix(host, "."+a.storeDomain)
}

// hostnameOf extracts a lowercase hostname. A referrer without a scheme is
// not a parseable URL; it falls through to the substring fallback.
func hostnameOf(ref string) string {
	if !strings.Contains(ref, "://") || !govalidator.IsRequestURL(ref) {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
