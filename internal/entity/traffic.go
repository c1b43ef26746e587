package entity

// TrafficSource is the closed set of buckets an order's referrer can be
// attributed to. Exactly one source is assigned per order.
type TrafficSource string

const (
	SourceDirect    TrafficSource = "direct"
	SourceGoogle    TrafficSource = "google"
	SourceFacebook  TrafficSource = "facebook"
	SourceInstagram TrafficSource = "instagram"
	SourceTwitter   TrafficSource = "twitter"
	SourceTikTok    TrafficSource = "tiktok"
	SourceEmail     TrafficSource = "email"
	SourcePinterest TrafficSource = "pinterest"
	SourceReferral  TrafficSource = "referral"
)

// TrafficSourceStat aggregates the orders attributed to one source.
type TrafficSourceStat struct {
	Source   TrafficSource `json:"source"`
	Orders   int           `json:"orders"`
	SharePct float64       `json:"share_pct"`
}
