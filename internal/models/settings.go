package models

import "time"

// CampaignSettings carries everything one generation run needs besides the
// keyword and SKU lists. Built once per call and treated as immutable.
type CampaignSettings struct {
	DailyBudget float64               `json:"daily_budget"`
	StartDate   time.Time             `json:"start_date"`
	MatchTypes  []MatchType           `json:"match_types"`
	Bids        map[MatchType]float64 `json:"bids"`

	// KeywordBids overrides the match-type default bid for exact keyword
	// texts. Nil when no overrides are loaded.
	KeywordBids map[string]float64 `json:"keyword_bids,omitempty"`

	// BidAdjustment is a percentage string such as "50%". Only meaningful
	// together with Placement.
	BidAdjustment string `json:"bid_adjustment,omitempty"`
	Placement     string `json:"placement,omitempty"`

	CampaignNameTemplate string `json:"campaign_name_template"`
	AdGroupNameTemplate  string `json:"ad_group_name_template"`

	// Group sizes of 0 mean one campaign unit per keyword/SKU.
	KeywordGroupSize int `json:"keyword_group_size,omitempty"`
	SKUGroupSize     int `json:"sku_group_size,omitempty"`
}

const (
	DefaultCampaignNameTemplate = "SP_[SKU]_match_type"
	DefaultAdGroupNameTemplate  = "AG_[SKU]_match_type"
)
