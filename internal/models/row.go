package models

// Entity tags a bulk-sheet row with its Amazon record type.
type Entity string

const (
	EntityCampaign          Entity = "Campaign"
	EntityAdGroup           Entity = "Ad Group"
	EntityBiddingAdjustment Entity = "Bidding Adjustment"
	EntityProductAd         Entity = "Product Ad"
	EntityKeyword           Entity = "Keyword"
)

// MatchType is a keyword targeting mode.
type MatchType string

const (
	MatchExact  MatchType = "exact"
	MatchPhrase MatchType = "phrase"
	MatchBroad  MatchType = "broad"
)

// AllMatchTypes lists the supported match types in canonical order.
var AllMatchTypes = []MatchType{MatchExact, MatchPhrase, MatchBroad}

func (m MatchType) Valid() bool {
	switch m {
	case MatchExact, MatchPhrase, MatchBroad:
		return true
	}
	return false
}

// Constants fixed by the Sponsored Products bulk-upload format.
const (
	ProductSponsored     = "Sponsored Products"
	OperationCreate      = "Create"
	TargetingManual      = "MANUAL"
	BiddingStrategyDown  = "Dynamic bids - down only"
	StateEnabled         = "enabled"
	PlacementTopOfSearch = "top-of-search"
	StartDateLayout      = "20060102"
)

// Row is one record of the output table. The set of variants is closed:
// Campaign, AdGroup, BiddingAdjustment, ProductAd and Keyword rows share a
// unit ID and populate only the columns their entity uses.
type Row interface {
	Entity() Entity
	UnitID() string
}

// CampaignRow opens a campaign unit.
type CampaignRow struct {
	CampaignID   string
	CampaignName string
	StartDate    string // YYYYMMDD
	DailyBudget  float64
}

func (CampaignRow) Entity() Entity   { return EntityCampaign }
func (r CampaignRow) UnitID() string { return r.CampaignID }

// AdGroupRow is the single ad group of its campaign unit.
type AdGroupRow struct {
	CampaignID  string
	AdGroupName string
	DefaultBid  float64
}

func (AdGroupRow) Entity() Entity   { return EntityAdGroup }
func (r AdGroupRow) UnitID() string { return r.CampaignID }

// BiddingAdjustmentRow carries a placement bid modifier. Emitted only when
// both a placement and an adjustment percentage are configured.
type BiddingAdjustmentRow struct {
	CampaignID string
	Placement  string
	Percentage string
}

func (BiddingAdjustmentRow) Entity() Entity   { return EntityBiddingAdjustment }
func (r BiddingAdjustmentRow) UnitID() string { return r.CampaignID }

// ProductAdRow advertises one SKU inside its unit.
type ProductAdRow struct {
	CampaignID string
	SKU        string
}

func (ProductAdRow) Entity() Entity   { return EntityProductAd }
func (r ProductAdRow) UnitID() string { return r.CampaignID }

// KeywordRow targets one keyword inside its unit.
type KeywordRow struct {
	CampaignID  string
	KeywordText string
	MatchType   MatchType
	Bid         float64
}

func (KeywordRow) Entity() Entity   { return EntityKeyword }
func (r KeywordRow) UnitID() string { return r.CampaignID }
