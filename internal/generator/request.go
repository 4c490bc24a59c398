package generator

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"bulkgen/internal/models"
)

// RequestDateLayout is the start-date format the form submits.
const RequestDateLayout = "2006-01-02"

// SettingsFromRequest converts a raw generation request into typed campaign
// settings. Numeric fields that fail to parse or sit below their minimum
// come back as a Check so the caller can re-prompt; a malformed start date
// is a hard error because the date picker cannot produce one.
func SettingsFromRequest(req models.GenerateRequest) (models.CampaignSettings, *Check, error) {
	var s models.CampaignSettings

	startDate, err := time.Parse(RequestDateLayout, req.StartDate)
	if err != nil {
		return s, nil, fmt.Errorf("failed to parse start_date %q: %w", req.StartDate, err)
	}

	if c := CheckMatchTypes(req.MatchTypes); c != nil {
		return s, c, nil
	}
	if c := CheckNumericInput(req.DailyBudget, "Daily budget", MinDailyBudget); c != nil {
		return s, c, nil
	}
	budget, _ := strconv.ParseFloat(strings.TrimSpace(req.DailyBudget), 64)

	matchTypes := make([]models.MatchType, len(req.MatchTypes))
	bids := make(map[models.MatchType]float64, len(req.MatchTypes))
	for i, raw := range req.MatchTypes {
		mt := models.MatchType(strings.ToLower(raw))
		matchTypes[i] = mt

		rawBid, ok := req.Bids[string(mt)]
		if !ok {
			rawBid = req.Bids[raw]
		}
		field := fmt.Sprintf("Bid for %s", mt)
		if c := CheckNumericInput(rawBid, field, MinBidAmount); c != nil {
			return s, c, nil
		}
		bid, _ := strconv.ParseFloat(strings.TrimSpace(rawBid), 64)
		bids[mt] = bid
	}

	campaignTemplate := req.CampaignNameTemplate
	if campaignTemplate == "" {
		campaignTemplate = models.DefaultCampaignNameTemplate
	}
	adGroupTemplate := req.AdGroupNameTemplate
	if adGroupTemplate == "" {
		adGroupTemplate = models.DefaultAdGroupNameTemplate
	}

	s = models.CampaignSettings{
		DailyBudget:          budget,
		StartDate:            startDate,
		MatchTypes:           matchTypes,
		Bids:                 bids,
		KeywordBids:          req.KeywordBids,
		BidAdjustment:        req.BidAdjustment,
		Placement:            req.Placement,
		CampaignNameTemplate: campaignTemplate,
		AdGroupNameTemplate:  adGroupTemplate,
		KeywordGroupSize:     req.KeywordGroupSize,
		SKUGroupSize:         req.SKUGroupSize,
	}
	return s, nil, nil
}
