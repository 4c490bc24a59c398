package generator

import (
	"fmt"
	"regexp"
	"strings"

	"bulkgen/internal/models"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// CleanKeyword turns a keyword into the group identifier used in campaign
// ids and names: non-alphanumeric characters become underscores, then the
// result is lowercased.
func CleanKeyword(keyword string) string {
	return strings.ToLower(nonAlphanumeric.ReplaceAllString(keyword, "_"))
}

// Generate expands the keyword and SKU lists into bulk-sheet rows, one
// campaign unit per (SKU group, keyword group, match type) combination.
// Inputs are assumed validated; the loop order is part of the output
// contract: SKU groups outermost, then keyword groups, then match types in
// settings order.
func Generate(keywords, skus []string, s models.CampaignSettings) []models.Row {
	keywordGroups := Group(keywords, s.KeywordGroupSize)
	skuGroups := Group(skus, s.SKUGroupSize)

	var rows []models.Row
	for _, skuGroup := range skuGroups {
		for _, keywordGroup := range keywordGroups {
			for _, mt := range s.MatchTypes {
				matchType := models.MatchType(strings.ToLower(string(mt)))
				rows = append(rows, unitRows(skuGroup, keywordGroup, matchType, s)...)
			}
		}
	}
	return rows
}

// unitRows emits the rows of one campaign unit: a Campaign row, an AdGroup
// row, an optional BiddingAdjustment row, one ProductAd row per SKU and one
// Keyword row per keyword.
//
// The unit id is derived from the combined SKU, the match type and the
// first cleaned keyword of the group. Keyword groups that start with the
// same cleaned keyword share a unit id under the same SKU group and match
// type.
func unitRows(skuGroup, keywords []string, matchType models.MatchType, s models.CampaignSettings) []models.Row {
	groupID := CleanKeyword(keywords[0])
	combinedSKU := strings.Join(skuGroup, "_")
	unitID := fmt.Sprintf("%s_%s_%s", combinedSKU, matchType, groupID)

	campaignName := RenderName(s.CampaignNameTemplate, combinedSKU, string(matchType), s.StartDate)
	adGroupName := RenderName(s.AdGroupNameTemplate, combinedSKU, string(matchType), s.StartDate)
	defaultBid := s.Bids[matchType]

	rows := make([]models.Row, 0, 3+len(skuGroup)+len(keywords))
	rows = append(rows, models.CampaignRow{
		CampaignID:   unitID,
		CampaignName: campaignName + "_" + groupID,
		StartDate:    s.StartDate.Format(models.StartDateLayout),
		DailyBudget:  s.DailyBudget,
	})
	rows = append(rows, models.AdGroupRow{
		CampaignID:  unitID,
		AdGroupName: adGroupName + "_" + groupID,
		DefaultBid:  defaultBid,
	})
	if s.Placement != "" && s.BidAdjustment != "" {
		rows = append(rows, models.BiddingAdjustmentRow{
			CampaignID: unitID,
			Placement:  s.Placement,
			Percentage: s.BidAdjustment,
		})
	}
	for _, sku := range skuGroup {
		rows = append(rows, models.ProductAdRow{CampaignID: unitID, SKU: sku})
	}
	for _, keyword := range keywords {
		bid := defaultBid
		if override, ok := s.KeywordBids[keyword]; ok {
			bid = override
		}
		rows = append(rows, models.KeywordRow{
			CampaignID:  unitID,
			KeywordText: keyword,
			MatchType:   matchType,
			Bid:         bid,
		})
	}
	return rows
}

// CountUnits reports how many campaign units a row slice spans.
func CountUnits(rows []models.Row) int {
	units := 0
	for _, r := range rows {
		if r.Entity() == models.EntityCampaign {
			units++
		}
	}
	return units
}
