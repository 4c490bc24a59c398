package sheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bulkgen/internal/generator"
	"bulkgen/internal/models"
)

func sampleRows(t *testing.T) []models.Row {
	t.Helper()
	s := models.CampaignSettings{
		DailyBudget:          10,
		StartDate:            time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		MatchTypes:           []models.MatchType{models.MatchExact},
		Bids:                 map[models.MatchType]float64{models.MatchExact: 0.75},
		BidAdjustment:        "50%",
		Placement:            models.PlacementTopOfSearch,
		CampaignNameTemplate: models.DefaultCampaignNameTemplate,
		AdGroupNameTemplate:  models.DefaultAdGroupNameTemplate,
		KeywordGroupSize:     2,
	}
	return generator.Generate([]string{"gaming keyboard", "wireless mouse"}, []string{"SKU001"}, s)
}

func TestColumnsComplete(t *testing.T) {
	require.Len(t, Columns, 27)
	assert.Equal(t, "Product", Columns[0])
	assert.Equal(t, "Product Targeting Expression", Columns[26])
}

func TestAssemble(t *testing.T) {
	table := Assemble(sampleRows(t))
	records := table.Records()
	require.Len(t, records, 6)

	for _, record := range records {
		require.Len(t, record, len(Columns))
		assert.Equal(t, models.ProductSponsored, record[0])
		assert.Equal(t, models.OperationCreate, record[2])
		assert.Equal(t, "SKU001_exact_gaming_keyboard", record[3])
		assert.Equal(t, models.StateEnabled, record[14])
	}

	campaign := records[0]
	assert.Equal(t, string(models.EntityCampaign), campaign[1])
	assert.Empty(t, campaign[4], "campaign rows carry no ad group id")
	assert.Equal(t, "SP_SKU001_exact_gaming_keyboard", campaign[9])
	assert.Equal(t, "20260901", campaign[11])
	assert.Equal(t, models.TargetingManual, campaign[13])
	assert.Equal(t, "10.00", campaign[15], "budget rendered to two decimals")
	assert.Equal(t, models.BiddingStrategyDown, campaign[23])
	assert.Empty(t, campaign[18], "campaign rows carry no bid")

	adGroup := records[1]
	assert.Equal(t, string(models.EntityAdGroup), adGroup[1])
	assert.Equal(t, "SKU001_exact_gaming_keyboard", adGroup[4])
	assert.Equal(t, "AG_SKU001_exact_gaming_keyboard", adGroup[10])
	assert.Equal(t, "0.75", adGroup[17])

	adjustment := records[2]
	assert.Equal(t, string(models.EntityBiddingAdjustment), adjustment[1])
	assert.Equal(t, models.PlacementTopOfSearch, adjustment[24])
	assert.Equal(t, "50%", adjustment[25])

	productAd := records[3]
	assert.Equal(t, string(models.EntityProductAd), productAd[1])
	assert.Equal(t, "SKU001", productAd[16])

	keyword := records[4]
	assert.Equal(t, string(models.EntityKeyword), keyword[1])
	assert.Equal(t, "0.75", keyword[18])
	assert.Equal(t, "gaming keyboard", keyword[19])
	assert.Equal(t, "exact", keyword[22])
}

func TestCellDisplay(t *testing.T) {
	assert.Equal(t, "", Empty().Display())
	assert.Equal(t, "0.00", Number(0).Display(), "numeric zero is not a blank")
	assert.Equal(t, "1.50", Number(1.5).Display())
	assert.Equal(t, "top-of-search", Text("top-of-search").Display())
}

func TestPreview(t *testing.T) {
	table := Assemble(sampleRows(t))
	assert.Len(t, table.Preview(5), 5)
	assert.Len(t, table.Preview(100), 6)
}
