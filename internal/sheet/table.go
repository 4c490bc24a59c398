package sheet

import (
	"fmt"

	"bulkgen/internal/models"
)

// Columns is the bulk-upload header in the exact order Amazon expects.
var Columns = []string{
	"Product",
	"Entity",
	"Operation",
	"Campaign ID",
	"Ad Group ID",
	"Portfolio ID",
	"Ad ID",
	"Keyword ID",
	"Product Targeting ID",
	"Campaign Name",
	"Ad Group Name",
	"Start Date",
	"End Date",
	"Targeting Type",
	"State",
	"Daily Budget",
	"SKU",
	"Ad Group Default Bid",
	"Bid",
	"Keyword Text",
	"Native Language Keyword",
	"Native Language Locale",
	"Match Type",
	"Bidding Strategy",
	"Placement",
	"Percentage",
	"Product Targeting Expression",
}

const (
	colProduct = iota
	colEntity
	colOperation
	colCampaignID
	colAdGroupID
	colPortfolioID
	colAdID
	colKeywordID
	colProductTargetingID
	colCampaignName
	colAdGroupName
	colStartDate
	colEndDate
	colTargetingType
	colState
	colDailyBudget
	colSKU
	colAdGroupDefaultBid
	colBid
	colKeywordText
	colNativeLanguageKeyword
	colNativeLanguageLocale
	colMatchType
	colBiddingStrategy
	colPlacement
	colPercentage
	colProductTargetingExpression
	columnCount
)

type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
)

// Cell is one value of the output table. An empty cell is distinct from a
// zero-valued number: it exports as a true blank. Number cells keep their
// numeric value and derive the two-decimal display form only at export.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

func Empty() Cell           { return Cell{} }
func Text(s string) Cell    { return Cell{Kind: CellText, Text: s} }
func Number(v float64) Cell { return Cell{Kind: CellNumber, Number: v} }

// Display renders the cell for export: blank for empty cells, the raw text
// for text cells, and a fixed two-decimal form for numbers.
func (c Cell) Display() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return fmt.Sprintf("%.2f", c.Number)
	default:
		return ""
	}
}

// Table is the assembled bulk sheet: one cell row per generated row, all
// aligned to the fixed column set.
type Table struct {
	Rows [][]Cell
}

// baseCells pre-fills the columns every entity shares. The campaign id is
// present on every row of a unit; the ad-group id only on non-campaign rows.
func baseCells(campaignID string) []Cell {
	cells := make([]Cell, columnCount)
	cells[colProduct] = Text(models.ProductSponsored)
	cells[colOperation] = Text(models.OperationCreate)
	cells[colCampaignID] = Text(campaignID)
	cells[colState] = Text(models.StateEnabled)
	return cells
}

// Assemble maps generated rows onto the fixed column schema. Each variant
// populates only its own columns; everything else stays blank.
func Assemble(rows []models.Row) *Table {
	t := &Table{Rows: make([][]Cell, 0, len(rows))}
	for _, row := range rows {
		cells := baseCells(row.UnitID())
		cells[colEntity] = Text(string(row.Entity()))

		switch r := row.(type) {
		case models.CampaignRow:
			cells[colCampaignName] = Text(r.CampaignName)
			cells[colStartDate] = Text(r.StartDate)
			cells[colTargetingType] = Text(models.TargetingManual)
			cells[colDailyBudget] = Number(r.DailyBudget)
			cells[colBiddingStrategy] = Text(models.BiddingStrategyDown)
		case models.AdGroupRow:
			cells[colAdGroupID] = Text(r.CampaignID)
			cells[colAdGroupName] = Text(r.AdGroupName)
			cells[colAdGroupDefaultBid] = Number(r.DefaultBid)
		case models.BiddingAdjustmentRow:
			cells[colAdGroupID] = Text(r.CampaignID)
			cells[colPlacement] = Text(r.Placement)
			cells[colPercentage] = Text(r.Percentage)
		case models.ProductAdRow:
			cells[colAdGroupID] = Text(r.CampaignID)
			cells[colSKU] = Text(r.SKU)
		case models.KeywordRow:
			cells[colAdGroupID] = Text(r.CampaignID)
			cells[colBid] = Number(r.Bid)
			cells[colKeywordText] = Text(r.KeywordText)
			cells[colMatchType] = Text(string(r.MatchType))
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

// Records renders every row into display strings, header excluded.
func (t *Table) Records() [][]string {
	records := make([][]string, len(t.Rows))
	for i, cells := range t.Rows {
		record := make([]string, len(cells))
		for j, c := range cells {
			record[j] = c.Display()
		}
		records[i] = record
	}
	return records
}

// Preview returns up to n display rows for UI echoing.
func (t *Table) Preview(n int) [][]string {
	records := t.Records()
	if len(records) > n {
		records = records[:n]
	}
	return records
}
