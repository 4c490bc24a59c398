package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GenerateRequest is one bulk-sheet generation order as it arrives from the
// form. Numeric fields stay raw strings so validation can report the exact
// offending input instead of a JSON bind error.
type GenerateRequest struct {
	Keywords             []string           `json:"keywords"`
	SKUs                 []string           `json:"skus"`
	MatchTypes           []string           `json:"match_types"`
	DailyBudget          string             `json:"daily_budget"`
	Bids                 map[string]string  `json:"bids"`
	KeywordBids          map[string]float64 `json:"keyword_bids,omitempty"`
	BidAdjustment        string             `json:"bid_adjustment,omitempty"`
	Placement            string             `json:"placement,omitempty"`
	CampaignNameTemplate string             `json:"campaign_name_template"`
	AdGroupNameTemplate  string             `json:"ad_group_name_template"`
	KeywordGroupSize     int                `json:"keyword_group_size,omitempty"`
	SKUGroupSize         int                `json:"sku_group_size,omitempty"`
	StartDate            string             `json:"start_date"` // YYYY-MM-DD
	Format               string             `json:"format,omitempty"`
	OverrideSetID        string             `json:"override_set_id,omitempty"`
}

type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// BulkJob tracks one asynchronous generation run end to end.
type BulkJob struct {
	ID          string     `json:"id" gorm:"type:uuid;primary_key"`
	Status      JobStatus  `json:"status" gorm:"not null;default:pending"`
	RequestedBy string     `json:"requested_by"`
	Payload     string     `json:"-" gorm:"type:text"`
	Format      string     `json:"format"`
	UnitCount   int        `json:"unit_count"`
	RowCount    int        `json:"row_count"`
	OutputPath  string     `json:"output_path,omitempty"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (j *BulkJob) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.New().String()
	}
	return nil
}

// JobMessage is the Kafka payload handed from the API to the worker.
type JobMessage struct {
	JobID       string          `json:"job_id"`
	RequestedBy string          `json:"requested_by,omitempty"`
	Request     GenerateRequest `json:"request"`
}
