package model

import "time"

// Resume references an uploaded file in object storage. The report
// card is populated asynchronously by an external review service:
// uploads start pending and move to completed or failed.
type Resume struct {
	ID          string  `json:"id" gorm:"primaryKey"`
	UserID      string  `json:"user_id" gorm:"not null;index"`
	Title       string  `json:"title" gorm:"not null"`
	ObjectKey   string  `json:"object_key" gorm:"not null"`
	FileName    string  `json:"file_name"`
	FileSize    int64   `json:"file_size"`
	ContentType string  `json:"content_type"`

	ReportCardStatus  string   `json:"report_card_status" gorm:"default:pending"` // pending, completed, failed
	ReportCardScore   *float64 `json:"report_card_score"`
	ReportCardSummary string   `json:"report_card_summary" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
