package dto

import "time"

type ResumeResponse struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	FileName          string    `json:"file_name"`
	FileSize          int64     `json:"file_size"`
	ContentType       string    `json:"content_type"`
	ReportCardStatus  string    `json:"report_card_status"`
	ReportCardScore   *float64  `json:"report_card_score,omitempty"`
	ReportCardSummary string    `json:"report_card_summary,omitempty"`
	DownloadURL       string    `json:"download_url,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
