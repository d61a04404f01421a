package models

import (
	"time"
)

// Conversion statuses
const (
	StatusCompleted = "completed"
	StatusError     = "error"
)

// ConversionRecord is one k2pdfopt run, kept for the history view
type ConversionRecord struct {
	ID           string    `gorm:"primaryKey;type:text" json:"id"`
	Input        string    `gorm:"type:text;index" json:"input"`
	Output       string    `gorm:"type:text" json:"output"`
	Profile      string    `json:"profile"`
	MarginTop    float64   `json:"margin_top"`
	MarginLeft   float64   `json:"margin_left"`
	MarginBottom float64   `json:"margin_bottom"`
	MarginRight  float64   `json:"margin_right"`
	Columns      int       `json:"columns"`
	PageRange    string    `json:"page_range"`
	Status       string    `gorm:"index" json:"status"`
	Error        string    `gorm:"type:text" json:"error,omitempty"`
	DurationMS   int64     `json:"duration_ms"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}

// Succeeded reports whether the run produced an output file.
func (r *ConversionRecord) Succeeded() bool {
	return r.Status == StatusCompleted
}
