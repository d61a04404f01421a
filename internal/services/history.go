package services

import (
	"time"

	"gorm.io/gorm"

	"journal2ebook/internal/common"
	"journal2ebook/internal/converter"
	"journal2ebook/internal/models"
)

// DefaultHistoryLimit caps Recent when no limit is given
const DefaultHistoryLimit = 50

// HistoryService records conversion runs
type HistoryService struct {
	db *gorm.DB
}

// NewHistoryService creates a new history service
func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{db: db}
}

// Record stores the outcome of one conversion. runErr nil means success.
func (s *HistoryService) Record(opts converter.Options, profile string, duration time.Duration, runErr error) (*models.ConversionRecord, error) {
	record := &models.ConversionRecord{
		ID:           common.GenerateUUID(),
		Input:        opts.Input,
		Output:       opts.Output,
		Profile:      profile,
		MarginTop:    opts.Margins.Top,
		MarginLeft:   opts.Margins.Left,
		MarginBottom: opts.Margins.Bottom,
		MarginRight:  opts.Margins.Right,
		Columns:      opts.Columns,
		PageRange:    opts.PageRange,
		Status:       models.StatusCompleted,
		DurationMS:   duration.Milliseconds(),
	}
	if runErr != nil {
		record.Status = models.StatusError
		record.Error = runErr.Error()
	}

	if err := s.db.Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// Recent returns the newest records first
func (s *HistoryService) Recent(limit int) ([]models.ConversionRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	var records []models.ConversionRecord
	err := s.db.Order("created_at desc").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ForInput returns every run of the given input file, newest first
func (s *HistoryService) ForInput(input string) ([]models.ConversionRecord, error) {
	var records []models.ConversionRecord
	err := s.db.Where("input = ?", input).Order("created_at desc").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Clear deletes all history
func (s *HistoryService) Clear() error {
	return s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.ConversionRecord{}).Error
}
