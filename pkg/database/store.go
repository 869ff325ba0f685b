package database

import (
	"github.com/tomharber/rota-api-go/pkg/models"
	"gorm.io/gorm"
)

// Store adapts the gorm connection to the read interfaces the forecast
// engine consumes
type Store struct {
	DB *gorm.DB
}

// DailyRevenueRange returns historical trading days for a location within
// [start, end] inclusive (YYYY-MM-DD strings)
func (s *Store) DailyRevenueRange(locationID, start, end string) ([]models.DailyRevenue, error) {
	var records []models.DailyRevenue
	err := s.DB.
		Where("location_id = ? AND date >= ? AND date <= ?", locationID, start, end).
		Order("date").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// TaggedDateRange returns tag bindings within [start, end] inclusive
func (s *Store) TaggedDateRange(start, end string) ([]models.TaggedDate, error) {
	var tagged []models.TaggedDate
	err := s.DB.
		Where("date >= ? AND date <= ?", start, end).
		Order("date").
		Find(&tagged).Error
	if err != nil {
		return nil, err
	}
	return tagged, nil
}

// Tags returns every revenue tag
func (s *Store) Tags() ([]models.RevenueTag, error) {
	var tags []models.RevenueTag
	if err := s.DB.Order("name").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}
