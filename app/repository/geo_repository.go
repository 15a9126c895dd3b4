package repository

import (
	"gorm.io/gorm"

	"github.com/VendoraHQ/Vendora/app/models"
)

// geoRepository implements the GeoRepository interface
type geoRepository struct {
	db *gorm.DB
}

// NewGeoRepository creates a new geo repository instance
func NewGeoRepository(db *gorm.DB) GeoRepository {
	return &geoRepository{db: db}
}

// GetStates retrieves all states ordered by name
func (r *geoRepository) GetStates() ([]models.State, error) {
	var states []models.State
	err := r.db.Order("name ASC").Find(&states).Error
	return states, err
}

// GetCitiesByState retrieves the cities of a state ordered by name
func (r *geoRepository) GetCitiesByState(stateID uint) ([]models.City, error) {
	var cities []models.City
	err := r.db.Where("state_id = ?", stateID).Order("name ASC").Find(&cities).Error
	return cities, err
}
