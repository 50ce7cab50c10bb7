package vehicle

import (
	"net/http"
	"time"

	"github.com/fleetyard/rental-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "vehicle not found")
	ErrEmptyPlate       = apperror.New(http.StatusBadRequest, "license plate cannot be empty")
	ErrPlateAlreadyUsed = apperror.New(http.StatusConflict, "license plate already registered")
	ErrInvalidDailyRate = apperror.New(http.StatusBadRequest, "daily rate must be positive")
)

// Vehicle is one rentable unit of the fleet. A vehicle owns a single
// occupancy timeline shared by its reservations and maintenance windows.
type Vehicle struct {
	ID        string // UUID
	Plate     string
	Brand     string
	Model     string
	Year      int
	DailyRate float64
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Filter defines parameters for listing vehicles.
type Filter struct {
	Brand    string
	IsActive *bool
	Page     int
	PageSize int
}
