package http

import (
	"time"

	"github.com/fleetyard/rental-backend/internal/pkg/request"
	"github.com/fleetyard/rental-backend/internal/vehicle"
)

// ListVehiclesRequest defines query parameters for listing vehicles.
type ListVehiclesRequest struct {
	request.ListParams
	Brand    string `form:"brand"`
	IsActive *bool  `form:"is_active"`
}

// VehicleResponse is the API shape of a vehicle.
type VehicleResponse struct {
	ID        string    `json:"id"`
	Plate     string    `json:"plate"`
	Brand     string    `json:"brand"`
	Model     string    `json:"model"`
	Year      int       `json:"year"`
	DailyRate float64   `json:"daily_rate"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VehicleTag is a brief representation of a vehicle for embedding.
type VehicleTag struct {
	ID    string `json:"id"`
	Plate string `json:"plate"`
}

func NewVehicleResponse(v *vehicle.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:        v.ID,
		Plate:     v.Plate,
		Brand:     v.Brand,
		Model:     v.Model,
		Year:      v.Year,
		DailyRate: v.DailyRate,
		IsActive:  v.IsActive,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

type CreateVehicleRequest struct {
	Plate     string  `json:"plate" binding:"required"`
	Brand     string  `json:"brand" binding:"required"`
	Model     string  `json:"model" binding:"required"`
	Year      int     `json:"year" binding:"required,min=1950"`
	DailyRate float64 `json:"daily_rate" binding:"required,gt=0"`
}

type UpdateVehicleRequest struct {
	Plate     *string  `json:"plate"`
	Brand     *string  `json:"brand"`
	Model     *string  `json:"model"`
	Year      *int     `json:"year" binding:"omitempty,min=1950"`
	DailyRate *float64 `json:"daily_rate" binding:"omitempty,gt=0"`
	IsActive  *bool    `json:"is_active"`
}
