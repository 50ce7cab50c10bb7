package client

import (
	"net/http"
	"time"

	"github.com/fleetyard/rental-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "client not found")
	ErrEmptyName           = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrDocumentAlreadyUsed = apperror.New(http.StatusConflict, "document id already registered")
)

// Client is a rental customer. Reservations reference a client; maintenance
// windows do not.
type Client struct {
	ID         string // UUID
	Name       string
	DocumentID string
	Phone      *string
	Email      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Filter defines parameters for listing clients.
type Filter struct {
	Name     string
	Document string
	Page     int
	PageSize int
}
