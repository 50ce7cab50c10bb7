package http

import (
	"time"

	"github.com/fleetyard/rental-backend/internal/client"
	"github.com/fleetyard/rental-backend/internal/pkg/request"
)

// ListClientsRequest defines query parameters for listing clients.
type ListClientsRequest struct {
	request.ListParams
	Name     string `form:"name"`
	Document string `form:"document"`
}

// ClientResponse is the API shape of a rental client.
type ClientResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	DocumentID string    `json:"document_id"`
	Phone      *string   `json:"phone"`
	Email      *string   `json:"email"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ClientTag is a brief representation of a client for embedding.
type ClientTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewClientResponse(cl *client.Client) ClientResponse {
	return ClientResponse{
		ID:         cl.ID,
		Name:       cl.Name,
		DocumentID: cl.DocumentID,
		Phone:      cl.Phone,
		Email:      cl.Email,
		CreatedAt:  cl.CreatedAt,
		UpdatedAt:  cl.UpdatedAt,
	}
}

type CreateClientRequest struct {
	Name       string  `json:"name" binding:"required"`
	DocumentID string  `json:"document_id" binding:"required"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email" binding:"omitempty,email"`
}

type UpdateClientRequest struct {
	Name       *string `json:"name"`
	DocumentID *string `json:"document_id"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email" binding:"omitempty,email"`
}
