package api

import (
	"fmt"

	"github.com/festivo/festivo/internal/session"
)

// Event is a storefront event as served by the listing endpoint.
type Event struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate,omitempty"`
	Location    string  `json:"location"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Status      string  `json:"status,omitempty"`
	Price       float64 `json:"price,omitempty"`
}

// Video is one result from the YouTube search proxy.
type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Thumbnail    string `json:"thumbnail"`
	ChannelTitle string `json:"channelTitle"`
	PublishedAt  string `json:"publishedAt"`
	URL          string `json:"url"`
	EmbedURL     string `json:"embedUrl"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  session.User `json:"user"`
}

type validateResponse struct {
	Valid bool          `json:"valid"`
	User  *session.User `json:"user"`
}

type eventsResponse struct {
	Events []Event `json:"events"`
}

type searchResponse struct {
	Success bool    `json:"success"`
	Videos  []Video `json:"videos"`
	Error   string  `json:"error,omitempty"`
}

type errorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// APIError is a non-2xx backend response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned HTTP %d", e.Status)
	}
	return fmt.Sprintf("backend returned HTTP %d: %s", e.Status, e.Message)
}
