package db

import (
	"time"

	"github.com/google/uuid"
)

// Company represents an employer's company profile
type Company struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Name        string    `json:"name"`
	Website     string    `json:"website,omitempty"`
	Description string    `json:"description,omitempty"`
	Verified    bool      `json:"verified"`

	// Rating is the arithmetic mean of all review ratings, recomputed on
	// every review write.
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Review represents a job seeker's review of a company
type Review struct {
	ID        uuid.UUID `json:"id"`
	CompanyID uuid.UUID `json:"company_id"`
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"` // 1..5
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CompanyCreateInput is used when creating a company profile
type CompanyCreateInput struct {
	OwnerID     uuid.UUID
	Name        string
	Website     string
	Description string
}

// MeanRating computes the arithmetic mean of review ratings, rounded to
// one decimal place. Returns 0 for an empty slice.
func MeanRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	mean := float64(sum) / float64(len(ratings))
	return float64(int(mean*10+0.5)) / 10
}
