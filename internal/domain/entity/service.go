package entity

import "time"

// Service is a directory listing for a professional repair/maintenance
// offering. New services start inactive and become visible only after an
// admin approves them.
type Service struct {
	ID           string `json:"id" db:"id"`
	UserID       string `json:"user_id" db:"user_id"`
	Name         string `json:"name" db:"name"`
	Description  string `json:"description" db:"description"`
	Location     string `json:"location,omitempty" db:"location"`
	ContactEmail string `json:"contact_email" db:"contact_email"`
	ContactPhone string `json:"contact_phone,omitempty" db:"contact_phone"`

	Image            string   `json:"image,omitempty" db:"image"`
	AdditionalImages []string `json:"additional_images"`

	Rating      *float64 `json:"rating,omitempty" db:"rating"`
	ReviewCount int      `json:"review_count" db:"review_count"`
	IsActive    bool     `json:"is_active" db:"is_active"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type ServiceReview struct {
	ID        string `json:"id" db:"id"`
	ServiceID string `json:"service_id" db:"service_id"`
	UserID    string `json:"user_id" db:"user_id"`

	RatingSpeed         int `json:"rating_speed" db:"rating_speed"`
	RatingQuality       int `json:"rating_quality" db:"rating_quality"`
	RatingCommunication int `json:"rating_communication" db:"rating_communication"`
	RatingPrice         int `json:"rating_price" db:"rating_price"`
	RatingOverall       int `json:"rating_overall" db:"rating_overall"`

	Comment string   `json:"comment,omitempty" db:"comment"`
	Images  []string `json:"images,omitempty"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
