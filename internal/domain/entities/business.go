package entities

import (
	"time"
)

// Business represents a directory entry owned by a single user.
// Only approved businesses are publicly listed.
type Business struct {
	ID                 string     `json:"id" db:"id"`
	OwnerID            string     `json:"owner_id" db:"owner_id"`
	Name               string     `json:"name" db:"name"`
	Slug               string     `json:"slug" db:"slug"`
	Category           string     `json:"category" db:"category"`
	City               string     `json:"city" db:"city"`
	Description        string     `json:"description" db:"description"`
	LongDescription    string     `json:"long_description,omitempty" db:"long_description"`
	Address            string     `json:"address" db:"address"`
	Lat                *float64   `json:"lat,omitempty" db:"lat"`
	Lng                *float64   `json:"lng,omitempty" db:"lng"`
	Phone              string     `json:"phone" db:"phone"`
	WhatsApp           string     `json:"whatsapp,omitempty" db:"whatsapp"`
	Website            string     `json:"website,omitempty" db:"website"`
	Instagram          string     `json:"instagram,omitempty" db:"instagram"`
	Facebook           string     `json:"facebook,omitempty" db:"facebook"`
	Email              string     `json:"email,omitempty" db:"email"`
	LogoURL            string     `json:"logo_url,omitempty" db:"logo_url"`
	Images             []string   `json:"images" db:"-"`
	VideoURL           string     `json:"video_url,omitempty" db:"video_url"`
	Schedule           string     `json:"schedule,omitempty" db:"schedule"`
	IsPremium          bool       `json:"is_premium" db:"is_premium"`
	IsApproved         bool       `json:"is_approved" db:"is_approved"`
	IsFeatured         bool       `json:"is_featured" db:"is_featured"`
	SubscriptionExpiry *time.Time `json:"subscription_expiry,omitempty" db:"subscription_expiry"`
	Views              int        `json:"views" db:"views"`
	Clicks             int        `json:"clicks" db:"clicks"`
	RatingAvg          float64    `json:"rating_avg" db:"rating_avg"`
	RatingCount        int        `json:"rating_count" db:"rating_count"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}
