package models

import "time"

// Review is a product review as stored in the reviews table
type Review struct {
	ID          string
	ProductName string
	Review      string
	Star        int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
