package models

import "time"

type Spot struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Hours     string    `json:"hours"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}
