package models

import "time"

type StateCode string

// States is the closed list of delivery regions.
var States = []Choice{
	{Code: "PLK", Label: "Polokwane"},
	{Code: "GP", Label: "Gauteng"},
	{Code: "MP", Label: "Mpumalanga"},
	{Code: "NW", Label: "North-West"},
	{Code: "EC", Label: "Eastern-Cape"},
	{Code: "WC", Label: "Western-Cape"},
	{Code: "PE", Label: "Port Elizabeth"},
}

func (s StateCode) Valid() bool {
	_, ok := lookup(States, string(s))
	return ok
}

// Customer is a saved shipping profile. A user may own any number of them.
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Locality  string    `gorm:"size:200" json:"locality"`
	City      string    `gorm:"size:50" json:"city"`
	Mobile    int64     `json:"mobile"`
	State     StateCode `gorm:"size:50" json:"state"`
	Zipcode   int       `json:"zipcode"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
