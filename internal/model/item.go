package model

import "time"

// Weather is the temperature category a ClothingItem is suitable for.
type Weather string

const (
	WeatherHot  Weather = "hot"
	WeatherWarm Weather = "warm"
	WeatherCold Weather = "cold"
)

// ClothingItem is a catalog entry. Owner is fixed at creation; Likes is a
// set of caller ids and is only changed through the like operations.
type ClothingItem struct {
	ID        string    `json:"_id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Weather   Weather   `json:"weather" db:"weather"`
	ImageURL  string    `json:"imageUrl" db:"image_url"`
	Owner     string    `json:"owner" db:"owner"`
	Likes     []string  `json:"likes" db:"likes"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ItemResponse is the {data: item} envelope item mutations answer with.
type ItemResponse struct {
	Data *ClothingItem `json:"data"`
}

// ------------------------------------------------------------
// Payloads

type CreateItemPayload struct {
	Name     string  `json:"name" validate:"required,min=2,max=30"`
	Weather  Weather `json:"weather" validate:"required,oneof=hot warm cold"`
	ImageURL string  `json:"imageUrl" validate:"required,url"`
}

func (p *CreateItemPayload) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}
	return validateName(p.Name)
}

// ItemIDPayload carries the :itemId path parameter. Its format is checked
// by the store so a malformed id surfaces as "Invalid item ID". The body
// never binds to it.
type ItemIDPayload struct {
	ItemID string `json:"-" param:"itemId" validate:"required"`
}

func (p *ItemIDPayload) Validate() error {
	return validate.Struct(p)
}

type GetItemsPayload struct{}

func (p *GetItemsPayload) Validate() error {
	return nil
}
