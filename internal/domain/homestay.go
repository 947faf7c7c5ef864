package domain

// Homestay is a listing guests can book. Collection: "homestay".
// Numeric required fields are pointers so a present zero is accepted
// while an absent field is rejected.
type Homestay struct {
	Title         string   `json:"title" bson:"title" validate:"required"`
	Description   string   `json:"description" bson:"description"`
	Location      string   `json:"location" bson:"location" validate:"required"`
	Country       string   `json:"country" bson:"country" validate:"required"`
	PricePerNight *float64 `json:"price_per_night" bson:"price_per_night" validate:"required,gte=0"`
	MaxGuests     *int     `json:"max_guests" bson:"max_guests" validate:"required,gte=1,lte=20"`
	Amenities     []string `json:"amenities" bson:"amenities"`
	Images        []string `json:"images" bson:"images"`
	Rating        *float64 `json:"rating" bson:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
}

// ApplyDefaults fills the list fields that default to empty rather
// than null.
func (h *Homestay) ApplyDefaults() {
	if h.Amenities == nil {
		h.Amenities = []string{}
	}
	if h.Images == nil {
		h.Images = []string{}
	}
}
