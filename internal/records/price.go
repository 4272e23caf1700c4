package records

// PriceEntry is one observed price in prices.json.
type PriceEntry struct {
	SetName   string  `json:"set_name"`
	Store     string  `json:"store"`
	Price     string  `json:"price"`
	DateSeen  string  `json:"date_seen"`
	Notes     string  `json:"notes"`
	ImagePath *string `json:"image_path"`
}

// NewPriceEntry builds a PriceEntry from form fields. imagePath is nil when
// nothing was uploaded.
func NewPriceEntry(fields map[string]string, imagePath *string) PriceEntry {
	return PriceEntry{
		SetName:   fields["set_name"],
		Store:     fields["store"],
		Price:     fields["price"],
		DateSeen:  fields["date_seen"],
		Notes:     fields["notes"],
		ImagePath: imagePath,
	}
}
