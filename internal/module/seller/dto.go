package seller

import "time"

// SellerSummary is the public view of a seller.
type SellerSummary struct {
	ID          string    `json:"id" example:"123456789"`
	ConnectedAt time.Time `json:"connected_at" example:"2024-05-01T12:00:00Z"`
}

// ToSummary strips credentials.
func (s *Seller) ToSummary() SellerSummary {
	return SellerSummary{ID: s.ID, ConnectedAt: s.ConnectedAt}
}
