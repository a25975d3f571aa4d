package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusApproved is the only status counted as settled revenue.
const StatusApproved = "approved"

// Payment is the stored view of a gateway payment.
type Payment struct {
	ID           string          `gorm:"primaryKey;size:64" json:"id"`
	SellerID     string          `gorm:"size:64;index" json:"seller_id"`
	Status       string          `gorm:"size:32;index" json:"status"`
	StatusDetail string          `gorm:"size:128" json:"status_detail,omitempty"`
	Amount       decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Fee          decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"fee"`
	PayerEmail   string          `gorm:"size:255" json:"payer_email,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}

// Clone returns a copy.
func (p *Payment) Clone() *Payment {
	cp := *p
	return &cp
}

// Totals aggregates payments of one status.
type Totals struct {
	Count  int64
	Amount decimal.Decimal
	Fee    decimal.Decimal
}
