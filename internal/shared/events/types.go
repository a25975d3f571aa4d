package events

import "github.com/shopspring/decimal"

// Event type names.
const (
	SellerConnectedType   = "SellerConnected"
	PaymentCreatedType    = "PaymentCreated"
	PaymentReconciledType = "PaymentReconciled"
)

// SellerConnectedEvent is emitted after a seller finishes OAuth onboarding.
type SellerConnectedEvent struct {
	BaseEvent

	SellerID string `json:"seller_id"`
	LiveMode bool   `json:"live_mode"`
}

// NewSellerConnectedEvent creates a new SellerConnectedEvent.
func NewSellerConnectedEvent(sellerID string, liveMode bool) *SellerConnectedEvent {
	return &SellerConnectedEvent{
		BaseEvent: NewBaseEvent(SellerConnectedType, sellerID, "Seller"),
		SellerID:  sellerID,
		LiveMode:  liveMode,
	}
}

// PaymentCreatedEvent is emitted after a split payment is accepted by the gateway.
type PaymentCreatedEvent struct {
	BaseEvent

	PaymentID string          `json:"payment_id"`
	SellerID  string          `json:"seller_id"`
	Status    string          `json:"status"`
	Amount    decimal.Decimal `json:"amount"`
	Fee       decimal.Decimal `json:"fee"`
}

// NewPaymentCreatedEvent creates a new PaymentCreatedEvent.
func NewPaymentCreatedEvent(paymentID, sellerID, status string, amount, fee decimal.Decimal) *PaymentCreatedEvent {
	return &PaymentCreatedEvent{
		BaseEvent: NewBaseEvent(PaymentCreatedType, paymentID, "Payment"),
		PaymentID: paymentID,
		SellerID:  sellerID,
		Status:    status,
		Amount:    amount,
		Fee:       fee,
	}
}

// PaymentReconciledEvent is emitted after a webhook merge-update.
type PaymentReconciledEvent struct {
	BaseEvent

	PaymentID string `json:"payment_id"`
	Status    string `json:"status"`
}

// NewPaymentReconciledEvent creates a new PaymentReconciledEvent.
func NewPaymentReconciledEvent(paymentID, status string) *PaymentReconciledEvent {
	return &PaymentReconciledEvent{
		BaseEvent: NewBaseEvent(PaymentReconciledType, paymentID, "Payment"),
		PaymentID: paymentID,
		Status:    status,
	}
}
