package provider

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// PaymentRequest is a split payment submitted under a seller's credentials.
type PaymentRequest struct {
	Amount            decimal.Decimal
	ApplicationFee    decimal.Decimal
	Description       string
	PaymentMethodID   string
	PayerEmail        string
	PayerIDType       string
	PayerIDNumber     string
	NotificationURL   string
	ExternalReference string
	// IdempotencyKey is sent as X-Idempotency-Key.
	IdempotencyKey string
}

// Payment is the gateway's view of a payment.
type Payment struct {
	ID           string
	Status       string
	StatusDetail string
	Amount       decimal.Decimal
	Fee          decimal.Decimal
	PayerEmail   string
	QRCode       string
	QRCodeBase64 string
	TicketURL    string
}

// --- wire types ---

type createPaymentBody struct {
	TransactionAmount json.Number `json:"transaction_amount"`
	Description       string      `json:"description"`
	PaymentMethodID   string      `json:"payment_method_id"`
	Payer             payerBody   `json:"payer"`
	ApplicationFee    json.Number `json:"application_fee"`
	NotificationURL   string      `json:"notification_url,omitempty"`
	ExternalReference string      `json:"external_reference,omitempty"`
}

type payerBody struct {
	Email          string              `json:"email"`
	Identification *identificationBody `json:"identification,omitempty"`
}

type identificationBody struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

type paymentBody struct {
	ID                 flexID           `json:"id"`
	Status             string           `json:"status"`
	StatusDetail       string           `json:"status_detail"`
	TransactionAmount  decimal.Decimal  `json:"transaction_amount"`
	MarketplaceFee     *decimal.Decimal `json:"marketplace_fee"`
	FeeDetails         []feeDetail      `json:"fee_details"`
	Payer              payerBody        `json:"payer"`
	PointOfInteraction interactionBody  `json:"point_of_interaction"`
}

type interactionBody struct {
	TransactionData transactionData `json:"transaction_data"`
}

type transactionData struct {
	QRCode       string `json:"qr_code"`
	QRCodeBase64 string `json:"qr_code_base64"`
	TicketURL    string `json:"ticket_url"`
}

type feeDetail struct {
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// applicationFee sums application_fee entries, falling back to marketplace_fee.
func (b *paymentBody) applicationFee() decimal.Decimal {
	total := decimal.Zero
	found := false
	for _, fd := range b.FeeDetails {
		if fd.Type == "application_fee" {
			total = total.Add(fd.Amount)
			found = true
		}
	}
	if !found && b.MarketplaceFee != nil {
		return *b.MarketplaceFee
	}
	return total
}

func (b *paymentBody) toPayment() *Payment {
	td := b.PointOfInteraction.TransactionData
	return &Payment{
		ID:           string(b.ID),
		Status:       b.Status,
		StatusDetail: b.StatusDetail,
		Amount:       b.TransactionAmount,
		Fee:          b.applicationFee(),
		PayerEmail:   b.Payer.Email,
		QRCode:       td.QRCode,
		QRCodeBase64: td.QRCodeBase64,
		TicketURL:    td.TicketURL,
	}
}

// flexID accepts numeric or string identifiers.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

type errorBody struct {
	Message string       `json:"message"`
	Error   string       `json:"error"`
	Status  int          `json:"status"`
	Cause   []errorCause `json:"cause"`
}

type errorCause struct {
	Code        json.RawMessage `json:"code"`
	Description string          `json:"description"`
}
