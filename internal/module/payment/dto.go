package payment

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// SplitPaymentRequest is the body of POST /pay/split. Amount and fee accept
// JSON numbers or numeric strings; fee is a percentage.
type SplitPaymentRequest struct {
	SellerID   FlexString       `json:"sellerId" binding:"required"`
	Amount     *decimal.Decimal `json:"amount" binding:"required" swaggertype:"string" example:"100.00"`
	Fee        *decimal.Decimal `json:"fee" binding:"required" swaggertype:"string" example:"10"`
	PayerEmail string           `json:"payerEmail" binding:"required,email"`
}

// SplitPaymentResponse is returned after the gateway accepts a split payment.
type SplitPaymentResponse struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	QRCode       string `json:"qr_code"`
	QRCodeBase64 string `json:"qr_code_base64"`
	TicketURL    string `json:"ticket_url,omitempty"`
	Detail       string `json:"detail"`
}

func toResponse(r *SplitResult) SplitPaymentResponse {
	return SplitPaymentResponse{
		ID:           r.Payment.ID,
		Status:       r.Payment.Status,
		QRCode:       r.QRCode,
		QRCodeBase64: r.QRCodeBase64,
		TicketURL:    r.TicketURL,
		Detail:       r.Detail,
	}
}

// FlexString accepts a JSON string or number. Seller ids come back from
// the gateway as numbers and dashboards send them either way.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}
