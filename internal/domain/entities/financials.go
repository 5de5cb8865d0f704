package entities

import "math"

// GSTRate is applied to service charge plus parts cost.
const GSTRate = 0.18

// Financials is the money side of a job. GST and Total are always derived.
type Financials struct {
	ServiceCharge float64 `json:"serviceCharge"`
	PartsCost     float64 `json:"partsCost"`
	GST           float64 `json:"gst"`
	Total         float64 `json:"total"`
}

// ComputeFinancials derives GST and total, rounded to paise.
func ComputeFinancials(serviceCharge, partsCost float64) Financials {
	base := serviceCharge + partsCost
	gst := roundMoney(base * GSTRate)
	return Financials{
		ServiceCharge: serviceCharge,
		PartsCost:     partsCost,
		GST:           gst,
		Total:         roundMoney(base + gst),
	}
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// PaymentMethod is a label only; no payment is captured.
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodUPI  PaymentMethod = "upi"
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodQR   PaymentMethod = "qr"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentMethodCash, PaymentMethodUPI, PaymentMethodCard, PaymentMethodQR:
		return true
	}
	return false
}
