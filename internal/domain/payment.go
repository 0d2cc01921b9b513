package domain

// PaymentInfo holds the static bank-transfer details shown to groups.
// It is seeded once and read-only afterwards.
type PaymentInfo struct {
	ID          uint   `json:"_id"`
	Beneficiary string `json:"beneficiary"`
	IBAN        string `json:"iban"`
	BIC         string `json:"bic"`
	Bank        string `json:"bank"`
}
