package models

import "time"

// SaleRecord is a sale accepted by the remote inventory service. Immutable
// once created; the client never deletes sales.
type SaleRecord struct {
	ID            int64     `json:"id"`
	Item          Item      `json:"item"`
	Branch        Branch    `json:"branch"`
	Quantity      int       `json:"quantity"`
	TotalAmount   float64   `json:"total_amount"`
	PaymentMethod string    `json:"payment_method,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// ReceiptLine is one rendered line of a receipt. UnitPrice is recomputed
// from TotalAmount/Quantity when the server only returned the aggregate.
type ReceiptLine struct {
	ItemName    string  `json:"item_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalAmount float64 `json:"total_amount"`
}

// Receipt is a read-only projection of one completed batch of sales. It is
// built only from transactions already accepted by the remote service and
// is never itself submitted anywhere.
type Receipt struct {
	ID            string        `json:"id"`
	BranchName    string        `json:"branch_name"`
	PaymentMethod string        `json:"payment_method"`
	Lines         []ReceiptLine `json:"lines"`
	Total         float64       `json:"total"`
	GeneratedAt   time.Time     `json:"generated_at"`
}
