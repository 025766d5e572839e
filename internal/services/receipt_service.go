package services

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
	"time"

	"branch_pos_backend/internal/models"
	"branch_pos_backend/pkg/utils"

	"github.com/google/uuid"
)

// BuildReceipt assembles a read-only receipt projection from sales already
// accepted by the remote service. Pure: the output depends only on the
// arguments, never on cart or catalog state. Unit prices are recomputed as
// totalAmount/quantity so the receipt stays consistent when the server only
// returns aggregate amounts.
func BuildReceipt(sales []models.SaleRecord, total float64, paymentMethod, branchName string, generatedAt time.Time) models.Receipt {
	lines := make([]models.ReceiptLine, 0, len(sales))
	for _, sale := range sales {
		unitPrice := 0.0
		if sale.Quantity > 0 {
			unitPrice = sale.TotalAmount / float64(sale.Quantity)
		}
		lines = append(lines, models.ReceiptLine{
			ItemName:    sale.Item.Name,
			Quantity:    sale.Quantity,
			UnitPrice:   unitPrice,
			TotalAmount: sale.TotalAmount,
		})
	}

	return models.Receipt{
		BranchName:    branchName,
		PaymentMethod: paymentMethod,
		Lines:         lines,
		Total:         total,
		GeneratedAt:   generatedAt,
	}
}

// receiptTemplate mirrors the terminal's print window: a self-contained
// page the operator can print directly.
var receiptTemplate = template.Must(template.New("receipt").Parse(`<html>
<head>
<title>Receipt</title>
<style>
  body { font-family: Arial, sans-serif; padding: 20px; }
  h2 { margin: 10px 0; }
  table { width: 100%; border-collapse: collapse; margin-top: 10px; }
  td, th { padding: 8px; border-bottom: 1px solid #ddd; text-align: left; }
  .right { text-align: right; }
</style>
</head>
<body>
<h2>Receipt</h2>
<div><strong>Branch:</strong> {{.BranchName}}</div>
<div><strong>Date:</strong> {{.Date}}</div>
<div><strong>Payment Method:</strong> {{.PaymentMethod}}</div>
<table>
<thead>
<tr><th>Item</th><th>Qty</th><th class="right">Price</th></tr>
</thead>
<tbody>
{{range .Lines}}<tr><td>{{.ItemName}}</td><td>{{.Quantity}}</td><td class="right">KES {{.UnitPrice}}</td></tr>
{{end}}</tbody>
<tfoot>
<tr><td></td><td><strong>Total</strong></td><td class="right"><strong>KES {{.Total}}</strong></td></tr>
</tfoot>
</table>
</body>
</html>
`))

type receiptViewLine struct {
	ItemName  string
	Quantity  int
	UnitPrice string
}

type receiptView struct {
	BranchName    string
	Date          string
	PaymentMethod string
	Lines         []receiptViewLine
	Total         string
}

// RenderReceiptHTML renders a receipt as a printable, self-contained HTML
// document. Deterministic from the receipt alone.
func RenderReceiptHTML(r models.Receipt) (string, error) {
	branch := r.BranchName
	if branch == "" {
		branch = "N/A"
	}
	method := r.PaymentMethod
	if method == "" {
		method = "N/A"
	}

	view := receiptView{
		BranchName:    branch,
		Date:          r.GeneratedAt.Format("2006-01-02 15:04:05"),
		PaymentMethod: method,
		Total:         utils.FormatAmount(r.Total),
	}
	for _, line := range r.Lines {
		view.Lines = append(view.Lines, receiptViewLine{
			ItemName:  line.ItemName,
			Quantity:  line.Quantity,
			UnitPrice: utils.FormatAmount(line.UnitPrice),
		})
	}

	var b strings.Builder
	if err := receiptTemplate.Execute(&b, view); err != nil {
		return "", fmt.Errorf("failed to render receipt: %w", err)
	}
	return b.String(), nil
}

// ReceiptService stores completed receipts for later display and printing.
// Receipts are append-only from the client's perspective.
type ReceiptService interface {
	Save(r *models.Receipt)
	Get(id string) (models.Receipt, bool)
}

type receiptService struct {
	mu       sync.Mutex
	receipts map[string]models.Receipt
}

// NewReceiptService creates a new instance of ReceiptService.
func NewReceiptService() ReceiptService {
	return &receiptService{receipts: make(map[string]models.Receipt)}
}

// Save assigns the receipt an ID and retains it.
func (s *receiptService) Save(r *models.Receipt) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	s.mu.Lock()
	s.receipts[r.ID] = *r
	s.mu.Unlock()
}

func (s *receiptService) Get(id string) (models.Receipt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.receipts[id]
	return r, ok
}
