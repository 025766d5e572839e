package services

import (
	"testing"
	"time"

	"branch_pos_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReceipt() models.Receipt {
	sales := []models.SaleRecord{
		{
			Item:        models.Item{ID: 7, Name: "Pen"},
			Branch:      models.Branch{ID: 1, Name: "Main Branch"},
			Quantity:    3,
			TotalAmount: 150,
		},
		{
			Item:        models.Item{ID: 8, Name: "Book"},
			Branch:      models.Branch{ID: 1, Name: "Main Branch"},
			Quantity:    2,
			TotalAmount: 241,
		},
	}
	generated := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	return BuildReceipt(sales, 391, "Cash", "Main Branch", generated)
}

func TestBuildReceiptRecomputesUnitPrices(t *testing.T) {
	receipt := sampleReceipt()

	require.Len(t, receipt.Lines, 2)
	assert.Equal(t, "Pen", receipt.Lines[0].ItemName)
	assert.Equal(t, 50.0, receipt.Lines[0].UnitPrice, "unit price derived from aggregate amount")
	assert.Equal(t, 120.5, receipt.Lines[1].UnitPrice)
	assert.Equal(t, 391.0, receipt.Total)
	assert.Equal(t, "Cash", receipt.PaymentMethod)
	assert.Equal(t, "Main Branch", receipt.BranchName)
}

func TestBuildReceiptZeroQuantityLine(t *testing.T) {
	receipt := BuildReceipt([]models.SaleRecord{
		{Item: models.Item{Name: "Pen"}, Quantity: 0, TotalAmount: 0},
	}, 0, "Cash", "Main Branch", time.Now())

	require.Len(t, receipt.Lines, 1)
	assert.Equal(t, 0.0, receipt.Lines[0].UnitPrice)
}

func TestRenderReceiptHTMLIsDeterministic(t *testing.T) {
	receipt := sampleReceipt()

	first, err := RenderReceiptHTML(receipt)
	require.NoError(t, err)
	second, err := RenderReceiptHTML(receipt)
	require.NoError(t, err)
	assert.Equal(t, first, second, "same receipt, byte-identical document")

	assert.Contains(t, first, "<strong>Branch:</strong> Main Branch")
	assert.Contains(t, first, "<strong>Date:</strong> 2025-03-14 09:26:53")
	assert.Contains(t, first, "<strong>Payment Method:</strong> Cash")
	assert.Contains(t, first, "<td>Pen</td><td>3</td>")
	assert.Contains(t, first, "KES 50")
	assert.Contains(t, first, "KES 120.50")
	assert.Contains(t, first, "<strong>KES 391</strong>")
}

func TestRenderReceiptHTMLFallbacks(t *testing.T) {
	receipt := models.Receipt{GeneratedAt: time.Now()}

	html, err := RenderReceiptHTML(receipt)
	require.NoError(t, err)
	assert.Contains(t, html, "<strong>Branch:</strong> N/A")
	assert.Contains(t, html, "<strong>Payment Method:</strong> N/A")
}

func TestRenderReceiptHTMLEscapesItemNames(t *testing.T) {
	receipt := BuildReceipt([]models.SaleRecord{
		{Item: models.Item{Name: "<script>alert(1)</script>"}, Quantity: 1, TotalAmount: 10},
	}, 10, "Cash", "Main Branch", time.Now())

	html, err := RenderReceiptHTML(receipt)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestReceiptStoreRoundTrip(t *testing.T) {
	store := NewReceiptService()

	receipt := sampleReceipt()
	store.Save(&receipt)
	require.NotEmpty(t, receipt.ID, "save assigns an identifier")

	got, ok := store.Get(receipt.ID)
	require.True(t, ok)
	assert.Equal(t, receipt, got)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}
