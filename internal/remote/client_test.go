package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"branch_pos_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchInventoryQueryAndDecoding(t *testing.T) {
	var gotPath, gotQuery, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		// Decimal amounts arrive as strings, branch price may be absent.
		w.Write([]byte(`[
			{"id": 11, "item": {"id": 7, "name": "Pen", "price": "45.00"}, "branch_id": 1, "quantity": 10, "price": "50.00"},
			{"id": 12, "item": {"id": 8, "name": "Book", "price": "120.50"}, "branch_id": 1, "quantity": 4}
		]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-token")
	branchID := int64(1)
	entries, err := client.FetchInventory(context.Background(), &branchID, "pen")
	require.NoError(t, err)

	assert.Equal(t, "/inventory/", gotPath)
	assert.Equal(t, "branch_id=1&search=pen", gotQuery)
	assert.Equal(t, "Bearer secret-token", gotAuth)

	require.Len(t, entries, 2)
	assert.Equal(t, models.StockEntry{
		InventoryID: 11, ItemID: 7, BranchID: 1, Name: "Pen", Price: 50, Quantity: 10,
	}, entries[0])
	assert.Equal(t, 120.5, entries[1].Price, "missing branch price falls back to the item price")
}

func TestCreateSaleSendsIdempotencyKey(t *testing.T) {
	var gotKey string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("Idempotency-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{
			"id": 1001,
			"item": {"id": 7, "name": "Pen"},
			"branch": {"id": 1, "name": "Main Branch", "location": "Nairobi"},
			"quantity": 3,
			"total_amount": "150.00",
			"payment_method": "Cash"
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	sale, err := client.CreateSale(context.Background(), SaleRequest{
		ItemID: 7, BranchID: 1, Quantity: 3, PaymentMethod: "Cash", Price: 50,
		IdempotencyKey: "key-123",
	})
	require.NoError(t, err)

	assert.Equal(t, "key-123", gotKey)
	assert.NotContains(t, gotBody, "IdempotencyKey", "key travels in the header only")
	assert.Equal(t, 7.0, gotBody["item_id"])
	assert.Equal(t, "Cash", gotBody["payment_method"])

	assert.Equal(t, int64(1001), sale.ID)
	assert.Equal(t, "Main Branch", sale.Branch.Name)
	assert.Equal(t, 150.0, sale.TotalAmount)
}

func TestCreateSaleRejectionDetailExtraction(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		detail string
	}{
		{"structured detail", http.StatusBadRequest, `{"detail": "Insufficient stock for item Pen"}`, "Insufficient stock for item Pen"},
		{"bare string", http.StatusBadRequest, `"Branch is closed"`, "Branch is closed"},
		{"empty body", http.StatusInternalServerError, ``, "Failed to complete sale"},
		{"unrecognized shape", http.StatusBadRequest, `{"errors": ["x"]}`, "Failed to complete sale"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, "")
			_, err := client.CreateSale(context.Background(), SaleRequest{ItemID: 7, BranchID: 1, Quantity: 1})
			require.Error(t, err)

			rej, ok := AsRejection(err)
			require.True(t, ok)
			assert.Equal(t, tc.status, rej.StatusCode)
			assert.Equal(t, tc.detail, rej.Detail)
		})
	}
}

func TestTransportFailureIsNotARejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, "")
	_, err := client.FetchInventory(context.Background(), nil, "")
	require.Error(t, err)

	_, ok := AsRejection(err)
	assert.False(t, ok, "a connection failure must not look like a server rejection")
}

func TestStockOutAcceptsSingleOrArrayResponse(t *testing.T) {
	single := `{"id": 21, "item": {"id": 7, "name": "Pen", "price": "50"}, "branch_id": 2, "quantity": 5}`
	pair := `[
		{"id": 20, "item": {"id": 7, "name": "Pen", "price": "50"}, "branch_id": 1, "quantity": 5},
		{"id": 21, "item": {"id": 7, "name": "Pen", "price": "50"}, "branch_id": 2, "quantity": 5}
	]`

	for _, tc := range []struct {
		name string
		body string
		want int
	}{
		{"single record", single, 1},
		{"source and destination pair", pair, 2},
	} {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/inventory/stockout/", r.URL.Path)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, "")
			entries, err := client.StockOut(context.Background(), models.StockOutRequest{
				ItemID: 7, FromBranchID: 1, ToBranchID: 2, Quantity: 5,
			})
			require.NoError(t, err)
			assert.Len(t, entries, tc.want)
		})
	}
}

func TestStockInDecodesUpdatedRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/inventory/stock-in/", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 31, "item": {"id": 7, "name": "Pen", "price": "50"}, "branch_id": 3, "quantity": 42}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	entry, err := client.StockIn(context.Background(), models.StockInRequest{ItemID: 7, BranchID: 3, Quantity: 42})
	require.NoError(t, err)
	assert.Equal(t, int64(3), entry.BranchID)
	assert.Equal(t, 42, entry.Quantity)
}

func TestFetchSalesDecodesTimestampsAndAmounts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "branch_id=2", r.URL.RawQuery)
		w.Write([]byte(`[{
			"id": 5,
			"item": {"id": 7, "name": "Pen"},
			"branch": {"id": 2, "name": "West Branch"},
			"quantity": 2,
			"total_amount": "100.00",
			"payment_method": "Mpesa",
			"timestamp": "2025-03-14T09:26:53Z"
		}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	branchID := int64(2)
	sales, err := client.FetchSales(context.Background(), &branchID)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, 100.0, sales[0].TotalAmount)
	assert.Equal(t, "Mpesa", sales[0].PaymentMethod)
	assert.Equal(t, 2025, sales[0].Timestamp.Year())
}
