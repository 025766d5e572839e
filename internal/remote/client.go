package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"branch_pos_backend/internal/models"
	"branch_pos_backend/pkg/utils"
)

// InventoryAPI is the request/response surface of the remote inventory
// service consumed by this backend. The service owns all durable state;
// everything returned here is a snapshot believed stale between calls.
type InventoryAPI interface {
	FetchInventory(ctx context.Context, branchID *int64, search string) ([]models.StockEntry, error)
	FetchBranches(ctx context.Context) ([]models.Branch, error)
	FetchItems(ctx context.Context) ([]models.Item, error)
	CreateSale(ctx context.Context, req SaleRequest) (*models.SaleRecord, error)
	FetchSales(ctx context.Context, branchID *int64) ([]models.SaleRecord, error)
	StockIn(ctx context.Context, req models.StockInRequest) (*models.StockEntry, error)
	StockOut(ctx context.Context, req models.StockOutRequest) ([]models.StockEntry, error)
}

// SaleRequest is one cart line submitted as one remote sale record. Price is
// the branch-specific unit price captured at selection time, not re-derived
// from a possibly-changed catalog.
type SaleRequest struct {
	ItemID        int64   `json:"item_id"`
	BranchID      int64   `json:"branch_id"`
	Quantity      int     `json:"quantity"`
	PaymentMethod string  `json:"payment_method"`
	Price         float64 `json:"price"`
	// IdempotencyKey is sent as a header, not in the body, so a retried
	// submission can be deduplicated server-side.
	IdempotencyKey string `json:"-"`
}

// Client is an HTTP client for the remote inventory service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	authToken  string
}

// NewClient creates a Client for the service rooted at baseURL. authToken,
// when non-empty, is forwarded as a bearer token on every request.
func NewClient(baseURL, authToken string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		authToken:  authToken,
	}
}

// inventoryRecord is the wire shape of one inventory row: a nested item plus
// the branch-scoped quantity and price. Decimal amounts arrive as JSON
// strings from the service, hence json.Number.
type inventoryRecord struct {
	ID   int64 `json:"id"`
	Item struct {
		ID    int64       `json:"id"`
		Name  string      `json:"name"`
		Price json.Number `json:"price"`
	} `json:"item"`
	BranchID int64       `json:"branch_id"`
	Quantity int         `json:"quantity"`
	Price    json.Number `json:"price"`
}

func (r inventoryRecord) toStockEntry() models.StockEntry {
	// Branch-specific price wins; fall back to the item's base price when
	// the branch row carries none.
	price, err := r.Price.Float64()
	if err != nil || r.Price.String() == "" {
		price, _ = r.Item.Price.Float64()
	}
	return models.StockEntry{
		InventoryID: r.ID,
		ItemID:      r.Item.ID,
		BranchID:    r.BranchID,
		Name:        r.Item.Name,
		Price:       price,
		Quantity:    r.Quantity,
	}
}

// saleRecord is the wire shape of an accepted sale.
type saleRecord struct {
	ID   int64 `json:"id"`
	Item struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"item"`
	Branch struct {
		ID       int64  `json:"id"`
		Name     string `json:"name"`
		Location string `json:"location"`
	} `json:"branch"`
	Quantity      int         `json:"quantity"`
	TotalAmount   json.Number `json:"total_amount"`
	PaymentMethod string      `json:"payment_method"`
	Timestamp     time.Time   `json:"timestamp"`
}

func (r saleRecord) toSaleRecord() models.SaleRecord {
	total, _ := r.TotalAmount.Float64()
	return models.SaleRecord{
		ID:            r.ID,
		Item:          models.Item{ID: r.Item.ID, Name: r.Item.Name},
		Branch:        models.Branch{ID: r.Branch.ID, Name: r.Branch.Name, Location: r.Branch.Location},
		Quantity:      r.Quantity,
		TotalAmount:   total,
		PaymentMethod: r.PaymentMethod,
		Timestamp:     r.Timestamp,
	}
}

// FetchInventory lists inventory records, optionally scoped to a branch and
// filtered by free-text search server-side.
func (c *Client) FetchInventory(ctx context.Context, branchID *int64, search string) ([]models.StockEntry, error) {
	params := url.Values{}
	if branchID != nil {
		params.Set("branch_id", utils.Int64ToStr(*branchID))
	}
	if search != "" {
		params.Set("search", search)
	}

	var records []inventoryRecord
	if err := c.getJSON(ctx, "/inventory/", params, &records); err != nil {
		return nil, err
	}

	entries := make([]models.StockEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, rec.toStockEntry())
	}
	return entries, nil
}

// FetchBranches lists all branches.
func (c *Client) FetchBranches(ctx context.Context) ([]models.Branch, error) {
	var branches []models.Branch
	if err := c.getJSON(ctx, "/branches/", nil, &branches); err != nil {
		return nil, err
	}
	return branches, nil
}

// FetchItems lists the item catalog.
func (c *Client) FetchItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := c.getJSON(ctx, "/items/", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateSale submits one sale record.
func (c *Client) CreateSale(ctx context.Context, req SaleRequest) (*models.SaleRecord, error) {
	headers := map[string]string{}
	if req.IdempotencyKey != "" {
		headers["Idempotency-Key"] = req.IdempotencyKey
	}

	var record saleRecord
	if err := c.postJSON(ctx, "/sales/", req, headers, &record, "Failed to complete sale"); err != nil {
		return nil, err
	}
	sale := record.toSaleRecord()
	if sale.PaymentMethod == "" {
		sale.PaymentMethod = req.PaymentMethod
	}
	return &sale, nil
}

// FetchSales lists sale records, optionally scoped to a branch.
func (c *Client) FetchSales(ctx context.Context, branchID *int64) ([]models.SaleRecord, error) {
	params := url.Values{}
	if branchID != nil {
		params.Set("branch_id", utils.Int64ToStr(*branchID))
	}

	var records []saleRecord
	if err := c.getJSON(ctx, "/sales/", params, &records); err != nil {
		return nil, err
	}

	sales := make([]models.SaleRecord, 0, len(records))
	for _, rec := range records {
		sales = append(sales, rec.toSaleRecord())
	}
	return sales, nil
}

// StockIn records new stock for a branch; the supplying source branch is
// determined server-side.
func (c *Client) StockIn(ctx context.Context, req models.StockInRequest) (*models.StockEntry, error) {
	var record inventoryRecord
	if err := c.postJSON(ctx, "/inventory/stock-in/", req, nil, &record, "Failed to stock in"); err != nil {
		return nil, err
	}
	entry := record.toStockEntry()
	return &entry, nil
}

// StockOut transfers stock between branches. The service returns the updated
// inventory record(s) for the affected branches.
func (c *Client) StockOut(ctx context.Context, req models.StockOutRequest) ([]models.StockEntry, error) {
	body, err := c.do(ctx, http.MethodPost, "/inventory/stockout/", nil, req, nil, "Failed to stock out")
	if err != nil {
		return nil, err
	}

	// The endpoint answers with either a single updated record or a pair
	// (source and destination). Accept both shapes.
	var records []inventoryRecord
	if err := json.Unmarshal(body, &records); err != nil {
		var single inventoryRecord
		if err := json.Unmarshal(body, &single); err != nil {
			return nil, wrapTransport("stock-out", fmt.Errorf("unexpected response shape: %w", err))
		}
		records = []inventoryRecord{single}
	}

	entries := make([]models.StockEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, rec.toStockEntry())
	}
	return entries, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	body, err := c.do(ctx, http.MethodGet, path, params, nil, nil, "Request failed")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return wrapTransport(path, fmt.Errorf("unexpected response shape: %w", err))
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload interface{}, headers map[string]string, out interface{}, generic string) error {
	body, err := c.do(ctx, http.MethodPost, path, nil, payload, headers, generic)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return wrapTransport(path, fmt.Errorf("unexpected response shape: %w", err))
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, payload interface{}, headers map[string]string, generic string) ([]byte, error) {
	fullURL := c.baseURL + path
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: encoding request: %w", path, err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%s: creating request: %w", path, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, wrapTransport(path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapTransport(path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newRejectionError(resp.StatusCode, body, generic)
	}
	return body, nil
}
