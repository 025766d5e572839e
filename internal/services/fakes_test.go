package services

import (
	"context"
	"sync"

	"branch_pos_backend/internal/models"
	"branch_pos_backend/internal/remote"
)

// fakeInventoryAPI is an in-memory stand-in for the remote inventory
// service. Call counters make "performs zero network calls" assertions
// possible.
type fakeInventoryAPI struct {
	mu sync.Mutex

	inventory           []models.StockEntry
	inventoryErr        error
	fetchInventoryCalls int
	lastSearch          string

	branches []models.Branch
	items    []models.Item

	saleFn       func(remote.SaleRequest) (*models.SaleRecord, error)
	saleRequests []remote.SaleRequest

	salesList []models.SaleRecord
	salesErr  error

	stockInFn     func(models.StockInRequest) (*models.StockEntry, error)
	stockInCalls  int
	stockOutFn    func(models.StockOutRequest) ([]models.StockEntry, error)
	stockOutCalls int
}

func (f *fakeInventoryAPI) FetchInventory(_ context.Context, _ *int64, search string) ([]models.StockEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchInventoryCalls++
	f.lastSearch = search
	if f.inventoryErr != nil {
		return nil, f.inventoryErr
	}
	out := make([]models.StockEntry, len(f.inventory))
	copy(out, f.inventory)
	return out, nil
}

func (f *fakeInventoryAPI) FetchBranches(_ context.Context) ([]models.Branch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.branches, nil
}

func (f *fakeInventoryAPI) FetchItems(_ context.Context) ([]models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items, nil
}

func (f *fakeInventoryAPI) CreateSale(_ context.Context, req remote.SaleRequest) (*models.SaleRecord, error) {
	f.mu.Lock()
	f.saleRequests = append(f.saleRequests, req)
	fn := f.saleFn
	f.mu.Unlock()

	if fn != nil {
		return fn(req)
	}
	return &models.SaleRecord{
		ID:            int64(len(f.saleRequests)),
		Item:          models.Item{ID: req.ItemID, Name: "Item"},
		Branch:        models.Branch{ID: req.BranchID, Name: "Main Branch"},
		Quantity:      req.Quantity,
		TotalAmount:   req.Price * float64(req.Quantity),
		PaymentMethod: req.PaymentMethod,
	}, nil
}

func (f *fakeInventoryAPI) FetchSales(_ context.Context, _ *int64) ([]models.SaleRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.salesErr != nil {
		return nil, f.salesErr
	}
	out := make([]models.SaleRecord, len(f.salesList))
	copy(out, f.salesList)
	return out, nil
}

func (f *fakeInventoryAPI) StockIn(_ context.Context, req models.StockInRequest) (*models.StockEntry, error) {
	f.mu.Lock()
	f.stockInCalls++
	fn := f.stockInFn
	f.mu.Unlock()

	if fn != nil {
		return fn(req)
	}
	return &models.StockEntry{ItemID: req.ItemID, BranchID: req.BranchID, Quantity: req.Quantity}, nil
}

func (f *fakeInventoryAPI) StockOut(_ context.Context, req models.StockOutRequest) ([]models.StockEntry, error) {
	f.mu.Lock()
	f.stockOutCalls++
	fn := f.stockOutFn
	f.mu.Unlock()

	if fn != nil {
		return fn(req)
	}
	return []models.StockEntry{{ItemID: req.ItemID, BranchID: req.ToBranchID, Quantity: req.Quantity}}, nil
}

func (f *fakeInventoryAPI) recordedSaleRequests() []remote.SaleRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]remote.SaleRequest, len(f.saleRequests))
	copy(out, f.saleRequests)
	return out
}

func (f *fakeInventoryAPI) inventoryCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetchInventoryCalls
}

// fakeSessionStore is an in-memory session.Store.
type fakeSessionStore struct {
	mu       sync.Mutex
	branches map[int64]int64
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{branches: make(map[int64]int64)}
}

func (s *fakeSessionStore) DefaultBranch(_ context.Context, userID int64) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.branches[userID]
	return id, ok, nil
}

func (s *fakeSessionStore) SetDefaultBranch(_ context.Context, userID int64, branchID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.branches[userID] = branchID
	return nil
}
