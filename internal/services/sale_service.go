package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"branch_pos_backend/internal/models"
	"branch_pos_backend/internal/remote"
	"branch_pos_backend/internal/session"
	"branch_pos_backend/pkg/utils"

	"github.com/google/uuid"
)

var ErrBranchMissing = fmt.Errorf("%w: branch_id missing. Cannot complete sale", ErrValidation)

// genericSaleFailure is surfaced when a failed submission carries no
// server-provided detail.
const genericSaleFailure = "Failed to complete sale"

// recentSalesLimit bounds the recent-history list shown next to the cart.
const recentSalesLimit = 8

// CheckoutStatus is the terminal state of one completion attempt.
type CheckoutStatus string

const (
	CheckoutCommitted CheckoutStatus = "committed"
	CheckoutFailed    CheckoutStatus = "failed"
)

// CheckoutResult reports one completion attempt. On failure the cart is
// intentionally left populated so the operator can inspect and retry; lines
// already committed server-side stay committed (the server is the source of
// truth) and a retry may double-submit them. Known limitation until the
// remote service supports atomic batch submission; the per-line idempotency
// keys are sent so a future server can deduplicate.
type CheckoutResult struct {
	Status  CheckoutStatus  `json:"status"`
	Receipt *models.Receipt `json:"receipt,omitempty"`
}

// SaleService turns a cart into remote sale submissions and reconciles the
// catalog cache on success.
type SaleService interface {
	CompleteSale(ctx context.Context, sess models.SessionContext, explicitBranchID *int64) (*CheckoutResult, error)
	RecentSales(ctx context.Context, branchID *int64) ([]models.SaleRecord, error)
}

type saleService struct {
	remote   remote.InventoryAPI
	catalog  CatalogService
	carts    CartService
	receipts ReceiptService
	sessions session.Store

	mu        sync.Mutex
	lastSales []models.SaleRecord
}

// NewSaleService creates a new instance of SaleService.
func NewSaleService(
	api remote.InventoryAPI,
	catalog CatalogService,
	carts CartService,
	receipts ReceiptService,
	sessions session.Store,
) SaleService {
	return &saleService{
		remote:   api,
		catalog:  catalog,
		carts:    carts,
		receipts: receipts,
		sessions: sessions,
	}
}

// CompleteSale runs one completion attempt: Idle -> Submitting ->
// {Committed | Failed}. Every cart line becomes one concurrent remote
// submission; the pipeline waits for all of them before observing success
// or failure. Preconditions (non-empty cart, no submission in flight, a
// resolvable branch) fail before any network call.
func (s *saleService) CompleteSale(ctx context.Context, sess models.SessionContext, explicitBranchID *int64) (*CheckoutResult, error) {
	cart, err := s.carts.BeginCheckout(sess.UserID)
	if err != nil {
		return nil, err
	}

	branchID, ok := s.resolveBranch(ctx, sess, explicitBranchID)
	if !ok {
		s.carts.FinishCheckout(sess.UserID, false, "branch_id missing. Cannot complete sale.")
		return nil, ErrBranchMissing
	}

	requests := make([]remote.SaleRequest, len(cart.Lines))
	for i, line := range cart.Lines {
		requests[i] = remote.SaleRequest{
			ItemID:         line.ItemID,
			BranchID:       branchID,
			Quantity:       line.Quantity,
			PaymentMethod:  cart.PaymentMethod,
			Price:          line.UnitPrice,
			IdempotencyKey: uuid.NewString(),
		}
	}

	observedVersion := s.catalog.Version()

	// One concurrent submission per line, then a join. No streaming of
	// partial results; the operator waits for resolution.
	records := make([]*models.SaleRecord, len(requests))
	errs := make([]error, len(requests))
	var wg sync.WaitGroup
	for i := range requests {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			records[i], errs[i] = s.remote.CreateSale(ctx, requests[i])
		}(i)
	}
	wg.Wait()

	for i, submitErr := range errs {
		if submitErr == nil {
			continue
		}
		message := genericSaleFailure
		if rej, ok := remote.AsRejection(submitErr); ok {
			message = rej.Detail
		}
		utils.LogError(submitErr, "Sale submission failed")
		// No partial reconciliation: lines already committed server-side
		// stay committed, the cart stays populated for inspection.
		s.carts.FinishCheckout(sess.UserID, false, message)
		return nil, fmt.Errorf("sale submission for item %d failed: %w", requests[i].ItemID, submitErr)
	}

	sales := make([]models.SaleRecord, len(records))
	branchName := ""
	for i, rec := range records {
		sales[i] = *rec
		s.catalog.ApplyDelta(rec.Item.ID, branchID, -rec.Quantity, observedVersion)
		if branchName == "" {
			branchName = rec.Branch.Name
		}
	}

	receipt := BuildReceipt(sales, cart.Total(), cart.PaymentMethod, branchName, time.Now())
	s.receipts.Save(&receipt)

	s.carts.FinishCheckout(sess.UserID, true, "")

	go s.refreshHistory(branchID)

	return &CheckoutResult{Status: CheckoutCommitted, Receipt: &receipt}, nil
}

// RecentSales returns the newest sales for a branch, oldest first, capped at
// recentSalesLimit. Falls back to the last successfully fetched list when
// the remote service is unreachable.
func (s *saleService) RecentSales(ctx context.Context, branchID *int64) ([]models.SaleRecord, error) {
	sales, err := s.remote.FetchSales(ctx, branchID)
	if err != nil {
		s.mu.Lock()
		cached := s.lastSales
		s.mu.Unlock()
		if cached != nil {
			return cached, nil
		}
		return nil, fmt.Errorf("failed to fetch sales history: %w", err)
	}

	recent := trimRecent(sales)
	s.mu.Lock()
	s.lastSales = recent
	s.mu.Unlock()
	return recent, nil
}

func (s *saleService) resolveBranch(ctx context.Context, sess models.SessionContext, explicit *int64) (int64, bool) {
	if explicit != nil && *explicit > 0 {
		return *explicit, true
	}
	if sess.BranchID != nil && *sess.BranchID > 0 {
		return *sess.BranchID, true
	}
	stored, ok, err := s.sessions.DefaultBranch(ctx, sess.UserID)
	if err != nil {
		utils.LogError(err, "Failed to read default branch from session store")
		return 0, false
	}
	if ok && stored > 0 {
		return stored, true
	}
	return 0, false
}

func (s *saleService) refreshHistory(branchID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := s.RecentSales(ctx, &branchID); err != nil {
		utils.LogError(err, "Background sales history refresh failed")
	}
}

// trimRecent keeps the newest recentSalesLimit records and reverses them so
// the oldest of the kept window renders first, matching the terminal's
// history panel.
func trimRecent(sales []models.SaleRecord) []models.SaleRecord {
	n := len(sales)
	if n > recentSalesLimit {
		sales = sales[:recentSalesLimit]
	}
	out := make([]models.SaleRecord, 0, len(sales))
	for i := len(sales) - 1; i >= 0; i-- {
		out = append(out, sales[i])
	}
	return out
}
