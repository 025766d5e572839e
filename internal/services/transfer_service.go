package services

import (
	"context"
	"fmt"

	"branch_pos_backend/internal/models"
	"branch_pos_backend/internal/remote"
	"branch_pos_backend/pkg/utils"
)

// Transfer validation errors. All are local: a request failing any of these
// checks performs no network call.
var (
	ErrNoBranchSelected  = fmt.Errorf("%w: please select a branch to stock in", ErrValidation)
	ErrNoDestination     = fmt.Errorf("%w: please select a sub-branch to send stock to", ErrValidation)
	ErrSameBranch        = fmt.Errorf("%w: source and destination branch must differ", ErrValidation)
	ErrInvalidQuantity   = fmt.Errorf("%w: quantity must be greater than zero", ErrValidation)
	ErrInsufficientStock = fmt.Errorf("%w: insufficient stock", ErrValidation)
)

// TransferService moves stock between branches: stock-in injects quantity
// into a branch from the central supply, stock-out transfers quantity from
// one branch to another. Both follow Idle -> Validating -> Submitting ->
// {Committed | Failed}; validation failures never reach the network, and a
// committed transfer refreshes the affected branch's catalog snapshot.
type TransferService interface {
	StockIn(ctx context.Context, req models.StockInRequest) (*models.StockEntry, error)
	StockOut(ctx context.Context, req models.StockOutRequest) ([]models.StockEntry, error)
}

type transferService struct {
	remote  remote.InventoryAPI
	catalog CatalogService
}

// NewTransferService creates a new instance of TransferService.
func NewTransferService(api remote.InventoryAPI, catalog CatalogService) TransferService {
	return &transferService{remote: api, catalog: catalog}
}

// StockIn injects new quantity into a branch. The supplying source branch is
// determined server-side.
func (s *transferService) StockIn(ctx context.Context, req models.StockInRequest) (*models.StockEntry, error) {
	if req.BranchID <= 0 {
		return nil, ErrNoBranchSelected
	}
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	entry, err := s.remote.StockIn(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("stock-in for item %d failed: %w", req.ItemID, err)
	}

	s.refreshBranch(ctx, req.BranchID)
	return entry, nil
}

// StockOut transfers quantity from a source branch to a destination branch.
// The availability check against the cached source quantity is a soft check:
// a race with another operator can still cause a server-side rejection,
// which is surfaced verbatim.
func (s *transferService) StockOut(ctx context.Context, req models.StockOutRequest) ([]models.StockEntry, error) {
	if req.ToBranchID <= 0 {
		return nil, ErrNoDestination
	}
	if req.FromBranchID == req.ToBranchID {
		return nil, ErrSameBranch
	}
	if req.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if entry, known := s.catalog.EntryByItem(req.ItemID, &req.FromBranchID); known && entry.Quantity < req.Quantity {
		return nil, fmt.Errorf("%w: only %d available at source branch for %s", ErrInsufficientStock, entry.Quantity, entry.Name)
	}

	entries, err := s.remote.StockOut(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("stock-out for item %d failed: %w", req.ItemID, err)
	}

	s.refreshBranch(ctx, req.FromBranchID)
	return entries, nil
}

// refreshBranch replaces the catalog snapshot for the affected branch. The
// transfer is already committed server-side at this point, so a refresh
// failure is logged rather than failing the operation.
func (s *transferService) refreshBranch(ctx context.Context, branchID int64) {
	if _, err := s.catalog.Refresh(ctx, &branchID); err != nil {
		utils.LogError(err, "Catalog refresh after transfer failed")
	}
}
