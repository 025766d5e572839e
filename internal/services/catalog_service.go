package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"branch_pos_backend/internal/models"
	"branch_pos_backend/internal/remote"
	"branch_pos_backend/pkg/utils"
)

// localSearchLimit caps fallback search results to keep option lists
// responsive when filtering the whole snapshot locally.
const localSearchLimit = 40

// CatalogService maintains the locally known set of sellable stock entries.
// The cache is replaced wholesale on every refresh (never a mix of two
// snapshots) and carries a version counter so optimistic deltas computed
// against an older snapshot are discarded.
type CatalogService interface {
	Refresh(ctx context.Context, branchID *int64) ([]models.StockEntry, error)
	Search(ctx context.Context, query string, branchID *int64) []models.CatalogOption
	ApplyDelta(itemID int64, branchID int64, quantityDelta int, observedVersion uint64) bool
	Snapshot() []models.StockEntry
	Version() uint64
	EntryByItem(itemID int64, branchID *int64) (models.StockEntry, bool)
}

type catalogService struct {
	remote remote.InventoryAPI

	mu      sync.Mutex
	entries []models.StockEntry
	version uint64
}

// NewCatalogService creates a new instance of CatalogService.
func NewCatalogService(api remote.InventoryAPI) CatalogService {
	return &catalogService{remote: api}
}

// Refresh fetches the full or branch-scoped inventory snapshot and replaces
// the cache wholesale.
func (s *catalogService) Refresh(ctx context.Context, branchID *int64) ([]models.StockEntry, error) {
	entries, err := s.remote.FetchInventory(ctx, branchID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to refresh catalog: %w", err)
	}

	s.mu.Lock()
	s.entries = entries
	s.version++
	version := s.version
	s.mu.Unlock()

	utils.LogDebug("Catalog snapshot replaced", map[string]interface{}{
		"entries": len(entries),
		"version": version,
	})
	return entries, nil
}

// Search asks the remote service for a filtered option list first; on any
// failure of the remote query it degrades to a local case-insensitive
// substring filter over the last successful snapshot. Zero-quantity entries
// are excluded on both paths.
func (s *catalogService) Search(ctx context.Context, query string, branchID *int64) []models.CatalogOption {
	query = strings.TrimSpace(query)

	entries, err := s.remote.FetchInventory(ctx, branchID, query)
	if err == nil {
		options := make([]models.CatalogOption, 0, len(entries))
		for _, e := range entries {
			if e.Quantity <= 0 {
				continue
			}
			options = append(options, optionFromEntry(e))
		}
		return options
	}

	utils.LogWarn("Server-side inventory search unavailable, falling back to local filter", map[string]interface{}{
		"query": query,
		"error": err.Error(),
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	lower := strings.ToLower(query)
	options := make([]models.CatalogOption, 0)
	for _, e := range s.entries {
		if e.Quantity <= 0 {
			continue
		}
		if !strings.Contains(strings.ToLower(e.Name), lower) {
			continue
		}
		options = append(options, optionFromEntry(e))
		if len(options) >= localSearchLimit {
			break
		}
	}
	return options
}

// ApplyDelta adjusts the locally tracked quantity after a committed
// transaction so the terminal reflects reduced stock without waiting for the
// next refresh. The quantity is floored at zero; this is advisory display
// state only, the server value after the next refresh is authoritative.
// The delta is discarded (returns false) when a newer refresh has landed
// since the caller observed observedVersion.
func (s *catalogService) ApplyDelta(itemID int64, branchID int64, quantityDelta int, observedVersion uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.version != observedVersion {
		return false
	}

	for i := range s.entries {
		e := &s.entries[i]
		if e.ItemID != itemID {
			continue
		}
		if branchID > 0 && e.BranchID > 0 && e.BranchID != branchID {
			continue
		}
		e.Quantity += quantityDelta
		if e.Quantity < 0 {
			e.Quantity = 0
		}
		return true
	}
	return false
}

// Snapshot returns a copy of the current cache contents.
func (s *catalogService) Snapshot() []models.StockEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.StockEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Version returns the current snapshot version.
func (s *catalogService) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// EntryByItem returns the cached entry for an item, optionally requiring a
// branch match.
func (s *catalogService) EntryByItem(itemID int64, branchID *int64) (models.StockEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.ItemID != itemID {
			continue
		}
		if branchID != nil && e.BranchID > 0 && e.BranchID != *branchID {
			continue
		}
		return e, true
	}
	return models.StockEntry{}, false
}

func optionFromEntry(e models.StockEntry) models.CatalogOption {
	return models.CatalogOption{
		Value: e.ItemID,
		Label: fmt.Sprintf("%s — KES %s (%d in stock)", e.Name, utils.FormatAmount(e.Price), e.Quantity),
		Raw:   e,
	}
}
