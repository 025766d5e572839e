package session

import "context"

// Store keeps per-operator session identity that must survive a terminal
// reload: currently only the default branch the operator sells from. The
// sale pipeline falls back to it when a checkout arrives without an
// explicit branch.
type Store interface {
	DefaultBranch(ctx context.Context, userID int64) (int64, bool, error)
	SetDefaultBranch(ctx context.Context, userID int64, branchID int64) error
}

// NoopStore is used when no Redis is configured (single-terminal dev
// setups); every lookup misses.
type NoopStore struct{}

func (NoopStore) DefaultBranch(_ context.Context, _ int64) (int64, bool, error) {
	return 0, false, nil
}

func (NoopStore) SetDefaultBranch(_ context.Context, _ int64, _ int64) error {
	return nil
}
