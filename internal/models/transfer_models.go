package models

// StockInRequest injects new quantity into a branch. The supplying source
// branch is determined server-side.
type StockInRequest struct {
	BranchID int64 `json:"branch_id" binding:"required"`
	ItemID   int64 `json:"item_id" binding:"required"`
	Quantity int   `json:"quantity" binding:"required"`
}

// StockOutRequest moves quantity of an item from one branch to another.
type StockOutRequest struct {
	FromBranchID int64 `json:"from_branch_id" binding:"required"`
	ToBranchID   int64 `json:"to_branch_id"`
	ItemID       int64 `json:"item_id" binding:"required"`
	Quantity     int   `json:"quantity"`
}
