package models

// StockEntry represents the available quantity of one item at one branch,
// at the branch-specific unit price. The client's copy is a cache refreshed
// after every mutating operation; the remote inventory service is
// authoritative.
type StockEntry struct {
	InventoryID int64   `json:"inventory_id"`
	ItemID      int64   `json:"item_id"`
	BranchID    int64   `json:"branch_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// CatalogOption is a strongly-typed selectable entry for the sale option
// list, carrying the full StockEntry so downstream consumers never need to
// guess at the payload shape.
type CatalogOption struct {
	Value int64      `json:"value"` // item ID
	Label string     `json:"label"`
	Raw   StockEntry `json:"raw"`
}

// Branch is a physical retail location holding its own inventory and prices.
type Branch struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Item is a catalog item independent of any branch.
type Item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
