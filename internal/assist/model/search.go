package model

import "context"

// SupplierHit is one supplier match from the unified search collaborator.
type SupplierHit struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PurchaseOrderHit is one purchase-order match from the unified search
// collaborator. Number is the merchant-facing display number.
type PurchaseOrderHit struct {
	ID     string `json:"id"`
	Number string `json:"number"`
}

// SearchResult holds ranked matches per category. The resolver only consults
// the first element of each list.
type SearchResult struct {
	Suppliers      []SupplierHit      `json:"suppliers"`
	PurchaseOrders []PurchaseOrderHit `json:"purchase_orders"`
}

// Searcher is the unified-search collaborator keyed by a free-text query.
type Searcher interface {
	Search(ctx context.Context, query string) (*SearchResult, error)
}
