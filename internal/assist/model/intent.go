package model

// IntentType identifies one of the eight navigation destinations the
// assistant can route a merchant to. It is a closed set: consumers switch
// over it exhaustively, so adding a destination is a compile-visible change.
type IntentType string

const (
	IntentOpenDashboard         IntentType = "open-dashboard"
	IntentOpenQuickSync         IntentType = "open-quick-sync"
	IntentOpenActiveSuppliers   IntentType = "open-active-suppliers"
	IntentOpenAllPurchaseOrders IntentType = "open-all-purchase-orders"
	IntentOpenPurchaseOrder     IntentType = "open-purchase-order"
	IntentOpenSettings          IntentType = "open-settings"
	IntentOpenUpload            IntentType = "open-upload"
	IntentOpenNotifications     IntentType = "open-notifications"
)

// Valid reports whether t is one of the known intent tags.
func (t IntentType) Valid() bool {
	switch t {
	case IntentOpenDashboard, IntentOpenQuickSync, IntentOpenActiveSuppliers,
		IntentOpenAllPurchaseOrders, IntentOpenPurchaseOrder, IntentOpenSettings,
		IntentOpenUpload, IntentOpenNotifications:
		return true
	}
	return false
}

// Intent is the classified purpose of one user submission. Query carries the
// extracted entity text for supplier and purchase-order intents; HasQuery
// distinguishes "no query" from an explicitly empty one (a forced
// purchase-order intent always has a query, even when the text was empty).
type Intent struct {
	Type     IntentType
	Query    string
	HasQuery bool
}

// Action is an intent with all entity ambiguity settled into a routable
// destination. SupplierID is set only for resolved open-active-suppliers
// actions; OrderID and OrderNumber only for resolved open-purchase-order
// actions.
type Action struct {
	Type        IntentType `json:"type"`
	SupplierID  string     `json:"supplier_id,omitempty"`
	OrderID     string     `json:"order_id,omitempty"`
	OrderNumber string     `json:"order_number,omitempty"`
}

// Resolution pairs an optional routable action with an optional user-facing
// status message. At least one field is populated for every intent the
// resolver knows; both stay empty only for intent tags with no resolver
// branch.
type Resolution struct {
	Action  *Action
	Message string
}

// ActivityLabels maps every intent tag to the display label recorded in
// activity log entries. The table is fixed; entries use it verbatim.
var ActivityLabels = map[IntentType]string{
	IntentOpenDashboard:         "Analytics dashboard",
	IntentOpenQuickSync:         "Quick sync",
	IntentOpenActiveSuppliers:   "Active suppliers workspace",
	IntentOpenAllPurchaseOrders: "Purchase order archive",
	IntentOpenPurchaseOrder:     "Purchase order detail",
	IntentOpenSettings:          "Settings",
	IntentOpenUpload:            "Bulk upload",
	IntentOpenNotifications:     "Notification center",
}
