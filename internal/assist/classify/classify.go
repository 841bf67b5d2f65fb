// Package classify maps free user text (or a pre-labeled quick action) onto
// one of the eight navigation intents. Matching is case-insensitive substring
// matching against an explicitly ordered rule list; the first rule that
// matches wins, so precedence lives in the slice order, not in the keywords.
package classify

import (
	"regexp"
	"strings"

	"github.com/supplysight/assistant-core/internal/assist/extract"
	"github.com/supplysight/assistant-core/internal/assist/model"
)

type rule struct {
	intent  model.IntentType
	phrases []string
}

// orderedRules is checked top to bottom. The archive phrases sit ahead of the
// generic dashboard keywords so "purchase orders overview" routes to the
// archive list, and both sit ahead of the supplier and single-PO fallthroughs
// below.
var orderedRules = []rule{
	{model.IntentOpenQuickSync, []string{"quick sync", "run sync", "schedule sync", "start sync"}},
	{model.IntentOpenUpload, []string{"bulk upload", "process po", "upload", "ingest"}},
	{model.IntentOpenNotifications, []string{"notification", "alert center", "alerts"}},
	{model.IntentOpenSettings, []string{"settings", "configure", "configuration"}},
	{model.IntentOpenDashboard, []string{"analytics", "reports", "insights"}},
	{model.IntentOpenDashboard, []string{"optimize", "optimization"}},
	{model.IntentOpenAllPurchaseOrders, []string{"all purchase orders", "purchase order list", "purchase orders overview"}},
	{model.IntentOpenDashboard, []string{"dashboard", "overview", "home screen"}},
}

// poDigits matches "po" directly followed by digits, e.g. "po1042".
var poDigits = regexp.MustCompile(`\bpo\d+`)

// Classifier turns sanitised text into a typed intent.
type Classifier struct {
	supplierQueryMinLen int
}

func New(cfg model.ClassifierConfig) *Classifier {
	return &Classifier{supplierQueryMinLen: cfg.SupplierQueryMinLen}
}

// Classify maps text onto an intent. When forced carries a valid intent tag
// (a quick-action button), keyword matching is skipped entirely and the
// intent is constructed directly. The second return value reports whether any
// intent was produced; a miss is a valid outcome, and the caller must not
// synthesise a fallback.
func (c *Classifier) Classify(text string, forced model.IntentType) (model.Intent, bool) {
	if forced.Valid() {
		return c.forcedIntent(text, forced), true
	}

	lower := strings.ToLower(extract.Sanitize(text))
	if lower == "" {
		return model.Intent{}, false
	}

	for _, r := range orderedRules {
		for _, p := range r.phrases {
			if strings.Contains(lower, p) {
				return model.Intent{Type: r.intent}, true
			}
		}
	}

	if strings.Contains(lower, "supplier") || strings.Contains(lower, "vendor") {
		intent := model.Intent{Type: model.IntentOpenActiveSuppliers}
		if q, ok := extract.SupplierQuery(text); ok && len(q) >= c.supplierQueryMinLen {
			intent.Query = q
			intent.HasQuery = true
		}
		return intent, true
	}

	if strings.Contains(lower, "purchase order") ||
		strings.Contains(" "+lower+" ", " po ") ||
		strings.HasPrefix(lower, "po-") ||
		poDigits.MatchString(lower) {
		return c.purchaseOrderIntent(text), true
	}

	return model.Intent{}, false
}

// forcedIntent constructs an intent for a pre-labeled quick action. A forced
// purchase-order intent always carries a query, falling back to the full
// sanitised text; a forced supplier intent carries one only when extraction
// succeeds.
func (c *Classifier) forcedIntent(text string, forced model.IntentType) model.Intent {
	switch forced {
	case model.IntentOpenPurchaseOrder:
		return c.purchaseOrderIntent(text)
	case model.IntentOpenActiveSuppliers:
		intent := model.Intent{Type: forced}
		if q, ok := extract.SupplierQuery(text); ok {
			intent.Query = q
			intent.HasQuery = true
		}
		return intent
	default:
		return model.Intent{Type: forced}
	}
}

func (c *Classifier) purchaseOrderIntent(text string) model.Intent {
	q, ok := extract.PurchaseOrderQuery(text)
	if !ok {
		q = extract.Sanitize(text)
	}
	return model.Intent{Type: model.IntentOpenPurchaseOrder, Query: q, HasQuery: true}
}
