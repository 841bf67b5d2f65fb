// Package resolve turns a classified intent into a routable action plus a
// user-facing message. Entity-bearing intents may require one unified-search
// call; everything else resolves from a fixed table with no I/O.
//
// The core policy is degrade-to-broader-action: a failed or empty entity
// lookup never dead-ends the user. A purchase order that cannot be located
// falls back to the full archive, an unknown supplier falls back to the
// general suppliers workspace. Only a search failure itself produces a
// message without an action.
package resolve

import (
	"context"
	"fmt"

	"github.com/supplysight/assistant-core/internal/assist/model"
	logx "github.com/supplysight/assistant-core/pkg/logger"
)

// static resolutions for the six intents with no entity ambiguity.
var staticResolutions = map[model.IntentType]model.Resolution{
	model.IntentOpenDashboard: {
		Action:  &model.Action{Type: model.IntentOpenDashboard},
		Message: "Opening the analytics dashboard.",
	},
	model.IntentOpenQuickSync: {
		Action:  &model.Action{Type: model.IntentOpenQuickSync},
		Message: "Opening Quick Sync so you can start a run.",
	},
	model.IntentOpenUpload: {
		Action:  &model.Action{Type: model.IntentOpenUpload},
		Message: "Opening the bulk upload workspace.",
	},
	model.IntentOpenSettings: {
		Action:  &model.Action{Type: model.IntentOpenSettings},
		Message: "Opening settings.",
	},
	model.IntentOpenNotifications: {
		Action:  &model.Action{Type: model.IntentOpenNotifications},
		Message: "Opening the notification center.",
	},
	model.IntentOpenAllPurchaseOrders: {
		Action:  &model.Action{Type: model.IntentOpenAllPurchaseOrders},
		Message: "Opening all purchase orders.",
	},
}

// Resolver settles intent ambiguity against the unified-search collaborator.
type Resolver struct {
	search model.Searcher
}

func New(search model.Searcher) *Resolver {
	return &Resolver{search: search}
}

// Resolve produces the resolution for an intent. It issues at most one
// outbound search call, never retries, and never returns an error: a failed
// search surfaces as a message for the user.
func (r *Resolver) Resolve(ctx context.Context, intent model.Intent) model.Resolution {
	if res, ok := staticResolutions[intent.Type]; ok {
		return res
	}

	switch intent.Type {
	case model.IntentOpenActiveSuppliers:
		return r.resolveSupplier(ctx, intent)
	case model.IntentOpenPurchaseOrder:
		return r.resolvePurchaseOrder(ctx, intent)
	}

	// Defensive default for intent tags with no resolver branch.
	return model.Resolution{}
}

func (r *Resolver) resolveSupplier(ctx context.Context, intent model.Intent) model.Resolution {
	if !intent.HasQuery {
		return model.Resolution{
			Action:  &model.Action{Type: model.IntentOpenActiveSuppliers},
			Message: "Opening the Active Suppliers workspace.",
		}
	}

	result, err := r.search.Search(ctx, intent.Query)
	if err != nil || result == nil {
		logx.Warn().Err(err).Str("query", intent.Query).Msg("supplier search failed")
		return model.Resolution{
			Message: fmt.Sprintf("I couldn't search suppliers right now (%s). Please try again in a moment.", failureReason(err)),
		}
	}

	if len(result.Suppliers) == 0 {
		return model.Resolution{
			Action:  &model.Action{Type: model.IntentOpenActiveSuppliers},
			Message: fmt.Sprintf("I couldn't find a supplier matching %q, so I'll open the Active Suppliers workspace instead.", intent.Query),
		}
	}

	hit := result.Suppliers[0]
	return model.Resolution{
		Action:  &model.Action{Type: model.IntentOpenActiveSuppliers, SupplierID: hit.ID},
		Message: fmt.Sprintf("Opening supplier %s in Active Suppliers.", hit.Name),
	}
}

func (r *Resolver) resolvePurchaseOrder(ctx context.Context, intent model.Intent) model.Resolution {
	if !intent.HasQuery {
		return model.Resolution{
			Action:  &model.Action{Type: model.IntentOpenAllPurchaseOrders},
			Message: "Opening all purchase orders so you can pick the right record.",
		}
	}

	result, err := r.search.Search(ctx, intent.Query)
	if err != nil || result == nil {
		logx.Warn().Err(err).Str("query", intent.Query).Msg("purchase order search failed")
		return model.Resolution{
			Message: fmt.Sprintf("I couldn't look up purchase orders right now (%s). Please try again in a moment.", failureReason(err)),
		}
	}

	if len(result.PurchaseOrders) == 0 {
		return model.Resolution{
			Action:  &model.Action{Type: model.IntentOpenAllPurchaseOrders},
			Message: fmt.Sprintf("I couldn't locate purchase order %q, so I'll open the full list instead.", intent.Query),
		}
	}

	hit := result.PurchaseOrders[0]
	return model.Resolution{
		Action: &model.Action{
			Type:        model.IntentOpenPurchaseOrder,
			OrderID:     hit.ID,
			OrderNumber: hit.Number,
		},
		Message: fmt.Sprintf("Opening purchase order %s.", hit.Number),
	}
}

func failureReason(err error) string {
	if err == nil {
		return "no data returned"
	}
	return err.Error()
}
