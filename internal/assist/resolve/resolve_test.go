package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supplysight/assistant-core/internal/assist/model"
)

type fakeSearcher struct {
	result    *model.SearchResult
	err       error
	calls     int
	lastQuery string
}

func (f *fakeSearcher) Search(_ context.Context, query string) (*model.SearchResult, error) {
	f.calls++
	f.lastQuery = query
	return f.result, f.err
}

func TestResolveStaticIntents(t *testing.T) {
	static := []model.IntentType{
		model.IntentOpenDashboard,
		model.IntentOpenQuickSync,
		model.IntentOpenUpload,
		model.IntentOpenSettings,
		model.IntentOpenNotifications,
		model.IntentOpenAllPurchaseOrders,
	}

	search := &fakeSearcher{}
	r := New(search)

	for _, it := range static {
		t.Run(string(it), func(t *testing.T) {
			res := r.Resolve(context.Background(), model.Intent{Type: it})
			require.NotNil(t, res.Action)
			assert.Equal(t, it, res.Action.Type)
			assert.NotEmpty(t, res.Message)
		})
	}
	assert.Zero(t, search.calls, "static intents must not hit search")
}

func TestResolveSupplier(t *testing.T) {
	t.Run("no query resolves to the generic workspace without I/O", func(t *testing.T) {
		search := &fakeSearcher{}
		res := New(search).Resolve(context.Background(), model.Intent{Type: model.IntentOpenActiveSuppliers})
		require.NotNil(t, res.Action)
		assert.Equal(t, model.IntentOpenActiveSuppliers, res.Action.Type)
		assert.Empty(t, res.Action.SupplierID)
		assert.Zero(t, search.calls)
	})

	t.Run("match carries the supplier id and name", func(t *testing.T) {
		search := &fakeSearcher{result: &model.SearchResult{
			Suppliers: []model.SupplierHit{{ID: "s1", Name: "Acme Corp"}, {ID: "s2", Name: "Acme Ltd"}},
		}}
		res := New(search).Resolve(context.Background(), model.Intent{
			Type: model.IntentOpenActiveSuppliers, Query: "Acme", HasQuery: true,
		})
		require.NotNil(t, res.Action)
		assert.Equal(t, "s1", res.Action.SupplierID)
		assert.Equal(t, "Opening supplier Acme Corp in Active Suppliers.", res.Message)
		assert.Equal(t, "Acme", search.lastQuery)
		assert.Equal(t, 1, search.calls)
	})

	t.Run("zero matches degrade to the generic workspace", func(t *testing.T) {
		search := &fakeSearcher{result: &model.SearchResult{}}
		res := New(search).Resolve(context.Background(), model.Intent{
			Type: model.IntentOpenActiveSuppliers, Query: "Nowhere", HasQuery: true,
		})
		require.NotNil(t, res.Action)
		assert.Equal(t, model.IntentOpenActiveSuppliers, res.Action.Type)
		assert.Empty(t, res.Action.SupplierID)
		assert.Contains(t, res.Message, `"Nowhere"`)
	})

	t.Run("search failure yields a message and no action", func(t *testing.T) {
		search := &fakeSearcher{err: errors.New("backend unreachable")}
		res := New(search).Resolve(context.Background(), model.Intent{
			Type: model.IntentOpenActiveSuppliers, Query: "Acme", HasQuery: true,
		})
		assert.Nil(t, res.Action)
		assert.Contains(t, res.Message, "backend unreachable")
	})

	t.Run("nil result without error is treated as a failure", func(t *testing.T) {
		search := &fakeSearcher{}
		res := New(search).Resolve(context.Background(), model.Intent{
			Type: model.IntentOpenActiveSuppliers, Query: "Acme", HasQuery: true,
		})
		assert.Nil(t, res.Action)
		assert.NotEmpty(t, res.Message)
	})
}

func TestResolvePurchaseOrder(t *testing.T) {
	t.Run("no query degrades proactively to the archive", func(t *testing.T) {
		search := &fakeSearcher{}
		res := New(search).Resolve(context.Background(), model.Intent{Type: model.IntentOpenPurchaseOrder})
		require.NotNil(t, res.Action)
		assert.Equal(t, model.IntentOpenAllPurchaseOrders, res.Action.Type)
		assert.Zero(t, search.calls)
	})

	t.Run("match carries order id and display number", func(t *testing.T) {
		search := &fakeSearcher{result: &model.SearchResult{
			PurchaseOrders: []model.PurchaseOrderHit{{ID: "o9", Number: "PO-1042"}},
		}}
		res := New(search).Resolve(context.Background(), model.Intent{
			Type: model.IntentOpenPurchaseOrder, Query: "1042", HasQuery: true,
		})
		require.NotNil(t, res.Action)
		assert.Equal(t, model.IntentOpenPurchaseOrder, res.Action.Type)
		assert.Equal(t, "o9", res.Action.OrderID)
		assert.Equal(t, "PO-1042", res.Action.OrderNumber)
		assert.Equal(t, "Opening purchase order PO-1042.", res.Message)
	})

	// The degrade law: a miss always yields the archive action, never an
	// action-less result.
	t.Run("zero matches fall back to the archive action", func(t *testing.T) {
		search := &fakeSearcher{result: &model.SearchResult{}}
		res := New(search).Resolve(context.Background(), model.Intent{
			Type: model.IntentOpenPurchaseOrder, Query: "9999", HasQuery: true,
		})
		require.NotNil(t, res.Action)
		assert.Equal(t, model.IntentOpenAllPurchaseOrders, res.Action.Type)
		assert.Contains(t, res.Message, `"9999"`)
	})

	t.Run("search failure yields a message and no action", func(t *testing.T) {
		search := &fakeSearcher{err: errors.New("timeout")}
		res := New(search).Resolve(context.Background(), model.Intent{
			Type: model.IntentOpenPurchaseOrder, Query: "1042", HasQuery: true,
		})
		assert.Nil(t, res.Action)
		assert.Contains(t, res.Message, "timeout")
	})
}

func TestResolveUnknownIntentDefensiveDefault(t *testing.T) {
	res := New(&fakeSearcher{}).Resolve(context.Background(), model.Intent{Type: "open-unknown"})
	assert.Nil(t, res.Action)
	assert.Empty(t, res.Message)
}
