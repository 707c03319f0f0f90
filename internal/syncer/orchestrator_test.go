package syncer

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/ETAnderson/storesync/internal/domain"
	"github.com/ETAnderson/storesync/internal/logging"
	"github.com/ETAnderson/storesync/internal/sites"
	"github.com/ETAnderson/storesync/internal/state"
	"github.com/ETAnderson/storesync/internal/storefront"
)

func testTable() sites.Table {
	return sites.Table{
		DefaultKey: "dev",
		Sites: map[string]sites.Site{
			"dev":   {SiteID: "site-dev", Name: "Dev"},
			"other": {SiteID: "site-other", Name: "Other"},
		},
	}
}

func newTestOrchestrator(fake *storefront.Fake) (*Orchestrator, *state.MemoryStore) {
	st := state.NewMemoryStore()
	o := NewOrchestrator(DefaultFilter(), NewMapper("USD"), st, fake, testTable(), nil)
	return o, st
}

func TestSyncItem_CreateThenUpdate(t *testing.T) {
	fake := storefront.NewFake()
	fake.NextID = "prod_abc"
	o, st := newTestOrchestrator(fake)

	item := domain.CatalogItem{
		Code:         "SKU1",
		Name:         "Widget",
		IsSalesItem:  true,
		StandardRate: 19.99,
	}

	first := o.SyncItem(context.Background(), item)
	if first.Status != domain.SyncStatusCreated || first.ExternalID != "prod_abc" {
		t.Fatalf("first sync: %+v", first)
	}

	id, ok, err := st.GetExternalID(context.Background(), "SKU1")
	if err != nil || !ok || id != "prod_abc" {
		t.Fatalf("stored id: %q ok=%v err=%v", id, ok, err)
	}

	// Second sync with no field change still issues an update against the
	// same id.
	second := o.SyncItem(context.Background(), item)
	if second.Status != domain.SyncStatusUpdated || second.ExternalID != "prod_abc" {
		t.Fatalf("second sync: %+v", second)
	}

	if n := len(fake.CallsFor("create")); n != 1 {
		t.Fatalf("expected exactly one create call, got %d", n)
	}
	updates := fake.CallsFor("update")
	if len(updates) != 1 {
		t.Fatalf("expected exactly one update call, got %d", len(updates))
	}
	if updates[0].ProductID != "prod_abc" || updates[0].SiteID != "site-dev" {
		t.Fatalf("update call: %+v", updates[0])
	}
}

func TestSyncItem_IneligibleMakesNoNetworkCall(t *testing.T) {
	fake := storefront.NewFake()
	o, _ := newTestOrchestrator(fake)

	var logBuf bytes.Buffer
	o.Logger = logging.NewStdLoggerTo(&logBuf, "")

	out := o.SyncItem(context.Background(), domain.CatalogItem{
		Code:         "SKU2",
		IsSalesItem:  false,
		StandardRate: 10,
	})

	if out.Status != domain.SyncStatusSkipped || out.Reason != "not_sales_item" {
		t.Fatalf("outcome: %+v", out)
	}
	if len(fake.Calls) != 0 {
		t.Fatalf("expected no network calls, got %d", len(fake.Calls))
	}
	if !strings.Contains(logBuf.String(), "skip item SKU2: not_sales_item") {
		t.Fatalf("skip not logged: %q", logBuf.String())
	}
}

func TestSyncItem_UnpricedItemSkipped(t *testing.T) {
	fake := storefront.NewFake()
	o, _ := newTestOrchestrator(fake)

	out := o.SyncItem(context.Background(), domain.CatalogItem{
		Code:        "SKU3",
		IsSalesItem: true,
	})

	if out.Status != domain.SyncStatusSkipped || out.Reason != "no_standard_rate" {
		t.Fatalf("outcome: %+v", out)
	}
	if len(fake.Calls) != 0 {
		t.Fatalf("expected no network calls, got %d", len(fake.Calls))
	}
}

func TestSyncItem_UpdateWithoutStoredIDFallsBackToCreate(t *testing.T) {
	fake := storefront.NewFake()
	o, st := newTestOrchestrator(fake)

	item := domain.CatalogItem{
		Code:         "SKU4",
		Name:         "Gadget",
		IsSalesItem:  true,
		StandardRate: 7,
	}

	// The host fires an "updated" hook, but no id was ever stored. The
	// orchestrator treats create and update hooks uniformly, so this must
	// take the create path rather than erroring.
	out := o.SyncItem(context.Background(), item)
	if out.Status != domain.SyncStatusCreated {
		t.Fatalf("outcome: %+v", out)
	}
	if len(fake.CallsFor("update")) != 0 {
		t.Fatalf("no update call expected")
	}

	if _, ok, _ := st.GetExternalID(context.Background(), "SKU4"); !ok {
		t.Fatalf("expected stored id after fallback create")
	}
}

func TestSyncItem_CreateFailureLeavesNoRecord(t *testing.T) {
	fake := storefront.NewFake()
	fake.FailCreate = storefront.NetworkError("create", "connection refused")
	o, st := newTestOrchestrator(fake)

	item := domain.CatalogItem{
		Code:         "SKU5",
		Name:         "Widget",
		IsSalesItem:  true,
		StandardRate: 3,
	}

	out := o.SyncItem(context.Background(), item)
	if out.Status != domain.SyncStatusFailed || out.ErrorKind != domain.ErrorKindNetwork {
		t.Fatalf("outcome: %+v", out)
	}

	if _, ok, _ := st.GetExternalID(context.Background(), "SKU5"); ok {
		t.Fatalf("no sync record may be written on create failure")
	}

	// Next attempt retries the create path, not update.
	fake.FailCreate = nil
	fake.NextID = "prod_retry"
	retry := o.SyncItem(context.Background(), item)
	if retry.Status != domain.SyncStatusCreated || retry.ExternalID != "prod_retry" {
		t.Fatalf("retry outcome: %+v", retry)
	}
	if len(fake.CallsFor("update")) != 0 {
		t.Fatalf("retry must not issue updates")
	}
}

func TestSyncItem_UpdateFailureKeepsStoredID(t *testing.T) {
	fake := storefront.NewFake()
	fake.NextID = "prod_x"
	o, st := newTestOrchestrator(fake)

	item := domain.CatalogItem{
		Code:         "SKU6",
		Name:         "Widget",
		IsSalesItem:  true,
		StandardRate: 3,
	}

	if out := o.SyncItem(context.Background(), item); out.Status != domain.SyncStatusCreated {
		t.Fatalf("setup create failed: %+v", out)
	}

	fake.FailUpdate = storefront.NetworkError("update", "timeout")
	out := o.SyncItem(context.Background(), item)
	if out.Status != domain.SyncStatusFailed || out.ErrorKind != domain.ErrorKindNetwork {
		t.Fatalf("outcome: %+v", out)
	}

	// The item stays in its prior state; the next attempt is an update.
	id, ok, _ := st.GetExternalID(context.Background(), "SKU6")
	if !ok || id != "prod_x" {
		t.Fatalf("stored id changed: %q ok=%v", id, ok)
	}

	fake.FailUpdate = nil
	if out := o.SyncItem(context.Background(), item); out.Status != domain.SyncStatusUpdated || out.ExternalID != "prod_x" {
		t.Fatalf("retry outcome: %+v", out)
	}
}

func TestSyncItemForSite(t *testing.T) {
	fake := storefront.NewFake()
	o, _ := newTestOrchestrator(fake)

	item := domain.CatalogItem{
		Code:         "SKU7",
		Name:         "Widget",
		IsSalesItem:  true,
		StandardRate: 3,
	}

	out := o.SyncItemForSite(context.Background(), item, "other")
	if out.Status != domain.SyncStatusCreated {
		t.Fatalf("outcome: %+v", out)
	}
	if fake.Calls[0].SiteID != "site-other" {
		t.Fatalf("site: %q", fake.Calls[0].SiteID)
	}

	bad := o.SyncItemForSite(context.Background(), item, "nope")
	if bad.Status != domain.SyncStatusFailed || bad.ErrorKind != domain.ErrorKindValidation {
		t.Fatalf("unknown site outcome: %+v", bad)
	}
}

// errStore fails identifier resolution to exercise the create fallback.
type errStore struct {
	*state.MemoryStore
	failGet bool
}

func (s *errStore) GetExternalID(ctx context.Context, itemCode string) (string, bool, error) {
	if s.failGet {
		return "", false, context.DeadlineExceeded
	}
	return s.MemoryStore.GetExternalID(ctx, itemCode)
}

func TestSyncItem_ResolutionFailureFallsBackToCreate(t *testing.T) {
	fake := storefront.NewFake()
	fake.NextID = "prod_y"

	st := &errStore{MemoryStore: state.NewMemoryStore(), failGet: true}
	o := NewOrchestrator(DefaultFilter(), NewMapper("USD"), st, fake, testTable(), nil)

	item := domain.CatalogItem{
		Code:         "SKU8",
		Name:         "Widget",
		IsSalesItem:  true,
		StandardRate: 3,
	}

	out := o.SyncItem(context.Background(), item)
	if out.Status != domain.SyncStatusCreated || out.ExternalID != "prod_y" {
		t.Fatalf("outcome: %+v", out)
	}
}
