package syncer

import (
	"context"
	"log"
	"sync"

	"github.com/ETAnderson/storesync/internal/domain"
	"github.com/ETAnderson/storesync/internal/sites"
	"github.com/ETAnderson/storesync/internal/state"
	"github.com/ETAnderson/storesync/internal/storefront"
)

// Orchestrator composes the eligibility filter, the field mapper, the
// identifier store and the storefront client into one create-or-update
// cycle per item. Every failure is contained here: the host's own write
// already succeeded, so a sync attempt reports a failed outcome instead of
// returning an error.
type Orchestrator struct {
	Filter  Filter
	Mapper  Mapper
	Records state.Store
	Client  storefront.Client
	Sites   sites.Table
	Logger  *log.Logger

	mu        sync.Mutex
	itemLocks map[string]*sync.Mutex
}

func NewOrchestrator(filter Filter, mapper Mapper, records state.Store, client storefront.Client, table sites.Table, logger *log.Logger) *Orchestrator {
	return &Orchestrator{
		Filter:    filter,
		Mapper:    mapper,
		Records:   records,
		Client:    client,
		Sites:     table,
		Logger:    logger,
		itemLocks: make(map[string]*sync.Mutex),
	}
}

// SyncItem runs one sync cycle against the default site.
func (o *Orchestrator) SyncItem(ctx context.Context, item domain.CatalogItem) domain.SyncOutcome {
	return o.SyncItemForSite(ctx, item, "")
}

// SyncItemForSite runs one sync cycle for a single item. Routing is decided
// by the stored external id: absent means create, present means update. An
// update requested without a stored id falls back to create. An empty
// siteKey selects the default site.
func (o *Orchestrator) SyncItemForSite(ctx context.Context, item domain.CatalogItem, siteKey string) domain.SyncOutcome {
	site, err := o.Sites.Resolve(siteKey)
	if err != nil {
		return domain.Failed(item.Code, domain.ErrorKindValidation, err.Error())
	}

	if ok, reason := o.Filter.Eligible(item); !ok {
		o.logf("skip item %s: %s", item.Code, reason)
		return domain.Skipped(item.Code, reason)
	}

	// The host is expected to serialize events per entity; the lock covers
	// hosts that do not, so two concurrent syncs of one item cannot both
	// take the create path.
	unlock := o.lockItem(item.Code)
	defer unlock()

	existingID, found, err := o.Records.GetExternalID(ctx, item.Code)
	if err != nil {
		// Resolution failure is redefined as "never synced": the create
		// path is safe because the SKU keeps the remote product joinable.
		o.logf("resolve external id for %s failed: %v (falling back to create)", item.Code, err)
		found = false
	}

	payload := o.Mapper.Map(item)

	if res := ValidatePayload(payload); !res.IsValid() {
		o.logf("payload for %s failed validation: %s", item.Code, res.Summary())
		return domain.Failed(item.Code, domain.ErrorKindValidation, res.Summary())
	}

	if !found {
		return o.create(ctx, item, site, payload)
	}
	return o.update(ctx, item, site, existingID, payload)
}

func (o *Orchestrator) create(ctx context.Context, item domain.CatalogItem, site sites.Site, payload storefront.ProductPayload) domain.SyncOutcome {
	newID, err := o.Client.CreateProduct(ctx, site.SiteID, payload)
	if err != nil {
		o.logf("create product for %s failed: %v", item.Code, err)
		return domain.Failed(item.Code, storefront.KindOf(err), err.Error())
	}

	if err := o.Records.UpsertExternalID(ctx, item.Code, newID); err != nil {
		// The remote product exists but the association is lost; the next
		// lifecycle event retries the create and the remote side can be
		// reconciled by SKU. Report the failure so it is visible.
		o.logf("store external id %s for %s failed: %v", newID, item.Code, err)
		return domain.Failed(item.Code, domain.ErrorKindNetwork, "store external id failed: "+err.Error())
	}

	o.logf("created product %s for item %s (site=%s)", newID, item.Code, site.SiteID)
	return domain.Created(item.Code, newID)
}

func (o *Orchestrator) update(ctx context.Context, item domain.CatalogItem, site sites.Site, existingID string, payload storefront.ProductPayload) domain.SyncOutcome {
	if err := o.Client.UpdateProduct(ctx, site.SiteID, existingID, payload); err != nil {
		o.logf("update product %s for %s failed: %v", existingID, item.Code, err)
		return domain.Failed(item.Code, storefront.KindOf(err), err.Error())
	}

	o.logf("updated product %s for item %s (site=%s)", existingID, item.Code, site.SiteID)
	return domain.Updated(item.Code, existingID)
}

func (o *Orchestrator) lockItem(code string) func() {
	o.mu.Lock()
	if o.itemLocks == nil {
		o.itemLocks = make(map[string]*sync.Mutex)
	}
	l, ok := o.itemLocks[code]
	if !ok {
		l = &sync.Mutex{}
		o.itemLocks[code] = l
	}
	o.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func (o *Orchestrator) logf(format string, args ...any) {
	if o.Logger != nil {
		o.Logger.Printf(format, args...)
	}
}
