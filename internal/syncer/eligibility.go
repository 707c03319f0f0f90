package syncer

import (
	"strings"

	"github.com/ETAnderson/storesync/internal/domain"
)

// Filter decides whether an item qualifies for storefront sync. Pure and
// total; every exclusion rule lives here so the decision stays centralized.
type Filter struct {
	// ExcludeFixedAssets drops fixed-asset items even when sellable.
	ExcludeFixedAssets bool

	// ExcludedItemGroups is a blacklist matched case-insensitively against
	// the item group.
	ExcludedItemGroups []string
}

// DefaultFilter mirrors the host's stock exclusions.
func DefaultFilter() Filter {
	return Filter{
		ExcludeFixedAssets: true,
		ExcludedItemGroups: []string{"Services", "Raw Material"},
	}
}

// Eligible reports whether the item should be synced and, when not, a
// machine-readable reason.
func (f Filter) Eligible(item domain.CatalogItem) (bool, string) {
	if item.Disabled {
		return false, "disabled"
	}
	if !item.IsSalesItem {
		return false, "not_sales_item"
	}
	if item.StandardRate <= 0 {
		return false, "no_standard_rate"
	}
	if f.ExcludeFixedAssets && item.IsFixedAsset {
		return false, "fixed_asset"
	}
	for _, g := range f.ExcludedItemGroups {
		if strings.EqualFold(strings.TrimSpace(g), strings.TrimSpace(item.ItemGroup)) {
			return false, "excluded_item_group"
		}
	}
	return true, ""
}
