package hooks

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/ETAnderson/storesync/internal/domain"
)

type UnknownKeyWarning struct {
	UnknownKeys []string `json:"unknown_keys"`
}

type ParseResult struct {
	Item     domain.CatalogItem
	Warnings UnknownKeyWarning
}

// ParseItemAllowUnknown decodes a hook body of shape {"item": {...}}.
// Host documents carry many fields this service does not map; unknown keys
// are tolerated and surfaced as warnings so integrators can see drift.
func ParseItemAllowUnknown(body []byte) (ParseResult, error) {
	var envelope struct {
		Item json.RawMessage `json:"item"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ParseResult{}, err
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(envelope.Item, &obj); err != nil {
		return ParseResult{}, err
	}

	known := knownItemKeys()
	unknown := make(map[string]struct{})
	for k := range obj {
		if _, ok := known[k]; !ok {
			kk := strings.TrimSpace(k)
			if kk != "" {
				unknown[kk] = struct{}{}
			}
		}
	}

	var item domain.CatalogItem
	unmarshalIfPresent(obj, "item_code", &item.Code)
	unmarshalIfPresent(obj, "item_name", &item.Name)
	unmarshalIfPresent(obj, "description", &item.Description)
	unmarshalIfPresent(obj, "is_sales_item", &item.IsSalesItem)
	unmarshalIfPresent(obj, "disabled", &item.Disabled)
	unmarshalIfPresent(obj, "standard_rate", &item.StandardRate)
	unmarshalIfPresent(obj, "weight_per_unit", &item.WeightPerUnit)
	unmarshalIfPresent(obj, "projected_qty", &item.ProjectedQty)
	unmarshalIfPresent(obj, "is_fixed_asset", &item.IsFixedAsset)
	unmarshalIfPresent(obj, "item_group", &item.ItemGroup)

	return ParseResult{
		Item:     item,
		Warnings: UnknownKeyWarning{UnknownKeys: setToSortedSlice(unknown)},
	}, nil
}

func knownItemKeys() map[string]struct{} {
	return map[string]struct{}{
		"item_code":       {},
		"item_name":       {},
		"description":     {},
		"is_sales_item":   {},
		"disabled":        {},
		"standard_rate":   {},
		"weight_per_unit": {},
		"projected_qty":   {},
		"is_fixed_asset":  {},
		"item_group":      {},
	}
}

func unmarshalIfPresent[T any](obj map[string]json.RawMessage, key string, dst *T) {
	raw, ok := obj[key]
	if !ok {
		return
	}
	_ = json.Unmarshal(raw, dst) // eligibility and validation catch bad required fields later
}

func setToSortedSlice(set map[string]struct{}) []string {
	if len(set) == 0 {
		return []string{}
	}

	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
