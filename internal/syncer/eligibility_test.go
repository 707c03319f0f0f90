package syncer

import (
	"testing"

	"github.com/ETAnderson/storesync/internal/domain"
)

func sellableItem(code string) domain.CatalogItem {
	return domain.CatalogItem{
		Code:         code,
		Name:         "Widget",
		IsSalesItem:  true,
		Disabled:     false,
		StandardRate: 19.99,
	}
}

func TestEligible_SellableItem(t *testing.T) {
	f := DefaultFilter()

	ok, reason := f.Eligible(sellableItem("SKU1"))
	if !ok {
		t.Fatalf("expected eligible, got reason %q", reason)
	}
}

func TestEligible_Exclusions(t *testing.T) {
	f := DefaultFilter()

	cases := []struct {
		name   string
		mutate func(*domain.CatalogItem)
		reason string
	}{
		{"disabled", func(i *domain.CatalogItem) { i.Disabled = true }, "disabled"},
		{"not sales item", func(i *domain.CatalogItem) { i.IsSalesItem = false }, "not_sales_item"},
		{"zero rate", func(i *domain.CatalogItem) { i.StandardRate = 0 }, "no_standard_rate"},
		{"negative rate", func(i *domain.CatalogItem) { i.StandardRate = -1 }, "no_standard_rate"},
		{"fixed asset", func(i *domain.CatalogItem) { i.IsFixedAsset = true }, "fixed_asset"},
		{"blacklisted group", func(i *domain.CatalogItem) { i.ItemGroup = "Services" }, "excluded_item_group"},
		{"blacklisted group case-insensitive", func(i *domain.CatalogItem) { i.ItemGroup = "raw material" }, "excluded_item_group"},
	}

	for _, tc := range cases {
		item := sellableItem("SKU2")
		tc.mutate(&item)

		ok, reason := f.Eligible(item)
		if ok {
			t.Fatalf("%s: expected ineligible", tc.name)
		}
		if reason != tc.reason {
			t.Fatalf("%s: expected reason %q got %q", tc.name, tc.reason, reason)
		}
	}
}

func TestEligible_Deterministic(t *testing.T) {
	f := DefaultFilter()
	item := sellableItem("SKU3")

	first, firstReason := f.Eligible(item)
	for i := 0; i < 10; i++ {
		ok, reason := f.Eligible(item)
		if ok != first || reason != firstReason {
			t.Fatalf("eligibility changed across calls: (%v,%q) then (%v,%q)", first, firstReason, ok, reason)
		}
	}
}

func TestEligible_ZeroValueFilterHasNoExtraRules(t *testing.T) {
	var f Filter

	item := sellableItem("SKU4")
	item.IsFixedAsset = true
	item.ItemGroup = "Services"

	if ok, reason := f.Eligible(item); !ok {
		t.Fatalf("zero-value filter must only apply base rules, got reason %q", reason)
	}
}
