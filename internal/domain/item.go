package domain

// CatalogItem is the host application's item document as delivered on
// lifecycle hooks. Read-only to this service; Code uniquely identifies the
// item within one host instance.
type CatalogItem struct {
	Code        string `json:"item_code"`
	Name        string `json:"item_name"`
	Description string `json:"description"`

	IsSalesItem bool `json:"is_sales_item"`
	Disabled    bool `json:"disabled"`

	StandardRate  float64 `json:"standard_rate"`
	WeightPerUnit float64 `json:"weight_per_unit"`
	ProjectedQty  float64 `json:"projected_qty"`

	IsFixedAsset bool   `json:"is_fixed_asset"`
	ItemGroup    string `json:"item_group"`
}
