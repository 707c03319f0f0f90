package storefront

// ProductPayload is the storefront product representation built fresh per
// sync call. It carries no identity; the remote API assigns the product id
// on create.
type ProductPayload struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"plainDescription,omitempty"`
	Visible     bool   `json:"visible"`

	VariantsInfo VariantsInfo `json:"variantsInfo"`
}

type VariantsInfo struct {
	Variants []Variant `json:"variants"`
}

// Variant holds the sellable unit. SKU mirrors the originating item code
// exactly; it is the join key for identifier resolution and must never be
// transformed.
type Variant struct {
	SKU                string             `json:"sku"`
	Price              Price              `json:"price"`
	PhysicalProperties PhysicalProperties `json:"physicalProperties"`
	Stock              Stock              `json:"stock"`
}

type Price struct {
	ActualPrice Money `json:"actualPrice"`
}

type Money struct {
	// Amount is a locale-independent fixed-point decimal string, e.g. "19.99".
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type PhysicalProperties struct {
	Weight *Weight `json:"weight,omitempty"`
}

type Weight struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

type Stock struct {
	TrackInventory bool `json:"trackInventory"`
	InStock        bool `json:"inStock"`
	Quantity       *int `json:"quantity,omitempty"`
}

// PrimaryVariant returns the single variant this adapter maps, or a zero
// Variant when the payload is malformed.
func (p ProductPayload) PrimaryVariant() Variant {
	if len(p.VariantsInfo.Variants) == 0 {
		return Variant{}
	}
	return p.VariantsInfo.Variants[0]
}
