package syncer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ETAnderson/storesync/internal/domain"
	"github.com/ETAnderson/storesync/internal/storefront"
)

const descriptionMaxRunes = 1000

// Mapper is the pure item → product payload transformation. It never makes
// eligibility decisions; callers filter first. Output is deterministic: the
// same item always yields a byte-identical payload.
type Mapper struct {
	DefaultCurrency string
	WeightUnit      string

	// ZeroWeightIsUnset follows the host convention that a zero
	// weight_per_unit means "not set" rather than "weightless".
	ZeroWeightIsUnset bool
}

func NewMapper(defaultCurrency string) Mapper {
	if strings.TrimSpace(defaultCurrency) == "" {
		defaultCurrency = "USD"
	}
	return Mapper{
		DefaultCurrency:   defaultCurrency,
		WeightUnit:        "kg",
		ZeroWeightIsUnset: true,
	}
}

func (m Mapper) Map(item domain.CatalogItem) storefront.ProductPayload {
	name := item.Name
	if strings.TrimSpace(name) == "" {
		name = item.Code
	}

	variant := storefront.Variant{
		// The SKU is the join key back to the item; never transformed.
		SKU: item.Code,
		Price: storefront.Price{
			ActualPrice: storefront.Money{
				Amount:   FormatAmount(item.StandardRate),
				Currency: m.DefaultCurrency,
			},
		},
		Stock: storefront.Stock{
			TrackInventory: true,
			InStock:        true,
		},
	}

	if m.weightSet(item.WeightPerUnit) {
		variant.PhysicalProperties.Weight = &storefront.Weight{
			Value: item.WeightPerUnit,
			Unit:  m.WeightUnit,
		}
	}

	if item.ProjectedQty > 0 {
		qty := int(item.ProjectedQty)
		variant.Stock.Quantity = &qty
	}

	return storefront.ProductPayload{
		Name:        name,
		Slug:        Slugify(item.Code),
		Description: SanitizeText(item.Description),
		Visible:     true,
		VariantsInfo: storefront.VariantsInfo{
			Variants: []storefront.Variant{variant},
		},
	}
}

func (m Mapper) weightSet(w float64) bool {
	if w == 0 {
		return !m.ZeroWeightIsUnset
	}
	return w > 0
}

// FormatAmount renders a decimal price as a fixed-point, locale-independent
// string with no thousands separators and no exponent.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var (
	slugInvalid  = regexp.MustCompile(`[^a-z0-9\-_]+`)
	slugCollapse = regexp.MustCompile(`-+`)
	htmlTag      = regexp.MustCompile(`<[^>]+>`)
)

// Slugify derives a URL-friendly slug from an item code.
func Slugify(code string) string {
	s := strings.ToLower(code)
	s = slugInvalid.ReplaceAllString(s, "-")
	s = slugCollapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SanitizeText strips HTML tags from host rich-text fields and caps the
// length the remote API accepts.
func SanitizeText(text string) string {
	if text == "" {
		return ""
	}

	clean := strings.TrimSpace(htmlTag.ReplaceAllString(text, ""))

	runes := []rune(clean)
	if len(runes) > descriptionMaxRunes {
		clean = string(runes[:descriptionMaxRunes]) + "..."
	}
	return clean
}
