package syncer

import (
	"strings"

	"github.com/ETAnderson/storesync/internal/storefront"
)

type ValidationIssue struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationResult struct {
	Issues []ValidationIssue `json:"issues"`
}

func (r ValidationResult) IsValid() bool {
	return len(r.Issues) == 0
}

// ValidatePayload is the pre-flight check run before any network call.
// A payload that fails here is reported as a validation failure without
// touching the remote API.
func ValidatePayload(p storefront.ProductPayload) ValidationResult {
	var res ValidationResult

	requireNonEmpty(&res, "name", p.Name)

	if len(p.VariantsInfo.Variants) == 0 {
		addIssue(&res, "variantsInfo.variants", "required", "payload must carry exactly one variant")
		return res
	}

	v := p.VariantsInfo.Variants[0]

	requireNonEmpty(&res, "variant.sku", v.SKU)
	requireNonEmpty(&res, "variant.price.amount", v.Price.ActualPrice.Amount)
	requireNonEmpty(&res, "variant.price.currency", v.Price.ActualPrice.Currency)

	if v.Price.ActualPrice.Amount != "" && !looksLikeDecimal(v.Price.ActualPrice.Amount) {
		addIssue(&res, "variant.price.amount", "invalid_decimal", "amount must look like a decimal number (e.g. \"19.99\")")
	}
	if v.Price.ActualPrice.Currency != "" && len(v.Price.ActualPrice.Currency) != 3 {
		addIssue(&res, "variant.price.currency", "invalid_currency", "currency must be a 3-letter ISO code (e.g. \"USD\")")
	}

	return res
}

func (r ValidationResult) Summary() string {
	if len(r.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(r.Issues))
	for _, i := range r.Issues {
		parts = append(parts, i.Path+": "+i.Code)
	}
	return strings.Join(parts, "; ")
}

func requireNonEmpty(res *ValidationResult, path string, v string) {
	if strings.TrimSpace(v) == "" {
		addIssue(res, path, "required", "field is required")
	}
}

func addIssue(res *ValidationResult, path string, code string, msg string) {
	res.Issues = append(res.Issues, ValidationIssue{
		Path:    path,
		Code:    code,
		Message: msg,
	})
}

func looksLikeDecimal(v string) bool {
	// Cheap check: digits with optional single dot.
	dot := 0
	digit := 0

	for _, r := range v {
		if r == '.' {
			dot++
			if dot > 1 {
				return false
			}
			continue
		}
		if r >= '0' && r <= '9' {
			digit++
			continue
		}
		return false
	}

	return digit > 0
}
