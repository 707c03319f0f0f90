package sitectx

import "context"

type ctxKeySiteKey struct{}

// WithSiteKey stores the storefront site key on the context. An empty key
// means "use the default site".
func WithSiteKey(ctx context.Context, siteKey string) context.Context {
	if siteKey == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKeySiteKey{}, siteKey)
}

// SiteKey reads the site key from context; empty when none was set.
func SiteKey(ctx context.Context) string {
	v := ctx.Value(ctxKeySiteKey{})
	s, _ := v.(string)
	return s
}
