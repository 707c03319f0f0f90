package middleware

import (
	"net/http"
	"strings"

	"github.com/ETAnderson/storesync/internal/api/sitectx"
	"github.com/ETAnderson/storesync/internal/sites"
)

const SiteHeaderKey = "X-Site-Key"

// SiteMiddleware resolves the target site key for a request. The header
// override is dev-only; production callers pin the site via their token.
type SiteMiddleware struct {
	Env   string // "dev" enables header override
	Table sites.Table
	Next  http.Handler
}

func (m SiteMiddleware) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if m.Next == nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	siteKey := ""

	// Only allow header override in dev
	if strings.EqualFold(strings.TrimSpace(m.Env), "dev") {
		raw := strings.TrimSpace(r.Header.Get(SiteHeaderKey))
		if raw != "" {
			if _, ok := m.Table.Get(raw); !ok {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"invalid_site_key","message":"X-Site-Key must name a configured site"}`))
				return
			}
			siteKey = raw
		}
	}

	ctx := sitectx.WithSiteKey(r.Context(), siteKey)
	m.Next.ServeHTTP(w, r.WithContext(ctx))
}
