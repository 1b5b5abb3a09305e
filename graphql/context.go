package graphql

import (
	"context"
	"net/http"
	"strconv"
)

type scopeKey struct{}

// HeaderStore selects the store view whose url rewrites a product query
// lists. Without it every store is listed.
const HeaderStore = "Store"

// WithStoreID scopes ctx to one store view.
func WithStoreID(ctx context.Context, storeID uint16) context.Context {
	return context.WithValue(ctx, scopeKey{}, storeID)
}

// StoreIDFromContext returns the store view ctx is scoped to, 0 for all.
func StoreIDFromContext(ctx context.Context) uint16 {
	id, _ := ctx.Value(scopeKey{}).(uint16)
	return id
}

// GetStoreID reads the Store header, falling back to the store query
// parameter. Unparsable values mean all stores.
func GetStoreID(r *http.Request) uint16 {
	raw := r.Header.Get(HeaderStore)
	if raw == "" {
		raw = r.URL.Query().Get("store")
	}
	id, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		return 0
	}
	return uint16(id)
}
