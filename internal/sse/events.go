package sse

// SSE event type constants
const (
	EventCatalogReady = "catalog-ready"
	EventNavRedirect  = "nav-redirect"
)
