package game

import "time"

const (
	// SessionCookieName is the cookie carrying the browser's session id
	SessionCookieName = "session_id"

	// SSEBufferSize is the buffer size for SSE message channels
	SSEBufferSize = 10

	// SSETimeout is the timeout for sending messages to SSE clients
	SSETimeout = 1 * time.Second

	// SkeletonCards is how many placeholder cards show while loading
	SkeletonCards = 8

	// QRCodeSize is the edge length in pixels of share QR codes
	QRCodeSize = 256
)
