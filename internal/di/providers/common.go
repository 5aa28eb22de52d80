package providers

import "time"

const (
	// loadTimeout bounds reading and decoding the corpus at startup.
	loadTimeout = 30 * time.Second
)
