package utils

import (
	"crypto/rand"
	"fmt"
)

const (
	// TrackingPrefix is the human-readable prefix on every tracking code.
	TrackingPrefix = "ANN"

	trackingCodeLength = 6
	trackingAlphabet   = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// GenerateTrackingID returns a candidate tracking code such as "ANN4F7K2Q".
// Callers must verify uniqueness against the store and retry on collision.
func GenerateTrackingID() (string, error) {
	buf := make([]byte, trackingCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %v", err)
	}

	for i, b := range buf {
		buf[i] = trackingAlphabet[int(b)%len(trackingAlphabet)]
	}

	return TrackingPrefix + string(buf), nil
}
