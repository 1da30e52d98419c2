// Package notify fans store change notifications out across processes.
// Messages carry the publishing process id so a process skips its own
// changes, which it has already delivered locally.
package notify

import (
	"strings"

	"github.com/google/uuid"
)

const DefaultChannel = "store_changes"

func newOrigin() string {
	return uuid.NewString()
}

func encode(origin, path string) string {
	return origin + "|" + path
}

func decode(payload string) (origin, path string, ok bool) {
	return strings.Cut(payload, "|")
}
