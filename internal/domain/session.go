package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const randomPartLen = 9

// NewSessionID returns an opaque correlation key of the form
// session_<unix-millis>_<random>.
func NewSessionID(now time.Time) string {
	return fmt.Sprintf("session_%d_%s", now.UnixMilli(), randomPart())
}

// NewMessageID returns an opaque message identifier of the form
// msg-<unix-millis>-<random>.
func NewMessageID(now time.Time) string {
	return fmt.Sprintf("msg-%d-%s", now.UnixMilli(), randomPart())
}

func randomPart() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:randomPartLen]
}
