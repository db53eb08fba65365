package folio

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateSlug derives a URL-safe slug from a title: lowercase, runs of
// non-alphanumeric characters collapsed to a single hyphen, no leading
// or trailing hyphen.
func GenerateSlug(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	pendingHyphen := false
	for _, r := range strings.ToLower(title) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}

	return b.String()
}

// NewEntryID generates an identifier for a new entry in the form
// entry_<uuid>. When the system entropy source fails it falls back to
// entry_<millis>_<base36 random>.
func NewEntryID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return fmt.Sprintf("entry_%d_%s", time.Now().UnixMilli(), strconv.FormatInt(rand.Int63(), 36))
	}
	return "entry_" + id.String()
}
