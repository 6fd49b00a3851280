package normalize

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// recordNamespace scopes derived identifiers to this client.
var recordNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://installmart.pk/records"))

// StableID derives a deterministic identifier from the record's content.
// It is used only when the backend supplied no identifier at all, so equal
// records map to equal IDs across fetches.
func StableID(raw map[string]any) string {
	// encoding/json sorts map keys, which makes the encoding canonical.
	data, err := json.Marshal(raw)
	if err != nil {
		data = []byte(fmt.Sprintf("%v", raw))
	}
	return uuid.NewSHA1(recordNamespace, data).String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
