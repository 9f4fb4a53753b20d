package save

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/quantum-forge/internal/catalog"
	"github.com/quantum-forge/internal/state"
)

// Export renders st as shareable text: base64 over the JSON record.
func Export(st *state.State) (string, error) {
	data, err := Encode(st)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Import parses text produced by Export. Surrounding whitespace is ignored.
// Text that does not decode to a record carrying the game marker fails with
// ErrNotASave; a marked record that fails validation fails with ErrMalformed.
func Import(cat *catalog.Catalog, text string, now time.Time) (*state.State, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotASave, err)
	}

	var header struct {
		Game string `json:"game"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotASave, err)
	}
	if header.Game != state.Marker {
		return nil, ErrNotASave
	}

	return Decode(cat, data, now)
}
