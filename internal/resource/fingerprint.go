package resource

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a stable content hash of the model. Two models with
// the same resources, fields, and routes hash identically, so the value
// works as a memoization key for compiled documents: recompile only when
// the fingerprint changes.
//
// The hash is computed over the canonical JSON encoding of the model;
// encoding/json sorts map keys, which keeps the encoding independent of
// map iteration order.
func (m *Model) Fingerprint() (string, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("fingerprint resource model: %w", err)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data)), nil
}
