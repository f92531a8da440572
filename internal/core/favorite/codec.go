package favorite

import (
	"encoding/json"
	"fmt"
)

// Encode serializes items as a JSON array of {"db", "table"} objects.
// A nil slice is encoded as an empty array.
func Encode(items []Item) ([]byte, error) {
	if items == nil {
		items = []Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode favorites: %w", err)
	}
	return data, nil
}

// Decode parses a payload written by Encode. The order of the stored items
// is kept as is; no deduplication or trimming happens here.
func Decode(data []byte) ([]Item, error) {
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode favorites: %w", err)
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}
