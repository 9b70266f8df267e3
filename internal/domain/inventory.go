package domain

import "strings"

// Asset is one record of the remote asset inventory.
type Asset struct {
	Serial     string `json:"serial"`
	AssetTag   string `json:"asset_tag"`
	Location   string `json:"location"`
	AssignedTo string `json:"assigned_to"`
	Status     string `json:"status"`
}

// AssetIndex looks assets up by serial number, ignoring case and surrounding
// whitespace.
type AssetIndex map[string]Asset

// NewAssetIndex indexes assets by serial. Later duplicates win.
func NewAssetIndex(assets []Asset) AssetIndex {
	idx := make(AssetIndex, len(assets))
	for _, a := range assets {
		key := serialKey(a.Serial)
		if key == "" {
			continue
		}
		idx[key] = a
	}
	return idx
}

// Find returns the asset registered under serial.
func (idx AssetIndex) Find(serial string) (Asset, bool) {
	a, ok := idx[serialKey(serial)]
	return a, ok
}

func serialKey(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
