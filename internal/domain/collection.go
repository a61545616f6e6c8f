package domain

// AssetCollection is an ordered view of assets, newest-first, either over the
// whole library or scoped to a single album. A collection is a snapshot: it
// must be re-fetched after any deletion because indices shift.
type AssetCollection struct {
	Scope  *Album // nil means all photos
	Assets []Asset
}

func (c *AssetCollection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Assets)
}

// At returns the asset at index i, or false when i is out of range.
func (c *AssetCollection) At(i int) (Asset, bool) {
	if c == nil || i < 0 || i >= len(c.Assets) {
		return Asset{}, false
	}
	return c.Assets[i], true
}

// Window returns up to n assets starting right after index i, clamped to the
// end of the collection. Used for the preheat hint window.
func (c *AssetCollection) Window(i, n int) []Asset {
	if c == nil || n <= 0 {
		return nil
	}
	start := i + 1
	if start < 0 {
		start = 0
	}
	if start >= len(c.Assets) {
		return nil
	}
	end := start + n
	if end > len(c.Assets) {
		end = len(c.Assets)
	}
	return c.Assets[start:end]
}
