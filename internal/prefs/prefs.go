package prefs

// DefaultAdsEnabled is the first-launch value of the ads flag. Nothing is
// requested from the ad server until the user opts in.
const DefaultAdsEnabled = false

// Store persists the user preferences. Reads are served from memory; writes
// go through to durable storage synchronously.
type Store interface {
	AdsEnabled() bool
	SetAdsEnabled(enabled bool) error
}

// Memory is an in-memory Store for tests.
type Memory struct {
	Ads bool
}

func (m *Memory) AdsEnabled() bool { return m.Ads }

func (m *Memory) SetAdsEnabled(enabled bool) error {
	m.Ads = enabled
	return nil
}

var _ Store = (*Memory)(nil)
