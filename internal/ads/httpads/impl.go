package httpads

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Nico-ST/SvenSwipe/internal/ads"
	"github.com/Nico-ST/SvenSwipe/pkg/config"
	"github.com/Nico-ST/SvenSwipe/pkg/logger"
	"go.uber.org/fx"
)

const maxCreativeBytes = 1 << 20

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

// HTTPProvider fetches banner creatives from the configured ad server. The
// server reports the creative height in a response header; the body is the
// creative itself.
type HTTPProvider struct {
	URL    string
	Logger logger.Logger
	Client *http.Client
}

func New(opts Opts) *HTTPProvider {
	return &HTTPProvider{
		URL:    opts.Config.Ads.ServerURL,
		Logger: opts.Logger,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

var _ ads.Provider = (*HTTPProvider)(nil)

func (p *HTTPProvider) Load(ctx context.Context, width int) (*ads.Banner, error) {
	if p.URL == "" {
		return nil, ads.ErrNoFill
	}

	url := fmt.Sprintf("%s?width=%d", p.URL, width)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build ad request: %w", err)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ad request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, ads.ErrNoFill
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ad server returned status %d", resp.StatusCode)
	}

	height, err := strconv.Atoi(resp.Header.Get("X-Banner-Height"))
	if err != nil || height <= 0 {
		return nil, fmt.Errorf("ad server reported no usable height: %w", err)
	}

	creative, err := io.ReadAll(io.LimitReader(resp.Body, maxCreativeBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read creative: %w", err)
	}

	return &ads.Banner{Width: width, Height: height, Creative: creative}, nil
}
