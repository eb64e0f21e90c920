// Package extract resolves social-media post URLs into raw media formats
// and turns the outcome into a caller-facing result.
package extract

import (
	"context"
	"fmt"
	"strings"

	"vidurl/internal/config"
	"vidurl/internal/httputil"
	"vidurl/internal/media"
)

// Resolver turns a post URL into raw format descriptors.
// Failures are reported as *ResolveError.
type Resolver interface {
	Resolve(ctx context.Context, postURL string) (*media.Info, error)
}

// New returns the resolver selected by cfg.
func New(cfg *config.Config) (Resolver, error) {
	switch strings.ToLower(cfg.Resolver) {
	case config.ResolverYtDlp:
		return NewYtDlp(cfg.YtDlpPath, cfg.CookiesFile), nil
	case config.ResolverOpenGraph:
		return NewOpenGraph(httputil.NewClient()), nil
	default:
		return nil, fmt.Errorf("unknown resolver %q", cfg.Resolver)
	}
}
