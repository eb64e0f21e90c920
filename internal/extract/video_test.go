package extract

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"vidurl/internal/config"
	"vidurl/internal/media"
)

type stubResolver struct {
	info *media.Info
	err  error
}

func (s stubResolver) Resolve(context.Context, string) (*media.Info, error) {
	return s.info, s.err
}

type panicResolver struct{}

func (panicResolver) Resolve(context.Context, string) (*media.Info, error) {
	panic("boom")
}

func TestVideo(t *testing.T) {
	tests := []struct {
		name    string
		r       Resolver
		wantOK  bool
		wantMsg string
	}{
		{
			name:    "absent info",
			r:       stubResolver{},
			wantMsg: media.NoVideoMessage,
		},
		{
			name:    "unavailable fault",
			r:       stubResolver{err: &ResolveError{Kind: Unavailable, Detail: "Video unavailable"}},
			wantMsg: media.NoVideoMessage,
		},
		{
			name:    "failed fault",
			r:       stubResolver{err: &ResolveError{Kind: Failed, Detail: "HTTP Error 503"}},
			wantMsg: "resolution failed: HTTP Error 503",
		},
		{
			name:    "wrapped fault",
			r:       stubResolver{err: fmt.Errorf("outer: %w", &ResolveError{Kind: Unavailable, Detail: "gone"})},
			wantMsg: media.NoVideoMessage,
		},
		{
			name:    "plain error",
			r:       stubResolver{err: errors.New("socket closed")},
			wantMsg: "resolution failed: socket closed",
		},
		{
			name:    "panic",
			r:       panicResolver{},
			wantMsg: "resolution failed: boom",
		},
		{
			name: "success",
			r: stubResolver{info: &media.Info{Formats: []media.Format{
				{URL: "https://a/b.mp4", Protocol: "https", Height: 720},
			}}},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Video(context.Background(), tt.r, "https://x.com/user/status/1")
			if got.OK() != tt.wantOK {
				t.Fatalf("OK() = %v, want %v (%+v)", got.OK(), tt.wantOK, got)
			}
			if tt.wantOK {
				return
			}
			if f := got.(media.Failure); f.Message != tt.wantMsg || f.Success {
				t.Errorf("got %+v, want message %q", f, tt.wantMsg)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		detail string
		want   Kind
	}{
		{"Video unavailable", Unavailable},
		{"[twitter] This is NOT A VIDEO post", Unavailable},
		{"video unavailable", Failed},
		{"Unable to download webpage: HTTP Error 404", Failed},
	}
	for _, tt := range tests {
		if got := classify(tt.detail, nil).Kind; got != tt.want {
			t.Errorf("classify(%q) = %v, want %v", tt.detail, got, tt.want)
		}
	}
}

func TestNew(t *testing.T) {
	cfg := configWith("ytdlp")
	r, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if _, ok := r.(*YtDlp); !ok {
		t.Errorf("New(ytdlp) = %T, want *YtDlp", r)
	}

	r, err = New(configWith("opengraph"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if _, ok := r.(*OpenGraph); !ok {
		t.Errorf("New(opengraph) = %T, want *OpenGraph", r)
	}

	if _, err := New(configWith("carrier-pigeon")); err == nil {
		t.Error("New() should reject unknown resolvers")
	}
}

func configWith(resolver string) *config.Config {
	cfg := config.Default()
	cfg.Resolver = resolver
	return cfg
}
