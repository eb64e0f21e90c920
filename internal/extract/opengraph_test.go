package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"vidurl/internal/media"
	"vidurl/internal/rank"
)

func loadTestDoc(t *testing.T, filename string) *goquery.Document {
	t.Helper()
	data, err := os.ReadFile("testdata/" + filename)
	if err != nil {
		t.Fatalf("reading test fixture %s: %v", filename, err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("parsing test fixture %s: %v", filename, err)
	}
	return doc
}

func TestParseOpenGraph(t *testing.T) {
	info := parseOpenGraph(loadTestDoc(t, "post_video.html"))

	if info.Title != `user on X: "clip of the day"` {
		t.Errorf("Title = %q", info.Title)
	}
	if info.ID != "https://x.com/user/status/1" {
		t.Errorf("ID = %q, want the og:url", info.ID)
	}
	if len(info.Formats) != 3 {
		t.Fatalf("expected 3 formats, got %d: %+v", len(info.Formats), info.Formats)
	}

	mp4 := info.Formats[0]
	if mp4.URL != "https://video.example.com/vid/1280x720/clip.mp4?tag=12" {
		t.Errorf("formats[0].URL = %q, want the secure URL", mp4.URL)
	}
	if mp4.Protocol != "https" || mp4.Ext != "mp4" {
		t.Errorf("formats[0] protocol/ext = %q/%q, want https/mp4", mp4.Protocol, mp4.Ext)
	}
	if mp4.Width != 1280 || mp4.Height != 720 {
		t.Errorf("formats[0] size = %dx%d, want 1280x720", mp4.Width, mp4.Height)
	}

	hls := info.Formats[1]
	if hls.Protocol != "m3u8_native" || hls.Ext != "m3u8" {
		t.Errorf("formats[1] protocol/ext = %q/%q, want m3u8_native/m3u8", hls.Protocol, hls.Ext)
	}

	webm := info.Formats[2]
	if webm.Ext != "webm" || webm.Height != 360 {
		t.Errorf("formats[2] = %+v, want webm at 360p", webm)
	}
	if webm.FormatID != "og-2" {
		t.Errorf("formats[2].FormatID = %q, want og-2", webm.FormatID)
	}
}

func TestParseOpenGraphNoVideo(t *testing.T) {
	info := parseOpenGraph(loadTestDoc(t, "post_novideo.html"))
	if len(info.Formats) != 0 {
		t.Errorf("expected no formats, got %+v", info.Formats)
	}
	if got := rank.Select(info); got != media.NoVideo() {
		t.Errorf("Select() = %+v, want no video", got)
	}
}

func TestOpenGraphResolve(t *testing.T) {
	page, err := os.ReadFile("testdata/post_video.html")
	if err != nil {
		t.Fatal(err)
	}

	ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/user/status/1":
			w.Header().Set("Content-Type", "text/html")
			w.Write(page)
		case "/user/status/404":
			http.NotFound(w, r)
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer ts.Close()

	og := NewOpenGraph(ts.Client())
	ctx := context.Background()

	t.Run("video", func(t *testing.T) {
		out := Video(ctx, og, ts.URL+"/user/status/1")
		got, ok := out.(media.Ranked)
		if !ok {
			t.Fatalf("Video() = %+v, want success", out)
		}
		if got.VideoURL != "https://video.example.com/vid/1280x720/clip.mp4?tag=12" {
			t.Errorf("VideoURL = %q", got.VideoURL)
		}
		if len(got.AllFormats) != 2 {
			t.Errorf("len(AllFormats) = %d, want 2", len(got.AllFormats))
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := og.Resolve(ctx, ts.URL+"/user/status/404")
		if !IsUnavailable(err) {
			t.Errorf("Resolve() error = %v, want unavailable", err)
		}
		if got := Video(ctx, og, ts.URL+"/user/status/404"); got != media.NoVideo() {
			t.Errorf("Video() = %+v, want no video", got)
		}
	})

	t.Run("upstream error", func(t *testing.T) {
		got := Video(ctx, og, ts.URL+"/broken")
		f, ok := got.(media.Failure)
		if !ok || !strings.HasPrefix(f.Message, "resolution failed: ") {
			t.Errorf("Video() = %+v, want resolution failure", got)
		}
	})

	t.Run("plain http refused", func(t *testing.T) {
		_, err := og.Resolve(ctx, "http://x.com/user/status/1")
		if err == nil || IsUnavailable(err) {
			t.Errorf("Resolve() error = %v, want failed fault", err)
		}
	})
}

func TestApplyMIME(t *testing.T) {
	tests := []struct {
		mime      string
		startExt  string
		wantExt   string
		wantProto string
	}{
		{"video/mp4", "", "mp4", "https"},
		{"video/mp4", "mov", "mov", "https"},
		{"video/x-flv", "", "flv", "https"},
		{"application/vnd.apple.mpegurl", "mp4", "m3u8", "m3u8_native"},
		{"Application/X-MpegURL; charset=utf-8", "", "m3u8", "m3u8_native"},
		{"application/dash+xml", "", "mpd", "http_dash_segments"},
	}

	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			f := media.Format{Ext: tt.startExt, Protocol: "https"}
			applyMIME(&f, tt.mime)
			if f.Ext != tt.wantExt || f.Protocol != tt.wantProto {
				t.Errorf("got ext/proto %q/%q, want %q/%q", f.Ext, f.Protocol, tt.wantExt, tt.wantProto)
			}
		})
	}
}

func TestParseOpenGraphKeepsValidDimensions(t *testing.T) {
	html := `<html><head>
<meta property="og:video" content="https://cdn.example.com/v/clip.mp4">
<meta property="og:video:width" content="1280">
<meta property="og:video:height" content="720">
<meta property="og:video:width" content="auto">
<meta property="og:video:height" content="">
<meta property="og:video:height" content="7.2e2">
</head></html>`
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}

	info := parseOpenGraph(doc)
	if len(info.Formats) != 1 {
		t.Fatalf("expected 1 format, got %d", len(info.Formats))
	}
	if f := info.Formats[0]; f.Width != 1280 || f.Height != 720 {
		t.Errorf("dimensions = %dx%d, want 1280x720", f.Width, f.Height)
	}
}
