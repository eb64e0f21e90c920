package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"vidurl/internal/httputil"
	"vidurl/internal/media"
)

// OpenGraph resolves posts by reading the og:video tags of the post page.
// It covers embed-friendly mirrors that publish the video file in page metadata.
type OpenGraph struct {
	client *http.Client
}

// NewOpenGraph creates an OpenGraph resolver using client for page fetches.
func NewOpenGraph(client *http.Client) *OpenGraph {
	return &OpenGraph{client: client}
}

// Resolve fetches postURL and parses its OpenGraph video tags.
func (o *OpenGraph) Resolve(ctx context.Context, postURL string) (*media.Info, error) {
	if err := httputil.ValidateURL(postURL); err != nil {
		return nil, failed(fmt.Errorf("invalid post URL: %w", err))
	}

	resp, err := httputil.Get(ctx, o.client, postURL)
	if err != nil {
		return nil, failed(fmt.Errorf("fetching post: %w", err))
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusGone:
		return nil, &ResolveError{
			Kind:   Unavailable,
			Detail: fmt.Sprintf("Video unavailable (HTTP %d)", resp.StatusCode),
		}
	default:
		return nil, failed(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, httputil.MaxBodySize))
	if err != nil {
		return nil, failed(fmt.Errorf("parsing HTML: %w", err))
	}

	return parseOpenGraph(doc), nil
}

// parseOpenGraph collects og:video entries in document order. Structured
// properties (type, width, height, secure_url) apply to the latest video tag.
func parseOpenGraph(doc *goquery.Document) *media.Info {
	info := &media.Info{}
	seen := make(map[string]int)
	cur := -1

	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		prop, ok := s.Attr("property")
		if !ok {
			prop, _ = s.Attr("name")
		}
		content := strings.TrimSpace(s.AttrOr("content", ""))
		if content == "" {
			return
		}

		switch strings.ToLower(prop) {
		case "og:title":
			info.Title = content
		case "og:url":
			info.ID = content
		case "og:video", "og:video:url":
			if idx, ok := seen[content]; ok {
				cur = idx
				return
			}
			info.Formats = append(info.Formats, newOGFormat(len(info.Formats), content))
			cur = len(info.Formats) - 1
			seen[content] = cur
		case "og:video:secure_url":
			if cur >= 0 && info.Formats[cur].Protocol == "http" {
				f := &info.Formats[cur]
				delete(seen, f.URL)
				f.URL = content
				f.Protocol = scheme(content)
				seen[content] = cur
				return
			}
			if _, ok := seen[content]; !ok {
				info.Formats = append(info.Formats, newOGFormat(len(info.Formats), content))
				cur = len(info.Formats) - 1
				seen[content] = cur
			}
		case "og:video:type":
			if cur >= 0 {
				applyMIME(&info.Formats[cur], content)
			}
		case "og:video:width":
			if cur >= 0 {
				if n, err := strconv.Atoi(content); err == nil {
					info.Formats[cur].Width = n
				}
			}
		case "og:video:height":
			if cur >= 0 {
				if n, err := strconv.Atoi(content); err == nil {
					info.Formats[cur].Height = n
				}
			}
		}
	})

	return info
}

func newOGFormat(n int, rawURL string) media.Format {
	f := media.Format{
		FormatID: fmt.Sprintf("og-%d", n),
		URL:      rawURL,
		Protocol: scheme(rawURL),
	}
	if u, err := url.Parse(rawURL); err == nil {
		f.Ext = strings.TrimPrefix(path.Ext(u.Path), ".")
	}
	return f
}

func scheme(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Scheme)
}

// applyMIME fills the extension from the declared type and marks HLS
// playlists so they are never taken as direct files.
func applyMIME(f *media.Format, mimeType string) {
	mimeType = strings.ToLower(strings.TrimSpace(strings.SplitN(mimeType, ";", 2)[0]))
	switch mimeType {
	case "application/x-mpegurl", "application/vnd.apple.mpegurl", "audio/mpegurl":
		f.Ext = "m3u8"
		f.Protocol = "m3u8_native"
		return
	case "application/dash+xml":
		f.Ext = "mpd"
		f.Protocol = "http_dash_segments"
		return
	}
	if f.Ext != "" {
		return
	}
	if _, sub, ok := strings.Cut(mimeType, "/"); ok {
		f.Ext = strings.TrimPrefix(sub, "x-")
	}
}
