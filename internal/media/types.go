// Package media defines shared types for the vidurl application.
package media

import (
	"bytes"
	"encoding/json"
	"math"
)

// NoVideoMessage is reported both when a post has no media at all and when
// it only offers streams that cannot be served as a single file.
const NoVideoMessage = "no video present"

// Format is one raw representation as reported by a resolver.
// Field names follow yt-dlp's info JSON.
type Format struct {
	FormatID   string  `json:"format_id"`
	URL        string  `json:"url"`
	Ext        string  `json:"ext"`
	Protocol   string  `json:"protocol"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Filesize   *int64  `json:"filesize"`
	Resolution *string `json:"resolution"` // nil when the resolver did not report one

	// ResolutionNull is set when the resolver reported resolution as an explicit null.
	ResolutionNull bool `json:"-"`
}

// UnmarshalJSON decodes a yt-dlp format entry. Numeric fields accept any
// JSON number and fall back to zero (or nil) on anything else, so one odd
// entry cannot spoil the whole document.
func (f *Format) UnmarshalJSON(data []byte) error {
	var raw struct {
		FormatID   string          `json:"format_id"`
		URL        string          `json:"url"`
		Ext        string          `json:"ext"`
		Protocol   string          `json:"protocol"`
		Width      json.RawMessage `json:"width"`
		Height     json.RawMessage `json:"height"`
		Filesize   json.RawMessage `json:"filesize"`
		Resolution json.RawMessage `json:"resolution"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*f = Format{
		FormatID: raw.FormatID,
		URL:      raw.URL,
		Ext:      raw.Ext,
		Protocol: raw.Protocol,
	}
	if n, ok := number(raw.Width); ok {
		f.Width = int(n)
	}
	if n, ok := number(raw.Height); ok {
		f.Height = int(n)
	}
	if n, ok := number(raw.Filesize); ok {
		size := int64(n)
		f.Filesize = &size
	}

	switch {
	case raw.Resolution == nil:
	case isNull(raw.Resolution):
		f.ResolutionNull = true
	default:
		var s string
		if err := json.Unmarshal(raw.Resolution, &s); err == nil {
			f.Resolution = &s
		}
	}
	return nil
}

// number decodes a JSON number, truncating any fraction.
func number(raw json.RawMessage) (float64, bool) {
	if raw == nil || isNull(raw) {
		return 0, false
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return math.Trunc(n), true
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Info is the top-level result of resolving a post URL.
type Info struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Formats []Format `json:"formats"`
}

// Candidate is a direct-download representation that survived filtering.
type Candidate struct {
	FormatID   string  `json:"format_id"`
	URL        string  `json:"url"`
	Ext        string  `json:"ext"`
	Resolution *string `json:"resolution"`
	Filesize   *int64  `json:"filesize"`

	// Width is kept for callers but plays no part in ranking.
	Width  int `json:"-"`
	Height int `json:"-"`
}

// Outcome is either a Ranked or a Failure.
type Outcome interface {
	OK() bool
}

// Ranked is a successful extraction.
type Ranked struct {
	Success    bool        `json:"success"`
	VideoURL   string      `json:"video_url"`
	AllFormats []Candidate `json:"all_formats"`
}

// OK reports true.
func (Ranked) OK() bool { return true }

// Failure is an extraction that produced no usable video.
// Message is for humans; callers should only branch on Success.
type Failure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// OK reports false.
func (Failure) OK() bool { return false }

// Fail builds a Failure with the given message.
func Fail(msg string) Failure {
	return Failure{Success: false, Message: msg}
}

// NoVideo is the Failure for posts without a usable video.
func NoVideo() Failure {
	return Fail(NoVideoMessage)
}
