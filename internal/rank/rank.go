// Package rank picks the best direct-download representation out of a
// resolver's raw formats.
package rank

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"vidurl/internal/media"
)

// IsDirect reports whether a format can be served as a single playable file.
// HLS manifests and formats without any dimension (audio, metadata) are rejected.
func IsDirect(f media.Format) bool {
	return f.URL != "" &&
		(f.Protocol == "http" || f.Protocol == "https") &&
		!strings.Contains(f.URL, ".m3u8") &&
		(f.Width > 0 || f.Height > 0)
}

// Candidates filters raw formats down to direct candidates, preserving arrival order.
func Candidates(formats []media.Format) []media.Candidate {
	direct := lo.Filter(formats, func(f media.Format, _ int) bool {
		return IsDirect(f)
	})
	return lo.Map(direct, func(f media.Format, _ int) media.Candidate {
		return toCandidate(f)
	})
}

// Select ranks the formats in info and returns the outcome for the caller.
//
// Candidates are stable-sorted by height ascending and the last one wins.
// This is intentional: all_formats is exposed in ascending order and, among
// equal heights, the last to arrive is chosen. Width is not part of the key.
func Select(info *media.Info) media.Outcome {
	if info == nil || len(info.Formats) == 0 {
		return media.NoVideo()
	}

	candidates := Candidates(info.Formats)
	if len(candidates) == 0 {
		return media.NoVideo()
	}

	slices.SortStableFunc(candidates, func(a, b media.Candidate) int {
		return rankKey(a) - rankKey(b)
	})

	return media.Ranked{
		Success:    true,
		VideoURL:   candidates[len(candidates)-1].URL,
		AllFormats: candidates,
	}
}

func rankKey(c media.Candidate) int {
	return max(c.Height, 0)
}

func toCandidate(f media.Format) media.Candidate {
	resolution := f.Resolution
	if resolution == nil && !f.ResolutionNull {
		r := fmt.Sprintf("%dx%d", f.Width, f.Height)
		resolution = &r
	}
	return media.Candidate{
		FormatID:   f.FormatID,
		URL:        f.URL,
		Ext:        f.Ext,
		Resolution: resolution,
		Filesize:   f.Filesize,
		Width:      f.Width,
		Height:     f.Height,
	}
}
