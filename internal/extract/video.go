package extract

import (
	"context"
	"errors"
	"fmt"

	"vidurl/internal/media"
	"vidurl/internal/rank"
)

const failedPrefix = "resolution failed: "

// Video resolves postURL with r and ranks the result. It never returns an
// error and never panics: every fault becomes a media.Failure.
func Video(ctx context.Context, r Resolver, postURL string) (out media.Outcome) {
	defer func() {
		if p := recover(); p != nil {
			out = media.Fail(fmt.Sprintf("%s%v", failedPrefix, p))
		}
	}()

	info, err := r.Resolve(ctx, postURL)
	if err != nil {
		return FailureFor(err)
	}
	return rank.Select(info)
}

// FailureFor converts a resolver error into the caller-facing failure.
func FailureFor(err error) media.Failure {
	if IsUnavailable(err) {
		return media.NoVideo()
	}
	detail := err.Error()
	var re *ResolveError
	if errors.As(err, &re) {
		detail = re.Detail
	}
	return media.Fail(failedPrefix + detail)
}
