package extract

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"vidurl/internal/httputil"
	"vidurl/internal/media"
)

// runFunc executes a command and returns its captured output.
type runFunc func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

// YtDlp resolves posts by running yt-dlp in JSON dump mode. Nothing is downloaded.
type YtDlp struct {
	path    string
	cookies string
	run     runFunc
}

// NewYtDlp creates a resolver using the yt-dlp binary at path.
// cookies is an optional Netscape cookies file.
func NewYtDlp(path, cookies string) *YtDlp {
	return &YtDlp{path: path, cookies: cookies, run: execRun}
}

// Resolve runs yt-dlp against postURL and decodes its info JSON.
func (y *YtDlp) Resolve(ctx context.Context, postURL string) (*media.Info, error) {
	if err := httputil.ValidatePostURL(postURL); err != nil {
		return nil, failed(fmt.Errorf("invalid post URL: %w", err))
	}

	stdout, stderr, err := y.run(ctx, y.path, y.args(postURL)...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, failed(fmt.Errorf("yt-dlp: %w", ctxErr))
		}
		if detail := lastErrorLine(stderr); detail != "" {
			return nil, classify(detail, err)
		}
		return nil, failed(fmt.Errorf("yt-dlp: %w", err))
	}

	info, err := decodeInfo(stdout)
	if err != nil {
		return nil, failed(err)
	}
	return info, nil
}

func (y *YtDlp) args(postURL string) []string {
	args := []string{
		"-J",
		"--no-warnings",
		"--quiet",
	}
	if y.cookies != "" {
		args = append(args, "--cookies", y.cookies)
	}
	// "--" keeps the URL from ever being read as an option.
	return append(args, "--", postURL)
}

// decodeInfo parses a yt-dlp -J document. A literal null means no info.
func decodeInfo(out []byte) (*media.Info, error) {
	out = bytes.TrimSpace(out)
	if len(out) == 0 || string(out) == "null" {
		return nil, nil
	}

	var info media.Info
	if err := json.Unmarshal(out, &info); err != nil {
		return nil, fmt.Errorf("parsing yt-dlp output: %w", err)
	}
	return &info, nil
}

// lastErrorLine returns the last "ERROR:" line of yt-dlp's stderr, without the prefix.
func lastErrorLine(stderr []byte) string {
	var last string
	scanner := bufio.NewScanner(bytes.NewReader(stderr))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if rest, ok := strings.CutPrefix(line, "ERROR:"); ok {
			last = strings.TrimSpace(rest)
		}
	}
	return last
}

func execRun(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
