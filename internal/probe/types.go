package probe

import (
	"context"
	"strings"
)

// Request is one probe target. Build it with NewRequest so the path is
// normalized; it is not modified after that.
type Request struct {
	TargetHost         string
	TargetPath         string
	HostHeaderOverride string // empty means the Host header is TargetHost
}

func NewRequest(host, path, override string) Request {
	return Request{
		TargetHost:         host,
		TargetPath:         NormalizePath(path),
		HostHeaderOverride: override,
	}
}

// NormalizePath guarantees a leading "/". Paths that already have one are
// returned unchanged, so no double slash is introduced.
func NormalizePath(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}

func (r Request) HasOverride() bool { return r.HostHeaderOverride != "" }

func (r Request) URL() string {
	return "https://" + r.TargetHost + r.TargetPath
}

// Outcome is what came back from the single outbound call.
//
// Headers holds one value per header name; when a header repeats, the last
// value wins.
type Outcome struct {
	TransportSucceeded bool
	StatusCode         int
	Body               string
	Headers            map[string]string
}

// Healthy reports whether the target answered below 400.
func (o Outcome) Healthy() bool {
	return o.TransportSucceeded && o.StatusCode < 400
}

// Checker performs exactly one outbound request for r.
type Checker interface {
	Check(ctx context.Context, r Request) (Outcome, error)
}
