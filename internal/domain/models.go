package domain

import (
	"encoding/json"
	"net/http"
)

// Response is what every handler returns for one invocation. It marshals to
// the shape Lambda function URLs expect; an empty Body or Headers is left out
// of the JSON entirely.
type Response struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers,omitempty"`
	Body       string            `json:"body,omitempty"`
}

func NoContent() Response {
	return Response{StatusCode: http.StatusNoContent}
}

// JSON serializes payload into the body. Headers are left unset so the
// platform default content type applies.
func JSON(status int, payload map[string]string) Response {
	b, _ := json.Marshal(payload)
	return Response{StatusCode: status, Body: string(b)}
}

func HTML(status int, page string) Response {
	return Response{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "text/html; charset=utf-8"},
		Body:       page,
	}
}

// Verdict is how a probe invocation ended.
type Verdict string

const (
	VerdictHealthy    Verdict = "healthy"
	VerdictUnhealthy  Verdict = "unhealthy"
	VerdictProbeError Verdict = "probe_error" // the probe itself could not run
)

// ExitConfigError is the exit status of a local run that never got as far
// as probing because its configuration was rejected.
const ExitConfigError = 3

// ExitCode maps a verdict to a process exit status for local runs.
func (v Verdict) ExitCode() int {
	switch v {
	case VerdictHealthy:
		return 0
	case VerdictUnhealthy:
		return 1
	default:
		return 2
	}
}
