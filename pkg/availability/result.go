package availability

import (
	"strings"
	"time"

	"swapers-hq/lpmon/pkg/provider"
)

// Code is the symbolic outcome of a check.
type Code string

const (
	CodeOK               Code = "OK"
	CodeMaintenance      Code = "MAINTENANCE"
	CodeAuthError        Code = "AUTH_ERROR"
	CodeRateLimit        Code = "RATE_LIMIT"
	CodeNetworkDown      Code = "NETWORK_DOWN"
	CodeUnknown          Code = "UNKNOWN"
	CodeSkippedNoProbe   Code = "SKIPPED_NO_PROBE"
	CodeSkippedManual    Code = "SKIPPED_MANUAL"
	CodeDeadlineExceeded Code = "DEADLINE_EXCEEDED"
	CodeCanceled         Code = "CANCELED"
)

// SkippedCode returns the SKIPPED_<KIND> code for kind.
func SkippedCode(kind provider.Kind) Code {
	return Code("SKIPPED_" + string(kind))
}

// Skipped reports whether c was produced without probing.
func (c Code) Skipped() bool {
	return strings.HasPrefix(string(c), "SKIPPED_")
}

// Path records which probes ran.
type Path string

const (
	PathStatus     Path = "status"
	PathTime       Path = "time"
	PathStatusTime Path = "status+time"
	PathSkipped    Path = "skipped"
)

// maxDetailLen bounds Result.Detail.
const maxDetailLen = 512

// Result is the outcome of one check. It is never mutated after creation.
type Result struct {
	Provider  string    `json:"provider"`
	Available bool      `json:"available"`
	Code      Code      `json:"code"`
	Path      Path      `json:"path"`
	ElapsedMS int64     `json:"elapsed_ms"`
	Detail    string    `json:"detail,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// Via is the short description of how the result was reached, as printed in
// verbose reports: the skip code, "status/time" or "time".
func (r Result) Via() string {
	switch {
	case r.Code.Skipped(), r.Path == PathSkipped:
		return string(r.Code)
	case r.Path == PathStatus, r.Path == PathStatusTime:
		return "status/time"
	default:
		return "time"
	}
}

func truncateDetail(s string) string {
	if len(s) <= maxDetailLen {
		return s
	}
	return s[:maxDetailLen]
}
