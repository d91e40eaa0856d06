package edgar

import "fmt"

// UpstreamError reports a failure talking to SEC EDGAR: the request could not
// be made, the server answered with an error status, or the payload could not
// be decoded. Callers treat it as transient and do not retry.
type UpstreamError struct {
	Op  string // "company index", "submissions", "current feed", "ping"
	URL string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("sec %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
