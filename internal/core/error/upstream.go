package errx

// WrapUpstream wraps a failure from the hosted agent endpoint, carrying the
// upstream HTTP status so callers can decide whether a fallback applies.
func WrapUpstream(err error, status int) *AppError {
	if err == nil {
		return nil
	}
	return New(err, status, UpstreamErrorMessage)
}
