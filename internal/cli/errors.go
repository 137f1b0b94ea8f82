package cli

// ReportedError marks a failure that has already been shown to the user.
// The caller should exit non-zero without printing it again.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string {
	return e.Err.Error()
}

func (e *ReportedError) Unwrap() error {
	return e.Err
}

// Reported wraps err as a ReportedError. It returns nil for a nil err.
func Reported(err error) error {
	if err == nil {
		return nil
	}
	return &ReportedError{Err: err}
}
