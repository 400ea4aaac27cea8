package handler

// Failure pairs an underlying error with the operation message rendered to the
// client when the error cannot be mapped to a more specific response.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return f.Message
	}
	return f.Message + ": " + f.Err.Error()
}

func (f *Failure) Unwrap() error { return f.Err }

func fail(message string, err error) error {
	return &Failure{Message: message, Err: err}
}
