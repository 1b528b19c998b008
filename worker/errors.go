package worker

// Per-cycle error taxonomy. All three are recoverable: the loop logs them
// and retries on the next interval with the marker unchanged.

// FetchError wraps a failure to retrieve the latest post.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return "fetch failed: " + e.Err.Error() }
func (e *FetchError) Unwrap() error { return e.Err }

// SummarizationError wraps a failed or empty summarizer response.
type SummarizationError struct {
	Err error
}

func (e *SummarizationError) Error() string { return "summarization failed: " + e.Err.Error() }
func (e *SummarizationError) Unwrap() error { return e.Err }

// DeliveryError wraps a failed notification delivery.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string { return "delivery failed: " + e.Err.Error() }
func (e *DeliveryError) Unwrap() error { return e.Err }
