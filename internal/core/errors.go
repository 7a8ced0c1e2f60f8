package core

import "fmt"

// RequestError indicates the report-creation call failed: a non-success
// response, or a success response without a usable report identifier.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("report creation failed with status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("report creation returned no report id: %s", e.Body)
}

// StatusRequestError indicates a status query returned a non-success,
// non-rate-limit response.
type StatusRequestError struct {
	StatusCode int
	Body       string
}

func (e *StatusRequestError) Error() string {
	return fmt.Sprintf("status query failed with status %d: %s", e.StatusCode, e.Body)
}

// UnexpectedStatusError indicates a status response the poller cannot act on:
// an unknown report status, a success without a content location, or an
// unparseable body.
type UnexpectedStatusError struct {
	Status string
	Body   string
}

func (e *UnexpectedStatusError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("unexpected report status %q: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("unparseable status response: %s", e.Body)
}

// ReportFailedError indicates the reporting service terminated generation in
// failure.
type ReportFailedError struct {
	ReportID string
}

func (e *ReportFailedError) Error() string {
	return fmt.Sprintf("report %s failed on the reporting service", e.ReportID)
}

// PollTimeoutError indicates the polling attempt budget ran out before the
// report reached a terminal status.
type PollTimeoutError struct {
	Attempts int
}

func (e *PollTimeoutError) Error() string {
	return fmt.Sprintf("report not ready after %d status checks", e.Attempts)
}

// DownloadError indicates the content download returned a non-success status.
type DownloadError struct {
	StatusCode int
	URL        string
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("content download failed with status %d: %s", e.StatusCode, e.URL)
}

// StorageWriteError indicates streaming the payload into object storage
// failed.
type StorageWriteError struct {
	Object string
	Err    error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("write object %s: %v", e.Object, e.Err)
}

func (e *StorageWriteError) Unwrap() error { return e.Err }

// LoadSubmissionError indicates the warehouse load job could not be submitted
// or awaited.
type LoadSubmissionError struct {
	Err error
}

func (e *LoadSubmissionError) Error() string {
	return fmt.Sprintf("submit load job: %v", e.Err)
}

func (e *LoadSubmissionError) Unwrap() error { return e.Err }

// LoadJobError indicates the warehouse accepted the load job but the job
// itself ended in failure.
type LoadJobError struct {
	Err error
}

func (e *LoadJobError) Error() string {
	return fmt.Sprintf("load job failed: %v", e.Err)
}

func (e *LoadJobError) Unwrap() error { return e.Err }
