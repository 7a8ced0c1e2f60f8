// Package model defines the core data types used throughout the report
// ingestion pipeline.
package model

import (
	"strings"
	"time"
)

// ReportStatus is the lifecycle state the reporting service assigns to a
// requested report.
type ReportStatus string

const (
	// ReportStatusPending indicates the report has been accepted but generation
	// has not started.
	ReportStatusPending ReportStatus = "PENDING"
	// ReportStatusRunning indicates the report is still being generated.
	ReportStatusRunning ReportStatus = "RUNNING"
	// ReportStatusSuccess indicates the report finished and a content location
	// is available.
	ReportStatusSuccess ReportStatus = "SUCCESS"
	// ReportStatusFailed indicates report generation terminated in failure.
	ReportStatusFailed ReportStatus = "FAILED"
	// ReportStatusUnknown covers any status string the service returns that is
	// not part of the known set.
	ReportStatusUnknown ReportStatus = "UNKNOWN"
)

// ParseReportStatus maps a raw status string from the reporting service onto
// the closed status set. Unrecognized values map to ReportStatusUnknown so the
// poller fails fast instead of looping on a status it does not understand.
func ParseReportStatus(raw string) ReportStatus {
	switch ReportStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case ReportStatusPending:
		return ReportStatusPending
	case ReportStatusRunning:
		return ReportStatusRunning
	case ReportStatusSuccess:
		return ReportStatusSuccess
	case ReportStatusFailed:
		return ReportStatusFailed
	default:
		return ReportStatusUnknown
	}
}

// Terminal returns true when the status ends the polling loop.
func (s ReportStatus) Terminal() bool {
	return s == ReportStatusSuccess || s == ReportStatusFailed
}

// ReportJob represents one requested report instance. It lives only for the
// duration of a single run; nothing about it is persisted.
type ReportJob struct {
	ReportID   string
	ReportType string
	Days       int
	Date       string
	Status     ReportStatus
	ContentURL string
}

// LoadResult is the terminal output of one run: the destination table the
// warehouse appended into and the number of rows it reported as loaded.
type LoadResult struct {
	DestinationTable string
	ObjectURI        string
	RowCount         int64
	Duration         time.Duration
}
