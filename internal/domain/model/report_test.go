package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseReportStatus(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ReportStatus
	}{
		{name: "running", input: "RUNNING", expected: ReportStatusRunning},
		{name: "success", input: "SUCCESS", expected: ReportStatusSuccess},
		{name: "failed", input: "FAILED", expected: ReportStatusFailed},
		{name: "pending", input: "PENDING", expected: ReportStatusPending},
		{name: "lowercase", input: "running", expected: ReportStatusRunning},
		{name: "padded", input: "  SUCCESS ", expected: ReportStatusSuccess},
		{name: "unrecognized", input: "QUEUED", expected: ReportStatusUnknown},
		{name: "empty", input: "", expected: ReportStatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseReportStatus(tt.input))
		})
	}
}

func TestReportStatusTerminal(t *testing.T) {
	assert.True(t, ReportStatusSuccess.Terminal())
	assert.True(t, ReportStatusFailed.Terminal())
	assert.False(t, ReportStatusRunning.Terminal())
	assert.False(t, ReportStatusPending.Terminal())
	assert.False(t, ReportStatusUnknown.Terminal())
}
