package config

import (
	"testing"
	"time"
)

func TestWorkflowTimeoutFromEnv(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want time.Duration
	}{
		{"unset uses default", "", defaultWorkflowTimeout},
		{"valid seconds", "45", 45 * time.Second},
		{"garbage uses default", "soon", defaultWorkflowTimeout},
		{"non-positive uses default", "0", defaultWorkflowTimeout},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("WORKFLOW_TIMEOUT_SECONDS", tc.raw)
			if got := workflowTimeoutFromEnv(); got != tc.want {
				t.Fatalf("workflowTimeoutFromEnv() = %v, want %v", got, tc.want)
			}
		})
	}
}
