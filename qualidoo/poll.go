package qualidoo

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// JobPoller is the slice of the client the poll loop needs. *Client
// satisfies it; tests substitute their own.
type JobPoller interface {
	GetJobStatus(ctx context.Context, jobID string) (*JobStatus, error)
	GetJobResult(ctx context.Context, jobID string) (*AnalysisResult, error)
}

// ProgressFunc observes every polled status, including the terminal one.
// It is invoked synchronously, once per observation, before any branching.
type ProgressFunc func(status JobStatus)

// WaitOptions control a WaitForCompletion call. A Timeout of zero or less
// times out immediately; there is no implicit default.
type WaitOptions struct {
	PollInterval time.Duration
	Timeout      time.Duration
	OnProgress   ProgressFunc
}

// WaitForCompletion polls the job until it reaches a terminal state or the
// timeout expires, then returns the full result for completed jobs.
//
// The elapsed-time check runs before each status request, so the loop never
// issues a request it no longer has time budget for. Statuses the client
// does not recognize are treated as still in progress and polled again;
// only the timeout bounds the loop.
func WaitForCompletion(ctx context.Context, api JobPoller, jobID string, opts WaitOptions) (*AnalysisResult, error) {
	interval := opts.PollInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	start := time.Now()

	for {
		if time.Since(start) >= opts.Timeout {
			return nil, &APIError{
				Kind:    KindTimeout,
				Message: fmt.Sprintf("Job %s did not complete within %s", jobID, opts.Timeout),
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		status, err := api.GetJobStatus(ctx, jobID)
		if err != nil {
			return nil, err
		}
		if opts.OnProgress != nil {
			opts.OnProgress(*status)
		}

		switch strings.ToLower(status.Status) {
		case JobStatusCompleted:
			return api.GetJobResult(ctx, jobID)
		case JobStatusFailed:
			reason := status.Error
			if reason == "" {
				reason = "Unknown error"
			}
			return nil, &APIError{
				Kind:    KindAnalysisFailed,
				Message: fmt.Sprintf("Analysis failed: %s", reason),
			}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}
	}
}

// WaitForCompletion polls this client's own job endpoints. See the package
// function for the loop contract.
func (c *Client) WaitForCompletion(ctx context.Context, jobID string, opts WaitOptions) (*AnalysisResult, error) {
	return WaitForCompletion(ctx, c, jobID, opts)
}
