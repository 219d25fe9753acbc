package qualidoo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockJobPoller struct {
	mock.Mock
}

func (m *MockJobPoller) GetJobStatus(ctx context.Context, jobID string) (*JobStatus, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).(*JobStatus), args.Error(1)
}

func (m *MockJobPoller) GetJobResult(ctx context.Context, jobID string) (*AnalysisResult, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).(*AnalysisResult), args.Error(1)
}

func fastOptions(onProgress ProgressFunc) WaitOptions {
	return WaitOptions{
		PollInterval: time.Millisecond,
		Timeout:      5 * time.Second,
		OnProgress:   onProgress,
	}
}

func TestWaitForCompletionImmediateCompletion(t *testing.T) {
	poller := new(MockJobPoller)
	poller.On("GetJobStatus", mock.Anything, "job-1").Return(&JobStatus{JobID: "job-1", Status: "completed"}, nil).Once()
	poller.On("GetJobResult", mock.Anything, "job-1").Return(&AnalysisResult{OverallScore: 92}, nil).Once()

	var observed []JobStatus
	result, err := WaitForCompletion(context.Background(), poller, "job-1", fastOptions(func(s JobStatus) {
		observed = append(observed, s)
	}))

	require.NoError(t, err)
	assert.Equal(t, 92.0, result.OverallScore)
	require.Len(t, observed, 1)
	assert.Equal(t, "completed", observed[0].Status)
	poller.AssertNumberOfCalls(t, "GetJobStatus", 1)
	poller.AssertNumberOfCalls(t, "GetJobResult", 1)
}

func TestWaitForCompletionStatusSequence(t *testing.T) {
	poller := new(MockJobPoller)
	poller.On("GetJobStatus", mock.Anything, "job-1").Return(&JobStatus{Status: "pending"}, nil).Once()
	poller.On("GetJobStatus", mock.Anything, "job-1").Return(&JobStatus{Status: "running"}, nil).Once()
	poller.On("GetJobStatus", mock.Anything, "job-1").Return(&JobStatus{Status: "completed"}, nil).Once()
	poller.On("GetJobResult", mock.Anything, "job-1").Return(&AnalysisResult{OverallScore: 85}, nil).Once()

	var observed []string
	result, err := WaitForCompletion(context.Background(), poller, "job-1", fastOptions(func(s JobStatus) {
		observed = append(observed, s.Status)
	}))

	require.NoError(t, err)
	assert.Equal(t, 85.0, result.OverallScore)
	assert.Equal(t, []string{"pending", "running", "completed"}, observed)
}

func TestWaitForCompletionUppercaseTerminalStatus(t *testing.T) {
	poller := new(MockJobPoller)
	poller.On("GetJobStatus", mock.Anything, "job-1").Return(&JobStatus{Status: "COMPLETED"}, nil).Once()
	poller.On("GetJobResult", mock.Anything, "job-1").Return(&AnalysisResult{OverallScore: 50}, nil).Once()

	_, err := WaitForCompletion(context.Background(), poller, "job-1", fastOptions(nil))
	require.NoError(t, err)
}

func TestWaitForCompletionFailedJob(t *testing.T) {
	poller := new(MockJobPoller)
	poller.On("GetJobStatus", mock.Anything, "job-1").Return(&JobStatus{Status: "failed", Error: "invalid addon structure"}, nil).Once()

	_, err := WaitForCompletion(context.Background(), poller, "job-1", fastOptions(nil))
	require.Error(t, err)
	assert.True(t, IsKind(err, KindAnalysisFailed))
	assert.Contains(t, err.Error(), "invalid addon structure")
	poller.AssertNotCalled(t, "GetJobResult", mock.Anything, mock.Anything)
}

func TestWaitForCompletionFailedJobWithoutReason(t *testing.T) {
	poller := new(MockJobPoller)
	poller.On("GetJobStatus", mock.Anything, "job-1").Return(&JobStatus{Status: "failed"}, nil).Once()

	_, err := WaitForCompletion(context.Background(), poller, "job-1", fastOptions(nil))
	require.Error(t, err)
	assert.True(t, IsKind(err, KindAnalysisFailed))
	assert.Contains(t, err.Error(), "Unknown error")
}

func TestWaitForCompletionTimesOutBeforeFirstPoll(t *testing.T) {
	poller := new(MockJobPoller)

	_, err := WaitForCompletion(context.Background(), poller, "job-1", WaitOptions{
		PollInterval: time.Millisecond,
		Timeout:      0,
	})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindTimeout))
	poller.AssertNotCalled(t, "GetJobStatus", mock.Anything, mock.Anything)
	poller.AssertNotCalled(t, "GetJobResult", mock.Anything, mock.Anything)
}

func TestWaitForCompletionTimesOutWhilePolling(t *testing.T) {
	poller := new(MockJobPoller)
	poller.On("GetJobStatus", mock.Anything, "job-1").Return(&JobStatus{Status: "processing"}, nil)

	_, err := WaitForCompletion(context.Background(), poller, "job-1", WaitOptions{
		PollInterval: time.Millisecond,
		Timeout:      20 * time.Millisecond,
	})
	require.Error(t, err)
	assert.True(t, IsKind(err, KindTimeout))
	poller.AssertNotCalled(t, "GetJobResult", mock.Anything, mock.Anything)
}

func TestWaitForCompletionUnknownStatusKeepsPolling(t *testing.T) {
	poller := new(MockJobPoller)
	poller.On("GetJobStatus", mock.Anything, "job-1").Return(&JobStatus{Status: "reticulating"}, nil).Once()
	poller.On("GetJobStatus", mock.Anything, "job-1").Return(&JobStatus{Status: "completed"}, nil).Once()
	poller.On("GetJobResult", mock.Anything, "job-1").Return(&AnalysisResult{}, nil).Once()

	var observed []string
	_, err := WaitForCompletion(context.Background(), poller, "job-1", fastOptions(func(s JobStatus) {
		observed = append(observed, s.Status)
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"reticulating", "completed"}, observed)
}

func TestWaitForCompletionCanceledContext(t *testing.T) {
	poller := new(MockJobPoller)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WaitForCompletion(ctx, poller, "job-1", fastOptions(nil))
	require.ErrorIs(t, err, context.Canceled)
	poller.AssertNotCalled(t, "GetJobStatus", mock.Anything, mock.Anything)
}

func TestJobStatusIsTerminal(t *testing.T) {
	assert.True(t, JobStatus{Status: "completed"}.IsTerminal())
	assert.True(t, JobStatus{Status: "FAILED"}.IsTerminal())
	assert.False(t, JobStatus{Status: "pending"}.IsTerminal())
	assert.False(t, JobStatus{Status: "reticulating"}.IsTerminal())
}
