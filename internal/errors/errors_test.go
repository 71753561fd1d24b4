package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *PipelineError
		expected string
	}{
		{
			name:     "message only",
			err:      New("INPUT_MISSING", "required input not found"),
			expected: "required input not found",
		},
		{
			name: "wrapped cause",
			err: &PipelineError{
				ErrorCode: "FILESYSTEM_ERROR",
				Message:   "file system error",
				Err:       errors.New("permission denied"),
			},
			expected: "file system error: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestPipelineError_Is(t *testing.T) {
	err := IntegrityFailure(10, 9)
	assert.True(t, errors.Is(err, ErrAggregationIntegrity))
	assert.False(t, errors.Is(err, ErrInputMissing))

	wrapped := fmt.Errorf("aggregate audio: %w", err)
	assert.True(t, errors.Is(wrapped, ErrAggregationIntegrity))
}

func TestPipelineError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := FileSystemError(cause)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestHelperConstructors(t *testing.T) {
	t.Run("input missing carries path", func(t *testing.T) {
		err := InputMissing("/data/results/audio_quality.csv")
		assert.Equal(t, "INPUT_MISSING", err.ErrorCode)
		assert.Contains(t, err.Message, "audio_quality.csv")
	})

	t.Run("schema violation names file and column", func(t *testing.T) {
		err := SchemaViolation("daily_counts.csv", "total_files")
		require.NotNil(t, err.Details)
		assert.Contains(t, err.Message, `"total_files"`)
		assert.Contains(t, err.Message, "daily_counts.csv")
	})

	t.Run("integrity failure carries both counts", func(t *testing.T) {
		err := IntegrityFailure(100, 99)
		details, ok := err.Details.(map[string]int)
		require.True(t, ok)
		assert.Equal(t, 100, details["expected"])
		assert.Equal(t, 99, details["got"])
	})

	t.Run("no usable rows names the source", func(t *testing.T) {
		err := NoUsableRows("audio extraction")
		assert.True(t, errors.Is(err, ErrNoUsableRows))
		assert.Contains(t, err.Message, "audio extraction")
	})
}
