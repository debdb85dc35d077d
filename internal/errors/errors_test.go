package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	codes := []string{
		ErrInvalidPosition,
		ErrNameCollision,
		ErrUnknownField,
		ErrSurfaceNotReady,
		ErrInvalidThreshold,
		ErrUnknownWindow,
		ErrTerminal,
		ErrConfig,
		ErrProbe,
		ErrSSH,
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{
			name:       "config error",
			code:       ErrConfig,
			message:    "Invalid configuration in .statusboard.yaml",
			suggestion: "Check your configuration file syntax",
		},
		{
			name:       "position error",
			code:       ErrInvalidPosition,
			message:    "Field 'cpu' at (25,3) is outside the 20x10 window",
			suggestion: "",
		},
		{
			name:       "terminal error",
			code:       ErrTerminal,
			message:    "Couldn't open the terminal",
			suggestion: "Run statusboard from an interactive terminal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)

			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(ErrUnknownWindow, "no window named %q", "cpu")

	assert.Equal(t, ErrUnknownWindow, err.Code)
	assert.Equal(t, `no window named "cpu"`, err.Message)
	assert.Empty(t, err.Suggestion)
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name          string
		err           *Error
		expectedParts []string
		notExpected   []string
	}{
		{
			name: "message and suggestion",
			err:  New(ErrConfig, "Invalid configuration", "Check .statusboard.yaml syntax"),
			expectedParts: []string{
				"✗ Invalid configuration",
				"Check .statusboard.yaml syntax",
			},
		},
		{
			name: "cause is included",
			err:  WrapWithCode(fmt.Errorf("open /dev/tty: no such device"), ErrTerminal, "Couldn't open the terminal", ""),
			expectedParts: []string{
				"Couldn't open the terminal",
				"open /dev/tty: no such device",
			},
		},
		{
			name:          "no suggestion line when empty",
			err:           Newf(ErrUnknownField, "no field named %q", "temp"),
			expectedParts: []string{`no field named "temp"`},
			notExpected:   []string{"\n\n  \n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.err.Error()
			for _, part := range tt.expectedParts {
				assert.Contains(t, out, part)
			}
			for _, part := range tt.notExpected {
				assert.NotContains(t, out, part)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, "terminal init failed")

	assert.Equal(t, ErrTerminal, err.Code)
	assert.Same(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
}

func TestIsCode(t *testing.T) {
	base := Newf(ErrNameCollision, "field %q already exists", "x")
	wrapped := fmt.Errorf("adding field: %w", base)

	assert.True(t, IsCode(base, ErrNameCollision))
	assert.True(t, IsCode(wrapped, ErrNameCollision))
	assert.False(t, IsCode(wrapped, ErrUnknownField))
	assert.False(t, IsCode(errors.New("plain"), ErrNameCollision))
	assert.False(t, IsCode(nil, ErrNameCollision))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrProbe, CodeOf(fmt.Errorf("outer: %w", New(ErrProbe, "ssh failed", ""))))
	assert.Equal(t, "", CodeOf(errors.New("plain")))
	assert.Equal(t, "", CodeOf(nil))
	assert.True(t, strings.HasPrefix(New(ErrConfig, "m", "").Error(), "✗"))
}
