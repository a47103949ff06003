package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/hugorg/internal/foundation/errors"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()

	require.Equal(t, ModeLinear, p.Mode)
	require.Equal(t, 50*time.Millisecond, p.Initial)
	require.Equal(t, time.Second, p.Max)
	require.Equal(t, 2, p.MaxRetries)
	require.NoError(t, p.Validate())
}

// Initial above max is clamped.
func TestNewPolicyOverrides(t *testing.T) {
	p := NewPolicy(ModeFixed, 5*time.Second, 2*time.Second, 5)

	require.Equal(t, 2*time.Second, p.Initial)
	require.Equal(t, 2*time.Second, p.Max)
	require.Equal(t, ModeFixed, p.Mode)
	require.Equal(t, 5, p.MaxRetries)
}

func TestNewPolicyUnknownModeKeepsDefault(t *testing.T) {
	require.Equal(t, ModeLinear, NewPolicy("zigzag", 0, 0, -1).Mode)
}

func TestDelayModes(t *testing.T) {
	ms := time.Millisecond
	tests := []struct {
		name   string
		policy Policy
		want   []time.Duration
	}{
		{"fixed", NewPolicy(ModeFixed, 100*ms, 500*ms, 3), []time.Duration{100 * ms, 100 * ms, 100 * ms}},
		{"linear", NewPolicy(ModeLinear, 100*ms, 250*ms, 5), []time.Duration{100 * ms, 200 * ms, 250 * ms, 250 * ms}},
		{"exponential", NewPolicy(ModeExponential, 50*ms, 160*ms, 5), []time.Duration{50 * ms, 100 * ms, 160 * ms, 160 * ms}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i, want := range tt.want {
				require.Equal(t, want, tt.policy.Delay(i+1), "attempt %d", i+1)
			}
		})
	}
}

func TestDelayEdgeCases(t *testing.T) {
	p := NewPolicy(ModeLinear, 10*time.Millisecond, 20*time.Millisecond, 1)

	require.Zero(t, p.Delay(0))
	require.Zero(t, p.Delay(-1))
}

func TestValidate(t *testing.T) {
	require.Error(t, Policy{Initial: 0, Max: time.Second}.Validate())
	require.Error(t, Policy{Initial: time.Second, Max: 0}.Validate())
	require.Error(t, Policy{Initial: time.Second, Max: time.Second, MaxRetries: -1}.Validate())
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	p := NewPolicy(ModeFixed, time.Millisecond, time.Millisecond, 3)
	calls := 0

	err := p.Do(t.Context(), func() error {
		calls++
		if calls < 3 {
			return errors.New("busy")
		}
		return nil
	})

	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestDo_ReturnsLastError(t *testing.T) {
	p := NewPolicy(ModeFixed, time.Millisecond, time.Millisecond, 2)
	calls := 0

	err := p.Do(t.Context(), func() error {
		calls++
		return errors.New("still busy")
	})

	require.EqualError(t, err, "still busy")
	require.Equal(t, 3, calls)
}

func TestDo_SkipsPermanentErrors(t *testing.T) {
	p := NewPolicy(ModeFixed, time.Millisecond, time.Millisecond, 3)
	calls := 0

	err := p.Do(t.Context(), func() error {
		calls++
		return ferrors.NewError(ferrors.CategoryValidation, "bad input").Build()
	})

	require.Error(t, err)
	require.Equal(t, 1, calls)

	calls = 0
	err = p.Do(t.Context(), func() error {
		calls++
		return ferrors.NewError(ferrors.CategoryFileSystem, "locked").Retryable().Build()
	})

	require.Error(t, err)
	require.Equal(t, 4, calls)
}

func TestDo_StopsOnCancel(t *testing.T) {
	p := NewPolicy(ModeFixed, time.Hour, time.Hour, 5)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := p.Do(ctx, func() error { return errors.New("busy") })

	require.ErrorIs(t, err, context.Canceled)
}
