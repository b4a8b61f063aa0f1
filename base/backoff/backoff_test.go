package backoff

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExponential(t *testing.T) {
	req := require.New(t)
	b := NewExponential(time.Millisecond, 4*time.Millisecond)
	req.Equal(time.Millisecond, b.NextDuration)

	expected := []time.Duration{2 * time.Millisecond, 4 * time.Millisecond, 4 * time.Millisecond}
	for i, d := range expected {
		req.NoError(b.Backoff(context.Background()))
		req.Equal(i+1, b.Count())
		req.Equal(d, b.NextDuration)
	}

	b.Reset()
	req.Equal(0, b.Count())
	req.Equal(time.Millisecond, b.NextDuration)
}

func TestConstant(t *testing.T) {
	req := require.New(t)
	b := NewConstant(time.Millisecond)
	req.NoError(b.Backoff(context.Background()))
	req.Equal(time.Millisecond, b.LastDuration)
	req.Equal(time.Millisecond, b.NextDuration)
}

func TestBackoffCancelled(t *testing.T) {
	req := require.New(t)
	b := NewConstant(time.Hour)
	c, cancel := context.WithCancel(context.Background())
	cancel()
	req.Equal(context.Canceled, b.Backoff(c))
	req.Equal(0, b.Count())
}
