package docgen

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/v-bommidi/ai-doc-generator/types"
)

// stubGenerator fails for ids in failing and records peak concurrency.
type stubGenerator struct {
	failing  map[string]bool
	delay    time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32
	calls    atomic.Int32
}

func (s *stubGenerator) Generate(ctx context.Context, el types.Element, model, _ string) (*Documentation, error) {
	s.calls.Add(1)
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			break
		}
	}

	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if s.failing[el.ID] {
		return nil, errors.New("generation failed")
	}
	return &Documentation{ElementID: el.ID, Model: model}, nil
}

func (s *stubGenerator) Translate(_ context.Context, text string, _, _ LanguageCode, _ string) (string, error) {
	return text, nil
}

func (s *stubGenerator) Models() []string { return []string{"stub"} }

func (s *stubGenerator) DefaultModel() string { return "stub" }

func makeElements(n int) []types.Element {
	elements := make([]types.Element, n)
	for i := range n {
		elements[i] = types.Element{ID: fmt.Sprintf("el-%02d", i), Name: fmt.Sprintf("f%d", i)}
	}
	return elements
}

func TestBatchGenerate(t *testing.T) {
	gen := &stubGenerator{
		failing: map[string]bool{"el-03": true, "el-07": true},
		delay:   5 * time.Millisecond,
	}

	docs, err := BatchGenerate(context.Background(), gen, makeElements(12), BatchOptions{
		Model:         "stub",
		MaxConcurrent: 3,
	})
	require.NoError(t, err)
	require.Len(t, docs, 10)

	var ids []string
	for _, d := range docs {
		ids = append(ids, d.ElementID)
		assert.Equal(t, "stub", d.Model)
	}
	assert.Equal(t, []string{
		"el-00", "el-01", "el-02", "el-04", "el-05",
		"el-06", "el-08", "el-09", "el-10", "el-11",
	}, ids)

	assert.EqualValues(t, 12, gen.calls.Load())
	assert.LessOrEqual(t, gen.peak.Load(), int32(3))
}

func TestBatchGenerateDefaults(t *testing.T) {
	gen := &stubGenerator{delay: time.Millisecond}

	docs, err := BatchGenerate(context.Background(), gen, makeElements(8), BatchOptions{})
	require.NoError(t, err)
	assert.Len(t, docs, 8)
	assert.LessOrEqual(t, gen.peak.Load(), int32(DefaultMaxConcurrent))

	docs, err = BatchGenerate(context.Background(), gen, nil, BatchOptions{})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestBatchGenerateRateLimited(t *testing.T) {
	gen := &stubGenerator{}

	// Burst of 2, then one request every 20ms.
	limiter := NewLimiter(2, 40*time.Millisecond)

	start := time.Now()
	docs, err := BatchGenerate(context.Background(), gen, makeElements(4), BatchOptions{
		MaxConcurrent: 4,
		Limiter:       limiter,
	})
	require.NoError(t, err)
	assert.Len(t, docs, 4)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestBatchGenerateCancelled(t *testing.T) {
	gen := &stubGenerator{delay: time.Second}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := BatchGenerate(ctx, gen, makeElements(6), BatchOptions{MaxConcurrent: 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewLimiter(t *testing.T) {
	l := NewLimiter(100, time.Minute)
	assert.Equal(t, 100, l.Burst())
	assert.InDelta(t, 100.0/60.0, float64(l.Limit()), 1e-6)

	assert.True(t, NewLimiter(0, time.Minute).Allow())
}
