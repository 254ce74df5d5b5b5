package reveal

import (
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestMaxSteps_Defaults(t *testing.T) {
	require.Equal(t, 300, MaxSteps(DefaultBudget, DefaultInterval))
	require.Equal(t, 1, MaxSteps(0, time.Second))
	require.Equal(t, 1, MaxSteps(time.Millisecond, time.Second))
}

func TestChunkSize(t *testing.T) {
	require.Equal(t, 1, ChunkSize(0, 300))
	require.Equal(t, 1, ChunkSize(11, 300))
	require.Equal(t, 1, ChunkSize(300, 300))
	require.Equal(t, 2, ChunkSize(301, 300))
	require.Equal(t, 4, ChunkSize(1000, 300))
}

func TestTask_RevealsWholeText(t *testing.T) {
	var surface Text
	var done int
	task := NewTask(&surface, "Hello world", 4, func() { done++ })

	steps := 0
	for task.Step() {
		steps++
	}
	steps++

	require.Equal(t, "Hello world", surface.String())
	require.Equal(t, 1, done)
	require.True(t, task.Done())
	require.Equal(t, 4, steps)
	require.False(t, task.Step(), "finished task takes no more steps")
	require.Equal(t, 1, done, "callback fires once")
}

func TestTask_CancelledNeverCompletes(t *testing.T) {
	var surface Text
	called := false
	task := NewTask(&surface, "abcdefgh", 8, func() { called = true })

	require.True(t, task.Step())
	require.True(t, task.Step())
	task.Cancel()

	require.False(t, task.Step())
	require.True(t, task.Cancelled())
	require.False(t, task.Done())
	require.False(t, called)
	require.Equal(t, "ab", surface.String(), "written prefix stays written")
}

func TestTask_EmptyText(t *testing.T) {
	var surface Text
	called := false
	task := NewTask(&surface, "", 300, func() { called = true })

	require.False(t, task.Step())
	require.True(t, called)
	require.Empty(t, surface.String())
}

func TestTask_BoundedSteps(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringN(0, 3000, -1).Draw(t, "text")
		maxSteps := rapid.IntRange(1, 400).Draw(t, "maxSteps")

		var surface Text
		completed := false
		task := NewTask(&surface, text, maxSteps, func() { completed = true })

		steps := 1
		for task.Step() {
			steps++
		}

		if steps > maxSteps {
			t.Fatalf("took %d steps, bound is %d", steps, maxSteps)
		}
		if surface.String() != text {
			t.Fatalf("revealed %q, want %q", surface.String(), text)
		}
		if !completed {
			t.Fatalf("completion callback not called")
		}
	})
}

func advanceUntil(t *testing.T, mock *clock.Mock, step time.Duration, cond func() bool) {
	t.Helper()
	require.Eventually(t, func() bool {
		if cond() {
			return true
		}
		mock.Add(step)
		return cond()
	}, 5*time.Second, time.Millisecond)
}

func TestRevealer_CompletesOnVirtualClock(t *testing.T) {
	mock := clock.NewMock()
	r := NewRevealer(Config{Budget: 100 * time.Millisecond, Interval: 10 * time.Millisecond, Clock: mock})
	t.Cleanup(r.Stop)
	require.Equal(t, 10, r.MaxSteps())

	var surface Text
	var done atomic.Int32
	text := strings.Repeat("word ", 200)
	r.Start(&surface, text, func() { done.Add(1) })
	require.True(t, r.Running(&surface))

	advanceUntil(t, mock, 10*time.Millisecond, func() bool { return done.Load() == 1 })

	require.Equal(t, text, surface.String())
	require.Eventually(t, func() bool { return !r.Running(&surface) }, time.Second, time.Millisecond)
}

func TestRevealer_RestartCancelsPrevious(t *testing.T) {
	mock := clock.NewMock()
	r := NewRevealer(Config{Budget: time.Second, Interval: 10 * time.Millisecond, Clock: mock})
	t.Cleanup(r.Stop)

	var surface Text
	var firstDone, secondDone atomic.Int32
	first := r.Start(&surface, strings.Repeat("a", 500), func() { firstDone.Add(1) })

	mock.Add(10 * time.Millisecond)
	second := r.Start(&surface, "bbb", func() { secondDone.Add(1) })

	require.True(t, first.Cancelled())
	advanceUntil(t, mock, 10*time.Millisecond, func() bool { return secondDone.Load() == 1 })

	require.Equal(t, "bbb", surface.String(), "only the new task writes after restart")
	require.True(t, second.Done())
	require.Equal(t, int32(0), firstDone.Load())
}

func TestRevealer_CancelKeepsPrefix(t *testing.T) {
	mock := clock.NewMock()
	r := NewRevealer(Config{Budget: time.Second, Interval: 10 * time.Millisecond, Clock: mock})
	t.Cleanup(r.Stop)

	var surface Text
	var done atomic.Int32
	text := strings.Repeat("x", 100)
	r.Start(&surface, text, func() { done.Add(1) })

	advanceUntil(t, mock, 10*time.Millisecond, func() bool { return surface.String() != "" })
	r.Cancel(&surface)
	require.False(t, r.Running(&surface))

	written := surface.String()
	for i := 0; i < 200; i++ {
		mock.Add(10 * time.Millisecond)
	}

	require.Equal(t, written, surface.String())
	require.True(t, strings.HasPrefix(text, written))
	require.Equal(t, int32(0), done.Load())
}

func TestRevealer_SurfacesAreIndependent(t *testing.T) {
	mock := clock.NewMock()
	r := NewRevealer(Config{Budget: 50 * time.Millisecond, Interval: 10 * time.Millisecond, Clock: mock})
	t.Cleanup(r.Stop)

	var a, b Text
	var done atomic.Int32
	r.Start(&a, "first panel", func() { done.Add(1) })
	r.Start(&b, "second panel", func() { done.Add(1) })

	advanceUntil(t, mock, 10*time.Millisecond, func() bool { return done.Load() == 2 })
	require.Equal(t, "first panel", a.String())
	require.Equal(t, "second panel", b.String())
}
