package debounce

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type recorder struct {
	mu    sync.Mutex
	calls []string
	fired chan struct{}
}

func newRecorder() *recorder {
	return &recorder{fired: make(chan struct{}, 16)}
}

func (r *recorder) record(v string) {
	r.mu.Lock()
	r.calls = append(r.calls, v)
	r.mu.Unlock()
	r.fired <- struct{}{}
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.fired:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced call never fired")
	}
}

func TestDebouncer_BurstCollapsesToLastValue(t *testing.T) {
	defer goleak.VerifyNone(t)

	rec := newRecorder()
	d := New(30*time.Millisecond, rec.record)
	for _, v := range []string{"c", "cl", "cli"} {
		d.Trigger(v)
	}
	rec.wait(t)

	time.Sleep(60 * time.Millisecond)
	require.Equal(t, []string{"cli"}, rec.snapshot())
	require.False(t, d.Pending())
}

func TestDebouncer_SeparateBurstsFireSeparately(t *testing.T) {
	defer goleak.VerifyNone(t)

	rec := newRecorder()
	d := New(10*time.Millisecond, rec.record)
	d.Trigger("a")
	rec.wait(t)
	d.Trigger("b")
	rec.wait(t)

	require.Equal(t, []string{"a", "b"}, rec.snapshot())
}

func TestDebouncer_FlushRunsImmediately(t *testing.T) {
	defer goleak.VerifyNone(t)

	var got []string
	d := New(time.Hour, func(v string) { got = append(got, v) })

	require.False(t, d.Flush(), "nothing pending")
	d.Trigger("go")
	require.True(t, d.Pending())
	require.True(t, d.Flush())
	require.Equal(t, []string{"go"}, got)
	require.False(t, d.Flush(), "flush consumes the pending call")
}

func TestDebouncer_StopCancels(t *testing.T) {
	defer goleak.VerifyNone(t)

	rec := newRecorder()
	d := New(10*time.Millisecond, rec.record)
	d.Trigger("never")
	d.Stop()

	time.Sleep(40 * time.Millisecond)
	require.Empty(t, rec.snapshot())
	require.False(t, d.Pending())
}

func TestDebouncer_DefaultWindow(t *testing.T) {
	d := New(0, func(int) {})
	require.Equal(t, DefaultWindow, d.Window())
}
