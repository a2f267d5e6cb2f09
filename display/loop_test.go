package display

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visionward/camview/video"
)

// fakeSource feeds the loop a controllable sequence of frames.
type fakeSource struct {
	name string
	mu   sync.Mutex
	next *video.Frame
}

func (s *fakeSource) Name() string { return s.name }

func (s *fakeSource) Poll() (*video.Frame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next == nil {
		return nil, false
	}
	f := s.next
	s.next = nil
	return f, true
}

func (s *fakeSource) offer(f *video.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next = f
}

// recordingRenderer captures displayed frames per stream.
type recordingRenderer struct {
	mu     sync.Mutex
	seen   map[string][]uint64
	err    error
	called int
}

func (r *recordingRenderer) Display(stream string, f *video.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seen == nil {
		r.seen = make(map[string][]uint64)
	}
	r.seen[stream] = append(r.seen[stream], f.Sequence)
	r.called++
	return r.err
}

func (r *recordingRenderer) sequences(stream string) []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]uint64, len(r.seen[stream]))
	copy(out, r.seen[stream])
	return out
}

func testFrame(stream string, seq uint64) *video.Frame {
	return &video.Frame{
		Stream:   stream,
		Image:    image.NewRGBA(image.Rect(0, 0, 4, 4)),
		Width:    4,
		Height:   4,
		Sequence: seq,
	}
}

func TestLoopForwardsNewFrames(t *testing.T) {
	src := &fakeSource{name: "top"}
	rec := &recordingRenderer{}
	loop := NewLoop([]Source{src}, rec, 100)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(done)
	}()

	src.offer(testFrame("top", 1))
	waitUntil(t, func() bool { return len(rec.sequences("top")) == 1 })

	src.offer(testFrame("top", 2))
	waitUntil(t, func() bool { return len(rec.sequences("top")) == 2 })

	cancel()
	<-done

	assert.Equal(t, []uint64{1, 2}, rec.sequences("top"))
}

func TestLoopSkipsStalledSource(t *testing.T) {
	stalled := &fakeSource{name: "top"}
	active := &fakeSource{name: "bottom"}
	rec := &recordingRenderer{}
	loop := NewLoop([]Source{stalled, active}, rec, 200)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	for seq := uint64(1); seq <= 3; seq++ {
		active.offer(testFrame("bottom", seq))
		waitUntil(t, func() bool { return len(rec.sequences("bottom")) == int(seq) })
	}

	assert.Empty(t, rec.sequences("top"), "a source with no frames contributes nothing")
	assert.Equal(t, []uint64{1, 2, 3}, rec.sequences("bottom"))
}

func TestLoopSurvivesRendererError(t *testing.T) {
	src := &fakeSource{name: "top"}
	rec := &recordingRenderer{err: errors.New("render device gone")}
	loop := NewLoop([]Source{src}, rec, 200)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	src.offer(testFrame("top", 1))
	waitUntil(t, func() bool { return len(rec.sequences("top")) == 1 })

	// The loop keeps ticking and rendering after an error.
	src.offer(testFrame("top", 2))
	waitUntil(t, func() bool { return len(rec.sequences("top")) == 2 })
}

func TestLoopStopsOnCancel(t *testing.T) {
	loop := NewLoop(nil, &recordingRenderer{}, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop did not stop on cancellation")
	}
}

func TestFileRendererWritesFrame(t *testing.T) {
	dir := t.TempDir()
	r, err := NewFileRenderer(filepath.Join(dir, "frames"), 85)
	require.NoError(t, err)

	require.NoError(t, r.Display("top", testFrame("top", 1)))

	data, err := os.ReadFile(filepath.Join(dir, "frames", "top.jpg"))
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	// The published file must decode back to an image.
	img, err := video.NewImageDecoder().Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())

	// No temp file left behind.
	_, err = os.Stat(filepath.Join(dir, "frames", "top.jpg.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func waitUntil(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}
