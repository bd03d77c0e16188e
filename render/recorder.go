package render

import "sync"

// Recorder is a Renderer that keeps the drawables of the last presented frame.
// It backs headless runs and tests.
type Recorder struct {
	mu        sync.Mutex
	pending   []Drawable
	presented []Drawable
	frames    int
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) BeginFrame() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = r.pending[:0]
}

func (r *Recorder) Submit(d Drawable) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(r.pending, d)
}

func (r *Recorder) Present() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presented = append(r.presented[:0], r.pending...)
	r.frames++
}

// Frame returns a copy of the drawables of the last presented frame.
func (r *Recorder) Frame() []Drawable {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Drawable(nil), r.presented...)
}

// Frames returns how many frames were presented.
func (r *Recorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}
