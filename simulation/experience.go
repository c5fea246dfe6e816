package simulation

import "github.com/blaze-intelligence/sim-engine/models"

// DefaultExperienceDepth bounds the per-player experience ring buffer.
const DefaultExperienceDepth = 50

// ExperienceBuffer is a bounded FIFO ring of at-bat experiences. Once the
// bound is reached, each append evicts the oldest entry; the buffer never
// exceeds its configured depth.
type ExperienceBuffer struct {
	entries []models.Experience
	depth   int
	start   int
	count   int
}

// NewExperienceBuffer creates a ring buffer with the given depth;
// depth <= 0 falls back to DefaultExperienceDepth.
func NewExperienceBuffer(depth int) *ExperienceBuffer {
	if depth <= 0 {
		depth = DefaultExperienceDepth
	}
	return &ExperienceBuffer{
		entries: make([]models.Experience, depth),
		depth:   depth,
	}
}

// Append adds an experience, evicting the oldest entry when full.
func (b *ExperienceBuffer) Append(exp models.Experience) {
	idx := (b.start + b.count) % b.depth
	b.entries[idx] = exp
	if b.count < b.depth {
		b.count++
	} else {
		b.start = (b.start + 1) % b.depth
	}
}

// CloseLatest attaches an outcome to the most recent unresolved experience.
// Returns false if there is nothing open to close.
func (b *ExperienceBuffer) CloseLatest(outcome models.Outcome) bool {
	for i := b.count - 1; i >= 0; i-- {
		idx := (b.start + i) % b.depth
		if b.entries[idx].Outcome == nil {
			o := outcome
			b.entries[idx].Outcome = &o
			return true
		}
	}
	return false
}

// Len returns the number of stored experiences.
func (b *ExperienceBuffer) Len() int {
	return b.count
}

// Snapshot returns the experiences oldest-first.
func (b *ExperienceBuffer) Snapshot() []models.Experience {
	out := make([]models.Experience, 0, b.count)
	for i := 0; i < b.count; i++ {
		out = append(out, b.entries[(b.start+i)%b.depth])
	}
	return out
}

// Restore replaces the buffer contents from a snapshot, keeping only the
// newest entries when the snapshot exceeds the depth.
func (b *ExperienceBuffer) Restore(entries []models.Experience) {
	b.start = 0
	b.count = 0
	if len(entries) > b.depth {
		entries = entries[len(entries)-b.depth:]
	}
	for _, e := range entries {
		b.Append(e)
	}
}
