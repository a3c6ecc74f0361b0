package gesture

// DefaultHistorySize is the number of recent raw labels the smoother votes
// over.
const DefaultHistorySize = 10

// minVotes is how many times a label must appear in the window before it is
// reported instead of Unknown.
const minVotes = 2

// Smoother stabilizes per-frame labels with a majority vote over a bounded
// window of recent frames. It is not safe for concurrent use; the owning
// session serializes access.
type Smoother struct {
	capacity int
	window   []Label
}

// NewSmoother creates a smoother holding at most capacity labels. A
// non-positive capacity falls back to DefaultHistorySize.
func NewSmoother(capacity int) *Smoother {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &Smoother{
		capacity: capacity,
		window:   make([]Label, 0, capacity),
	}
}

// Smooth appends raw to the window, evicting the oldest entry when full, and
// returns the winning label with its share of the window. Ties go to the
// label that appears first in the window. A winner seen fewer than twice
// yields (Unknown, 0).
func (s *Smoother) Smooth(raw Label) (Label, float64) {
	if len(s.window) == s.capacity {
		copy(s.window, s.window[1:])
		s.window = s.window[:len(s.window)-1]
	}
	s.window = append(s.window, raw)

	counts := make(map[Label]int, len(s.window))
	var order []Label
	for _, l := range s.window {
		if counts[l] == 0 {
			order = append(order, l)
		}
		counts[l]++
	}

	winner := order[0]
	for _, l := range order[1:] {
		if counts[l] > counts[winner] {
			winner = l
		}
	}

	if counts[winner] < minVotes {
		return Unknown, 0
	}
	return winner, float64(counts[winner]) / float64(len(s.window))
}

// Reset empties the window.
func (s *Smoother) Reset() {
	s.window = s.window[:0]
}

// Len returns the number of labels currently in the window.
func (s *Smoother) Len() int {
	return len(s.window)
}

// Capacity returns the maximum window size.
func (s *Smoother) Capacity() int {
	return s.capacity
}

// Window returns a copy of the current window, oldest first.
func (s *Smoother) Window() []Label {
	out := make([]Label, len(s.window))
	copy(out, s.window)
	return out
}
