package game

// PathHistory is a fixed-capacity FIFO of path samples, oldest first.
// Once full, every Push evicts the oldest sample.
type PathHistory struct {
	data  []PathSample
	start int // index of the oldest sample
	n     int
}

func NewPathHistory(capacity int) *PathHistory {
	if capacity < 1 {
		capacity = 1
	}
	return &PathHistory{data: make([]PathSample, capacity)}
}

// Push appends s as the newest sample. When the history was already full the
// evicted oldest sample is returned with ok set.
func (h *PathHistory) Push(s PathSample) (evicted PathSample, ok bool) {
	capacity := len(h.data)
	if h.n < capacity {
		h.data[(h.start+h.n)%capacity] = s
		h.n++
		return PathSample{}, false
	}
	evicted = h.data[h.start]
	h.data[h.start] = s
	h.start = (h.start + 1) % capacity
	return evicted, true
}

func (h *PathHistory) Len() int { return h.n }
func (h *PathHistory) Cap() int { return len(h.data) }

// At returns the i-th sample, 0 being the oldest.
func (h *PathHistory) At(i int) PathSample {
	if i < 0 || i >= h.n {
		panic("game: path history index out of range")
	}
	return h.data[(h.start+i)%len(h.data)]
}

func (h *PathHistory) Oldest() (PathSample, bool) {
	if h.n == 0 {
		return PathSample{}, false
	}
	return h.At(0), true
}

func (h *PathHistory) Newest() (PathSample, bool) {
	if h.n == 0 {
		return PathSample{}, false
	}
	return h.At(h.n - 1), true
}

// AppendTo appends the samples in chronological order to dst.
func (h *PathHistory) AppendTo(dst []PathSample) []PathSample {
	first := h.data[h.start:min(h.start+h.n, len(h.data))]
	dst = append(dst, first...)
	if rest := h.n - len(first); rest > 0 {
		dst = append(dst, h.data[:rest]...)
	}
	return dst
}

func (h *PathHistory) Reset() {
	clear(h.data)
	h.start = 0
	h.n = 0
}
