package driver

// History remembers the hashes of the most recent grids
type History struct {
	size   int
	hashes []string
}

func NewHistory(size int) *History {
	if size <= 0 {
		size = 1
	}
	return &History{size: size}
}

// Push adds a hash and drops the oldest one once the history is full
func (h *History) Push(hash string) {
	h.hashes = append(h.hashes, hash)
	if len(h.hashes) > h.size {
		h.hashes = h.hashes[1:]
	}
}

// Seen reports whether hash is one of the remembered states
func (h *History) Seen(hash string) bool {
	for _, prev := range h.hashes {
		if prev == hash {
			return true
		}
	}
	return false
}

// Clear forgets every remembered state
func (h *History) Clear() {
	h.hashes = nil
}
