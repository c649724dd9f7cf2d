package gglayer

// pixelStack is the ordered collection of buffers owned by an engine.
// Index 0 is the base image; the last element is the active buffer.
type pixelStack struct {
	bufs [][]byte
}

// push makes buf the active buffer and returns its index.
func (s *pixelStack) push(buf []byte) int {
	s.bufs = append(s.bufs, buf)
	return len(s.bufs) - 1
}

// pop removes and returns the active buffer. The base buffer is never popped.
func (s *pixelStack) pop() []byte {
	if len(s.bufs) <= 1 {
		return nil
	}
	top := s.bufs[len(s.bufs)-1]
	s.bufs[len(s.bufs)-1] = nil
	s.bufs = s.bufs[:len(s.bufs)-1]
	return top
}

func (s *pixelStack) top() []byte {
	return s.bufs[len(s.bufs)-1]
}

// at returns the buffer at index i, or nil when i is out of range.
func (s *pixelStack) at(i int) []byte {
	if i < 0 || i >= len(s.bufs) {
		return nil
	}
	return s.bufs[i]
}

func (s *pixelStack) len() int {
	return len(s.bufs)
}

// snapshot returns a copy of the stack's slice headers, base first.
func (s *pixelStack) snapshot() [][]byte {
	out := make([][]byte, len(s.bufs))
	copy(out, s.bufs)
	return out
}
