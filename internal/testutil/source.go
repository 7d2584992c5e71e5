// Package testutil provides deterministic helpers shared by package tests.
package testutil

import (
	"sync"
)

// FaceSource is a dice Source that replays a fixed sequence of die faces,
// wrapping around when exhausted. A face f rolled on an n-sided die comes up
// as ((f-1) mod n)+1, so faces no larger than n come up unchanged.
type FaceSource struct {
	mu    sync.Mutex
	faces []int
	next  int
	calls []int
}

// NewFaceSource returns a FaceSource replaying faces.
//
// Precondition: len(faces) > 0 and every face >= 1.
func NewFaceSource(faces ...int) *FaceSource {
	if len(faces) == 0 {
		panic("testutil: NewFaceSource requires at least one face")
	}
	return &FaceSource{faces: faces}
}

// Intn returns the next face minus one, reduced modulo n.
//
// Precondition: n > 0.
func (s *FaceSource) Intn(n int) int {
	if n <= 0 {
		panic("testutil: Intn called with n <= 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	f := s.faces[s.next%len(s.faces)]
	s.next++
	s.calls = append(s.calls, n)
	return (f - 1) % n
}

// Calls returns the n argument of every Intn call so far, in order.
func (s *FaceSource) Calls() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.calls))
	copy(out, s.calls)
	return out
}
