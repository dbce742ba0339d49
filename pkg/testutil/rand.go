package testutil

// MockRand replaces the CSPRNG in tests. Without overrides it always returns
// the lowest value of the requested range.
type MockRand struct {
	IntnFunc  func(n int) int
	RangeFunc func(a, b int) int
}

func (m *MockRand) Intn(n int) int {
	if m.IntnFunc != nil {
		return m.IntnFunc(n)
	}

	return 0
}

func (m *MockRand) Range(a, b int) int {
	if m.RangeFunc != nil {
		return m.RangeFunc(a, b)
	}

	return a
}

// SequenceRand yields the given values in order, then wraps around. It makes
// number picking deterministic in tests.
type SequenceRand struct {
	Values []int

	next int
}

func (s *SequenceRand) Intn(n int) int {
	return s.take() % n
}

func (s *SequenceRand) Range(a, b int) int {
	return a + s.take()%(b-a)
}

func (s *SequenceRand) take() int {
	if len(s.Values) == 0 {
		return 0
	}

	value := s.Values[s.next%len(s.Values)]
	s.next++
	return value
}
