package crypto

// Rand is the randomness source used by domain logic. Injecting it lets tests
// replace the CSPRNG with a deterministic sequence.
type Rand interface {
	// Intn returns a uniform random value in [0, n).
	Intn(n int) int

	// Range returns a uniform random value in [a, b).
	Range(a, b int) int
}

type defaultRand struct{}

func NewRand() Rand {
	return defaultRand{}
}

func (defaultRand) Intn(n int) int {
	return RandIntn(n)
}

func (defaultRand) Range(a, b int) int {
	return RandRange(a, b)
}
