package tensor

import (
	"math"
	"math/rand"
)

// rngFor returns the generator for one factory call. With WithSeed the
// stream is a pure function of the seed; without it, entropy is delegated
// to the process-global source and never affects any other operation.
func rngFor(o options) *rand.Rand {
	if o.hasSeed {
		return rand.New(rand.NewSource(o.seed))
	}
	return rand.New(rand.NewSource(rand.Int63())) //nolint:gosec // statistical use, not crypto
}

func floatRandom(shape Shape, o options, sample func(*rand.Rand) float64) (*Array, error) {
	dtype := Float64
	if o.hasDType {
		dtype = o.dtype
	}
	if !dtype.IsFloat() {
		return nil, dtypeErrorf("continuous generators require a float dtype, got %s", dtype)
	}
	a, err := newRoot(shape, dtype)
	if err != nil {
		return nil, err
	}
	rng := rngFor(o)
	for i := 0; i < a.Size(); i++ {
		if err := a.SetAt(i, sample(rng)); err != nil {
			a.Release()
			return nil, err
		}
	}
	return a, nil
}

// Rand creates an array of uniform samples in [0, 1).
func Rand(shape Shape, opts ...Option) (*Array, error) {
	return floatRandom(shape, newOptions(opts), func(rng *rand.Rand) float64 {
		return rng.Float64()
	})
}

// Uniform creates an array of uniform samples in [low, high). A degenerate
// or inverted range is an error.
func Uniform(low, high float64, shape Shape, opts ...Option) (*Array, error) {
	if low >= high {
		return nil, invalidErrorf("uniform: degenerate range [%v, %v)", low, high)
	}
	return floatRandom(shape, newOptions(opts), func(rng *rand.Rand) float64 {
		return low + rng.Float64()*(high-low)
	})
}

// RandN creates an array of standard normal samples via the Box-Muller
// transform.
func RandN(shape Shape, opts ...Option) (*Array, error) {
	return Normal(0, 1, shape, opts...)
}

// Normal creates an array of normal samples with the given mean and
// standard deviation (must be positive).
func Normal(mean, std float64, shape Shape, opts ...Option) (*Array, error) {
	if std <= 0 {
		return nil, invalidErrorf("normal: standard deviation must be positive, got %v", std)
	}
	var spare float64
	haveSpare := false
	return floatRandom(shape, newOptions(opts), func(rng *rand.Rand) float64 {
		if haveSpare {
			haveSpare = false
			return mean + std*spare
		}
		u1, u2 := rng.Float64(), rng.Float64()
		for u1 == 0 {
			u1 = rng.Float64()
		}
		r := math.Sqrt(-2 * math.Log(u1))
		spare = r * math.Sin(2*math.Pi*u2)
		haveSpare = true
		return mean + std*r*math.Cos(2*math.Pi*u2)
	})
}

// RandInt creates an array of uniform integer samples in [low, high).
func RandInt(low, high int64, shape Shape, opts ...Option) (*Array, error) {
	if low >= high {
		return nil, invalidErrorf("randint: degenerate range [%d, %d)", low, high)
	}
	o := newOptions(opts)
	dtype := Int64
	if o.hasDType {
		dtype = o.dtype
	}
	if !dtype.IsInteger() {
		return nil, dtypeErrorf("randint requires an integer dtype, got %s", dtype)
	}
	a, err := newRoot(shape, dtype)
	if err != nil {
		return nil, err
	}
	rng := rngFor(o)
	span := high - low
	for i := 0; i < a.Size(); i++ {
		if err := a.SetAt(i, low+rng.Int63n(span)); err != nil {
			a.Release()
			return nil, err
		}
	}
	return a, nil
}
