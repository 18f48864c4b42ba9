package bloomfilter

import "math"

// maxBytes caps the backing slice below the runtime's allocation limit.
const maxBytes = min(math.MaxInt, 1<<47)

// OptimalParameters returns the bit count m and hash count k that keep the
// false-positive probability at p once n items have been added:
//
//	m = ceil(-(n * ln p) / (ln 2)^2)
//	k = ceil((m / n) * ln 2)
//
// Both are at least 1. When the computation leaves the float64 domain, or the
// bit array would be larger than the runtime can allocate, it returns (1, 1)
// instead of failing.
func OptimalParameters(n uint64, p float64) (m, k uint64) {
	if n == 0 {
		return 1, 1
	}
	mf := math.Ceil(-(float64(n) * math.Log(p)) / (math.Ln2 * math.Ln2))
	if math.IsNaN(mf) || math.IsInf(mf, 0) || mf >= math.MaxInt64 {
		return 1, 1
	}
	if mf < 1 {
		mf = 1
	}
	m = uint64(mf)
	if NumBytesFor(m) > maxBytes {
		return 1, 1
	}

	kf := math.Ceil((float64(m) / float64(n)) * math.Ln2)
	if math.IsNaN(kf) || math.IsInf(kf, 0) || kf >= math.MaxInt64 {
		return 1, 1
	}
	if kf < 1 {
		kf = 1
	}
	return m, uint64(kf)
}

// NumBytesFor returns ceil(numBits/8).
func NumBytesFor(numBits uint64) uint64 {
	return (numBits + 7) / 8
}
