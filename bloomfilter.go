package bloomfilter

import (
	"fmt"
	"math"
)

// New creates a filter sized for expectedItems items at the given
// false-positive rate, then adds the initial items in order. It returns an
// error wrapping ErrInvalidArgument if expectedItems is not positive or
// falsePositiveRate is not strictly between 0 and 1, and an error wrapping
// ErrUnhashable if one of the initial items cannot be encoded.
func New(expectedItems int, falsePositiveRate float64, initial ...any) (*BloomFilter, error) {
	if expectedItems <= 0 {
		return nil, fmt.Errorf("%w: expected items must be positive, got %d", ErrInvalidArgument, expectedItems)
	}
	if !(falsePositiveRate > 0 && falsePositiveRate < 1) {
		return nil, fmt.Errorf("%w: false positive rate must be in (0, 1), got %v", ErrInvalidArgument, falsePositiveRate)
	}

	m, k := OptimalParameters(uint64(expectedItems), falsePositiveRate)
	filter := &BloomFilter{
		expectedItems:     uint64(expectedItems),
		falsePositiveRate: falsePositiveRate,
		numBits:           m,
		numHashes:         k,
		bits:              make([]byte, NumBytesFor(m)),
	}
	for _, item := range initial {
		if err := filter.Add(item); err != nil {
			return nil, err
		}
	}
	return filter, nil
}

// Add inserts item. Every call increments Len, including repeated items.
// If item cannot be encoded the filter is left unchanged.
func (f *BloomFilter) Add(item any) error {
	canonical, err := appendCanonical(nil, item)
	if err != nil {
		return err
	}
	for _, loc := range f.locations(canonical) {
		f.bits[loc>>3] |= 1 << (loc & 7)
	}
	f.added++
	return nil
}

// MightContain reports whether item may have been added. A false result is
// definite; a true result is wrong with roughly CurrentFalsePositiveRate
// probability.
func (f *BloomFilter) MightContain(item any) (bool, error) {
	if f.numBits == 0 {
		return false, nil
	}
	canonical, err := appendCanonical(nil, item)
	if err != nil {
		return false, err
	}
	h1, h2 := hashPair(canonical)
	for i := uint64(0); i < f.numHashes; i++ {
		loc := location(h1, h2, i, f.numBits)
		if f.bits[loc>>3]&(1<<(loc&7)) == 0 {
			return false, nil
		}
	}
	return true, nil
}

// Contains is MightContain for callers that only need a yes/no answer. Items
// that cannot be encoded are never added, so they are reported absent.
func (f *BloomFilter) Contains(item any) bool {
	ok, err := f.MightContain(item)
	return err == nil && ok
}

// CurrentFalsePositiveRate estimates the false-positive probability after
// Len additions as (1 - e^(-k*n/m))^k. It returns 1 when the estimate is
// undefined.
func (f *BloomFilter) CurrentFalsePositiveRate() float64 {
	if f.numBits == 0 {
		return 1.0
	}
	k := float64(f.numHashes)
	exponent := math.Max(-k*float64(f.added)/float64(f.numBits), maxExponent)
	rate := math.Pow(1-math.Exp(exponent), k)
	if math.IsNaN(rate) || rate < 0 || rate > 1 {
		return 1.0
	}
	return rate
}

// Clear empties the filter. The sizing is kept.
func (f *BloomFilter) Clear() {
	clear(f.bits)
	f.added = 0
}

// Len returns the number of successful Add calls since creation or the last Clear.
func (f *BloomFilter) Len() uint64 { return f.added }

// ExpectedItems returns n, the capacity the filter was sized for.
func (f *BloomFilter) ExpectedItems() uint64 { return f.expectedItems }

// FalsePositiveRate returns p, the target rate at ExpectedItems items.
func (f *BloomFilter) FalsePositiveRate() float64 { return f.falsePositiveRate }

// NumBits returns m, the size of the bit array.
func (f *BloomFilter) NumBits() uint64 { return f.numBits }

// NumBytes returns ceil(m/8), the size of the backing byte slice.
func (f *BloomFilter) NumBytes() uint64 { return uint64(len(f.bits)) }

// NumHashes returns k, the number of bit positions per item.
func (f *BloomFilter) NumHashes() uint64 { return f.numHashes }

// String describes the sizing and the number of additions.
func (f *BloomFilter) String() string {
	return fmt.Sprintf("BloomFilter(expected_items=%d, false_positive_rate=%v, num_bits=%d, num_hashes=%d, items_added=%d)",
		f.expectedItems, f.falsePositiveRate, f.numBits, f.numHashes, f.added)
}
