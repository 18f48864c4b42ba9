package bloomfilter

import "errors"

// BloomFilter answers "definitely not present" or "maybe present" for items
// added to it. The false-positive probability stays near the configured rate
// as long as no more than the expected number of items are added.
//
// A BloomFilter is not safe for concurrent use; guard it with a mutex if it is
// shared between goroutines.
type BloomFilter struct {
	expectedItems     uint64
	falsePositiveRate float64
	numBits           uint64
	numHashes         uint64

	// bit i lives in bits[i/8] at position i%8 (least-significant bit first)
	bits  []byte
	added uint64
}

var (
	// ErrInvalidArgument is returned by New when the expected item count is
	// not positive or the false-positive rate is outside (0, 1).
	ErrInvalidArgument = errors.New("bloomfilter: invalid argument")

	// ErrUnhashable is returned when an item has no canonical byte encoding.
	ErrUnhashable = errors.New("bloomfilter: unhashable item")
)

// hashSalt is appended to the canonical bytes before computing the second base hash.
var hashSalt = []byte("$_salt_$")

// maxExponent bounds the estimate exponent; exp(-745) underflows a float64.
const maxExponent = -709.0
