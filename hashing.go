package bloomfilter

import (
	"math/bits"

	"github.com/cespare/xxhash"
	"github.com/spaolacci/murmur3"
)

// hashPair computes the two base hashes for double hashing. Both are the
// leading 64 bits of their digest read big-endian: xxHash64 over the
// canonical bytes, and MurmurHash3 x64-128 over the bytes plus hashSalt.
func hashPair(canonical []byte) (h1, h2 uint64) {
	h1 = xxhash.Sum64(canonical)

	salted := make([]byte, 0, len(canonical)+len(hashSalt))
	salted = append(salted, canonical...)
	salted = append(salted, hashSalt...)
	h2, _ = murmur3.Sum128(salted)
	return h1, h2
}

// location returns (h1 + i*h2) mod m without wrapping the intermediate sum.
func location(h1, h2, i, m uint64) uint64 {
	hi, lo := bits.Mul64(i, h2)
	lo, carry := bits.Add64(lo, h1, 0)
	hi += carry
	return bits.Rem64(hi, lo, m)
}

// Locations returns the numHashes bit positions that item maps to. The result
// only depends on the item and the filter's size, so it is the same for
// every call.
func (f *BloomFilter) Locations(item any) ([]uint64, error) {
	canonical, err := appendCanonical(nil, item)
	if err != nil {
		return nil, err
	}
	return f.locations(canonical), nil
}

func (f *BloomFilter) locations(canonical []byte) []uint64 {
	h1, h2 := hashPair(canonical)
	locs := make([]uint64, f.numHashes)
	for i := range locs {
		locs[i] = location(h1, h2, uint64(i), f.numBits)
	}
	return locs
}
