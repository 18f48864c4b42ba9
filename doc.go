// Package bloomfilter implements a classic Bloom filter: a fixed-size bit
// array sized from an expected item count and a target false-positive rate.
//
// Items of any comparable-looking Go value (strings, numbers, booleans, byte
// slices, structs, arrays, slices and maps of those) are encoded to a tagged
// byte form, hashed with xxHash64 and a salted MurmurHash3, and mapped to k bit
// positions with Kirsch-Mitzenmacher double hashing:
//
//	index_i = (h1 + i*h2) mod m
//
// A filter never reports an added item as absent. Removal is not supported;
// use Clear to start over.
package bloomfilter
