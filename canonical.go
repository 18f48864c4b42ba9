package bloomfilter

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
	"slices"
)

// Canonicalizer lets a type choose its own byte encoding. Items that are equal
// must return equal bytes.
type Canonicalizer interface {
	CanonicalBytes() ([]byte, error)
}

// Every encoded value starts with a tag byte. Builtin kinds use their
// reflect.Kind, so true and 1 or a struct and its printed form never share
// an encoding. Values of defined types are prefixed with tagNamed and the
// qualified type name, so celsius(1.5) and 1.5 differ as they do under ==.
const (
	tagNil    = byte(reflect.Invalid)
	tagBytes  = 0x80
	tagCustom = 0x81
	tagNamed  = 0x82
)

const maxDepth = 64

func appendCanonical(dst []byte, item any) ([]byte, error) {
	switch v := item.(type) {
	case nil:
		return append(dst, tagNil), nil
	case string:
		return appendString(append(dst, byte(reflect.String)), v), nil
	case []byte:
		return appendString(append(dst, tagBytes), string(v)), nil
	}
	return appendValue(dst, reflect.ValueOf(item), 0)
}

func appendValue(dst []byte, v reflect.Value, depth int) ([]byte, error) {
	if !v.IsValid() {
		return append(dst, tagNil), nil
	}
	if depth > maxDepth {
		return nil, fmt.Errorf("%w: nested deeper than %d levels", ErrUnhashable, maxDepth)
	}
	kind := v.Kind()
	if (kind == reflect.Pointer || kind == reflect.Interface) && v.IsNil() {
		return append(dst, tagNil), nil
	}
	if v.CanInterface() {
		if c, ok := v.Interface().(Canonicalizer); ok {
			return appendCustom(dst, c)
		}
	}

	if t := v.Type(); kind != reflect.Interface && t.Name() != "" && t.PkgPath() != "" {
		dst = appendString(append(dst, tagNamed), t.PkgPath()+"."+t.Name())
	}

	tag := byte(kind)
	switch kind {
	case reflect.Interface:
		return appendValue(dst, v.Elem(), depth+1)
	case reflect.Bool:
		if v.Bool() {
			return append(dst, tag, 1), nil
		}
		return append(dst, tag, 0), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return binary.BigEndian.AppendUint64(append(dst, tag), uint64(v.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return binary.BigEndian.AppendUint64(append(dst, tag), v.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return appendFloat(append(dst, tag), v.Float()), nil
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		return appendFloat(appendFloat(append(dst, tag), real(c)), imag(c)), nil
	case reflect.String:
		return appendString(append(dst, tag), v.String()), nil
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return appendString(append(dst, tagBytes), string(v.Bytes())), nil
		}
		fallthrough
	case reflect.Array:
		dst = binary.AppendUvarint(append(dst, tag), uint64(v.Len()))
		for i := 0; i < v.Len(); i++ {
			var err error
			if dst, err = appendValue(dst, v.Index(i), depth+1); err != nil {
				return nil, err
			}
		}
		return dst, nil
	case reflect.Struct:
		dst = binary.AppendUvarint(append(dst, tag), uint64(v.NumField()))
		for i := 0; i < v.NumField(); i++ {
			var err error
			if dst, err = appendValue(dst, v.Field(i), depth+1); err != nil {
				return nil, err
			}
		}
		return dst, nil
	case reflect.Map:
		return appendMap(append(dst, tag), v, depth)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnhashable, v.Type())
}

// appendMap encodes entries sorted by their encoding so iteration order does
// not affect the result.
func appendMap(dst []byte, v reflect.Value, depth int) ([]byte, error) {
	entries := make([][]byte, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		entry, err := appendValue(nil, iter.Key(), depth+1)
		if err != nil {
			return nil, err
		}
		if entry, err = appendValue(entry, iter.Value(), depth+1); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	slices.SortFunc(entries, bytes.Compare)

	dst = binary.AppendUvarint(dst, uint64(len(entries)))
	for _, entry := range entries {
		dst = append(dst, entry...)
	}
	return dst, nil
}

func appendCustom(dst []byte, c Canonicalizer) ([]byte, error) {
	b, err := c.CanonicalBytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnhashable, err)
	}
	return appendString(append(dst, tagCustom), string(b)), nil
}

func appendString(dst []byte, s string) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(s)))
	return append(dst, s...)
}

// appendFloat writes the IEEE-754 bits; -0 is written as +0 since the two compare equal.
func appendFloat(dst []byte, f float64) []byte {
	if f == 0 {
		f = 0
	}
	return binary.BigEndian.AppendUint64(dst, math.Float64bits(f))
}
