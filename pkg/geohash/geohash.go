// Package geohash encodes coordinates as geohash strings and works with the
// resulting cells: decoding, neighbors, grids, distances and bounding boxes.
package geohash

import (
	"errors"
	"fmt"
	"strings"
)

const (
	base32 = "0123456789bcdefghjkmnpqrstuvwxyz"

	// DefaultPrecision is the hash length used when none is given.
	DefaultPrecision = 12
)

var (
	// ErrMalformed is returned for empty hashes and hashes with a byte
	// outside the geohash alphabet.
	ErrMalformed = errors.New("malformed geohash")
	// ErrDirection is returned for an unknown neighbor direction.
	ErrDirection = errors.New("unknown direction")
)

// decodeTable maps an ASCII byte to its 5-bit value, -1 when not in the alphabet.
var decodeTable = func() [256]int8 {
	var t [256]int8
	for i := range t {
		t[i] = -1
	}
	for i := 0; i < len(base32); i++ {
		t[base32[i]] = int8(i)
		if c := base32[i]; c >= 'a' && c <= 'z' {
			t[c-'a'+'A'] = int8(i)
		}
	}
	return t
}()

// Box is the latitude/longitude extent of a cell or search area.
type Box struct {
	LatMin float64
	LatMax float64
	LonMin float64
	LonMax float64
}

// Contains reports whether the point lies inside the box, edges included.
func (b Box) Contains(lat, lon float64) bool {
	return lat >= b.LatMin && lat <= b.LatMax && lon >= b.LonMin && lon <= b.LonMax
}

// Encode returns the geohash of the point with precision characters.
// A precision of zero or less means DefaultPrecision.
func Encode(lat, lon float64, precision int) string {
	if precision <= 0 {
		precision = DefaultPrecision
	}
	latMin, latMax := -90.0, 90.0
	lonMin, lonMax := -180.0, 180.0

	out := make([]byte, 0, precision)
	even := true
	ch, bit := 0, 0
	for len(out) < precision {
		if even {
			mid := (lonMin + lonMax) / 2
			if lon >= mid {
				ch = ch<<1 | 1
				lonMin = mid
			} else {
				ch <<= 1
				lonMax = mid
			}
		} else {
			mid := (latMin + latMax) / 2
			if lat >= mid {
				ch = ch<<1 | 1
				latMin = mid
			} else {
				ch <<= 1
				latMax = mid
			}
		}
		even = !even
		if bit++; bit == 5 {
			out = append(out, base32[ch])
			ch, bit = 0, 0
		}
	}
	return string(out)
}

// DecodeBox returns the cell of hash.
func DecodeBox(hash string) (Box, error) {
	if hash == "" {
		return Box{}, ErrMalformed
	}
	box := Box{LatMin: -90, LatMax: 90, LonMin: -180, LonMax: 180}
	even := true
	for i := 0; i < len(hash); i++ {
		v := decodeTable[hash[i]]
		if v < 0 {
			return Box{}, fmt.Errorf("%w: %q at offset %d", ErrMalformed, hash[i], i)
		}
		for mask := 16; mask > 0; mask >>= 1 {
			on := int(v)&mask != 0
			if even {
				mid := (box.LonMin + box.LonMax) / 2
				if on {
					box.LonMin = mid
				} else {
					box.LonMax = mid
				}
			} else {
				mid := (box.LatMin + box.LatMax) / 2
				if on {
					box.LatMin = mid
				} else {
					box.LatMax = mid
				}
			}
			even = !even
		}
	}
	return box, nil
}

// Decode returns {lat, lon, latMin, latMax, lonMin, lonMax} for hash, where
// lat and lon are the center of the cell.
func Decode(hash string) ([6]float64, error) {
	box, err := DecodeBox(hash)
	if err != nil {
		return [6]float64{}, err
	}
	return [6]float64{
		(box.LatMin + box.LatMax) / 2,
		(box.LonMin + box.LonMax) / 2,
		box.LatMin, box.LatMax,
		box.LonMin, box.LonMax,
	}, nil
}

// Validate checks that hash is non-empty and uses only geohash characters.
func Validate(hash string) error {
	if hash == "" {
		return ErrMalformed
	}
	for i := 0; i < len(hash); i++ {
		if decodeTable[hash[i]] < 0 {
			return fmt.Errorf("%w: %q at offset %d", ErrMalformed, hash[i], i)
		}
	}
	return nil
}

// normalize validates hash and lowercases it.
func normalize(hash string) (string, error) {
	if err := Validate(hash); err != nil {
		return "", err
	}
	return strings.ToLower(hash), nil
}
