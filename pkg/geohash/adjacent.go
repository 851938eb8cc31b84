package geohash

import (
	"fmt"
	"strings"
)

// Direction names one of the four neighbors of a cell.
type Direction int

const (
	Top Direction = iota
	Right
	Bottom
	Left
)

var directionNames = [...]string{
	Top:    "top",
	Right:  "right",
	Bottom: "bottom",
	Left:   "left",
}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "unknown"
	}
	return directionNames[d]
}

// ParseDirection accepts top, right, bottom or left in any case.
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if strings.EqualFold(s, name) {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrDirection, s)
}

// Neighbor and border tables for hashes of even length. Odd lengths swap
// the axes: top uses right's tables, left uses bottom's and so on.
var (
	neighbors = [2][4]string{
		{
			Top:    "p0r21436x8zb9dcf5h7kjnmqesgutwvy",
			Right:  "bc01fg45238967deuvhjyznpkmstqrwx",
			Bottom: "14365h7k9dcfesgujnmqp0r2twvyx8zb",
			Left:   "238967debc01fg45kmstqrwxuvhjyznp",
		},
		{
			Top:    "bc01fg45238967deuvhjyznpkmstqrwx",
			Right:  "p0r21436x8zb9dcf5h7kjnmqesgutwvy",
			Bottom: "238967debc01fg45kmstqrwxuvhjyznp",
			Left:   "14365h7k9dcfesgujnmqp0r2twvyx8zb",
		},
	}
	borders = [2][4]string{
		{Top: "prxz", Right: "bcfguvyz", Bottom: "028b", Left: "0145hjnp"},
		{Top: "bcfguvyz", Right: "prxz", Bottom: "0145hjnp", Left: "028b"},
	}
)

// Adjacent returns the neighbor of hash in direction dir, with the same
// length as hash. Crossing a parent cell border recurses into the parent.
func Adjacent(hash string, dir Direction) (string, error) {
	if dir < Top || dir > Left {
		return "", fmt.Errorf("%w: %d", ErrDirection, int(dir))
	}
	h, err := normalize(hash)
	if err != nil {
		return "", err
	}
	return adjacent(h, dir), nil
}

// adjacent works on a validated lowercase hash.
func adjacent(hash string, dir Direction) string {
	last := hash[len(hash)-1]
	parity := len(hash) % 2
	parent := hash[:len(hash)-1]
	if strings.IndexByte(borders[parity][dir], last) >= 0 && parent != "" {
		parent = adjacent(parent, dir)
	}
	return parent + string(base32[strings.IndexByte(neighbors[parity][dir], last)])
}

// AdjacentName is Adjacent with the direction given by name.
func AdjacentName(hash, dir string) (string, error) {
	d, err := ParseDirection(dir)
	if err != nil {
		return "", err
	}
	return Adjacent(hash, d)
}

// Neighbors returns the eight cells around hash, clockwise from top.
func Neighbors(hash string) ([8]string, error) {
	var out [8]string
	h, err := normalize(hash)
	if err != nil {
		return out, err
	}
	top := adjacent(h, Top)
	bottom := adjacent(h, Bottom)
	out[0] = top
	out[1] = adjacent(top, Right)
	out[2] = adjacent(h, Right)
	out[3] = adjacent(bottom, Right)
	out[4] = bottom
	out[5] = adjacent(bottom, Left)
	out[6] = adjacent(h, Left)
	out[7] = adjacent(top, Left)
	return out, nil
}
