// Package checksum provides the small non-cryptographic checksums and hashes
// used to identify word lists, cache entries and request payloads.
//
// Crc32 is the standard IEEE CRC-32 (reflected polynomial 0xEDB88320,
// initial value 0xFFFFFFFF, final complement). Hash is Bob Jenkins'
// one-at-a-time hash and Hash2 is the 32-bit x86 variant of MurmurHash3.
// None of them are suitable for security purposes; collisions are expected
// and acceptable for identification.
package checksum

import (
	"hash/crc32"
)

// ieeeTable is the reflected IEEE polynomial table.
var ieeeTable = crc32.MakeTable(crc32.IEEE)

// Crc32 computes the IEEE CRC-32 of data. The checksum of an empty buffer is 0.
func Crc32(data []byte) uint32 {
	return crc32.Checksum(data, ieeeTable)
}

// Crc32String is Crc32 over the bytes of s.
func Crc32String(s string) uint32 {
	return Crc32([]byte(s))
}

// ExtendCrc32 computes the CRC-32 of concat(A, data) where crc is the CRC-32 of A.
func ExtendCrc32(crc uint32, data []byte) uint32 {
	return crc32.Update(crc, ieeeTable, data)
}
