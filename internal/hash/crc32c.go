package hash

import "hash/crc32"

// Castagnoli table, built once. The stdlib picks the hardware CRC
// instruction when the CPU has one.
var crc32cTable = crc32.MakeTable(crc32.Castagnoli)

// CRC32C computes the CRC32-Castagnoli checksum of data. This is the
// checksum S3 validates uploads against, base64-encoded on the wire.
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, crc32cTable)
}
