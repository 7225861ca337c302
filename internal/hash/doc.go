// Package hash holds the CRC32-Castagnoli checksum used for blob
// upload integrity. Brick and manifest uploads to S3 send a CRC32C
// alongside the payload so the service rejects corrupted transfers;
// CRC32C rather than CRC32-IEEE because that is the algorithm the S3
// checksum API speaks, and it is hardware accelerated on both x86
// (SSE4.2) and ARM.
package hash
