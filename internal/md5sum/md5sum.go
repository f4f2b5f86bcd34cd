// Package md5sum implements the MD5 message digest defined in RFC 1321.
//
// MD5 is cryptographically broken. It is used here only to identify
// reference data and as a general-purpose checksum, never to protect secrets.
package md5sum

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"math/bits"
)

// Size is the length of an MD5 digest in bytes.
const Size = 16

// BlockSize is the block size of MD5 in bytes.
const BlockSize = 64

const (
	init0 = 0x67452301
	init1 = 0xefcdab89
	init2 = 0x98badcfe
	init3 = 0x10325476
)

// table holds floor(abs(sin(i+1)) * 2^32) for each round.
var table = [64]uint32{
	0xd76aa478, 0xe8c7b756, 0x242070db, 0xc1bdceee, 0xf57c0faf, 0x4787c62a, 0xa8304613, 0xfd469501,
	0x698098d8, 0x8b44f7af, 0xffff5bb1, 0x895cd7be, 0x6b901122, 0xfd987193, 0xa679438e, 0x49b40821,
	0xf61e2562, 0xc040b340, 0x265e5a51, 0xe9b6c7aa, 0xd62f105d, 0x02441453, 0xd8a1e681, 0xe7d3fbc8,
	0x21e1cde6, 0xc33707d6, 0xf4d50d87, 0x455a14ed, 0xa9e3e905, 0xfcefa3f8, 0x676f02d9, 0x8d2a4c8a,
	0xfffa3942, 0x8771f681, 0x6d9d6122, 0xfde5380c, 0xa4beea44, 0x4bdecfa9, 0xf6bb4b60, 0xbebfbc70,
	0x289b7ec6, 0xeaa127fa, 0xd4ef3085, 0x04881d05, 0xd9d4d039, 0xe6db99e5, 0x1fa27cf8, 0xc4ac5665,
	0xf4292244, 0x432aff97, 0xab9423a7, 0xfc93a039, 0x655b59c3, 0x8f0ccc92, 0xffeff47d, 0x85845dd1,
	0x6fa87e4f, 0xfe2ce6e0, 0xa3014314, 0x4e0811a1, 0xf7537e82, 0xbd3af235, 0x2ad7d2bb, 0xeb86d391,
}

// shifts holds the left-rotation amount of each round.
var shifts = [64]int{
	7, 12, 17, 22, 7, 12, 17, 22, 7, 12, 17, 22, 7, 12, 17, 22,
	5, 9, 14, 20, 5, 9, 14, 20, 5, 9, 14, 20, 5, 9, 14, 20,
	4, 11, 16, 23, 4, 11, 16, 23, 4, 11, 16, 23, 4, 11, 16, 23,
	6, 10, 15, 21, 6, 10, 15, 21, 6, 10, 15, 21, 6, 10, 15, 21,
}

// Sum returns the MD5 digest of message.
func Sum(message []byte) [Size]byte {
	padded := pad(message)
	s := [4]uint32{init0, init1, init2, init3}

	for off := 0; off < len(padded); off += BlockSize {
		block(&s, padded[off:off+BlockSize])
	}

	var digest [Size]byte
	binary.LittleEndian.PutUint32(digest[0:], s[0])
	binary.LittleEndian.PutUint32(digest[4:], s[1])
	binary.LittleEndian.PutUint32(digest[8:], s[2])
	binary.LittleEndian.PutUint32(digest[12:], s[3])
	return digest
}

// SumHex returns the MD5 digest of message as 32 lowercase hex characters.
func SumHex(message []byte) string {
	digest := Sum(message)
	return hex.EncodeToString(digest[:])
}

// SumString is SumHex for string input.
func SumString(s string) string {
	return SumHex([]byte(s))
}

// SumReader reads r to EOF and returns the digest of everything read.
func SumReader(r io.Reader) ([Size]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return [Size]byte{}, fmt.Errorf("failed to read input: %w", err)
	}
	return Sum(data), nil
}

// pad returns a copy of message followed by a 0x80 byte, zero bytes up to 56
// mod 64 and the message length in bits as a little-endian uint64.
func pad(message []byte) []byte {
	n := len(message)
	total := ((n+8)/BlockSize + 1) * BlockSize

	padded := make([]byte, total)
	copy(padded, message)
	padded[n] = 0x80
	binary.LittleEndian.PutUint64(padded[total-8:], uint64(n)<<3)
	return padded
}

// block folds one 64-byte block into the running state.
func block(s *[4]uint32, p []byte) {
	var w [16]uint32
	for j := range w {
		w[j] = binary.LittleEndian.Uint32(p[j*4:])
	}

	a, b, c, d := s[0], s[1], s[2], s[3]
	for i := 0; i < 64; i++ {
		var f uint32
		var g int
		switch {
		case i < 16:
			f = (b & c) | (^b & d)
			g = i
		case i < 32:
			f = (d & b) | (^d & c)
			g = (5*i + 1) % 16
		case i < 48:
			f = b ^ c ^ d
			g = (3*i + 5) % 16
		default:
			f = c ^ (b | ^d)
			g = (7 * i) % 16
		}
		a, b, c, d = d, b+bits.RotateLeft32(a+f+table[i]+w[g], shifts[i]), b, c
	}

	s[0] += a
	s[1] += b
	s[2] += c
	s[3] += d
}
