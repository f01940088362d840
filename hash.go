package bls12381

import (
	"hash"

	sha256simd "github.com/minio/sha256-simd"
	"golang.org/x/crypto/sha3"
)

// Message expansion and hash-to-field for hash-to-curve, per
// draft-irtf-cfrg-hash-to-curve. The hash itself is an external
// collaborator: expandMessageXmd consumes SHA-256 and expandMessageXof a
// SHAKE-128 XOF; everything after the uniform bytes is field arithmetic.

// 2^256 in Montgomery form, the radix with which two 256-bit digests are
// recombined into one Fp element.
var fpTwo256 = Fp{l: [6]uint64{
	0x075b3cd7c5ce820f, 0x3ec6ba621c3edb0b, 0x168a13d82bff6bce,
	0x87663c4bf8c449d2, 0x15f34c83ddc8d830, 0x0f9628b49caa2e85,
}}

const (
	sha256BlockSize  = 64
	sha256OutputSize = 32

	// fpHashLen is the per-element output length L = ceil((381 + 128) / 8).
	fpHashLen = 64
)

var oversizeDstPrefix = []byte("H2C-OVERSIZE-DST-")

// newXmdHash returns a fresh SHA-256 context.
func newXmdHash() hash.Hash {
	return sha256simd.New()
}

// reduceDstXmd applies the long-DST rule: tags over 255 bytes are replaced
// by H("H2C-OVERSIZE-DST-" || dst).
func reduceDstXmd(dst []byte) []byte {
	if len(dst) <= 255 {
		return dst
	}
	h := newXmdHash()
	h.Write(oversizeDstPrefix)
	h.Write(dst)
	return h.Sum(nil)
}

// expandMessageXmd produces outLen pseudo-random bytes from msg and a domain
// separation tag, per the expand_message_xmd construction over SHA-256.
func expandMessageXmd(msg, dst []byte, outLen int) []byte {
	if outLen == 0 || outLen > 255*sha256OutputSize {
		panic("requested output length out of range")
	}
	dst = reduceDstXmd(dst)

	ell := (outLen + sha256OutputSize - 1) / sha256OutputSize

	var zPad [sha256BlockSize]byte
	lenBytes := [2]byte{byte(outLen >> 8), byte(outLen)}

	h := newXmdHash()
	h.Write(zPad[:])
	h.Write(msg)
	h.Write(lenBytes[:])
	h.Write([]byte{0})
	h.Write(dst)
	h.Write([]byte{byte(len(dst))})
	b0 := h.Sum(nil)

	h = newXmdHash()
	h.Write(b0)
	h.Write([]byte{1})
	h.Write(dst)
	h.Write([]byte{byte(len(dst))})
	bi := h.Sum(nil)

	out := make([]byte, 0, ell*sha256OutputSize)
	out = append(out, bi...)

	for i := 2; i <= ell; i++ {
		var x [sha256OutputSize]byte
		for j := range x {
			x[j] = b0[j] ^ bi[j]
		}
		h = newXmdHash()
		h.Write(x[:])
		h.Write([]byte{byte(i)})
		h.Write(dst)
		h.Write([]byte{byte(len(dst))})
		bi = h.Sum(nil)
		out = append(out, bi...)
	}

	return out[:outLen]
}

// expandMessageXof is the XOF variant over SHAKE-128.
func expandMessageXof(msg, dst []byte, outLen int) []byte {
	if outLen == 0 || outLen > 65535 {
		panic("requested output length out of range")
	}
	if len(dst) > 255 {
		h := sha3.NewShake128()
		h.Write(oversizeDstPrefix)
		h.Write(dst)
		reduced := make([]byte, 32)
		h.Read(reduced)
		dst = reduced
	}

	lenBytes := [2]byte{byte(outLen >> 8), byte(outLen)}

	h := sha3.NewShake128()
	h.Write(msg)
	h.Write(lenBytes[:])
	h.Write(dst)
	h.Write([]byte{byte(len(dst))})

	out := make([]byte, outLen)
	h.Read(out)
	return out
}

// fromOkm interprets 64 bytes of output keying material as a big-endian
// integer and reduces it into Fp, by splitting into two 256-bit digests d1,
// d0 and computing d1 * 2^256 + d0 in the field.
func fromOkm(okm []byte) Fp {
	if len(okm) != fpHashLen {
		panic("okm must be 64 bytes")
	}

	// Each half is zero-extended to a 48-byte canonical encoding.
	var buf [48]byte
	var d1, d0 Fp

	copy(buf[16:], okm[:32])
	d1.SetBytes(buf[:])

	copy(buf[16:], okm[32:])
	d0.SetBytes(buf[:])

	var out Fp
	out.Mul(&d1, &fpTwo256)
	out.Add(&out, &d0)
	return out
}

// hashToField hashes msg under the domain separation tag to count field
// elements, each from 64 bytes of expanded output.
func hashToField(msg, dst []byte, count int) []Fp {
	okm := expandMessageXmd(msg, dst, count*fpHashLen)
	out := make([]Fp, count)
	for i := range out {
		out[i] = fromOkm(okm[i*fpHashLen : (i+1)*fpHashLen])
	}
	return out
}

// HashToG1 hashes a message to a point of the prime-order subgroup of G1,
// the hash_to_curve construction: two field elements, two SSWU maps, one
// cofactor clearing.
func HashToG1(msg, dst []byte) G1Projective {
	us := hashToField(msg, dst, 2)

	p0 := MapToG1(&us[0])
	p1 := MapToG1(&us[1])

	var sum G1Projective
	sum.Add(&p0, &p1)
	sum.ClearCofactor(&sum)
	return sum
}

// EncodeToG1 is the cheaper non-uniform variant using a single field
// element.
func EncodeToG1(msg, dst []byte) G1Projective {
	us := hashToField(msg, dst, 1)
	p := MapToG1(&us[0])
	p.ClearCofactor(&p)
	return p
}
