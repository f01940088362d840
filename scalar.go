package bls12381

import "io"

// Scalar represents an element of the scalar field Fq of the BLS12-381 curve
// construction, where
//
//	q = 0x73eda753299d7d483339d80809a1d80553bda402fffe5bfeffffffff00000001
//
// The internal representation is four 64-bit limbs, little-endian, in
// Montgomery form: Scalar(a) = a*R mod q with R = 2^256.
type Scalar struct {
	d [4]uint64
}

// INV = -(q^-1 mod 2^64) mod 2^64
const scalarINV uint64 = 0xfffffffeffffffff

// S is the 2-adicity of q - 1: q - 1 = t * 2^S with t odd.
const scalarS = 32

// Limbs of the scalar field modulus q
var scalarModulus = [4]uint64{
	0xffffffff00000001,
	0x53bda402fffe5bfe,
	0x3339d80809a1d805,
	0x73eda753299d7d48,
}

var (
	// R = 2^256 mod q
	scalarR = Scalar{d: [4]uint64{
		0x00000001fffffffe, 0x5884b7fa00034802, 0x998c4fefecbc4ff5, 0x1824b159acc5056f,
	}}

	// R2 = 2^(256*2) mod q
	scalarR2 = Scalar{d: [4]uint64{
		0xc999e990f3f29c6d, 0x2b6cedcb87925c23, 0x05d314967254398f, 0x0748d9d99f59ff11,
	}}

	// R3 = 2^(256*3) mod q
	scalarR3 = Scalar{d: [4]uint64{
		0xc62c1807439b73af, 0x1b3e0d188cf06990, 0x73d13c71c7b5f418, 0x6e2a5bb9c8db33e9,
	}}

	// ScalarGenerator is 7, a multiplicative generator of the full q - 1
	// order group that is also a quadratic non-residue.
	ScalarGenerator = Scalar{d: [4]uint64{
		0x0000000efffffff1, 0x17e363d300189c0f, 0xff9c57876f8457b0, 0x351332208fc5a8c4,
	}}

	// ScalarTwoInv is 1/2 mod q.
	ScalarTwoInv = Scalar{d: [4]uint64{
		0x00000000ffffffff, 0xac425bfd0001a401, 0xccc627f7f65e27fa, 0x0c1258acd66282b7,
	}}

	// ScalarRootOfUnity is GENERATOR^t, a primitive 2^S-th root of unity.
	ScalarRootOfUnity = Scalar{d: [4]uint64{
		0xb9b58d8c5f0e466a, 0x5b1b4c801819d7ec, 0x0af53ae352a31e64, 0x5bf3adda19e9b27b,
	}}

	// ScalarRootOfUnityInv is the inverse of ScalarRootOfUnity.
	ScalarRootOfUnityInv = Scalar{d: [4]uint64{
		0x4256481adcf3219a, 0x45f37b7f96b6cad3, 0xf9c3f1d75f7a3b27, 0x2d2fc049658afd43,
	}}

	// ScalarDelta is GENERATOR^(2^S), a t-th root of unity.
	ScalarDelta = Scalar{d: [4]uint64{
		0x70e310d3d146f96a, 0x4b64c08919e299e6, 0x51e114186a8b970d, 0x6185d06627c067cb,
	}}
)

// q - 2
var scalarInvExp = [4]uint64{
	0xfffffffeffffffff, 0x53bda402fffe5bfe, 0x3339d80809a1d805, 0x73eda753299d7d48,
}

// Set copies a into r.
func (r *Scalar) Set(a *Scalar) {
	r.d = a.d
}

// SetZero sets r to zero.
func (r *Scalar) SetZero() {
	r.d = [4]uint64{}
}

// SetOne sets r to one.
func (r *Scalar) SetOne() {
	*r = scalarR
}

// SetUint64 sets r to the given small integer.
func (r *Scalar) SetUint64(v uint64) {
	t := Scalar{d: [4]uint64{v, 0, 0, 0}}
	r.Mul(&t, &scalarR2)
}

// FromRaw interprets four little-endian limbs as a plain (non-Montgomery)
// integer and converts it into the field.
func (r *Scalar) FromRaw(limbs [4]uint64) {
	t := Scalar{d: limbs}
	r.Mul(&t, &scalarR2)
}

// IsZero returns true if r is zero.
func (r *Scalar) IsZero() bool {
	return (r.d[0] | r.d[1] | r.d[2] | r.d[3]) == 0
}

// Equal returns true if r and a represent the same scalar.
func (r *Scalar) Equal(a *Scalar) bool {
	return (r.d[0]^a.d[0])|(r.d[1]^a.d[1])|(r.d[2]^a.d[2])|(r.d[3]^a.d[3]) == 0
}

// Select sets r to a if flag is 0 and to b if flag is 1, in constant time.
func (r *Scalar) Select(a, b *Scalar, flag int) {
	mask := cmovMask(flag)
	for i := 0; i < 4; i++ {
		r.d[i] = (a.d[i] &^ mask) | (b.d[i] & mask)
	}
}

// Add sets r = a + b.
func (r *Scalar) Add(a, b *Scalar) {
	var t Scalar
	var carry uint64
	t.d[0], carry = adc(a.d[0], b.d[0], 0)
	t.d[1], carry = adc(a.d[1], b.d[1], carry)
	t.d[2], carry = adc(a.d[2], b.d[2], carry)
	t.d[3], _ = adc(a.d[3], b.d[3], carry)

	// The sum of two reduced values fits in 256 bits without wrapping, so one
	// conditional subtraction of q restores canonical range.
	mod := Scalar{d: scalarModulus}
	r.Sub(&t, &mod)
}

// Sub sets r = a - b, conditionally adding back q on underflow via the
// final-limb borrow mask.
func (r *Scalar) Sub(a, b *Scalar) {
	var borrow, carry uint64
	var d [4]uint64
	d[0], borrow = sbb(a.d[0], b.d[0], 0)
	d[1], borrow = sbb(a.d[1], b.d[1], borrow)
	d[2], borrow = sbb(a.d[2], b.d[2], borrow)
	d[3], borrow = sbb(a.d[3], b.d[3], borrow)

	d[0], carry = adc(d[0], scalarModulus[0]&borrow, 0)
	d[1], carry = adc(d[1], scalarModulus[1]&borrow, carry)
	d[2], carry = adc(d[2], scalarModulus[2]&borrow, carry)
	d[3], _ = adc(d[3], scalarModulus[3]&borrow, carry)
	r.d = d
}

// Neg sets r = -a.
func (r *Scalar) Neg(a *Scalar) {
	var zero Scalar
	r.Sub(&zero, a)
}

// Double sets r = a + a.
func (r *Scalar) Double(a *Scalar) {
	r.Add(a, a)
}

// montgomeryReduce folds an 8-limb product into a reduced scalar.
// Algorithm 14.32 of the Handbook of Applied Cryptography, four rounds.
func (r *Scalar) montgomeryReduce(t *[8]uint64) {
	var carry, carry2, k uint64

	k = t[0] * scalarINV
	_, carry = mac(t[0], k, scalarModulus[0], 0)
	t[1], carry = mac(t[1], k, scalarModulus[1], carry)
	t[2], carry = mac(t[2], k, scalarModulus[2], carry)
	t[3], carry = mac(t[3], k, scalarModulus[3], carry)
	t[4], carry2 = adc(t[4], 0, carry)

	k = t[1] * scalarINV
	_, carry = mac(t[1], k, scalarModulus[0], 0)
	t[2], carry = mac(t[2], k, scalarModulus[1], carry)
	t[3], carry = mac(t[3], k, scalarModulus[2], carry)
	t[4], carry = mac(t[4], k, scalarModulus[3], carry)
	t[5], carry2 = adc(t[5], carry2, carry)

	k = t[2] * scalarINV
	_, carry = mac(t[2], k, scalarModulus[0], 0)
	t[3], carry = mac(t[3], k, scalarModulus[1], carry)
	t[4], carry = mac(t[4], k, scalarModulus[2], carry)
	t[5], carry = mac(t[5], k, scalarModulus[3], carry)
	t[6], carry2 = adc(t[6], carry2, carry)

	k = t[3] * scalarINV
	_, carry = mac(t[3], k, scalarModulus[0], 0)
	t[4], carry = mac(t[4], k, scalarModulus[1], carry)
	t[5], carry = mac(t[5], k, scalarModulus[2], carry)
	t[6], carry = mac(t[6], k, scalarModulus[3], carry)
	t[7], _ = adc(t[7], carry2, carry)

	tmp := Scalar{d: [4]uint64{t[4], t[5], t[6], t[7]}}
	mod := Scalar{d: scalarModulus}
	r.Sub(&tmp, &mod)
}

// Mul sets r = a * b.
func (r *Scalar) Mul(a, b *Scalar) {
	var t [8]uint64
	var carry uint64

	t[0], carry = mac(0, a.d[0], b.d[0], 0)
	t[1], carry = mac(0, a.d[0], b.d[1], carry)
	t[2], carry = mac(0, a.d[0], b.d[2], carry)
	t[3], t[4] = mac(0, a.d[0], b.d[3], carry)

	t[1], carry = mac(t[1], a.d[1], b.d[0], 0)
	t[2], carry = mac(t[2], a.d[1], b.d[1], carry)
	t[3], carry = mac(t[3], a.d[1], b.d[2], carry)
	t[4], t[5] = mac(t[4], a.d[1], b.d[3], carry)

	t[2], carry = mac(t[2], a.d[2], b.d[0], 0)
	t[3], carry = mac(t[3], a.d[2], b.d[1], carry)
	t[4], carry = mac(t[4], a.d[2], b.d[2], carry)
	t[5], t[6] = mac(t[5], a.d[2], b.d[3], carry)

	t[3], carry = mac(t[3], a.d[3], b.d[0], 0)
	t[4], carry = mac(t[4], a.d[3], b.d[1], carry)
	t[5], carry = mac(t[5], a.d[3], b.d[2], carry)
	t[6], t[7] = mac(t[6], a.d[3], b.d[3], carry)

	r.montgomeryReduce(&t)
}

// Square sets r = a * a.
func (r *Scalar) Square(a *Scalar) {
	var t [8]uint64
	var carry uint64

	t[1], carry = mac(0, a.d[0], a.d[1], 0)
	t[2], carry = mac(0, a.d[0], a.d[2], carry)
	t[3], t[4] = mac(0, a.d[0], a.d[3], carry)

	t[3], carry = mac(t[3], a.d[1], a.d[2], 0)
	t[4], t[5] = mac(t[4], a.d[1], a.d[3], carry)

	t[5], t[6] = mac(t[5], a.d[2], a.d[3], 0)

	t[7] = t[6] >> 63
	t[6] = t[6]<<1 | t[5]>>63
	t[5] = t[5]<<1 | t[4]>>63
	t[4] = t[4]<<1 | t[3]>>63
	t[3] = t[3]<<1 | t[2]>>63
	t[2] = t[2]<<1 | t[1]>>63
	t[1] = t[1] << 1

	t[0], carry = mac(0, a.d[0], a.d[0], 0)
	t[1], carry = adc(t[1], 0, carry)
	t[2], carry = mac(t[2], a.d[1], a.d[1], carry)
	t[3], carry = adc(t[3], 0, carry)
	t[4], carry = mac(t[4], a.d[2], a.d[2], carry)
	t[5], carry = adc(t[5], 0, carry)
	t[6], carry = mac(t[6], a.d[3], a.d[3], carry)
	t[7], _ = adc(t[7], 0, carry)

	r.montgomeryReduce(&t)
}

// Pow sets r = a^exp in constant time: every bit costs a square and a
// multiplication, with the multiplication folded in by conditional select.
func (r *Scalar) Pow(a *Scalar, exp *[4]uint64) {
	var res Scalar
	res.SetOne()
	for i := 3; i >= 0; i-- {
		for bit := 63; bit >= 0; bit-- {
			res.Square(&res)
			var tmp Scalar
			tmp.Mul(&res, a)
			res.Select(&res, &tmp, int((exp[i]>>uint(bit))&1))
		}
	}
	r.Set(&res)
}

// PowVartime sets r = a^exp, skipping multiplications on zero bits. Only for
// public exponents.
func (r *Scalar) PowVartime(a *Scalar, exp []uint64) {
	var res Scalar
	res.SetOne()
	for i := len(exp) - 1; i >= 0; i-- {
		for bit := 63; bit >= 0; bit-- {
			res.Square(&res)
			if (exp[i]>>uint(bit))&1 == 1 {
				res.Mul(&res, a)
			}
		}
	}
	r.Set(&res)
}

// Invert sets r = a^-1 via exponentiation by q - 2, returning false when a is
// zero.
func (r *Scalar) Invert(a *Scalar) bool {
	r.PowVartime(a, scalarInvExp[:])
	return !a.IsZero()
}

// SetBytes interprets in as a 32-byte little-endian integer and reports
// whether it is canonical (less than q). On failure r is left unchanged.
// Panics if in is not 32 bytes long.
func (r *Scalar) SetBytes(in []byte) bool {
	if len(in) != 32 {
		panic("scalar encoding must be 32 bytes")
	}

	var t Scalar
	t.d[0] = readLE64(in[0:8])
	t.d[1] = readLE64(in[8:16])
	t.d[2] = readLE64(in[16:24])
	t.d[3] = readLE64(in[24:32])

	var borrow uint64
	_, borrow = sbb(t.d[0], scalarModulus[0], 0)
	_, borrow = sbb(t.d[1], scalarModulus[1], borrow)
	_, borrow = sbb(t.d[2], scalarModulus[2], borrow)
	_, borrow = sbb(t.d[3], scalarModulus[3], borrow)
	if borrow == 0 {
		return false
	}

	r.Mul(&t, &scalarR2)
	return true
}

// Bytes returns the canonical 32-byte little-endian encoding.
func (r *Scalar) Bytes() [32]byte {
	// Strip the Montgomery factor.
	t := [8]uint64{r.d[0], r.d[1], r.d[2], r.d[3]}
	var c Scalar
	c.montgomeryReduce(&t)

	var out [32]byte
	writeLE64(out[0:8], c.d[0])
	writeLE64(out[8:16], c.d[1])
	writeLE64(out[16:24], c.d[2])
	writeLE64(out[24:32], c.d[3])
	return out
}

// fromU512 reduces a 512-bit integer, given as eight little-endian limbs,
// into the field by splitting at bit 256 and mapping the halves through R^2
// and R^3.
func (r *Scalar) fromU512(limbs *[8]uint64) {
	d0 := Scalar{d: [4]uint64{limbs[0], limbs[1], limbs[2], limbs[3]}}
	d1 := Scalar{d: [4]uint64{limbs[4], limbs[5], limbs[6], limbs[7]}}
	d0.Mul(&d0, &scalarR2)
	d1.Mul(&d1, &scalarR3)
	r.Add(&d0, &d1)
}

// SetBytesWide reduces a 64-byte little-endian integer modulo q. Unlike
// SetBytes this cannot fail; the double-width input keeps the bias
// negligible. Panics if in is not 64 bytes long.
func (r *Scalar) SetBytesWide(in []byte) {
	if len(in) != 64 {
		panic("wide scalar encoding must be 64 bytes")
	}

	var limbs [8]uint64
	for i := 0; i < 8; i++ {
		limbs[i] = readLE64(in[i*8 : i*8+8])
	}
	r.fromU512(&limbs)
}

// SetRandom draws 64 uniformly random bytes from rand and reduces them into
// the field.
func (r *Scalar) SetRandom(rand io.Reader) error {
	var buf [64]byte
	if _, err := io.ReadFull(rand, buf[:]); err != nil {
		return err
	}
	r.SetBytesWide(buf[:])
	return nil
}
