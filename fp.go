package bls12381

import "io"

// Fp represents an element of the BLS12-381 base field, the prime field of
// 381-bit characteristic
//
//	p = 0x1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaaab
//
// Elements are held as six 64-bit limbs, little-endian, in Montgomery form:
// Fp(a) = a*R mod p with R = 2^384. The stored value is always fully reduced.
type Fp struct {
	l [6]uint64
}

// INV = -(p^-1 mod 2^64) mod 2^64
const fpINV uint64 = 0x89f3fffcfffcfffd

// Limbs of the base field modulus p
var fpModulus = [6]uint64{
	0xb9feffffffffaaab,
	0x1eabfffeb153ffff,
	0x6730d2a0f6b0f624,
	0x64774b84f38512bf,
	0x4b1ba7b6434bacd7,
	0x1a0111ea397fe69a,
}

var (
	// R = 2^384 mod p
	fpR = Fp{l: [6]uint64{
		0x760900000002fffd, 0xebf4000bc40c0002, 0x5f48985753c758ba,
		0x77ce585370525745, 0x5c071a97a256ec6d, 0x15f65ec3fa80e493,
	}}

	// R2 = 2^(384*2) mod p
	fpR2 = Fp{l: [6]uint64{
		0xf4df1f341c341746, 0x0a76e6a609d104f1, 0x8de5476c4c95b6d5,
		0x67eb88a9939d83c0, 0x9a793e85b519952d, 0x11988fe592cae3aa,
	}}

	// R3 = 2^(384*3) mod p
	fpR3 = Fp{l: [6]uint64{
		0xed48ac6bd94ca1e0, 0x315f831e03a7adf8, 0x9a53352a615e29dd,
		0x34c04e5e921e1761, 0x2512d43565724728, 0x0aa6346091755d4d,
	}}
)

// (p + 1) / 4, the Tonelli shortcut exponent (p = 3 mod 4)
var fpSqrtExp = [6]uint64{
	0xee7fbfffffffeaab, 0x07aaffffac54ffff, 0xd9cc34a83dac3d89,
	0xd91dd2e13ce144af, 0x92c6e9ed90d2eb35, 0x0680447a8e5ff9a6,
}

// p - 2
var fpInvExp = [6]uint64{
	0xb9feffffffffaaa9, 0x1eabfffeb153ffff, 0x6730d2a0f6b0f624,
	0x64774b84f38512bf, 0x4b1ba7b6434bacd7, 0x1a0111ea397fe69a,
}

// (p - 3) / 4, used by the SSWU square-root candidate
var fpPm3Div4 = [6]uint64{
	0xee7fbfffffffeaaa, 0x07aaffffac54ffff, 0xd9cc34a83dac3d89,
	0xd91dd2e13ce144af, 0x92c6e9ed90d2eb35, 0x0680447a8e5ff9a6,
}

// Set copies a into r.
func (r *Fp) Set(a *Fp) {
	r.l = a.l
}

// SetZero sets r to the additive identity.
func (r *Fp) SetZero() {
	r.l = [6]uint64{}
}

// SetOne sets r to the multiplicative identity.
func (r *Fp) SetOne() {
	*r = fpR
}

// IsZero returns true if r is the additive identity.
func (r *Fp) IsZero() bool {
	return (r.l[0] | r.l[1] | r.l[2] | r.l[3] | r.l[4] | r.l[5]) == 0
}

// Equal returns true if r and a represent the same field element.
func (r *Fp) Equal(a *Fp) bool {
	v := (r.l[0] ^ a.l[0]) | (r.l[1] ^ a.l[1]) | (r.l[2] ^ a.l[2]) |
		(r.l[3] ^ a.l[3]) | (r.l[4] ^ a.l[4]) | (r.l[5] ^ a.l[5])
	return v == 0
}

// Select sets r to a if flag is 0 and to b if flag is 1, in constant time.
func (r *Fp) Select(a, b *Fp, flag int) {
	mask := cmovMask(flag)
	for i := 0; i < 6; i++ {
		r.l[i] = (a.l[i] &^ mask) | (b.l[i] & mask)
	}
}

// subtractP conditionally subtracts the modulus, bringing a raw result into
// canonical range. The final-limb borrow is used as a select mask.
func (r *Fp) subtractP(a *Fp) {
	var borrow uint64
	var d [6]uint64
	d[0], borrow = sbb(a.l[0], fpModulus[0], 0)
	d[1], borrow = sbb(a.l[1], fpModulus[1], borrow)
	d[2], borrow = sbb(a.l[2], fpModulus[2], borrow)
	d[3], borrow = sbb(a.l[3], fpModulus[3], borrow)
	d[4], borrow = sbb(a.l[4], fpModulus[4], borrow)
	d[5], borrow = sbb(a.l[5], fpModulus[5], borrow)

	// borrow is all-ones if the subtraction underflowed, all-zeros otherwise
	for i := 0; i < 6; i++ {
		r.l[i] = (a.l[i] & borrow) | (d[i] &^ borrow)
	}
}

// Add sets r = a + b.
func (r *Fp) Add(a, b *Fp) {
	var t Fp
	var carry uint64
	t.l[0], carry = adc(a.l[0], b.l[0], 0)
	t.l[1], carry = adc(a.l[1], b.l[1], carry)
	t.l[2], carry = adc(a.l[2], b.l[2], carry)
	t.l[3], carry = adc(a.l[3], b.l[3], carry)
	t.l[4], carry = adc(a.l[4], b.l[4], carry)
	t.l[5], _ = adc(a.l[5], b.l[5], carry)
	r.subtractP(&t)
}

// Neg sets r = -a.
func (r *Fp) Neg(a *Fp) {
	var borrow uint64
	var d [6]uint64
	d[0], borrow = sbb(fpModulus[0], a.l[0], 0)
	d[1], borrow = sbb(fpModulus[1], a.l[1], borrow)
	d[2], borrow = sbb(fpModulus[2], a.l[2], borrow)
	d[3], borrow = sbb(fpModulus[3], a.l[3], borrow)
	d[4], borrow = sbb(fpModulus[4], a.l[4], borrow)
	d[5], _ = sbb(fpModulus[5], a.l[5], borrow)

	// Zero the result when a was zero, since p is not a canonical encoding.
	mask := cmovMask(boolToInt(a.IsZero())) // all-ones when a == 0
	for i := 0; i < 6; i++ {
		r.l[i] = d[i] &^ mask
	}
}

// Sub sets r = a - b.
func (r *Fp) Sub(a, b *Fp) {
	var nb Fp
	nb.Neg(b)
	r.Add(a, &nb)
}

// Double sets r = a + a.
func (r *Fp) Double(a *Fp) {
	r.Add(a, a)
}

// montgomeryReduce folds a 12-limb product into a reduced 6-limb element.
// Algorithm 14.32 of the Handbook of Applied Cryptography: six rounds each
// cancel the lowest remaining limb with a multiple of p.
func (r *Fp) montgomeryReduce(t *[12]uint64) {
	var carry, carry2, k uint64

	k = t[0] * fpINV
	_, carry = mac(t[0], k, fpModulus[0], 0)
	t[1], carry = mac(t[1], k, fpModulus[1], carry)
	t[2], carry = mac(t[2], k, fpModulus[2], carry)
	t[3], carry = mac(t[3], k, fpModulus[3], carry)
	t[4], carry = mac(t[4], k, fpModulus[4], carry)
	t[5], carry = mac(t[5], k, fpModulus[5], carry)
	t[6], carry2 = adc(t[6], 0, carry)

	k = t[1] * fpINV
	_, carry = mac(t[1], k, fpModulus[0], 0)
	t[2], carry = mac(t[2], k, fpModulus[1], carry)
	t[3], carry = mac(t[3], k, fpModulus[2], carry)
	t[4], carry = mac(t[4], k, fpModulus[3], carry)
	t[5], carry = mac(t[5], k, fpModulus[4], carry)
	t[6], carry = mac(t[6], k, fpModulus[5], carry)
	t[7], carry2 = adc(t[7], carry2, carry)

	k = t[2] * fpINV
	_, carry = mac(t[2], k, fpModulus[0], 0)
	t[3], carry = mac(t[3], k, fpModulus[1], carry)
	t[4], carry = mac(t[4], k, fpModulus[2], carry)
	t[5], carry = mac(t[5], k, fpModulus[3], carry)
	t[6], carry = mac(t[6], k, fpModulus[4], carry)
	t[7], carry = mac(t[7], k, fpModulus[5], carry)
	t[8], carry2 = adc(t[8], carry2, carry)

	k = t[3] * fpINV
	_, carry = mac(t[3], k, fpModulus[0], 0)
	t[4], carry = mac(t[4], k, fpModulus[1], carry)
	t[5], carry = mac(t[5], k, fpModulus[2], carry)
	t[6], carry = mac(t[6], k, fpModulus[3], carry)
	t[7], carry = mac(t[7], k, fpModulus[4], carry)
	t[8], carry = mac(t[8], k, fpModulus[5], carry)
	t[9], carry2 = adc(t[9], carry2, carry)

	k = t[4] * fpINV
	_, carry = mac(t[4], k, fpModulus[0], 0)
	t[5], carry = mac(t[5], k, fpModulus[1], carry)
	t[6], carry = mac(t[6], k, fpModulus[2], carry)
	t[7], carry = mac(t[7], k, fpModulus[3], carry)
	t[8], carry = mac(t[8], k, fpModulus[4], carry)
	t[9], carry = mac(t[9], k, fpModulus[5], carry)
	t[10], carry2 = adc(t[10], carry2, carry)

	k = t[5] * fpINV
	_, carry = mac(t[5], k, fpModulus[0], 0)
	t[6], carry = mac(t[6], k, fpModulus[1], carry)
	t[7], carry = mac(t[7], k, fpModulus[2], carry)
	t[8], carry = mac(t[8], k, fpModulus[3], carry)
	t[9], carry = mac(t[9], k, fpModulus[4], carry)
	t[10], carry = mac(t[10], k, fpModulus[5], carry)
	t[11], _ = adc(t[11], carry2, carry)

	tmp := Fp{l: [6]uint64{t[6], t[7], t[8], t[9], t[10], t[11]}}
	r.subtractP(&tmp)
}

// Mul sets r = a * b. Schoolbook 6x6 multiplication followed by Montgomery
// reduction.
func (r *Fp) Mul(a, b *Fp) {
	var t [12]uint64
	var carry uint64

	t[0], carry = mac(0, a.l[0], b.l[0], 0)
	t[1], carry = mac(0, a.l[0], b.l[1], carry)
	t[2], carry = mac(0, a.l[0], b.l[2], carry)
	t[3], carry = mac(0, a.l[0], b.l[3], carry)
	t[4], carry = mac(0, a.l[0], b.l[4], carry)
	t[5], t[6] = mac(0, a.l[0], b.l[5], carry)

	t[1], carry = mac(t[1], a.l[1], b.l[0], 0)
	t[2], carry = mac(t[2], a.l[1], b.l[1], carry)
	t[3], carry = mac(t[3], a.l[1], b.l[2], carry)
	t[4], carry = mac(t[4], a.l[1], b.l[3], carry)
	t[5], carry = mac(t[5], a.l[1], b.l[4], carry)
	t[6], t[7] = mac(t[6], a.l[1], b.l[5], carry)

	t[2], carry = mac(t[2], a.l[2], b.l[0], 0)
	t[3], carry = mac(t[3], a.l[2], b.l[1], carry)
	t[4], carry = mac(t[4], a.l[2], b.l[2], carry)
	t[5], carry = mac(t[5], a.l[2], b.l[3], carry)
	t[6], carry = mac(t[6], a.l[2], b.l[4], carry)
	t[7], t[8] = mac(t[7], a.l[2], b.l[5], carry)

	t[3], carry = mac(t[3], a.l[3], b.l[0], 0)
	t[4], carry = mac(t[4], a.l[3], b.l[1], carry)
	t[5], carry = mac(t[5], a.l[3], b.l[2], carry)
	t[6], carry = mac(t[6], a.l[3], b.l[3], carry)
	t[7], carry = mac(t[7], a.l[3], b.l[4], carry)
	t[8], t[9] = mac(t[8], a.l[3], b.l[5], carry)

	t[4], carry = mac(t[4], a.l[4], b.l[0], 0)
	t[5], carry = mac(t[5], a.l[4], b.l[1], carry)
	t[6], carry = mac(t[6], a.l[4], b.l[2], carry)
	t[7], carry = mac(t[7], a.l[4], b.l[3], carry)
	t[8], carry = mac(t[8], a.l[4], b.l[4], carry)
	t[9], t[10] = mac(t[9], a.l[4], b.l[5], carry)

	t[5], carry = mac(t[5], a.l[5], b.l[0], 0)
	t[6], carry = mac(t[6], a.l[5], b.l[1], carry)
	t[7], carry = mac(t[7], a.l[5], b.l[2], carry)
	t[8], carry = mac(t[8], a.l[5], b.l[3], carry)
	t[9], carry = mac(t[9], a.l[5], b.l[4], carry)
	t[10], t[11] = mac(t[10], a.l[5], b.l[5], carry)

	r.montgomeryReduce(&t)
}

// Square sets r = a * a, saving the half products that a generic
// multiplication would compute twice.
func (r *Fp) Square(a *Fp) {
	var t [12]uint64
	var carry uint64

	t[1], carry = mac(0, a.l[0], a.l[1], 0)
	t[2], carry = mac(0, a.l[0], a.l[2], carry)
	t[3], carry = mac(0, a.l[0], a.l[3], carry)
	t[4], carry = mac(0, a.l[0], a.l[4], carry)
	t[5], t[6] = mac(0, a.l[0], a.l[5], carry)

	t[3], carry = mac(t[3], a.l[1], a.l[2], 0)
	t[4], carry = mac(t[4], a.l[1], a.l[3], carry)
	t[5], carry = mac(t[5], a.l[1], a.l[4], carry)
	t[6], t[7] = mac(t[6], a.l[1], a.l[5], carry)

	t[5], carry = mac(t[5], a.l[2], a.l[3], 0)
	t[6], carry = mac(t[6], a.l[2], a.l[4], carry)
	t[7], t[8] = mac(t[7], a.l[2], a.l[5], carry)

	t[7], carry = mac(t[7], a.l[3], a.l[4], 0)
	t[8], t[9] = mac(t[8], a.l[3], a.l[5], carry)

	t[9], t[10] = mac(t[9], a.l[4], a.l[5], 0)

	t[11] = t[10] >> 63
	t[10] = t[10]<<1 | t[9]>>63
	t[9] = t[9]<<1 | t[8]>>63
	t[8] = t[8]<<1 | t[7]>>63
	t[7] = t[7]<<1 | t[6]>>63
	t[6] = t[6]<<1 | t[5]>>63
	t[5] = t[5]<<1 | t[4]>>63
	t[4] = t[4]<<1 | t[3]>>63
	t[3] = t[3]<<1 | t[2]>>63
	t[2] = t[2]<<1 | t[1]>>63
	t[1] = t[1] << 1

	t[0], carry = mac(0, a.l[0], a.l[0], 0)
	t[1], carry = adc(t[1], 0, carry)
	t[2], carry = mac(t[2], a.l[1], a.l[1], carry)
	t[3], carry = adc(t[3], 0, carry)
	t[4], carry = mac(t[4], a.l[2], a.l[2], carry)
	t[5], carry = adc(t[5], 0, carry)
	t[6], carry = mac(t[6], a.l[3], a.l[3], carry)
	t[7], carry = adc(t[7], 0, carry)
	t[8], carry = mac(t[8], a.l[4], a.l[4], carry)
	t[9], carry = adc(t[9], 0, carry)
	t[10], carry = mac(t[10], a.l[5], a.l[5], carry)
	t[11], _ = adc(t[11], 0, carry)

	r.montgomeryReduce(&t)
}

// SumOfProducts sets r = sum(a[i] * b[i]), reducing once at the end instead
// of per product. Both slices must have the same length.
func (r *Fp) SumOfProducts(a, b []Fp) {
	if len(a) != len(b) {
		panic("sum of products requires equal-length inputs")
	}

	var u [7]uint64
	for j := 0; j < 6; j++ {
		t := [7]uint64{u[0], u[1], u[2], u[3], u[4], u[5], 0}
		for i := range a {
			var carry uint64
			t[0], carry = mac(t[0], a[i].l[j], b[i].l[0], 0)
			t[1], carry = mac(t[1], a[i].l[j], b[i].l[1], carry)
			t[2], carry = mac(t[2], a[i].l[j], b[i].l[2], carry)
			t[3], carry = mac(t[3], a[i].l[j], b[i].l[3], carry)
			t[4], carry = mac(t[4], a[i].l[j], b[i].l[4], carry)
			t[5], carry = mac(t[5], a[i].l[j], b[i].l[5], carry)
			t[6], _ = adc(t[6], 0, carry)
		}

		var carry uint64
		k := t[0] * fpINV
		_, carry = mac(t[0], k, fpModulus[0], 0)
		u[0], carry = mac(t[1], k, fpModulus[1], carry)
		u[1], carry = mac(t[2], k, fpModulus[2], carry)
		u[2], carry = mac(t[3], k, fpModulus[3], carry)
		u[3], carry = mac(t[4], k, fpModulus[4], carry)
		u[4], carry = mac(t[5], k, fpModulus[5], carry)
		u[5], _ = adc(t[6], 0, carry)
	}

	tmp := Fp{l: [6]uint64{u[0], u[1], u[2], u[3], u[4], u[5]}}
	r.subtractP(&tmp)
}

// PowVartime sets r = a^exp, interpreting exp as a little-endian limb
// sequence. Runs in time dependent on exp; never call it with a secret
// exponent.
func (r *Fp) PowVartime(a *Fp, exp []uint64) {
	var res Fp
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

// Invert sets r = a^-1 via exponentiation by p - 2, returning false (and
// leaving r = a^(p-2) = 0) when a is zero.
func (r *Fp) Invert(a *Fp) bool {
	r.PowVartime(a, fpInvExp[:])
	return !a.IsZero()
}

// Sqrt sets r to a square root of a, if one exists, and reports whether it
// did. Since p = 3 mod 4, the candidate is a^((p+1)/4); squaring it back
// decides validity. On failure r still holds the (useless) candidate.
func (r *Fp) Sqrt(a *Fp) bool {
	in := *a
	r.PowVartime(&in, fpSqrtExp[:])
	var check Fp
	check.Square(r)
	return check.Equal(&in)
}

// toCanonical strips the Montgomery factor, yielding the plain integer
// representation in limbs.
func (r *Fp) toCanonical(a *Fp) {
	t := [12]uint64{a.l[0], a.l[1], a.l[2], a.l[3], a.l[4], a.l[5]}
	r.montgomeryReduce(&t)
}

// LexicographicallyLargest returns true if r, in canonical integer form, is
// strictly greater than (p - 1) / 2.
func (r *Fp) LexicographicallyLargest() bool {
	var c Fp
	c.toCanonical(r)

	// Subtract (p + 1) / 2; no borrow means c > (p - 1) / 2. The threshold is
	// derived from the modulus rather than hard-coded.
	var half [6]uint64
	var carry uint64
	half[0], carry = adc(fpModulus[0], 1, 0)
	for i := 1; i < 6; i++ {
		half[i], carry = adc(fpModulus[i], 0, carry)
	}
	for i := 0; i < 5; i++ {
		half[i] = half[i]>>1 | half[i+1]<<63
	}
	half[5] >>= 1

	var borrow uint64
	_, borrow = sbb(c.l[0], half[0], 0)
	_, borrow = sbb(c.l[1], half[1], borrow)
	_, borrow = sbb(c.l[2], half[2], borrow)
	_, borrow = sbb(c.l[3], half[3], borrow)
	_, borrow = sbb(c.l[4], half[4], borrow)
	_, borrow = sbb(c.l[5], half[5], borrow)
	return borrow == 0
}

// sgn0 returns the parity of the canonical form, per the hash-to-curve sign
// convention.
func (r *Fp) sgn0() int {
	var c Fp
	c.toCanonical(r)
	return int(c.l[0] & 1)
}

// SetBytes interprets in as a 48-byte big-endian integer and reports whether
// it is a canonical field element (i.e. less than p). On failure r is left
// unchanged. Panics if in is not 48 bytes long.
func (r *Fp) SetBytes(in []byte) bool {
	if len(in) != 48 {
		panic("field element encoding must be 48 bytes")
	}

	var t Fp
	t.l[5] = readBE64(in[0:8])
	t.l[4] = readBE64(in[8:16])
	t.l[3] = readBE64(in[16:24])
	t.l[2] = readBE64(in[24:32])
	t.l[1] = readBE64(in[32:40])
	t.l[0] = readBE64(in[40:48])

	var borrow uint64
	_, borrow = sbb(t.l[0], fpModulus[0], 0)
	_, borrow = sbb(t.l[1], fpModulus[1], borrow)
	_, borrow = sbb(t.l[2], fpModulus[2], borrow)
	_, borrow = sbb(t.l[3], fpModulus[3], borrow)
	_, borrow = sbb(t.l[4], fpModulus[4], borrow)
	_, borrow = sbb(t.l[5], fpModulus[5], borrow)
	if borrow == 0 {
		return false
	}

	// Convert into Montgomery form: (a * R^2) / R = a * R.
	r.Mul(&t, &fpR2)
	return true
}

// Bytes returns the canonical 48-byte big-endian encoding.
func (r *Fp) Bytes() [48]byte {
	var c Fp
	c.toCanonical(r)

	var out [48]byte
	writeBE64(out[0:8], c.l[5])
	writeBE64(out[8:16], c.l[4])
	writeBE64(out[16:24], c.l[3])
	writeBE64(out[24:32], c.l[2])
	writeBE64(out[32:40], c.l[1])
	writeBE64(out[40:48], c.l[0])
	return out
}

// fromU768 reduces a 768-bit integer, given as twelve big-endian-ordered
// limbs, into the field. The low 384 bits are mapped through R^2 and the high
// 384 bits through R^3, so the two halves land in Montgomery form already
// combined.
func (r *Fp) fromU768(limbs *[12]uint64) {
	d1 := Fp{l: [6]uint64{limbs[11], limbs[10], limbs[9], limbs[8], limbs[7], limbs[6]}}
	d0 := Fp{l: [6]uint64{limbs[5], limbs[4], limbs[3], limbs[2], limbs[1], limbs[0]}}
	d0.Mul(&d0, &fpR3)
	d1.Mul(&d1, &fpR2)
	r.Add(&d0, &d1)
}

// SetRandom draws 96 uniformly random bytes from rand and reduces them into
// the field, leaving a negligible (< 2^-384) bias.
func (r *Fp) SetRandom(rand io.Reader) error {
	var buf [96]byte
	if _, err := io.ReadFull(rand, buf[:]); err != nil {
		return err
	}

	var limbs [12]uint64
	for i := 0; i < 12; i++ {
		limbs[i] = readBE64(buf[i*8 : i*8+8])
	}
	r.fromU768(&limbs)
	return nil
}
