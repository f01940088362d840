package bls12381

import "io"

// Fp12 represents an element c0 + c1*w of Fp12 = Fp6[w] / (w^2 - v).
type Fp12 struct {
	c0, c1 Fp6
}

// Frobenius coefficient (u+1)^((p-1)/6), multiplied onto c1.
var fp12FrobC1 = Fp2{
	c0: Fp{l: [6]uint64{
		0x07089552b319d465, 0xc6695f92b50a8313, 0x97e83cccd117228f,
		0xa35baecab2dc29ee, 0x1ce393ea5daace4d, 0x08f2220fb0fb66eb,
	}},
	c1: Fp{l: [6]uint64{
		0xb2f66aad4ce5d646, 0x5842a06bfc497cec, 0xcf4895d42599d394,
		0xc11b9cba40a8e8d0, 0x2e3813cbe5a0de89, 0x110eefda88847faf,
	}},
}

// Set copies a into r.
func (r *Fp12) Set(a *Fp12) {
	*r = *a
}

// SetZero sets r to zero.
func (r *Fp12) SetZero() {
	r.c0.SetZero()
	r.c1.SetZero()
}

// SetOne sets r to one.
func (r *Fp12) SetOne() {
	r.c0.SetOne()
	r.c1.SetZero()
}

// SetFp2 embeds a into Fp12.
func (r *Fp12) SetFp2(a *Fp2) {
	r.c0.SetFp2(a)
	r.c1.SetZero()
}

// IsZero returns true if both coefficients are zero.
func (r *Fp12) IsZero() bool {
	return r.c0.IsZero() && r.c1.IsZero()
}

// IsOne returns true if r is the multiplicative identity.
func (r *Fp12) IsOne() bool {
	var one Fp12
	one.SetOne()
	return r.Equal(&one)
}

// Equal returns true if r and a are the same element.
func (r *Fp12) Equal(a *Fp12) bool {
	return r.c0.Equal(&a.c0) && r.c1.Equal(&a.c1)
}

// Select sets r to a if flag is 0 and to b if flag is 1, in constant time.
func (r *Fp12) Select(a, b *Fp12, flag int) {
	r.c0.Select(&a.c0, &b.c0, flag)
	r.c1.Select(&a.c1, &b.c1, flag)
}

// Add sets r = a + b.
func (r *Fp12) Add(a, b *Fp12) {
	r.c0.Add(&a.c0, &b.c0)
	r.c1.Add(&a.c1, &b.c1)
}

// Sub sets r = a - b.
func (r *Fp12) Sub(a, b *Fp12) {
	r.c0.Sub(&a.c0, &b.c0)
	r.c1.Sub(&a.c1, &b.c1)
}

// Neg sets r = -a.
func (r *Fp12) Neg(a *Fp12) {
	r.c0.Neg(&a.c0)
	r.c1.Neg(&a.c1)
}

// Conjugate negates the w coefficient. For unitary elements (the image of
// the final exponentiation) this is the inverse.
func (r *Fp12) Conjugate(a *Fp12) {
	r.c0.Set(&a.c0)
	r.c1.Neg(&a.c1)
}

// Mul sets r = a * b, Karatsuba over the quadratic extension.
func (r *Fp12) Mul(a, b *Fp12) {
	var aa, bb, o, t1, t0 Fp6
	aa.Mul(&a.c0, &b.c0)
	bb.Mul(&a.c1, &b.c1)
	o.Add(&b.c0, &b.c1)
	t1.Add(&a.c1, &a.c0)
	t1.Mul(&t1, &o)
	t1.Sub(&t1, &aa)
	t1.Sub(&t1, &bb)
	t0.MulByNonresidue(&bb)
	t0.Add(&t0, &aa)
	r.c0 = t0
	r.c1 = t1
}

// Square sets r = a^2.
func (r *Fp12) Square(a *Fp12) {
	var ab, s, c0, c1 Fp6
	ab.Mul(&a.c0, &a.c1)
	s.Add(&a.c0, &a.c1)

	c0.MulByNonresidue(&a.c1)
	c0.Add(&c0, &a.c0)
	c0.Mul(&c0, &s)
	c0.Sub(&c0, &ab)
	c1.Add(&ab, &ab)
	var t Fp6
	t.MulByNonresidue(&ab)
	c0.Sub(&c0, &t)

	r.c0 = c0
	r.c1 = c1
}

// MulBy014 multiplies a by an element with only the c0.c0, c0.c1 and c1.c1
// coefficients set, the sparse shape produced by Miller loop line
// evaluations.
func (r *Fp12) MulBy014(a *Fp12, c0, c1, c4 *Fp2) {
	var aa, bb, t1 Fp6
	aa.MulBy01(&a.c0, c0, c1)
	bb.MulBy1(&a.c1, c4)

	var o Fp2
	o.Add(c1, c4)

	t1.Add(&a.c1, &a.c0)
	t1.MulBy01(&t1, c0, &o)
	t1.Sub(&t1, &aa)
	t1.Sub(&t1, &bb)

	var t0 Fp6
	t0.MulByNonresidue(&bb)
	t0.Add(&t0, &aa)

	r.c0 = t0
	r.c1 = t1
}

// FrobeniusMap raises a to the p-th power.
func (r *Fp12) FrobeniusMap(a *Fp12) {
	var c0, c1 Fp6
	c0.FrobeniusMap(&a.c0)
	c1.FrobeniusMap(&a.c1)

	// c1 = c1 * (u + 1)^((p - 1) / 6)
	c1.c0.Mul(&c1.c0, &fp12FrobC1)
	c1.c1.Mul(&c1.c1, &fp12FrobC1)
	c1.c2.Mul(&c1.c2, &fp12FrobC1)

	r.c0 = c0
	r.c1 = c1
}

// Invert sets r = a^-1 using 1/(a + bw) = (a - bw)/(a^2 - b^2 v). Returns
// false when a is zero.
func (r *Fp12) Invert(a *Fp12) bool {
	var t0, t1 Fp6
	t0.Square(&a.c0)
	t1.Square(&a.c1)
	t1.MulByNonresidue(&t1)
	t0.Sub(&t0, &t1)

	ok := t0.Invert(&t0)

	r.c0.Mul(&a.c0, &t0)
	r.c1.Mul(&a.c1, &t0)
	r.c1.Neg(&r.c1)
	return ok
}

// powVartime sets r = a^exp for a public little-endian limb exponent.
func (r *Fp12) powVartime(a *Fp12, exp []uint64) {
	var res Fp12
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

// SetRandom draws both coefficients uniformly from rand.
func (r *Fp12) SetRandom(rand io.Reader) error {
	if err := r.c0.SetRandom(rand); err != nil {
		return err
	}
	return r.c1.SetRandom(rand)
}
