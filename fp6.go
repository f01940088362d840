package bls12381

import "io"

// Fp6 represents an element c0 + c1*v + c2*v^2 of Fp6 = Fp2[v] / (v^3 - (u+1)).
type Fp6 struct {
	c0, c1, c2 Fp2
}

// Frobenius coefficient (u+1)^((p-1)/3), multiplied onto c1.
var fp6FrobC1 = Fp2{
	c0: Fp{},
	c1: Fp{l: [6]uint64{
		0xcd03c9e48671f071, 0x5dab22461fcda5d2, 0x587042afd3851b95,
		0x8eb60ebe01bacb9e, 0x03f97d6e83d050d2, 0x18f0206554638741,
	}},
}

// Frobenius coefficient (u+1)^((2p-2)/3), multiplied onto c2.
var fp6FrobC2 = Fp2{
	c0: Fp{l: [6]uint64{
		0x890dc9e4867545c3, 0x2af322533285a5d5, 0x50880866309b7e2c,
		0xa20d1b8c7e881024, 0x14e4f04fe2db9068, 0x14e56d3f1564853a,
	}},
	c1: Fp{},
}

// Set copies a into r.
func (r *Fp6) Set(a *Fp6) {
	*r = *a
}

// SetZero sets r to zero.
func (r *Fp6) SetZero() {
	r.c0.SetZero()
	r.c1.SetZero()
	r.c2.SetZero()
}

// SetOne sets r to one.
func (r *Fp6) SetOne() {
	r.c0.SetOne()
	r.c1.SetZero()
	r.c2.SetZero()
}

// SetFp2 embeds a into Fp6.
func (r *Fp6) SetFp2(a *Fp2) {
	r.c0.Set(a)
	r.c1.SetZero()
	r.c2.SetZero()
}

// IsZero returns true if all coefficients are zero.
func (r *Fp6) IsZero() bool {
	return r.c0.IsZero() && r.c1.IsZero() && r.c2.IsZero()
}

// Equal returns true if r and a are the same element.
func (r *Fp6) Equal(a *Fp6) bool {
	return r.c0.Equal(&a.c0) && r.c1.Equal(&a.c1) && r.c2.Equal(&a.c2)
}

// Select sets r to a if flag is 0 and to b if flag is 1, in constant time.
func (r *Fp6) Select(a, b *Fp6, flag int) {
	r.c0.Select(&a.c0, &b.c0, flag)
	r.c1.Select(&a.c1, &b.c1, flag)
	r.c2.Select(&a.c2, &b.c2, flag)
}

// Add sets r = a + b.
func (r *Fp6) Add(a, b *Fp6) {
	r.c0.Add(&a.c0, &b.c0)
	r.c1.Add(&a.c1, &b.c1)
	r.c2.Add(&a.c2, &b.c2)
}

// Sub sets r = a - b.
func (r *Fp6) Sub(a, b *Fp6) {
	r.c0.Sub(&a.c0, &b.c0)
	r.c1.Sub(&a.c1, &b.c1)
	r.c2.Sub(&a.c2, &b.c2)
}

// Neg sets r = -a.
func (r *Fp6) Neg(a *Fp6) {
	r.c0.Neg(&a.c0)
	r.c1.Neg(&a.c1)
	r.c2.Neg(&a.c2)
}

// MulByNonresidue multiplies a by v: (c0 + c1 v + c2 v^2) v = c2*(u+1) + c0 v + c1 v^2.
func (r *Fp6) MulByNonresidue(a *Fp6) {
	var t Fp2
	t.MulByNonresidue(&a.c2)
	c2 := a.c1
	c1 := a.c0
	r.c0 = t
	r.c1 = c1
	r.c2 = c2
}

// MulBy1 multiplies a by an element with only the v coefficient set.
func (r *Fp6) MulBy1(a *Fp6, b1 *Fp2) {
	var t0, t1, t2 Fp2
	t0.Mul(&a.c2, b1)
	t0.MulByNonresidue(&t0)
	t1.Mul(&a.c0, b1)
	t2.Mul(&a.c1, b1)
	r.c0 = t0
	r.c1 = t1
	r.c2 = t2
}

// MulBy01 multiplies a by an element with only the constant and v
// coefficients set.
func (r *Fp6) MulBy01(a *Fp6, b0, b1 *Fp2) {
	var aa, bb, t1, t2, t3, s Fp2
	aa.Mul(&a.c0, b0)
	bb.Mul(&a.c1, b1)

	t1.Mul(&a.c2, b1)
	t1.MulByNonresidue(&t1)
	t1.Add(&t1, &aa)

	s.Add(b0, b1)
	t2.Add(&a.c0, &a.c1)
	t2.Mul(&t2, &s)
	t2.Sub(&t2, &aa)
	t2.Sub(&t2, &bb)

	t3.Mul(&a.c2, b0)
	t3.Add(&t3, &bb)

	r.c0 = t1
	r.c1 = t2
	r.c2 = t3
}

// Mul sets r = a * b with the full-tower interleaved strategy: each of the
// six output Fp coefficients is one long sum of products over the
// twelve base field coefficients of a and b, exploiting u^2 = -1 and the (u+1)
// reduction in a single pass.
//
// With a = (a0 + a1 v + a2 v^2), b likewise, and xi = u + 1:
//
//	c0 = a0 b0 + xi (a1 b2 + a2 b1)
//	c1 = a0 b1 + a1 b0 + xi a2 b2
//	c2 = a0 b2 + a1 b1 + a2 b0
func (r *Fp6) Mul(a, b *Fp6) {
	var na Fp6
	na.c0.c1.Neg(&a.c0.c1)
	na.c1.c1.Neg(&a.c1.c1)
	na.c2.c1.Neg(&a.c2.c1)
	na.c0.c0.Neg(&a.c0.c0)
	na.c1.c0.Neg(&a.c1.c0)
	na.c2.c0.Neg(&a.c2.c0)

	var c00, c01, c10, c11, c20, c21 Fp

	// c0.c0 = a0.0 b0.0 - a0.1 b0.1
	//       + (a1 b2).re - (a1 b2).im + (a2 b1).re - (a2 b1).im
	c00.SumOfProducts(
		[]Fp{a.c0.c0, na.c0.c1, a.c1.c0, na.c1.c1, na.c1.c0, na.c1.c1, a.c2.c0, na.c2.c1, na.c2.c0, na.c2.c1},
		[]Fp{b.c0.c0, b.c0.c1, b.c2.c0, b.c2.c1, b.c2.c1, b.c2.c0, b.c1.c0, b.c1.c1, b.c1.c1, b.c1.c0},
	)
	// c0.c1 = a0.0 b0.1 + a0.1 b0.0
	//       + (a1 b2).re + (a1 b2).im + (a2 b1).re + (a2 b1).im
	c01.SumOfProducts(
		[]Fp{a.c0.c0, a.c0.c1, a.c1.c0, na.c1.c1, a.c1.c0, a.c1.c1, a.c2.c0, na.c2.c1, a.c2.c0, a.c2.c1},
		[]Fp{b.c0.c1, b.c0.c0, b.c2.c0, b.c2.c1, b.c2.c1, b.c2.c0, b.c1.c0, b.c1.c1, b.c1.c1, b.c1.c0},
	)

	// c1.c0 = (a0 b1).re + (a1 b0).re + (a2 b2).re - (a2 b2).im
	c10.SumOfProducts(
		[]Fp{a.c0.c0, na.c0.c1, a.c1.c0, na.c1.c1, a.c2.c0, na.c2.c1, na.c2.c0, na.c2.c1},
		[]Fp{b.c1.c0, b.c1.c1, b.c0.c0, b.c0.c1, b.c2.c0, b.c2.c1, b.c2.c1, b.c2.c0},
	)
	// c1.c1 = (a0 b1).im + (a1 b0).im + (a2 b2).re + (a2 b2).im
	c11.SumOfProducts(
		[]Fp{a.c0.c0, a.c0.c1, a.c1.c0, a.c1.c1, a.c2.c0, na.c2.c1, a.c2.c0, a.c2.c1},
		[]Fp{b.c1.c1, b.c1.c0, b.c0.c1, b.c0.c0, b.c2.c0, b.c2.c1, b.c2.c1, b.c2.c0},
	)

	// c2.c0 = (a0 b2).re + (a1 b1).re + (a2 b0).re
	c20.SumOfProducts(
		[]Fp{a.c0.c0, na.c0.c1, a.c1.c0, na.c1.c1, a.c2.c0, na.c2.c1},
		[]Fp{b.c2.c0, b.c2.c1, b.c1.c0, b.c1.c1, b.c0.c0, b.c0.c1},
	)
	// c2.c1 = (a0 b2).im + (a1 b1).im + (a2 b0).im
	c21.SumOfProducts(
		[]Fp{a.c0.c0, a.c0.c1, a.c1.c0, a.c1.c1, a.c2.c0, a.c2.c1},
		[]Fp{b.c2.c1, b.c2.c0, b.c1.c1, b.c1.c0, b.c0.c1, b.c0.c0},
	)

	r.c0.c0 = c00
	r.c0.c1 = c01
	r.c1.c0 = c10
	r.c1.c1 = c11
	r.c2.c0 = c20
	r.c2.c1 = c21
}

// Square sets r = a^2 via Chung-Hasan SQR2.
func (r *Fp6) Square(a *Fp6) {
	var s0, ab, s1, s2, bc, s3, s4, t Fp2

	s0.Square(&a.c0)
	ab.Mul(&a.c0, &a.c1)
	s1.Double(&ab)
	t.Sub(&a.c0, &a.c1)
	t.Add(&t, &a.c2)
	s2.Square(&t)
	bc.Mul(&a.c1, &a.c2)
	s3.Double(&bc)
	s4.Square(&a.c2)

	var c0, c1, c2 Fp2
	c0.MulByNonresidue(&s3)
	c0.Add(&c0, &s0)
	c1.MulByNonresidue(&s4)
	c1.Add(&c1, &s1)
	c2.Add(&s1, &s2)
	c2.Add(&c2, &s3)
	c2.Sub(&c2, &s0)
	c2.Sub(&c2, &s4)

	r.c0 = c0
	r.c1 = c1
	r.c2 = c2
}

// FrobeniusMap raises a to the p-th power: coefficient-wise Fp2 Frobenius
// followed by the fixed twist constants on c1 and c2.
func (r *Fp6) FrobeniusMap(a *Fp6) {
	var c0, c1, c2 Fp2
	c0.FrobeniusMap(&a.c0)
	c1.FrobeniusMap(&a.c1)
	c2.FrobeniusMap(&a.c2)

	c1.Mul(&c1, &fp6FrobC1)
	c2.Mul(&c2, &fp6FrobC2)

	r.c0 = c0
	r.c1 = c1
	r.c2 = c2
}

// Invert sets r = a^-1 using the cofactor construction, reducing to a single
// Fp2 inversion. Returns false when a is zero.
func (r *Fp6) Invert(a *Fp6) bool {
	var t0, t1, t2, tmp, s Fp2

	// t0 = c0^2 - xi c1 c2
	t0.Mul(&a.c1, &a.c2)
	t0.MulByNonresidue(&t0)
	s.Square(&a.c0)
	t0.Sub(&s, &t0)

	// t1 = xi c2^2 - c0 c1
	t1.Square(&a.c2)
	t1.MulByNonresidue(&t1)
	s.Mul(&a.c0, &a.c1)
	t1.Sub(&t1, &s)

	// t2 = c1^2 - c0 c2
	t2.Square(&a.c1)
	s.Mul(&a.c0, &a.c2)
	t2.Sub(&t2, &s)

	// tmp = (c0 t0 + xi (c1 t2 + c2 t1))^-1
	tmp.Mul(&a.c1, &t2)
	s.Mul(&a.c2, &t1)
	tmp.Add(&tmp, &s)
	tmp.MulByNonresidue(&tmp)
	s.Mul(&a.c0, &t0)
	tmp.Add(&tmp, &s)

	ok := tmp.Invert(&tmp)

	r.c0.Mul(&t0, &tmp)
	r.c1.Mul(&t1, &tmp)
	r.c2.Mul(&t2, &tmp)
	return ok
}

// SetRandom draws all coefficients uniformly from rand.
func (r *Fp6) SetRandom(rand io.Reader) error {
	if err := r.c0.SetRandom(rand); err != nil {
		return err
	}
	if err := r.c1.SetRandom(rand); err != nil {
		return err
	}
	return r.c2.SetRandom(rand)
}
