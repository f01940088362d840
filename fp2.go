package bls12381

import "io"

// Fp2 represents an element c0 + c1*u of Fp2 = Fp[u] / (u^2 + 1).
type Fp2 struct {
	c0, c1 Fp
}

// (p - 3) / 4, first exponent of the even-extension square root
var fp2SqrtExp1 = [6]uint64{
	0xee7fbfffffffeaaa, 0x07aaffffac54ffff, 0xd9cc34a83dac3d89,
	0xd91dd2e13ce144af, 0x92c6e9ed90d2eb35, 0x0680447a8e5ff9a6,
}

// (p - 1) / 2, second exponent of the even-extension square root
var fp2SqrtExp2 = [6]uint64{
	0xdcff7fffffffd555, 0x0f55ffff58a9ffff, 0xb39869507b587b12,
	0xb23ba5c279c2895f, 0x258dd3db21a5d66b, 0x0d0088f51cbff34d,
}

// Set copies a into r.
func (r *Fp2) Set(a *Fp2) {
	*r = *a
}

// SetZero sets r to zero.
func (r *Fp2) SetZero() {
	r.c0.SetZero()
	r.c1.SetZero()
}

// SetOne sets r to one.
func (r *Fp2) SetOne() {
	r.c0.SetOne()
	r.c1.SetZero()
}

// SetFp sets r to the base field element a embedded into Fp2.
func (r *Fp2) SetFp(a *Fp) {
	r.c0.Set(a)
	r.c1.SetZero()
}

// IsZero returns true if both coefficients are zero.
func (r *Fp2) IsZero() bool {
	return r.c0.IsZero() && r.c1.IsZero()
}

// Equal returns true if r and a are the same element.
func (r *Fp2) Equal(a *Fp2) bool {
	return r.c0.Equal(&a.c0) && r.c1.Equal(&a.c1)
}

// Select sets r to a if flag is 0 and to b if flag is 1, in constant time.
func (r *Fp2) Select(a, b *Fp2, flag int) {
	r.c0.Select(&a.c0, &b.c0, flag)
	r.c1.Select(&a.c1, &b.c1, flag)
}

// Conjugate sets r = c0 - c1*u.
func (r *Fp2) Conjugate(a *Fp2) {
	r.c0.Set(&a.c0)
	r.c1.Neg(&a.c1)
}

// FrobeniusMap raises a to the p-th power. Over Fp2 this is conjugation.
func (r *Fp2) FrobeniusMap(a *Fp2) {
	r.Conjugate(a)
}

// MulByNonresidue multiplies a by u + 1, the non-residue defining Fp6:
// (a + bu)(u + 1) = (a - b) + (a + b)u.
func (r *Fp2) MulByNonresidue(a *Fp2) {
	var t0, t1 Fp
	t0.Sub(&a.c0, &a.c1)
	t1.Add(&a.c0, &a.c1)
	r.c0.Set(&t0)
	r.c1.Set(&t1)
}

// LexicographicallyLargest compares c1 first, falling back to c0 when c1 is
// zero.
func (r *Fp2) LexicographicallyLargest() bool {
	return r.c1.LexicographicallyLargest() ||
		(r.c1.IsZero() && r.c0.LexicographicallyLargest())
}

// Add sets r = a + b.
func (r *Fp2) Add(a, b *Fp2) {
	r.c0.Add(&a.c0, &b.c0)
	r.c1.Add(&a.c1, &b.c1)
}

// Sub sets r = a - b.
func (r *Fp2) Sub(a, b *Fp2) {
	r.c0.Sub(&a.c0, &b.c0)
	r.c1.Sub(&a.c1, &b.c1)
}

// Neg sets r = -a.
func (r *Fp2) Neg(a *Fp2) {
	r.c0.Neg(&a.c0)
	r.c1.Neg(&a.c1)
}

// Double sets r = a + a.
func (r *Fp2) Double(a *Fp2) {
	r.c0.Double(&a.c0)
	r.c1.Double(&a.c1)
}

// Mul sets r = a * b using the complex multiplication formulas
//
//	c0 = a0*b0 - a1*b1
//	c1 = a0*b1 + a1*b0
//
// each evaluated as a single sum of products so no double-width temporary is
// reduced twice.
func (r *Fp2) Mul(a, b *Fp2) {
	var na1 Fp
	na1.Neg(&a.c1)

	var c0, c1 Fp
	c0.SumOfProducts([]Fp{a.c0, na1}, []Fp{b.c0, b.c1})
	c1.SumOfProducts([]Fp{a.c0, a.c1}, []Fp{b.c1, b.c0})
	r.c0 = c0
	r.c1 = c1
}

// MulByFp scales both coefficients by the base field element b.
func (r *Fp2) MulByFp(a *Fp2, b *Fp) {
	r.c0.Mul(&a.c0, b)
	r.c1.Mul(&a.c1, b)
}

// Square sets r = a^2 via (a+b)(a-b) and 2ab.
func (r *Fp2) Square(a *Fp2) {
	var s, d, t Fp
	s.Add(&a.c0, &a.c1)
	d.Sub(&a.c0, &a.c1)
	t.Double(&a.c0)
	r.c0.Mul(&s, &d)
	r.c1.Mul(&t, &a.c1)
}

// powVartime sets r = a^exp for a public little-endian limb exponent.
func (r *Fp2) powVartime(a *Fp2, exp []uint64) {
	var res Fp2
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

// Invert sets r = a^-1 using 1/(a + bu) = (a - bu)/(a^2 + b^2), which costs a
// single base field inversion. Returns false when a is zero.
func (r *Fp2) Invert(a *Fp2) bool {
	var t0, t1 Fp
	t0.Square(&a.c0)
	t1.Square(&a.c1)
	t0.Add(&t0, &t1)

	ok := t0.Invert(&t0)

	r.c0.Mul(&a.c0, &t0)
	r.c1.Mul(&a.c1, &t0)
	r.c1.Neg(&r.c1)
	return ok
}

// Sqrt sets r to a square root of a if one exists, and reports whether it
// did. Algorithm 9 of "Square root computation over even extension fields"
// (Aranha et al., 2012), including the alpha = -1 branch which maps the
// candidate x0 to x0 * u.
func (r *Fp2) Sqrt(a *Fp2) bool {
	if a.IsZero() {
		r.SetZero()
		return true
	}

	// a1 = a^((p - 3) / 4)
	var a1 Fp2
	a1.powVartime(a, fp2SqrtExp1[:])

	// alpha = a1^2 * a = a^((p - 1) / 2)
	var alpha Fp2
	alpha.Square(&a1)
	alpha.Mul(&alpha, a)

	// x0 = a1 * a = a^((p + 1) / 4)
	var x0 Fp2
	x0.Mul(&a1, a)

	var negOne Fp2
	negOne.SetOne()
	negOne.Neg(&negOne)

	var res Fp2
	if alpha.Equal(&negOne) {
		// alpha = -1 means a is -1 times a subfield square; the root of
		// x0 = b (with zero u coefficient) is b*u.
		res.c0.Neg(&x0.c1)
		res.c1.Set(&x0.c0)
	} else {
		// Otherwise the candidate is (1 + alpha)^((p - 1) / 2) * x0.
		res.SetOne()
		res.Add(&res, &alpha)
		res.powVartime(&res, fp2SqrtExp2[:])
		res.Mul(&res, &x0)
	}

	// Only a genuine root survives the squaring check; non-squares report
	// invalid.
	var check Fp2
	check.Square(&res)
	ok := check.Equal(a)
	r.Set(&res)
	return ok
}

// SetRandom draws both coefficients uniformly from rand.
func (r *Fp2) SetRandom(rand io.Reader) error {
	if err := r.c0.SetRandom(rand); err != nil {
		return err
	}
	return r.c1.SetRandom(rand)
}
