package bls12381

// The Miller loop is expressed once, against a small driver interface, and
// instantiated three ways: evaluating lines against a G1 point, recording
// line coefficients into a G2Prepared table, and replaying prepared tables
// for a batch of pairs. Keeping the skeleton shared is what guarantees the
// recorded tables line up with the evaluation order.
type millerLoopDriver interface {
	doublingStep(f *Fp12)
	additionStep(f *Fp12)
	squareOutput(f *Fp12)
	conjugate(f *Fp12)
	one(f *Fp12)
}

// runMillerLoop drives one optimal ate Miller loop over the bits of |x| >> 1,
// most significant first, skipping the leading one, with a trailing doubling
// step and a conjugation for the negative x.
func runMillerLoop(d millerLoopDriver, f *Fp12) {
	d.one(f)

	foundOne := false
	x := blsX >> 1
	for i := 63; i >= 0; i-- {
		bit := (x>>uint(i))&1 == 1
		if !foundOne {
			foundOne = bit
			continue
		}

		d.doublingStep(f)
		if bit {
			d.additionStep(f)
		}
		d.squareOutput(f)
	}

	d.doublingStep(f)

	if blsXIsNegative {
		d.conjugate(f)
	}
}

// lineCoeffs is one evaluated line, the (l0, l1, l2) triple of Algorithms
// 26/27 of eprint 2010/354.
type lineCoeffs [3]Fp2

// doublingStep computes the tangent line at r and doubles r in place.
// Adaptation of Algorithm 26, https://eprint.iacr.org/2010/354.pdf.
func doublingStep(r *G2Projective) lineCoeffs {
	var tmp0, tmp1, tmp2, tmp3, tmp4, tmp5, tmp6, zsquared, t Fp2

	tmp0.Square(&r.x)
	tmp1.Square(&r.y)
	tmp2.Square(&tmp1)
	tmp3.Add(&tmp1, &r.x)
	tmp3.Square(&tmp3)
	tmp3.Sub(&tmp3, &tmp0)
	tmp3.Sub(&tmp3, &tmp2)
	tmp3.Double(&tmp3)
	tmp4.Double(&tmp0)
	tmp4.Add(&tmp4, &tmp0)
	tmp6.Add(&r.x, &tmp4)
	tmp5.Square(&tmp4)
	zsquared.Square(&r.z)

	r.x.Sub(&tmp5, &tmp3)
	r.x.Sub(&r.x, &tmp3)

	t.Add(&r.z, &r.y)
	t.Square(&t)
	t.Sub(&t, &tmp1)
	r.z.Sub(&t, &zsquared)

	t.Sub(&tmp3, &r.x)
	r.y.Mul(&t, &tmp4)
	tmp2.Double(&tmp2)
	tmp2.Double(&tmp2)
	tmp2.Double(&tmp2)
	r.y.Sub(&r.y, &tmp2)

	tmp3.Mul(&tmp4, &zsquared)
	tmp3.Double(&tmp3)
	tmp3.Neg(&tmp3)

	tmp6.Square(&tmp6)
	tmp6.Sub(&tmp6, &tmp0)
	tmp6.Sub(&tmp6, &tmp5)
	tmp1.Double(&tmp1)
	tmp1.Double(&tmp1)
	tmp6.Sub(&tmp6, &tmp1)

	tmp0.Mul(&r.z, &zsquared)
	tmp0.Double(&tmp0)

	return lineCoeffs{tmp0, tmp3, tmp6}
}

// additionStep computes the line through r and q and adds q into r in place.
// Adaptation of Algorithm 27, https://eprint.iacr.org/2010/354.pdf.
func additionStep(r *G2Projective, q *G2Affine) lineCoeffs {
	var zsquared, ysquared, t0, t1, t2, t3, t4, t5, t6, t7, t8, t9, t10 Fp2

	zsquared.Square(&r.z)
	ysquared.Square(&q.y)
	t0.Mul(&zsquared, &q.x)

	t1.Add(&q.y, &r.z)
	t1.Square(&t1)
	t1.Sub(&t1, &ysquared)
	t1.Sub(&t1, &zsquared)
	t1.Mul(&t1, &zsquared)

	t2.Sub(&t0, &r.x)
	t3.Square(&t2)
	t4.Double(&t3)
	t4.Double(&t4)
	t5.Mul(&t4, &t2)
	t6.Sub(&t1, &r.y)
	t6.Sub(&t6, &r.y)
	t9.Mul(&t6, &q.x)
	t7.Mul(&t4, &r.x)

	var x3 Fp2
	x3.Square(&t6)
	x3.Sub(&x3, &t5)
	x3.Sub(&x3, &t7)
	x3.Sub(&x3, &t7)

	var z3 Fp2
	z3.Add(&r.z, &t2)
	z3.Square(&z3)
	z3.Sub(&z3, &zsquared)
	z3.Sub(&z3, &t3)

	t10.Add(&q.y, &z3)
	t8.Sub(&t7, &x3)
	t8.Mul(&t8, &t6)
	t0.Mul(&r.y, &t5)
	t0.Double(&t0)

	var y3 Fp2
	y3.Sub(&t8, &t0)

	t10.Square(&t10)
	t10.Sub(&t10, &ysquared)
	var ztsquared Fp2
	ztsquared.Square(&z3)
	t10.Sub(&t10, &ztsquared)
	t9.Double(&t9)
	t9.Sub(&t9, &t10)
	t10.Double(&z3)
	t6.Neg(&t6)
	t1.Double(&t6)

	r.x = x3
	r.y = y3
	r.z = z3

	return lineCoeffs{t10, t1, t9}
}

// ell folds a line evaluated at p into the accumulator via the sparse
// mul_by_014.
func ell(f *Fp12, coeffs *lineCoeffs, p *G1Affine) {
	var c0, c1 Fp2
	c0.MulByFp(&coeffs[0], &p.y)
	c1.MulByFp(&coeffs[1], &p.x)
	f.MulBy014(f, &coeffs[2], &c1, &c0)
}

// pairingAdder is the Miller loop driver that evaluates lines against a
// fixed G1 point as they are produced.
type pairingAdder struct {
	cur  G2Projective
	base G2Affine
	p    G1Affine
}

func (a *pairingAdder) doublingStep(f *Fp12) {
	coeffs := doublingStep(&a.cur)
	ell(f, &coeffs, &a.p)
}

func (a *pairingAdder) additionStep(f *Fp12) {
	coeffs := additionStep(&a.cur, &a.base)
	ell(f, &coeffs, &a.p)
}

func (a *pairingAdder) squareOutput(f *Fp12) {
	f.Square(f)
}

func (a *pairingAdder) conjugate(f *Fp12) {
	f.Conjugate(f)
}

func (a *pairingAdder) one(f *Fp12) {
	f.SetOne()
}

// recordingAdder runs the same skeleton but records the line coefficients
// instead of evaluating them, producing a G2Prepared table.
type recordingAdder struct {
	cur    G2Projective
	base   G2Affine
	coeffs []lineCoeffs
}

func (a *recordingAdder) doublingStep(_ *Fp12) {
	a.coeffs = append(a.coeffs, doublingStep(&a.cur))
}

func (a *recordingAdder) additionStep(_ *Fp12) {
	a.coeffs = append(a.coeffs, additionStep(&a.cur, &a.base))
}

func (a *recordingAdder) squareOutput(_ *Fp12) {}

func (a *recordingAdder) conjugate(_ *Fp12) {}

func (a *recordingAdder) one(_ *Fp12) {}

// g2PreparedCoeffCount is the number of line coefficient triples one Miller
// loop produces: one per doubling step (each non-skipped iteration and the
// trailing one, 63 in all) plus one per addition step (5).
const g2PreparedCoeffCount = 68

// G2Prepared is a G2 point with its Miller loop line coefficients
// precomputed, for use with MultiMillerLoop.
type G2Prepared struct {
	infinity bool
	coeffs   []lineCoeffs
}

// NewG2Prepared precomputes the line coefficient table for q. An identity
// input is recorded as such and contributes nothing to pairings.
func NewG2Prepared(q *G2Affine) G2Prepared {
	isIdentity := q.IsIdentity()

	var base G2Affine
	gen := G2AffineGenerator()
	base.Select(q, &gen, boolToInt(isIdentity))

	adder := recordingAdder{base: base, coeffs: make([]lineCoeffs, 0, g2PreparedCoeffCount)}
	adder.cur.FromAffine(&base)

	var unused Fp12
	runMillerLoop(&adder, &unused)

	if len(adder.coeffs) != g2PreparedCoeffCount {
		panic("miller loop produced an unexpected number of coefficients")
	}

	return G2Prepared{infinity: isIdentity, coeffs: adder.coeffs}
}

// MillerLoopTerm is one (G1, prepared G2) input pair of a multi-Miller loop.
type MillerLoopTerm struct {
	P *G1Affine
	Q *G2Prepared
}

// multiAdder replays prepared coefficient tables for a batch of terms,
// walking all tables in lockstep.
type multiAdder struct {
	terms []MillerLoopTerm
	index int
}

func (a *multiAdder) step(f *Fp12) {
	index := a.index
	for _, term := range a.terms {
		eitherIdentity := term.P.IsIdentity() || term.Q.infinity

		newF := *f
		ell(&newF, &term.Q.coeffs[index], term.P)
		f.Select(&newF, f, boolToInt(eitherIdentity))
	}
	a.index++
}

func (a *multiAdder) doublingStep(f *Fp12) { a.step(f) }

func (a *multiAdder) additionStep(f *Fp12) { a.step(f) }

func (a *multiAdder) squareOutput(f *Fp12) {
	f.Square(f)
}

func (a *multiAdder) conjugate(f *Fp12) {
	f.Conjugate(f)
}

func (a *multiAdder) one(f *Fp12) {
	f.SetOne()
}

// MillerLoopResult is the unexponentiated output of a Miller loop. Results
// can be accumulated with Add and only become comparable group elements
// after FinalExponentiation.
type MillerLoopResult struct {
	f Fp12
}

// Add accumulates another Miller loop output; the underlying operation is
// the Fp12 product.
func (r *MillerLoopResult) Add(a, b *MillerLoopResult) {
	r.f.Mul(&a.f, &b.f)
}

// fp4Square squares (a + b*v) in the Fp4 subfield built on the Fp6
// non-residue, the primitive of cyclotomic squaring.
func fp4Square(c0, c1, a, b *Fp2) {
	var t0, t1, t2 Fp2
	t0.Square(a)
	t1.Square(b)
	t2.MulByNonresidue(&t1)
	c0.Add(&t2, &t0)
	t2.Add(a, b)
	t2.Square(&t2)
	t2.Sub(&t2, &t0)
	c1.Sub(&t2, &t1)
}

// cyclotomicSquare squares an element of the cyclotomic subgroup.
// Adaptation of Algorithm 5.5.4 of Guide to Pairing-Based Cryptography
// (Granger-Scott, eprint 2009/565).
func cyclotomicSquare(r, f *Fp12) {
	z0 := f.c0.c0
	z4 := f.c0.c1
	z3 := f.c0.c2
	z2 := f.c1.c0
	z1 := f.c1.c1
	z5 := f.c1.c2

	var t0, t1, t2, t3 Fp2

	fp4Square(&t0, &t1, &z0, &z1)

	z0.Sub(&t0, &z0)
	z0.Add(&z0, &z0)
	z0.Add(&z0, &t0)

	z1.Add(&t1, &z1)
	z1.Add(&z1, &z1)
	z1.Add(&z1, &t1)

	fp4Square(&t0, &t1, &z2, &z3)
	fp4Square(&t2, &t3, &z4, &z5)

	z4.Sub(&t0, &z4)
	z4.Add(&z4, &z4)
	z4.Add(&z4, &t0)

	z5.Add(&t1, &z5)
	z5.Add(&z5, &z5)
	z5.Add(&z5, &t1)

	t0.MulByNonresidue(&t3)
	z2.Add(&t0, &z2)
	z2.Add(&z2, &z2)
	z2.Add(&z2, &t0)

	z3.Sub(&t2, &z3)
	z3.Add(&z3, &z3)
	z3.Add(&z3, &t2)

	r.c0.c0 = z0
	r.c0.c1 = z4
	r.c0.c2 = z3
	r.c1.c0 = z2
	r.c1.c1 = z1
	r.c1.c2 = z5
}

// cyclotomicExp raises f to |x| with cyclotomic squarings and conjugates,
// absorbing the sign of the curve parameter.
func cyclotomicExp(r, f *Fp12) {
	var tmp Fp12
	tmp.SetOne()
	foundOne := false
	for i := 63; i >= 0; i-- {
		bit := (blsX>>uint(i))&1 == 1
		if foundOne {
			cyclotomicSquare(&tmp, &tmp)
		} else {
			foundOne = bit
		}
		if bit {
			tmp.Mul(&tmp, f)
		}
	}
	tmp.Conjugate(&tmp)
	r.Set(&tmp)
}

// FinalExponentiation raises the Miller loop output to (p^12 - 1)/q,
// collapsing it into the prime-order group Gt. The easy part produces a
// unitary element; the hard part follows the known addition chain for the
// BLS12-381 parameter. A zero input cannot be produced by the Miller loop
// and panics.
func (r *MillerLoopResult) FinalExponentiation() Gt {
	f := &r.f

	var t0 Fp12
	t0.FrobeniusMap(f)
	t0.FrobeniusMap(&t0)
	t0.FrobeniusMap(&t0)
	t0.FrobeniusMap(&t0)
	t0.FrobeniusMap(&t0)
	t0.FrobeniusMap(&t0)

	var t1 Fp12
	if !t1.Invert(f) {
		panic("miller loop output must be nonzero")
	}

	var t2, t3, t4, t5, t6 Fp12
	t2.Mul(&t0, &t1)
	t1.Set(&t2)
	t2.FrobeniusMap(&t2)
	t2.FrobeniusMap(&t2)
	t2.Mul(&t2, &t1)

	cyclotomicSquare(&t1, &t2)
	t1.Conjugate(&t1)

	cyclotomicExp(&t3, &t2)
	cyclotomicSquare(&t4, &t3)
	t5.Mul(&t1, &t3)
	cyclotomicExp(&t1, &t5)
	cyclotomicExp(&t0, &t1)
	cyclotomicExp(&t6, &t0)
	t6.Mul(&t6, &t4)
	cyclotomicExp(&t4, &t6)
	t5.Conjugate(&t5)
	t4.Mul(&t4, &t5)
	t4.Mul(&t4, &t2)
	t5.Conjugate(&t2)
	t1.Mul(&t1, &t2)
	t1.FrobeniusMap(&t1)
	t1.FrobeniusMap(&t1)
	t1.FrobeniusMap(&t1)
	t6.Mul(&t6, &t5)
	t6.FrobeniusMap(&t6)
	t3.Mul(&t3, &t0)
	t3.FrobeniusMap(&t3)
	t3.FrobeniusMap(&t3)
	t3.Mul(&t3, &t1)
	t3.Mul(&t3, &t6)

	var out Fp12
	out.Mul(&t3, &t4)
	return Gt{f: out}
}

// MultiMillerLoop computes sum ML(P_i, Q_i) over the given terms in a single
// shared loop. Identity inputs on either side contribute nothing.
func MultiMillerLoop(terms []MillerLoopTerm) MillerLoopResult {
	adder := multiAdder{terms: terms}
	var f Fp12
	runMillerLoop(&adder, &f)
	return MillerLoopResult{f: f}
}

// MillerLoop computes the unexponentiated pairing of a single pair without
// precomputation.
func MillerLoop(p *G1Affine, q *G2Affine) MillerLoopResult {
	eitherIdentity := p.IsIdentity() || q.IsIdentity()

	var pp G1Affine
	g1gen := G1AffineGenerator()
	pp.Select(p, &g1gen, boolToInt(eitherIdentity))

	var qq G2Affine
	g2gen := G2AffineGenerator()
	qq.Select(q, &g2gen, boolToInt(eitherIdentity))

	adder := pairingAdder{base: qq, p: pp}
	adder.cur.FromAffine(&qq)

	var f Fp12
	runMillerLoop(&adder, &f)

	var one Fp12
	one.SetOne()
	f.Select(&f, &one, boolToInt(eitherIdentity))
	return MillerLoopResult{f: f}
}

// Pairing computes the optimal ate pairing e(p, q).
func Pairing(p *G1Affine, q *G2Affine) Gt {
	res := MillerLoop(p, q)
	return res.FinalExponentiation()
}
