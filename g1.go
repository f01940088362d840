package bls12381

// BLS curve parameter x. The actual parameter is negative; the sign is
// tracked separately so the magnitude can drive shift loops directly.
const blsX uint64 = 0xd201000000010000

const blsXIsNegative = true

// g1B is the curve constant b = 4 of y^2 = x^3 + 4.
var g1B = Fp{l: [6]uint64{
	0xaa270000000cfff3, 0x53cc0032fc34000a, 0x478fe97a6b0a807f,
	0xb1d37ebee6ba24d7, 0x8ec9733bbf78ab2f, 0x09d645513d83de7e,
}}

// g1Beta is a non-trivial cube root of unity in Fp, the x-coordinate
// multiplier of the degree-p endomorphism used for fast subgroup checks.
var g1Beta = Fp{l: [6]uint64{
	0x30f1361b798a64e8, 0xf3b8ddab7ece5a2a, 0x16a8ca3ac61577f7,
	0xc26a2ff874fd029b, 0x3636b76660701c6e, 0x051ba4ab241b6160,
}}

var (
	g1GeneratorX = Fp{l: [6]uint64{
		0x5cb38790fd530c16, 0x7817fc679976fff5, 0x154f95c7143ba1c1,
		0xf0ae6acdf3d0e747, 0xedce6ecc21dbf440, 0x120177419e0bfb75,
	}}
	g1GeneratorY = Fp{l: [6]uint64{
		0xbaac93d50ce72271, 0x8c22631a7918fd8e, 0xdd595f13570725ce,
		0x51ac582950405194, 0x0e1c8c3fad0059c0, 0x0bbc3efc5008a26a,
	}}
)

// G1Affine is an element of G1 in the affine coordinate space. Values built
// through the checked constructors are guaranteed to be in the q-order
// subgroup.
type G1Affine struct {
	x, y     Fp
	infinity bool
}

// G1Projective is an element of G1 in homogeneous projective space: the
// affine point is (X/Z, Y/Z) and Z = 0 encodes the identity.
type G1Projective struct {
	x, y, z Fp
}

// G1AffineIdentity returns the point at infinity, canonically (0, 1).
func G1AffineIdentity() G1Affine {
	var p G1Affine
	p.x.SetZero()
	p.y.SetOne()
	p.infinity = true
	return p
}

// G1AffineGenerator returns the fixed group generator from the BLS12-381
// standard.
func G1AffineGenerator() G1Affine {
	return G1Affine{x: g1GeneratorX, y: g1GeneratorY, infinity: false}
}

// IsIdentity returns true if p is the point at infinity.
func (p *G1Affine) IsIdentity() bool {
	return p.infinity
}

// Equal reports point equality: both infinite, or both finite with equal
// coordinates.
func (p *G1Affine) Equal(q *G1Affine) bool {
	if p.infinity || q.infinity {
		return p.infinity == q.infinity
	}
	return p.x.Equal(&q.x) && p.y.Equal(&q.y)
}

// Select sets p to a if flag is 0 and to b if flag is 1, in constant time.
func (p *G1Affine) Select(a, b *G1Affine, flag int) {
	p.x.Select(&a.x, &b.x, flag)
	p.y.Select(&a.y, &b.y, flag)
	af := boolToInt(a.infinity)
	bf := boolToInt(b.infinity)
	p.infinity = (af&^flag)|(bf&flag) == 1
}

// Neg sets p = -a. Negating the identity keeps the canonical (0, 1) form.
func (p *G1Affine) Neg(a *G1Affine) {
	p.x.Set(&a.x)
	var ny, one Fp
	ny.Neg(&a.y)
	one.SetOne()
	p.y.Select(&ny, &one, boolToInt(a.infinity))
	p.infinity = a.infinity
}

// IsOnCurve checks y^2 = x^3 + 4, treating infinity as on-curve.
func (p *G1Affine) IsOnCurve() bool {
	var lhs, rhs Fp
	lhs.Square(&p.y)
	rhs.Square(&p.x)
	rhs.Mul(&rhs, &p.x)
	rhs.Add(&rhs, &g1B)
	return lhs.Equal(&rhs) || p.infinity
}

// FromProjective dehomogenizes a into p with a single field inversion.
func (p *G1Affine) FromProjective(a *G1Projective) {
	var zinv Fp
	if !zinv.Invert(&a.z) {
		zinv.SetZero()
	}

	var x, y Fp
	x.Mul(&a.x, &zinv)
	y.Mul(&a.y, &zinv)

	tmp := G1Affine{x: x, y: y, infinity: false}
	id := G1AffineIdentity()
	p.Select(&tmp, &id, boolToInt(zinv.IsZero()))
}

// endomorphism applies the endomorphism sigma: (x, y) -> (beta*x, y), where
// beta is a nontrivial cube root of unity in Fp.
func (p *G1Affine) endomorphism(a *G1Affine) {
	*p = *a
	p.x.Mul(&p.x, &g1Beta)
}

// IsTorsionFree reports whether p lies in the q-order subgroup, using the
// endomorphism identity sigma(P) = -[x^2] P (eprint 2021/1130).
func (p *G1Affine) IsTorsionFree() bool {
	var proj, t G1Projective
	proj.FromAffine(p)
	t.mulByX(&proj)
	t.mulByX(&t)
	t.Neg(&t)

	var endo G1Affine
	endo.endomorphism(p)
	var endoProj G1Projective
	endoProj.FromAffine(&endo)
	return t.Equal(&endoProj)
}

// MulScalar computes s*p in constant time, returning a projective result.
func (p *G1Affine) MulScalar(r *G1Projective, s *Scalar) {
	var proj G1Projective
	proj.FromAffine(p)
	proj.MulScalar(&proj, s)
	r.Set(&proj)
}

// G1ProjectiveIdentity returns the identity, canonically (0, 1, 0).
func G1ProjectiveIdentity() G1Projective {
	var p G1Projective
	p.x.SetZero()
	p.y.SetOne()
	p.z.SetZero()
	return p
}

// G1ProjectiveGenerator returns the fixed group generator.
func G1ProjectiveGenerator() G1Projective {
	var p G1Projective
	p.x = g1GeneratorX
	p.y = g1GeneratorY
	p.z.SetOne()
	return p
}

// Set copies a into p.
func (p *G1Projective) Set(a *G1Projective) {
	*p = *a
}

// FromAffine lifts a into projective space.
func (p *G1Projective) FromAffine(a *G1Affine) {
	p.x.Set(&a.x)
	p.y.Set(&a.y)
	var one, zero Fp
	one.SetOne()
	p.z.Select(&one, &zero, boolToInt(a.infinity))
}

// IsIdentity returns true if p is the point at infinity.
func (p *G1Projective) IsIdentity() bool {
	return p.z.IsZero()
}

// Equal compares p and q as points: cross-multiplied coordinates agree, or
// both are the identity.
func (p *G1Projective) Equal(q *G1Projective) bool {
	var x1, x2, y1, y2 Fp
	x1.Mul(&p.x, &q.z)
	x2.Mul(&q.x, &p.z)
	y1.Mul(&p.y, &q.z)
	y2.Mul(&q.y, &p.z)

	pz := p.z.IsZero()
	qz := q.z.IsZero()
	if pz || qz {
		return pz == qz
	}
	return x1.Equal(&x2) && y1.Equal(&y2)
}

// Select sets p to a if flag is 0 and to b if flag is 1, in constant time.
func (p *G1Projective) Select(a, b *G1Projective, flag int) {
	p.x.Select(&a.x, &b.x, flag)
	p.y.Select(&a.y, &b.y, flag)
	p.z.Select(&a.z, &b.z, flag)
}

// Neg sets p = -a.
func (p *G1Projective) Neg(a *G1Projective) {
	p.x.Set(&a.x)
	p.y.Neg(&a.y)
	p.z.Set(&a.z)
}

// IsOnCurve checks Y^2 Z = X^3 + b Z^3, treating the identity as on-curve.
func (p *G1Projective) IsOnCurve() bool {
	var lhs, rhs, t Fp
	lhs.Square(&p.y)
	lhs.Mul(&lhs, &p.z)
	rhs.Square(&p.x)
	rhs.Mul(&rhs, &p.x)
	t.Square(&p.z)
	t.Mul(&t, &p.z)
	t.Mul(&t, &g1B)
	rhs.Add(&rhs, &t)
	return lhs.Equal(&rhs) || p.z.IsZero()
}

// g1MulBy3b multiplies by 3*b = 12.
func g1MulBy3b(r, a *Fp) {
	var t Fp
	t.Double(a)  // 2a
	t.Double(&t) // 4a
	r.Add(&t, &t)
	r.Add(r, &t) // 12a
}

// Double sets p = 2a. Algorithm 9 of Renes-Costello-Batina 2015, complete
// for a = 0 short Weierstrass curves.
func (p *G1Projective) Double(a *G1Projective) {
	var t0, t1, t2, x3, y3, z3 Fp

	t0.Square(&a.y)
	z3.Double(&t0)
	z3.Double(&z3)
	z3.Double(&z3)
	t1.Mul(&a.y, &a.z)
	t2.Square(&a.z)
	g1MulBy3b(&t2, &t2)
	x3.Mul(&t2, &z3)
	y3.Add(&t0, &t2)
	z3.Mul(&t1, &z3)
	t1.Double(&t2)
	t2.Add(&t1, &t2)
	t0.Sub(&t0, &t2)
	y3.Mul(&t0, &y3)
	y3.Add(&x3, &y3)
	t1.Mul(&a.x, &a.y)
	x3.Mul(&t0, &t1)
	x3.Double(&x3)

	tmp := G1Projective{x: x3, y: y3, z: z3}
	id := G1ProjectiveIdentity()
	p.Select(&tmp, &id, boolToInt(a.IsIdentity()))
}

// Add sets p = a + b. Algorithm 7 of Renes-Costello-Batina 2015, complete:
// no special cases for doubling or the identity.
func (p *G1Projective) Add(a, b *G1Projective) {
	var t0, t1, t2, t3, t4, x3, y3, z3 Fp

	t0.Mul(&a.x, &b.x)
	t1.Mul(&a.y, &b.y)
	t2.Mul(&a.z, &b.z)
	t3.Add(&a.x, &a.y)
	t4.Add(&b.x, &b.y)
	t3.Mul(&t3, &t4)
	t4.Add(&t0, &t1)
	t3.Sub(&t3, &t4)
	t4.Add(&a.y, &a.z)
	x3.Add(&b.y, &b.z)
	t4.Mul(&t4, &x3)
	x3.Add(&t1, &t2)
	t4.Sub(&t4, &x3)
	x3.Add(&a.x, &a.z)
	y3.Add(&b.x, &b.z)
	x3.Mul(&x3, &y3)
	y3.Add(&t0, &t2)
	y3.Sub(&x3, &y3)
	x3.Double(&t0)
	t0.Add(&x3, &t0)
	g1MulBy3b(&t2, &t2)
	z3.Add(&t1, &t2)
	t1.Sub(&t1, &t2)
	g1MulBy3b(&y3, &y3)
	x3.Mul(&t4, &y3)
	t2.Mul(&t3, &t1)
	x3.Sub(&t2, &x3)
	y3.Mul(&y3, &t0)
	t1.Mul(&t1, &z3)
	y3.Add(&t1, &y3)
	t0.Mul(&t0, &t3)
	z3.Mul(&z3, &t4)
	z3.Add(&z3, &t0)

	p.x = x3
	p.y = y3
	p.z = z3
}

// AddMixed sets p = a + b for affine b. Algorithm 8 of
// Renes-Costello-Batina 2015; the identity fallback for b is realized by a
// conditional select against the unchanged accumulator.
func (p *G1Projective) AddMixed(a *G1Projective, b *G1Affine) {
	var t0, t1, t2, t3, t4, x3, y3, z3 Fp

	t0.Mul(&a.x, &b.x)
	t1.Mul(&a.y, &b.y)
	t3.Add(&b.x, &b.y)
	t4.Add(&a.x, &a.y)
	t3.Mul(&t3, &t4)
	t4.Add(&t0, &t1)
	t3.Sub(&t3, &t4)
	t4.Mul(&b.y, &a.z)
	t4.Add(&t4, &a.y)
	y3.Mul(&b.x, &a.z)
	y3.Add(&y3, &a.x)
	x3.Double(&t0)
	t0.Add(&x3, &t0)
	g1MulBy3b(&t2, &a.z)
	z3.Add(&t1, &t2)
	t1.Sub(&t1, &t2)
	g1MulBy3b(&y3, &y3)
	x3.Mul(&t4, &y3)
	t2.Mul(&t3, &t1)
	x3.Sub(&t2, &x3)
	y3.Mul(&y3, &t0)
	t1.Mul(&t1, &z3)
	y3.Add(&t1, &y3)
	t0.Mul(&t0, &t3)
	z3.Mul(&z3, &t4)
	z3.Add(&z3, &t0)

	tmp := G1Projective{x: x3, y: y3, z: z3}
	p.Select(&tmp, a, boolToInt(b.IsIdentity()))
}

// mulBytes is the shared double-and-add ladder over a scalar's canonical
// 32-byte little-endian encoding. The leading bit of the top byte is always
// clear for canonical scalars and is skipped; every other bit costs a
// doubling and a conditional addition.
func (p *G1Projective) mulBytes(a *G1Projective, by *[32]byte) {
	acc := G1ProjectiveIdentity()
	first := true
	for i := 31; i >= 0; i-- {
		for bit := 7; bit >= 0; bit-- {
			if first {
				first = false
				continue
			}
			acc.Double(&acc)
			var sum G1Projective
			sum.Add(&acc, a)
			acc.Select(&acc, &sum, int(by[i]>>uint(bit))&1)
		}
	}
	p.Set(&acc)
}

// MulScalar sets p = s*a in constant time.
func (p *G1Projective) MulScalar(a *G1Projective, s *Scalar) {
	by := s.Bytes()
	p.mulBytes(a, &by)
}

// mulByX multiplies by the (absolute value of the) curve parameter x and
// negates, i.e. computes [x]a with x negative. The low bit of |x| is zero,
// so the first doubling happens before any addition.
func (p *G1Projective) mulByX(a *G1Projective) {
	xself := G1ProjectiveIdentity()
	x := blsX >> 1
	tmp := *a
	for x != 0 {
		tmp.Double(&tmp)
		if x&1 == 1 {
			xself.Add(&xself, &tmp)
		}
		x >>= 1
	}
	if blsXIsNegative {
		xself.Neg(&xself)
	}
	p.Set(&xself)
}

// ClearCofactor maps p into the q-order subgroup by computing p - [x]p,
// multiplication by the cofactor 1 - x.
func (p *G1Projective) ClearCofactor(a *G1Projective) {
	var t G1Projective
	t.mulByX(a)
	p.Sub(a, &t)
}

// Sub sets p = a - b.
func (p *G1Projective) Sub(a, b *G1Projective) {
	var nb G1Projective
	nb.Neg(b)
	p.Add(a, &nb)
}

// G1BatchNormalize converts a slice of projective points to affine with a
// single field inversion, Montgomery's trick: a prefix-product pass, one
// inverse, then a reverse pass unwinding each 1/Z. Identity inputs are
// skipped in both passes and come out as the affine identity.
func G1BatchNormalize(p []G1Projective, q []G1Affine) {
	if len(p) != len(q) {
		panic("batch normalize requires equal-length slices")
	}

	var acc Fp
	acc.SetOne()
	for i := range p {
		// Stash the running product in the output x slot.
		q[i].x.Set(&acc)
		var next Fp
		next.Mul(&acc, &p[i].z)
		acc.Select(&next, &acc, boolToInt(p[i].IsIdentity()))
	}

	acc.Invert(&acc)

	for i := len(p) - 1; i >= 0; i-- {
		skip := boolToInt(p[i].IsIdentity())

		var tmp, next Fp
		tmp.Mul(&q[i].x, &acc)
		next.Mul(&acc, &p[i].z)
		acc.Select(&next, &acc, skip)

		var out G1Affine
		out.x.Mul(&p[i].x, &tmp)
		out.y.Mul(&p[i].y, &tmp)
		out.infinity = false

		id := G1AffineIdentity()
		q[i].Select(&out, &id, skip)
	}
}

// Bytes returns the 48-byte compressed encoding: big-endian x with the
// compression flag, the infinity flag, and the y sort flag in the three top
// bits.
func (p *G1Affine) Bytes() [48]byte {
	var x Fp
	x.Select(&p.x, &Fp{}, boolToInt(p.infinity))
	out := x.Bytes()

	out[0] |= 0x80 // compression flag
	if p.infinity {
		out[0] |= 0x40
	} else if p.y.LexicographicallyLargest() {
		out[0] |= 0x20
	}
	return out
}

// BytesUncompressed returns the 96-byte uncompressed encoding x || y.
func (p *G1Affine) BytesUncompressed() [96]byte {
	var x, y Fp
	inf := boolToInt(p.infinity)
	x.Select(&p.x, &Fp{}, inf)
	y.Select(&p.y, &Fp{}, inf)

	var out [96]byte
	xb := x.Bytes()
	yb := y.Bytes()
	copy(out[0:48], xb[:])
	copy(out[48:96], yb[:])
	if p.infinity {
		out[0] |= 0x40
	}
	return out
}

// SetBytesUnchecked decodes a compressed encoding, verifying canonical field
// encoding and flag consistency and that the point is on the curve, but not
// subgroup membership.
func (p *G1Affine) SetBytesUnchecked(in []byte) bool {
	if len(in) != 48 {
		panic("compressed G1 encoding must be 48 bytes")
	}

	compression := in[0]&0x80 != 0
	infinity := in[0]&0x40 != 0
	sort := in[0]&0x20 != 0
	if !compression {
		return false
	}

	var xbytes [48]byte
	copy(xbytes[:], in)
	xbytes[0] &= 0x1f

	var x Fp
	if !x.SetBytes(xbytes[:]) {
		return false
	}

	if infinity {
		// Infinity must carry a zero x and no sort flag.
		if !x.IsZero() || sort {
			return false
		}
		*p = G1AffineIdentity()
		return true
	}

	// Recover y from the curve equation and pick the root matching the sort
	// flag.
	var y Fp
	y.Square(&x)
	y.Mul(&y, &x)
	y.Add(&y, &g1B)
	if !y.Sqrt(&y) {
		return false
	}

	var ny Fp
	ny.Neg(&y)
	y.Select(&y, &ny, boolToInt(y.LexicographicallyLargest() != sort))

	p.x = x
	p.y = y
	p.infinity = false
	return true
}

// SetBytes decodes a compressed encoding and additionally checks subgroup
// membership.
func (p *G1Affine) SetBytes(in []byte) bool {
	var tmp G1Affine
	if !tmp.SetBytesUnchecked(in) {
		return false
	}
	if !tmp.IsTorsionFree() {
		return false
	}
	*p = tmp
	return true
}

// SetBytesUncompressedUnchecked decodes an uncompressed encoding, checking
// canonical field encodings and the curve equation but not subgroup
// membership.
func (p *G1Affine) SetBytesUncompressedUnchecked(in []byte) bool {
	if len(in) != 96 {
		panic("uncompressed G1 encoding must be 96 bytes")
	}

	compression := in[0]&0x80 != 0
	infinity := in[0]&0x40 != 0
	sort := in[0]&0x20 != 0
	if compression || sort {
		return false
	}

	var xbytes [48]byte
	copy(xbytes[:], in[0:48])
	xbytes[0] &= 0x1f

	var x, y Fp
	if !x.SetBytes(xbytes[:]) {
		return false
	}
	if !y.SetBytes(in[48:96]) {
		return false
	}

	if infinity {
		if !x.IsZero() || !y.IsZero() {
			return false
		}
		*p = G1AffineIdentity()
		return true
	}

	tmp := G1Affine{x: x, y: y, infinity: false}
	if !tmp.IsOnCurve() {
		return false
	}
	*p = tmp
	return true
}

// SetBytesUncompressed decodes an uncompressed encoding with the subgroup
// check.
func (p *G1Affine) SetBytesUncompressed(in []byte) bool {
	var tmp G1Affine
	if !tmp.SetBytesUncompressedUnchecked(in) {
		return false
	}
	if !tmp.IsTorsionFree() {
		return false
	}
	*p = tmp
	return true
}
