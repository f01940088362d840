package bls12381

// g2B is the curve constant b' = 4(u + 1) of the twist y^2 = x^3 + 4(u + 1).
var g2B = Fp2{
	c0: Fp{l: [6]uint64{
		0xaa270000000cfff3, 0x53cc0032fc34000a, 0x478fe97a6b0a807f,
		0xb1d37ebee6ba24d7, 0x8ec9733bbf78ab2f, 0x09d645513d83de7e,
	}},
	c1: Fp{l: [6]uint64{
		0xaa270000000cfff3, 0x53cc0032fc34000a, 0x478fe97a6b0a807f,
		0xb1d37ebee6ba24d7, 0x8ec9733bbf78ab2f, 0x09d645513d83de7e,
	}},
}

// g2B3 is 3 * b' = 12(u + 1).
var g2B3 = Fp2{
	c0: Fp{l: [6]uint64{
		0x447600000027552e, 0xdcb8009a43480020, 0x6f7ee9ce4a6e8b59,
		0xb10330b7c0a95bc6, 0x6140b1fcfb1e54b7, 0x0381be097f0bb4e1,
	}},
	c1: Fp{l: [6]uint64{
		0x447600000027552e, 0xdcb8009a43480020, 0x6f7ee9ce4a6e8b59,
		0xb10330b7c0a95bc6, 0x6140b1fcfb1e54b7, 0x0381be097f0bb4e1,
	}},
}

var (
	g2GeneratorX = Fp2{
		c0: Fp{l: [6]uint64{
			0xf5f28fa202940a10, 0xb3f5fb2687b4961a, 0xa1a893b53e2ae580,
			0x9894999d1a3caee9, 0x6f67b7631863366b, 0x058191924350bcd7,
		}},
		c1: Fp{l: [6]uint64{
			0xa5a9c0759e23f606, 0xaaa0c59dbccd60c3, 0x3bb17e18e2867806,
			0x1b1ab6cc8541b367, 0xc2b6ed0ef2158547, 0x11922a097360edf3,
		}},
	}
	g2GeneratorY = Fp2{
		c0: Fp{l: [6]uint64{
			0x4c730af860494c4a, 0x597cfa1f5e369c5a, 0xe7e6856caa0a635a,
			0xbbefb5e96e0d495f, 0x07d3a975f0ef25a2, 0x0083fd8e7e80dae5,
		}},
		c1: Fp{l: [6]uint64{
			0xadc0fc92df64b05d, 0x18aa270a2b1461dc, 0x86adac6a3be4eba0,
			0x79495c4ec93da33a, 0xe7175850a43ccaed, 0x0b2bc2a163de1bf2,
		}},
	}
)

// psi coefficients: x is scaled by 1/(u+1)^((p-1)/3), y by 1/(u+1)^((p-1)/2)
// after the coordinate-wise Frobenius.
var (
	g2PsiCoeffX = Fp2{
		c0: Fp{},
		c1: Fp{l: [6]uint64{
			0x890dc9e4867545c3, 0x2af322533285a5d5, 0x50880866309b7e2c,
			0xa20d1b8c7e881024, 0x14e4f04fe2db9068, 0x14e56d3f1564853a,
		}},
	}
	g2PsiCoeffY = Fp2{
		c0: Fp{l: [6]uint64{
			0x3e2f585da55c9ad1, 0x4294213d86c18183, 0x382844c88b623732,
			0x92ad2afd19103e18, 0x1d794e4fac7cf0b9, 0x0bd592fc7d825ec8,
		}},
		c1: Fp{l: [6]uint64{
			0x7bcfa7a25aa30fda, 0xdc17dec12a927e7c, 0x2f088dd86b4ebef1,
			0xd1ca2087da74d4a7, 0x2da2596696cebc1d, 0x0e2b7eedbbfd87d2,
		}},
	}

	// psi^2 only needs an Fp scale on x: (1/(u+1)^((p-1)/3))^(p+1), which
	// lands in the base field (it is the square of the G1 cube root of
	// unity).
	g2Psi2CoeffX = Fp{l: [6]uint64{
		0xcd03c9e48671f071, 0x5dab22461fcda5d2, 0x587042afd3851b95,
		0x8eb60ebe01bacb9e, 0x03f97d6e83d050d2, 0x18f0206554638741,
	}}
)

// G2Affine is an element of G2 in the affine coordinate space. Values built
// through the checked constructors are guaranteed to be in the q-order
// subgroup.
type G2Affine struct {
	x, y     Fp2
	infinity bool
}

// G2Projective is an element of G2 in homogeneous projective space.
type G2Projective struct {
	x, y, z Fp2
}

// G2AffineIdentity returns the point at infinity, canonically (0, 1).
func G2AffineIdentity() G2Affine {
	var p G2Affine
	p.x.SetZero()
	p.y.SetOne()
	p.infinity = true
	return p
}

// G2AffineGenerator returns the fixed group generator from the BLS12-381
// standard.
func G2AffineGenerator() G2Affine {
	return G2Affine{x: g2GeneratorX, y: g2GeneratorY, infinity: false}
}

// IsIdentity returns true if p is the point at infinity.
func (p *G2Affine) IsIdentity() bool {
	return p.infinity
}

// Equal reports point equality.
func (p *G2Affine) Equal(q *G2Affine) bool {
	if p.infinity || q.infinity {
		return p.infinity == q.infinity
	}
	return p.x.Equal(&q.x) && p.y.Equal(&q.y)
}

// Select sets p to a if flag is 0 and to b if flag is 1, in constant time.
func (p *G2Affine) Select(a, b *G2Affine, flag int) {
	p.x.Select(&a.x, &b.x, flag)
	p.y.Select(&a.y, &b.y, flag)
	af := boolToInt(a.infinity)
	bf := boolToInt(b.infinity)
	p.infinity = (af&^flag)|(bf&flag) == 1
}

// Neg sets p = -a.
func (p *G2Affine) Neg(a *G2Affine) {
	p.x.Set(&a.x)
	var ny, one Fp2
	ny.Neg(&a.y)
	one.SetOne()
	p.y.Select(&ny, &one, boolToInt(a.infinity))
	p.infinity = a.infinity
}

// IsOnCurve checks y^2 = x^3 + 4(u+1), treating infinity as on-curve.
func (p *G2Affine) IsOnCurve() bool {
	var lhs, rhs Fp2
	lhs.Square(&p.y)
	rhs.Square(&p.x)
	rhs.Mul(&rhs, &p.x)
	rhs.Add(&rhs, &g2B)
	return lhs.Equal(&rhs) || p.infinity
}

// FromProjective dehomogenizes a into p with a single field inversion.
func (p *G2Affine) FromProjective(a *G2Projective) {
	var zinv Fp2
	if !zinv.Invert(&a.z) {
		zinv.SetZero()
	}

	var x, y Fp2
	x.Mul(&a.x, &zinv)
	y.Mul(&a.y, &zinv)

	tmp := G2Affine{x: x, y: y, infinity: false}
	id := G2AffineIdentity()
	p.Select(&tmp, &id, boolToInt(zinv.IsZero()))
}

// IsTorsionFree reports whether p lies in the q-order subgroup, checking
// psi(P) = [x] P (eprint 2021/1130, section 4).
func (p *G2Affine) IsTorsionFree() bool {
	var proj, lhs, rhs G2Projective
	proj.FromAffine(p)
	lhs.psi(&proj)
	rhs.mulByX(&proj)
	return lhs.Equal(&rhs)
}

// MulScalar computes s*p in constant time, returning a projective result.
func (p *G2Affine) MulScalar(r *G2Projective, s *Scalar) {
	var proj G2Projective
	proj.FromAffine(p)
	proj.MulScalar(&proj, s)
	r.Set(&proj)
}

// G2ProjectiveIdentity returns the identity, canonically (0, 1, 0).
func G2ProjectiveIdentity() G2Projective {
	var p G2Projective
	p.x.SetZero()
	p.y.SetOne()
	p.z.SetZero()
	return p
}

// G2ProjectiveGenerator returns the fixed group generator.
func G2ProjectiveGenerator() G2Projective {
	var p G2Projective
	p.x = g2GeneratorX
	p.y = g2GeneratorY
	p.z.SetOne()
	return p
}

// Set copies a into p.
func (p *G2Projective) Set(a *G2Projective) {
	*p = *a
}

// FromAffine lifts a into projective space.
func (p *G2Projective) FromAffine(a *G2Affine) {
	p.x.Set(&a.x)
	p.y.Set(&a.y)
	var one, zero Fp2
	one.SetOne()
	p.z.Select(&one, &zero, boolToInt(a.infinity))
}

// IsIdentity returns true if p is the point at infinity.
func (p *G2Projective) IsIdentity() bool {
	return p.z.IsZero()
}

// Equal compares p and q as points via cross multiplication.
func (p *G2Projective) Equal(q *G2Projective) bool {
	var x1, x2, y1, y2 Fp2
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
func (p *G2Projective) Select(a, b *G2Projective, flag int) {
	p.x.Select(&a.x, &b.x, flag)
	p.y.Select(&a.y, &b.y, flag)
	p.z.Select(&a.z, &b.z, flag)
}

// Neg sets p = -a.
func (p *G2Projective) Neg(a *G2Projective) {
	p.x.Set(&a.x)
	p.y.Neg(&a.y)
	p.z.Set(&a.z)
}

// IsOnCurve checks Y^2 Z = X^3 + b' Z^3, treating the identity as on-curve.
func (p *G2Projective) IsOnCurve() bool {
	var lhs, rhs, t Fp2
	lhs.Square(&p.y)
	lhs.Mul(&lhs, &p.z)
	rhs.Square(&p.x)
	rhs.Mul(&rhs, &p.x)
	t.Square(&p.z)
	t.Mul(&t, &p.z)
	t.Mul(&t, &g2B)
	rhs.Add(&rhs, &t)
	return lhs.Equal(&rhs) || p.z.IsZero()
}

// g2MulBy3b multiplies by 3 * b' = 12(u + 1).
func g2MulBy3b(r, a *Fp2) {
	r.Mul(a, &g2B3)
}

// Double sets p = 2a. Algorithm 9 of Renes-Costello-Batina 2015.
func (p *G2Projective) Double(a *G2Projective) {
	var t0, t1, t2, x3, y3, z3 Fp2

	t0.Square(&a.y)
	z3.Double(&t0)
	z3.Double(&z3)
	z3.Double(&z3)
	t1.Mul(&a.y, &a.z)
	t2.Square(&a.z)
	g2MulBy3b(&t2, &t2)
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

	tmp := G2Projective{x: x3, y: y3, z: z3}
	id := G2ProjectiveIdentity()
	p.Select(&tmp, &id, boolToInt(a.IsIdentity()))
}

// Add sets p = a + b. Algorithm 7 of Renes-Costello-Batina 2015, complete.
func (p *G2Projective) Add(a, b *G2Projective) {
	var t0, t1, t2, t3, t4, x3, y3, z3 Fp2

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
	g2MulBy3b(&t2, &t2)
	z3.Add(&t1, &t2)
	t1.Sub(&t1, &t2)
	g2MulBy3b(&y3, &y3)
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
// Renes-Costello-Batina 2015 with the select-based identity fallback.
func (p *G2Projective) AddMixed(a *G2Projective, b *G2Affine) {
	var t0, t1, t2, t3, t4, x3, y3, z3 Fp2

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
	g2MulBy3b(&t2, &a.z)
	z3.Add(&t1, &t2)
	t1.Sub(&t1, &t2)
	g2MulBy3b(&y3, &y3)
	x3.Mul(&t4, &y3)
	t2.Mul(&t3, &t1)
	x3.Sub(&t2, &x3)
	y3.Mul(&y3, &t0)
	t1.Mul(&t1, &z3)
	y3.Add(&t1, &y3)
	t0.Mul(&t0, &t3)
	z3.Mul(&z3, &t4)
	z3.Add(&z3, &t0)

	tmp := G2Projective{x: x3, y: y3, z: z3}
	p.Select(&tmp, a, boolToInt(b.IsIdentity()))
}

// mulBytes is the double-and-add ladder over the canonical 32-byte
// little-endian scalar encoding, skipping the always-clear leading bit.
func (p *G2Projective) mulBytes(a *G2Projective, by *[32]byte) {
	acc := G2ProjectiveIdentity()
	first := true
	for i := 31; i >= 0; i-- {
		for bit := 7; bit >= 0; bit-- {
			if first {
				first = false
				continue
			}
			acc.Double(&acc)
			var sum G2Projective
			sum.Add(&acc, a)
			acc.Select(&acc, &sum, int(by[i]>>uint(bit))&1)
		}
	}
	p.Set(&acc)
}

// MulScalar sets p = s*a in constant time.
func (p *G2Projective) MulScalar(a *G2Projective, s *Scalar) {
	by := s.Bytes()
	p.mulBytes(a, &by)
}

// mulByX computes [x]a for the negative curve parameter x.
func (p *G2Projective) mulByX(a *G2Projective) {
	xself := G2ProjectiveIdentity()
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

// psi applies the untwist-Frobenius-twist endomorphism: coordinate-wise
// Frobenius, then the fixed Fp2 scales on X and Y.
func (p *G2Projective) psi(a *G2Projective) {
	var x, y, z Fp2
	x.FrobeniusMap(&a.x)
	x.Mul(&x, &g2PsiCoeffX)
	y.FrobeniusMap(&a.y)
	y.Mul(&y, &g2PsiCoeffY)
	z.FrobeniusMap(&a.z)
	p.x = x
	p.y = y
	p.z = z
}

// psi2 applies psi twice, which collapses to a base field scale on X and a
// negation of Y.
func (p *G2Projective) psi2(a *G2Projective) {
	p.x.MulByFp(&a.x, &g2Psi2CoeffX)
	p.y.Neg(&a.y)
	p.z.Set(&a.z)
}

// Sub sets p = a - b.
func (p *G2Projective) Sub(a, b *G2Projective) {
	var nb G2Projective
	nb.Neg(b)
	p.Add(a, &nb)
}

// ClearCofactor maps p into the q-order subgroup via the
// Budroni-Pintore composition:
//
//	[x^2 - x - 1] P + [x - 1] psi(P) + psi^2(2P)
func (p *G2Projective) ClearCofactor(a *G2Projective) {
	var t1, t2, t3, acc G2Projective
	t1.mulByX(a)  // [x] P
	t2.psi(a)     // psi(P)
	t3.Double(a)  // 2P
	t3.psi2(&t3)  // psi^2(2P)

	acc.Add(&t1, &t2)
	acc.mulByX(&acc) // [x^2] P + [x] psi(P)
	acc.Add(&acc, &t3)
	acc.Sub(&acc, &t1)
	acc.Sub(&acc, &t2)
	acc.Sub(&acc, a)
	p.Set(&acc)
}

// G2BatchNormalize converts a slice of projective points to affine with a
// single field inversion, skipping identities.
func G2BatchNormalize(p []G2Projective, q []G2Affine) {
	if len(p) != len(q) {
		panic("batch normalize requires equal-length slices")
	}

	var acc Fp2
	acc.SetOne()
	for i := range p {
		q[i].x.Set(&acc)
		var next Fp2
		next.Mul(&acc, &p[i].z)
		acc.Select(&next, &acc, boolToInt(p[i].IsIdentity()))
	}

	acc.Invert(&acc)

	for i := len(p) - 1; i >= 0; i-- {
		skip := boolToInt(p[i].IsIdentity())

		var tmp, next Fp2
		tmp.Mul(&q[i].x, &acc)
		next.Mul(&acc, &p[i].z)
		acc.Select(&next, &acc, skip)

		var out G2Affine
		out.x.Mul(&p[i].x, &tmp)
		out.y.Mul(&p[i].y, &tmp)
		out.infinity = false

		id := G2AffineIdentity()
		q[i].Select(&out, &id, skip)
	}
}

// Bytes returns the 96-byte compressed encoding: big-endian x.c1 || x.c0
// with the flag bits in the leading byte.
func (p *G2Affine) Bytes() [96]byte {
	var x Fp2
	x.Select(&p.x, &Fp2{}, boolToInt(p.infinity))

	var out [96]byte
	c1 := x.c1.Bytes()
	c0 := x.c0.Bytes()
	copy(out[0:48], c1[:])
	copy(out[48:96], c0[:])

	out[0] |= 0x80
	if p.infinity {
		out[0] |= 0x40
	} else if p.y.LexicographicallyLargest() {
		out[0] |= 0x20
	}
	return out
}

// BytesUncompressed returns the 192-byte uncompressed encoding
// x.c1 || x.c0 || y.c1 || y.c0.
func (p *G2Affine) BytesUncompressed() [192]byte {
	var x, y Fp2
	inf := boolToInt(p.infinity)
	x.Select(&p.x, &Fp2{}, inf)
	y.Select(&p.y, &Fp2{}, inf)

	var out [192]byte
	xc1 := x.c1.Bytes()
	xc0 := x.c0.Bytes()
	yc1 := y.c1.Bytes()
	yc0 := y.c0.Bytes()
	copy(out[0:48], xc1[:])
	copy(out[48:96], xc0[:])
	copy(out[96:144], yc1[:])
	copy(out[144:192], yc0[:])
	if p.infinity {
		out[0] |= 0x40
	}
	return out
}

// SetBytesUnchecked decodes a compressed encoding without the subgroup
// check.
func (p *G2Affine) SetBytesUnchecked(in []byte) bool {
	if len(in) != 96 {
		panic("compressed G2 encoding must be 96 bytes")
	}

	compression := in[0]&0x80 != 0
	infinity := in[0]&0x40 != 0
	sort := in[0]&0x20 != 0
	if !compression {
		return false
	}

	var c1bytes [48]byte
	copy(c1bytes[:], in[0:48])
	c1bytes[0] &= 0x1f

	var x Fp2
	if !x.c1.SetBytes(c1bytes[:]) {
		return false
	}
	if !x.c0.SetBytes(in[48:96]) {
		return false
	}

	if infinity {
		if !x.IsZero() || sort {
			return false
		}
		*p = G2AffineIdentity()
		return true
	}

	var y Fp2
	y.Square(&x)
	y.Mul(&y, &x)
	y.Add(&y, &g2B)
	if !y.Sqrt(&y) {
		return false
	}

	var ny Fp2
	ny.Neg(&y)
	y.Select(&y, &ny, boolToInt(y.LexicographicallyLargest() != sort))

	p.x = x
	p.y = y
	p.infinity = false
	return true
}

// SetBytes decodes a compressed encoding and checks subgroup membership.
func (p *G2Affine) SetBytes(in []byte) bool {
	var tmp G2Affine
	if !tmp.SetBytesUnchecked(in) {
		return false
	}
	if !tmp.IsTorsionFree() {
		return false
	}
	*p = tmp
	return true
}

// SetBytesUncompressedUnchecked decodes an uncompressed encoding without the
// subgroup check.
func (p *G2Affine) SetBytesUncompressedUnchecked(in []byte) bool {
	if len(in) != 192 {
		panic("uncompressed G2 encoding must be 192 bytes")
	}

	compression := in[0]&0x80 != 0
	infinity := in[0]&0x40 != 0
	sort := in[0]&0x20 != 0
	if compression || sort {
		return false
	}

	var c1bytes [48]byte
	copy(c1bytes[:], in[0:48])
	c1bytes[0] &= 0x1f

	var x, y Fp2
	if !x.c1.SetBytes(c1bytes[:]) {
		return false
	}
	if !x.c0.SetBytes(in[48:96]) {
		return false
	}
	if !y.c1.SetBytes(in[96:144]) {
		return false
	}
	if !y.c0.SetBytes(in[144:192]) {
		return false
	}

	if infinity {
		if !x.IsZero() || !y.IsZero() {
			return false
		}
		*p = G2AffineIdentity()
		return true
	}

	tmp := G2Affine{x: x, y: y, infinity: false}
	if !tmp.IsOnCurve() {
		return false
	}
	*p = tmp
	return true
}

// SetBytesUncompressed decodes an uncompressed encoding with the subgroup
// check.
func (p *G2Affine) SetBytesUncompressed(in []byte) bool {
	var tmp G2Affine
	if !tmp.SetBytesUncompressedUnchecked(in) {
		return false
	}
	if !tmp.IsTorsionFree() {
		return false
	}
	*p = tmp
	return true
}
