package bls12381

import (
	"testing"
)

func randomG2(t *testing.T) G2Projective {
	t.Helper()
	s := randomScalar(t)
	gen := G2ProjectiveGenerator()
	var p G2Projective
	p.MulScalar(&gen, &s)
	return p
}

func TestG2Basics(t *testing.T) {
	id := G2AffineIdentity()
	if !id.IsIdentity() || !id.IsOnCurve() {
		t.Error("identity should be the identity and on-curve")
	}

	gen := G2AffineGenerator()
	if gen.IsIdentity() || !gen.IsOnCurve() {
		t.Error("generator should be a finite curve point")
	}
	if !gen.IsTorsionFree() {
		t.Error("generator should be in the prime-order subgroup")
	}
}

func TestG2DoubleMatchesAddSelf(t *testing.T) {
	p := randomG2(t)

	var d, s G2Projective
	d.Double(&p)
	s.Add(&p, &p)
	if !d.Equal(&s) {
		t.Error("doubling should equal adding a point to itself")
	}
	if !d.IsOnCurve() {
		t.Error("doubling should stay on the curve")
	}
}

func TestG2AddProperties(t *testing.T) {
	a := randomG2(t)
	b := randomG2(t)
	c := randomG2(t)
	id := G2ProjectiveIdentity()

	var l, r, t1 G2Projective

	l.Add(&a, &b)
	r.Add(&b, &a)
	if !l.Equal(&r) {
		t.Error("addition should commute")
	}

	t1.Add(&a, &b)
	l.Add(&t1, &c)
	t1.Add(&b, &c)
	r.Add(&a, &t1)
	if !l.Equal(&r) {
		t.Error("addition should associate")
	}

	l.Add(&a, &id)
	if !l.Equal(&a) {
		t.Error("the identity should be neutral")
	}

	var na G2Projective
	na.Neg(&a)
	l.Add(&a, &na)
	if !l.IsIdentity() {
		t.Error("a + (-a) should be the identity")
	}
}

func TestG2MixedAdd(t *testing.T) {
	a := randomG2(t)
	b := randomG2(t)

	var baff G2Affine
	baff.FromProjective(&b)

	var want, got G2Projective
	want.Add(&a, &b)
	got.AddMixed(&a, &baff)
	if !got.Equal(&want) {
		t.Error("mixed addition disagrees with projective addition")
	}

	id := G2AffineIdentity()
	got.AddMixed(&a, &id)
	if !got.Equal(&a) {
		t.Error("mixed addition of the identity should be a no-op")
	}
}

func TestG2ScalarMulConsistency(t *testing.T) {
	a := randomScalar(t)
	b := randomScalar(t)
	var ab Scalar
	ab.Mul(&a, &b)

	gen := G2ProjectiveGenerator()
	var ga, gab1, gab2 G2Projective
	ga.MulScalar(&gen, &a)
	gab1.MulScalar(&ga, &b)
	gab2.MulScalar(&gen, &ab)
	if !gab1.Equal(&gab2) {
		t.Error("(g*a)*b should equal g*(a*b)")
	}
}

func TestG2Psi(t *testing.T) {
	// on subgroup points psi acts as multiplication by x
	p := randomG2(t)

	var lhs, rhs G2Projective
	lhs.psi(&p)
	rhs.mulByX(&p)
	if !lhs.Equal(&rhs) {
		t.Error("psi should act as multiplication by x on the subgroup")
	}

	// psi2 = psi o psi
	var a, b G2Projective
	a.psi(&p)
	a.psi(&a)
	b.psi2(&p)
	if !a.Equal(&b) {
		t.Error("psi applied twice should equal psi2")
	}
}

func TestG2MulByX(t *testing.T) {
	p := randomG2(t)

	var got G2Projective
	got.mulByX(&p)

	var x Scalar
	x.FromRaw([4]uint64{blsX, 0, 0, 0})
	x.Neg(&x)
	var want G2Projective
	want.MulScalar(&p, &x)
	if !got.Equal(&want) {
		t.Error("mul_by_x disagrees with scalar multiplication")
	}
}

func TestG2ClearCofactor(t *testing.T) {
	// on a subgroup point the psi composition acts as a fixed scalar
	p := randomG2(t)

	var got G2Projective
	got.ClearCofactor(&p)

	var h Scalar
	h.FromRaw([4]uint64{
		0xa40200040001ffff, 0xb116900400069009, 0x0000000000000002, 0,
	})
	var want G2Projective
	want.MulScalar(&p, &h)
	if !got.Equal(&want) {
		t.Error("cofactor clearing disagrees with its effective scalar")
	}

	var aff G2Affine
	aff.FromProjective(&got)
	if !aff.IsTorsionFree() {
		t.Error("cleared point should be torsion free")
	}
}

func TestG2BatchNormalize(t *testing.T) {
	points := make([]G2Projective, 4)
	points[0] = randomG2(t)
	points[1] = G2ProjectiveIdentity()
	points[2] = randomG2(t)
	points[3] = randomG2(t)

	batch := make([]G2Affine, len(points))
	G2BatchNormalize(points, batch)

	for i := range points {
		var single G2Affine
		single.FromProjective(&points[i])
		if !batch[i].Equal(&single) {
			t.Errorf("batch entry %d disagrees with individual normalization", i)
		}
	}
}

func TestG2CompressedRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		point func(t *testing.T) G2Affine
	}{
		{"identity", func(t *testing.T) G2Affine { return G2AffineIdentity() }},
		{"generator", func(t *testing.T) G2Affine { return G2AffineGenerator() }},
		{"random", func(t *testing.T) G2Affine {
			p := randomG2(t)
			var aff G2Affine
			aff.FromProjective(&p)
			return aff
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.point(t)

			enc := p.Bytes()
			var dec G2Affine
			if !dec.SetBytes(enc[:]) {
				t.Fatal("compressed encoding should decode")
			}
			if !dec.Equal(&p) {
				t.Error("compressed round trip mismatch")
			}

			unc := p.BytesUncompressed()
			if !dec.SetBytesUncompressed(unc[:]) {
				t.Fatal("uncompressed encoding should decode")
			}
			if !dec.Equal(&p) {
				t.Error("uncompressed round trip mismatch")
			}
		})
	}
}

func TestG2DecodingRejectsBadFlags(t *testing.T) {
	gen := G2AffineGenerator()
	enc := gen.Bytes()

	var p G2Affine

	bad := enc
	bad[0] &^= 0x80
	if p.SetBytesUnchecked(bad[:]) {
		t.Error("encoding without the compression flag should be rejected")
	}

	bad = enc
	bad[0] |= 0x40
	if p.SetBytesUnchecked(bad[:]) {
		t.Error("infinity flag over a nonzero x should be rejected")
	}
}
