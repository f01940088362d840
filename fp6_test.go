package bls12381

import (
	"crypto/rand"
	"testing"
)

// mulFp6Schoolbook is the reference multiplication built from Fp2 products,
// used to pin the interleaved sum-of-products implementation.
func mulFp6Schoolbook(a, b *Fp6) Fp6 {
	var v0, v1, v2, t, s Fp2
	v0.Mul(&a.c0, &b.c0)
	v1.Mul(&a.c1, &b.c1)
	v2.Mul(&a.c2, &b.c2)

	var out Fp6

	// c0 = v0 + xi (a1 b2 + a2 b1)
	t.Mul(&a.c1, &b.c2)
	s.Mul(&a.c2, &b.c1)
	t.Add(&t, &s)
	t.MulByNonresidue(&t)
	out.c0.Add(&v0, &t)

	// c1 = a0 b1 + a1 b0 + xi v2
	t.Mul(&a.c0, &b.c1)
	s.Mul(&a.c1, &b.c0)
	t.Add(&t, &s)
	s.MulByNonresidue(&v2)
	out.c1.Add(&t, &s)

	// c2 = a0 b2 + a2 b0 + v1
	t.Mul(&a.c0, &b.c2)
	s.Mul(&a.c2, &b.c0)
	t.Add(&t, &s)
	out.c2.Add(&t, &v1)

	return out
}

func TestFp6MulMatchesSchoolbook(t *testing.T) {
	for i := 0; i < 10; i++ {
		var a, b Fp6
		if err := a.SetRandom(rand.Reader); err != nil {
			t.Fatal(err)
		}
		if err := b.SetRandom(rand.Reader); err != nil {
			t.Fatal(err)
		}

		var got Fp6
		got.Mul(&a, &b)
		want := mulFp6Schoolbook(&a, &b)
		if !got.Equal(&want) {
			t.Fatal("interleaved multiplication disagrees with schoolbook")
		}
	}
}

func TestFp6SparseMuls(t *testing.T) {
	var a, b Fp6
	if err := a.SetRandom(rand.Reader); err != nil {
		t.Fatal(err)
	}
	if err := b.SetRandom(rand.Reader); err != nil {
		t.Fatal(err)
	}

	t.Run("mul_by_1", func(t *testing.T) {
		sparse := Fp6{}
		sparse.c1 = b.c1

		var want, got Fp6
		want.Mul(&a, &sparse)
		got.MulBy1(&a, &b.c1)
		if !got.Equal(&want) {
			t.Error("mul_by_1 disagrees with full multiplication")
		}
	})

	t.Run("mul_by_01", func(t *testing.T) {
		sparse := Fp6{}
		sparse.c0 = b.c0
		sparse.c1 = b.c1

		var want, got Fp6
		want.Mul(&a, &sparse)
		got.MulBy01(&a, &b.c0, &b.c1)
		if !got.Equal(&want) {
			t.Error("mul_by_01 disagrees with full multiplication")
		}
	})
}

func TestFp6MulByNonresidue(t *testing.T) {
	// multiplication by v agrees with multiplying by the element v
	var a Fp6
	if err := a.SetRandom(rand.Reader); err != nil {
		t.Fatal(err)
	}

	var v Fp6
	v.c1.SetOne()

	var got, want Fp6
	got.MulByNonresidue(&a)
	want.Mul(&a, &v)
	if !got.Equal(&want) {
		t.Error("non-residue shortcut disagrees with generic mul")
	}
}

func TestFp6SquareMatchesMul(t *testing.T) {
	for i := 0; i < 10; i++ {
		var a, sq, ml Fp6
		if err := a.SetRandom(rand.Reader); err != nil {
			t.Fatal(err)
		}
		sq.Square(&a)
		ml.Mul(&a, &a)
		if !sq.Equal(&ml) {
			t.Error("square should agree with mul")
		}
	}
}

func TestFp6FrobeniusOrder(t *testing.T) {
	var a Fp6
	if err := a.SetRandom(rand.Reader); err != nil {
		t.Fatal(err)
	}

	f := a
	for i := 0; i < 6; i++ {
		f.FrobeniusMap(&f)
	}
	if !f.Equal(&a) {
		t.Error("frobenius applied six times should be the identity")
	}
}

func TestFp6Invert(t *testing.T) {
	var zero, got Fp6
	if got.Invert(&zero) {
		t.Error("inversion of zero should fail")
	}

	var one Fp6
	one.SetOne()
	for i := 0; i < 10; i++ {
		var a, inv, prod Fp6
		if err := a.SetRandom(rand.Reader); err != nil {
			t.Fatal(err)
		}
		if a.IsZero() {
			continue
		}
		inv.Invert(&a)
		prod.Mul(&a, &inv)
		if !prod.Equal(&one) {
			t.Error("a * a^-1 should be one")
		}
	}
}

func TestFp6FieldLaws(t *testing.T) {
	var a, b, c Fp6
	for _, f := range []*Fp6{&a, &b, &c} {
		if err := f.SetRandom(rand.Reader); err != nil {
			t.Fatal(err)
		}
	}

	var l, r, t1, t2 Fp6
	l.Mul(&a, &b)
	r.Mul(&b, &a)
	if !l.Equal(&r) {
		t.Error("multiplication should commute")
	}

	t1.Mul(&a, &b)
	l.Mul(&t1, &c)
	t2.Mul(&b, &c)
	r.Mul(&a, &t2)
	if !l.Equal(&r) {
		t.Error("multiplication should associate")
	}

	t1.Add(&b, &c)
	l.Mul(&a, &t1)
	t1.Mul(&a, &b)
	t2.Mul(&a, &c)
	r.Add(&t1, &t2)
	if !l.Equal(&r) {
		t.Error("multiplication should distribute over addition")
	}
}
