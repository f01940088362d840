package bls12381

import (
	"crypto/rand"
	"testing"
)

func TestScalarConstants(t *testing.T) {
	var one Scalar
	one.SetOne()

	t.Run("two_inv", func(t *testing.T) {
		var two, got Scalar
		two.Double(&one)
		got.Mul(&two, &ScalarTwoInv)
		if !got.Equal(&one) {
			t.Error("2 * TWO_INV should be one")
		}
	})

	t.Run("generator", func(t *testing.T) {
		var seven, got Scalar
		seven.SetUint64(7)
		got.Set(&ScalarGenerator)
		if !got.Equal(&seven) {
			t.Error("the generator should be 7")
		}
	})

	t.Run("root_of_unity_inv", func(t *testing.T) {
		var got Scalar
		got.Mul(&ScalarRootOfUnity, &ScalarRootOfUnityInv)
		if !got.Equal(&one) {
			t.Error("ROOT_OF_UNITY * ROOT_OF_UNITY_INV should be one")
		}
	})

	t.Run("root_of_unity_order", func(t *testing.T) {
		// ROOT_OF_UNITY^(2^S) = 1 and no earlier power of two reaches one
		got := ScalarRootOfUnity
		for i := 0; i < scalarS; i++ {
			if got.Equal(&one) {
				t.Fatal("root of unity order too small")
			}
			got.Square(&got)
		}
		if !got.Equal(&one) {
			t.Error("ROOT_OF_UNITY^(2^S) should be one")
		}
	})

	t.Run("delta", func(t *testing.T) {
		// DELTA^t = 1 where q - 1 = t * 2^S with t odd
		tOdd := [4]uint64{
			0xfffe5bfeffffffff, 0x09a1d80553bda402, 0x299d7d483339d808, 0x0000000073eda753,
		}
		var got Scalar
		got.PowVartime(&ScalarDelta, tOdd[:])
		if !got.Equal(&one) {
			t.Error("DELTA^t should be one")
		}
	})
}

func TestScalarFromRaw(t *testing.T) {
	// from_raw(1) must equal one, i.e. land in Montgomery form
	var a, one Scalar
	a.FromRaw([4]uint64{1, 0, 0, 0})
	one.SetOne()
	if !a.Equal(&one) {
		t.Error("from_raw(1) should be one")
	}

	// from_raw of the modulus reduces to zero
	a.FromRaw(scalarModulus)
	if !a.IsZero() {
		t.Error("from_raw(q) should be zero")
	}
}

func TestScalarBytesRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		set  func(*Scalar)
	}{
		{"zero", func(s *Scalar) { s.SetZero() }},
		{"one", func(s *Scalar) { s.SetOne() }},
		{"largest", func(s *Scalar) {
			var one Scalar
			one.SetOne()
			s.SetZero()
			s.Sub(s, &one) // q - 1
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var a Scalar
			tc.set(&a)
			enc := a.Bytes()
			var b Scalar
			if !b.SetBytes(enc[:]) {
				t.Fatal("canonical encoding should decode")
			}
			if !a.Equal(&b) {
				t.Error("byte round trip mismatch")
			}
		})
	}
}

func TestScalarSetBytesRejectsModulus(t *testing.T) {
	var enc [32]byte
	for i, l := range scalarModulus {
		writeLE64(enc[i*8:i*8+8], l)
	}
	var s Scalar
	if s.SetBytes(enc[:]) {
		t.Error("the modulus is not a canonical scalar")
	}

	// q - 1 decodes
	enc[0] = 0
	if !s.SetBytes(enc[:]) {
		t.Error("q - 1 should decode")
	}
}

func TestScalarSetBytesWide(t *testing.T) {
	// wide(lo || hi) must equal lo + hi * 2^256 as field elements
	var buf [64]byte
	for i := range buf {
		buf[i] = 0xff
	}
	var wide Scalar
	wide.SetBytesWide(buf[:])

	var lo, hi, shift, want Scalar
	maxLimbs := [4]uint64{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)}
	lo.FromRaw(maxLimbs)
	hi.FromRaw(maxLimbs)
	// 2^256 = R mod q, built from R's integer limbs
	shift.FromRaw(scalarR.d)
	hi.Mul(&hi, &shift)
	want.Add(&lo, &hi)
	if !wide.Equal(&want) {
		t.Error("wide reduction mismatch")
	}
}

func TestScalarInvert(t *testing.T) {
	var zero, one Scalar
	one.SetOne()
	var got Scalar
	if got.Invert(&zero) {
		t.Error("inversion of zero should fail")
	}
	if !got.Invert(&one) || !got.Equal(&one) {
		t.Error("inversion of one should be one")
	}

	for i := 0; i < 10; i++ {
		var r, inv, prod Scalar
		if err := r.SetRandom(rand.Reader); err != nil {
			t.Fatal(err)
		}
		if r.IsZero() {
			continue
		}
		inv.Invert(&r)
		prod.Mul(&r, &inv)
		if !prod.Equal(&one) {
			t.Error("a * a^-1 should be one")
		}
	}
}

func TestScalarPow(t *testing.T) {
	// Pow and PowVartime agree on a public exponent
	var a Scalar
	if err := a.SetRandom(rand.Reader); err != nil {
		t.Fatal(err)
	}
	exp := [4]uint64{0x123456789abcdef0, 0xfedcba9876543210, 7, 0}

	var ct, vt Scalar
	ct.Pow(&a, &exp)
	vt.PowVartime(&a, exp[:])
	if !ct.Equal(&vt) {
		t.Error("constant-time and vartime exponentiation disagree")
	}
}

func TestScalarFieldLaws(t *testing.T) {
	var a, b, c Scalar
	for _, s := range []*Scalar{&a, &b, &c} {
		if err := s.SetRandom(rand.Reader); err != nil {
			t.Fatal(err)
		}
	}

	var l, r, t1, t2 Scalar
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

	// square agrees with mul
	var sq, ml Scalar
	sq.Square(&a)
	ml.Mul(&a, &a)
	if !sq.Equal(&ml) {
		t.Error("square should agree with mul")
	}

	// double negation
	var n Scalar
	n.Neg(&a)
	n.Neg(&n)
	if !n.Equal(&a) {
		t.Error("-(-a) should be a")
	}
}
