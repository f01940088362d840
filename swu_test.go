package bls12381

import (
	"crypto/rand"
	"testing"
)

// (p - 1) / 2
var fpPm1Over2 = Fp{l: [6]uint64{
	0xa1fafffffffe5557, 0x995bfff976a3fffe, 0x03f41d24d174ceb4,
	0xf6547998c1995dbd, 0x778a468f507a6034, 0x020559931f7f8103,
}}

func TestSgn0Anchors(t *testing.T) {
	var zero, one Fp
	zero.SetZero()
	one.SetOne()

	if zero.sgn0() != 0 {
		t.Error("sgn0(0) should be 0")
	}
	if one.sgn0() != 1 {
		t.Error("sgn0(1) should be 1")
	}

	var negOne Fp
	negOne.Neg(&one)
	if negOne.sgn0() != 0 {
		t.Error("sgn0(p-1) should be 0")
	}

	if fpPm1Over2.sgn0() != 1 {
		t.Error("sgn0((p-1)/2) should be 1")
	}

	var next Fp
	next.Add(&fpPm1Over2, &one)
	if next.sgn0() != 0 {
		t.Error("sgn0((p+1)/2) should be 0")
	}
}

func TestSimpleSWUExpected(t *testing.T) {
	xo := Fp{l: [6]uint64{
		0xfb996971fe22a1e0, 0x9aa93eb35b742d6f, 0x8c476013de99c5c4,
		0x873e27c3a221e571, 0xca72b5e45a52d888, 0x06824061418a386b,
	}}
	yo := Fp{l: [6]uint64{
		0xfd6fced87a7f11a3, 0x9a6b314b03c8db31, 0x41f85416e0eab593,
		0xfeeb089f7e6ec4d7, 0x85a134c37ed1278f, 0x0575c525bb9f74bb,
	}}
	zo := Fp{l: [6]uint64{
		0x7f674ea0a8915178, 0xb0f945fc13b8fa65, 0x4b46759a38e87d76,
		0x2e7a929641bbb6a1, 0x1668ddfa462bf6b6, 0x00960e2ed1cf294c,
	}}

	t.Run("zero", func(t *testing.T) {
		var zero Fp
		p := MapToCurveSimpleSWU(&zero)
		if !p.x.Equal(&xo) || !p.y.Equal(&yo) || !p.z.Equal(&zo) {
			t.Error("map of zero mismatch")
		}
		if !checkIsoCurve(&p) {
			t.Error("mapped point should satisfy the E' equation")
		}
	})

	t.Run("sqrt(-1/XI) positive", func(t *testing.T) {
		u := Fp{l: [6]uint64{
			0x00f3d0477e91edbf, 0x08d6621e4ca8dc69, 0xb9cf7927b19b9726,
			0xba133c996cafa2ec, 0xed2a5ccd5ca7bb68, 0x19cb022f8ee9d73b,
		}}
		p := MapToCurveSimpleSWU(&u)
		if !p.x.Equal(&xo) || !p.y.Equal(&yo) || !p.z.Equal(&zo) {
			t.Error("map of the positive exceptional input mismatch")
		}
		if !checkIsoCurve(&p) {
			t.Error("mapped point should satisfy the E' equation")
		}
	})

	t.Run("sqrt(-1/XI) negative", func(t *testing.T) {
		u := Fp{l: [6]uint64{
			0xb90b2fb8816dbcec, 0x15d59de064ab2396, 0xad61597945155efe,
			0xaa640eeb86d56fd2, 0x5df14ae8e6a3f16e, 0x00360fbaaa960f5e,
		}}
		p := MapToCurveSimpleSWU(&u)
		var myo Fp
		myo.Neg(&yo)
		if !p.x.Equal(&xo) || !p.y.Equal(&myo) || !p.z.Equal(&zo) {
			t.Error("map of the negative exceptional input mismatch")
		}
		if !checkIsoCurve(&p) {
			t.Error("mapped point should satisfy the E' equation")
		}
	})

	t.Run("fixed input", func(t *testing.T) {
		u := Fp{l: [6]uint64{
			0xa618fa19f7e2eadc, 0x93c7f1fc876ba245, 0xe2ed4cc47b5c0ae0,
			0xd49efa74e4a8d000, 0xa0b23ba692b5431c, 0x0d1551f2d7d8d193,
		}}
		want := G1Projective{
			x: Fp{l: [6]uint64{
				0x2197ca55fab3ba48, 0x591deb39f434949a, 0xf9df7fb4f1fa6a08,
				0x59e3c16a9dfa8fa5, 0xe5929b194aad5f7a, 0x130a46a4c61b44ed,
			}},
			y: Fp{l: [6]uint64{
				0xf7215b58c7200ad0, 0x890516313a4e66bf, 0xc9031acc8a3619a8,
				0xea1f9978fde3ffec, 0x0548f02d6cfbf472, 0x169375573529163f,
			}},
			z: Fp{l: [6]uint64{
				0xf36feb2e1128ade0, 0x42e22214250bcd94, 0xb94f6ba2dddf62d6,
				0xf56d4392782bf0a2, 0xb2d7ce1ec26309e7, 0x182b57ed6b99f0a1,
			}},
		}
		p := MapToCurveSimpleSWU(&u)
		if !p.x.Equal(&want.x) || !p.y.Equal(&want.y) || !p.z.Equal(&want.z) {
			t.Error("map of the fixed input mismatch")
		}
	})
}

func TestSWURandomInputs(t *testing.T) {
	for i := 0; i < 16; i++ {
		var u Fp
		if err := u.SetRandom(rand.Reader); err != nil {
			t.Fatal(err)
		}

		p := MapToCurveSimpleSWU(&u)
		if !checkIsoCurve(&p) {
			t.Fatal("SSWU output should satisfy the E' equation")
		}

		iso := isoMap(&p)
		if !iso.IsOnCurve() {
			t.Fatal("isogeny output should lie on the main curve")
		}
	}
}

func TestMapToG1ClearedIsTorsionFree(t *testing.T) {
	for i := 0; i < 8; i++ {
		var u Fp
		if err := u.SetRandom(rand.Reader); err != nil {
			t.Fatal(err)
		}

		p := MapToG1(&u)
		if !p.IsOnCurve() {
			t.Fatal("mapped point should be on the curve")
		}

		p.ClearCofactor(&p)
		var aff G1Affine
		aff.FromProjective(&p)
		if !aff.IsTorsionFree() {
			t.Fatal("cleared point should land in the prime-order subgroup")
		}
	}
}
