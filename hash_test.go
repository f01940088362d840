package bls12381

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestExpandMessageXmd(t *testing.T) {
	// RFC 9380 appendix K.1
	dst := []byte("QUUX-V01-CS02-with-expander-SHA256-128")

	cases := []struct {
		name string
		msg  string
		len  int
		want string
	}{
		{"empty", "", 32,
			"68a985b87eb6b46952128911f2a4412bbc302a9d759667f87f7a21d803f07235"},
		{"abc", "abc", 32,
			"d8ccab23b5985ccea865c6c97b6e5b8350e794e603b4b97902f53a8a0d605615"},
		{"abcdef0123456789", "abcdef0123456789", 32,
			"eff31487c770a893cfb36f912fbfcbff40d5661771ca4b2cb4eafe524333f5c1"},
		{"empty long", "", 128,
			"af84c27ccfd45d41914fdff5df25293e221afc53d8ad2ac06d5e3e29485dadbe" +
				"e0d121587713a3e0dd4d5e69e93eb7cd4f5df4cd103e188cf60cb02edc3edf18" +
				"eda8576c412b18ffb658e3dd6ec849469b979d444cf7b26911a08e63cf31f9dc" +
				"c541708d3491184472c2c29bb749d4286b004ceb5ee6b9a7fa5b646c993f0ced"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			want, err := hex.DecodeString(tc.want)
			if err != nil {
				t.Fatal(err)
			}
			got := expandMessageXmd([]byte(tc.msg), dst, tc.len)
			if !bytes.Equal(got, want) {
				t.Errorf("expand_message_xmd mismatch\n got %x\nwant %x", got, want)
			}
		})
	}
}

func TestExpandMessageXof(t *testing.T) {
	// RFC 9380 appendix K.3
	dst := []byte("QUUX-V01-CS02-with-expander-SHAKE128")

	cases := []struct {
		name string
		msg  string
		want string
	}{
		{"empty", "",
			"86518c9cd86581486e9485aa74ab35ba150d1c75c88e26b7043e44e2acd735a2"},
		{"abc", "abc",
			"8696af52a4d862417c0763556073f47bc9b9ba43c99b505305cb1ec04a9ab468"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			want, err := hex.DecodeString(tc.want)
			if err != nil {
				t.Fatal(err)
			}
			got := expandMessageXof([]byte(tc.msg), dst, 32)
			if !bytes.Equal(got, want) {
				t.Errorf("expand_message_xof mismatch\n got %x\nwant %x", got, want)
			}
		})
	}
}

func TestHashToFieldDeterministic(t *testing.T) {
	dst := []byte("TEST-DST")
	a := hashToField([]byte("message"), dst, 2)
	b := hashToField([]byte("message"), dst, 2)
	if len(a) != 2 || len(b) != 2 {
		t.Fatal("hash_to_field should return the requested count")
	}
	for i := range a {
		if !a[i].Equal(&b[i]) {
			t.Error("hash_to_field should be deterministic")
		}
	}

	c := hashToField([]byte("other message"), dst, 2)
	if a[0].Equal(&c[0]) {
		t.Error("different messages should not collide")
	}
}

// RFC 9380 suite BLS12381G1_XMD:SHA-256_SSWU_NU_ test vectors, exercising
// the whole pipeline: expand_message, hash_to_field, SSWU, isogeny and
// cofactor clearing.
func TestEncodeToG1Vectors(t *testing.T) {
	dst := []byte("QUUX-V01-CS02-with-BLS12381G1_XMD:SHA-256_SSWU_NU_")

	cases := []struct {
		msg  string
		x, y string
	}{
		{
			"",
			"184bb665c37ff561a89ec2122dd343f20e0f4cbcaec84e3c3052ea81d1834e192c426074b02ed3dca4e7676ce4ce48ba",
			"04407b8d35af4dacc809927071fc0405218f1401a6d15af775810e4e460064bcc9468beeba82fdc751be70476c888bf3",
		},
		{
			"abc",
			"009769f3ab59bfd551d53a5f846b9984c59b97d6842b20a2c565baa167945e3d026a3755b6345df8ec7e6acb6868ae6d",
			"1532c00cf61aa3d0ce3e5aa20c3b531a2abd2c770a790a2613818303c6b830ffc0ecf6c357af3317b9575c567f11cd2c",
		},
		{
			"abcdef0123456789",
			"1974dbb8e6b5d20b84df7e625e2fbfecb2cdb5f77d5eae5fb2955e5ce7313cae8364bc2fff520a6c25619739c6bdcb6a",
			"15f9897e11c6441eaa676de141c8d83c37aab8667173cbe1dfd6de74d11861b961dccebcd9d289ac633455dfcc7013a3",
		},
		{
			"q128_" + string(bytes.Repeat([]byte("q"), 128)),
			"0a7a047c4a8397b3446450642c2ac64d7239b61872c9ae7a59707a8f4f950f101e766afe58223b3bff3a19a7f754027c",
			"1383aebba1e4327ccff7cf9912bda0dbc77de048b71ef8c8a81111d71dc33c5e3aa6edee9cf6f5fe525d50cc50b77cc9",
		},
		{
			"a512_" + string(bytes.Repeat([]byte("a"), 512)),
			"0e7a16a975904f131682edbb03d9560d3e48214c9986bd50417a77108d13dc957500edf96462a3d01e62dc6cd468ef11",
			"0ae89e677711d05c30a48d6d75e76ca9fb70fe06c6dd6ff988683d89ccde29ac7d46c53bb97a59b1901abf1db66052db",
		},
	}

	for i, tc := range cases {
		p := EncodeToG1([]byte(tc.msg), dst)
		var aff G1Affine
		aff.FromProjective(&p)

		if !aff.IsOnCurve() || !aff.IsTorsionFree() {
			t.Fatalf("case %d: output not a subgroup point", i)
		}

		wantX, err := hex.DecodeString(tc.x)
		if err != nil {
			t.Fatal(err)
		}
		wantY, err := hex.DecodeString(tc.y)
		if err != nil {
			t.Fatal(err)
		}

		gotX := aff.x.Bytes()
		gotY := aff.y.Bytes()
		if !bytes.Equal(gotX[:], wantX) || !bytes.Equal(gotY[:], wantY) {
			t.Errorf("case %d: encode_to_curve mismatch", i)
		}
	}
}

func TestHashToG1(t *testing.T) {
	dst := []byte("QUUX-V01-CS02-with-BLS12381G1_XMD:SHA-256_SSWU_RO_")

	p := HashToG1([]byte("test message"), dst)
	if !p.IsOnCurve() {
		t.Error("hash output should be on the curve")
	}
	var aff G1Affine
	aff.FromProjective(&p)
	if !aff.IsTorsionFree() {
		t.Error("hash output should be in the prime-order subgroup")
	}

	// deterministic, and sensitive to both message and tag
	q := HashToG1([]byte("test message"), dst)
	if !p.Equal(&q) {
		t.Error("hashing should be deterministic")
	}
	r := HashToG1([]byte("test message 2"), dst)
	if p.Equal(&r) {
		t.Error("different messages should map to different points")
	}
	s := HashToG1([]byte("test message"), []byte("other tag"))
	if p.Equal(&s) {
		t.Error("different tags should map to different points")
	}
}

func TestExpandMessageLongDst(t *testing.T) {
	// tags over 255 bytes go through the oversize reduction and still
	// produce well-formed output
	longDst := bytes.Repeat([]byte("x"), 300)
	out := expandMessageXmd([]byte("msg"), longDst, 64)
	if len(out) != 64 {
		t.Fatal("wrong output length")
	}
	out2 := expandMessageXmd([]byte("msg"), longDst, 64)
	if !bytes.Equal(out, out2) {
		t.Error("long-DST expansion should be deterministic")
	}
}
