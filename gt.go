package bls12381

// Gt is the target group of the pairing, the image of the final
// exponentiation in Fp12. As with G1 and G2 it has order q; it is written
// additively here to keep the three groups uniform, with the field
// multiplication realizing the group operation.
type Gt struct {
	f Fp12
}

// gtGenerator is Pairing(G1 generator, G2 generator).
var gtGenerator = Gt{f: Fp12{
	c0: Fp6{
		c0: Fp2{
			c0: Fp{l: [6]uint64{
				0x1972e433a01f85c5, 0x97d32b76fd772538, 0xc8ce546fc96bcdf9,
				0xcef63e7366d40614, 0xa611342781843780, 0x13f3448a3fc6d825,
			}},
			c1: Fp{l: [6]uint64{
				0xd26331b02e9d6995, 0x9d68a482f7797e7d, 0x9c9b29248d39ea92,
				0xf4801ca2e13107aa, 0xa16c0732bdbcb066, 0x083ca4afba360478,
			}},
		},
		c1: Fp2{
			c0: Fp{l: [6]uint64{
				0x59e261db0916b641, 0x2716b6f4b23e960d, 0xc8e55b10a0bd9c45,
				0x0bdb0bd99c4deda8, 0x8cf89ebf57fdaac5, 0x12d6b7929e777a5e,
			}},
			c1: Fp{l: [6]uint64{
				0x5fc85188b0e15f35, 0x34a06e3a8f096365, 0xdb3126a6e02ad62c,
				0xfc6f5aa97d9a990b, 0xa12f55f5eb89c210, 0x1723703a926f8889,
			}},
		},
		c2: Fp2{
			c0: Fp{l: [6]uint64{
				0x93588f2971828778, 0x43f65b8611ab7585, 0x3183aaf5ec279fdf,
				0xfa73d7e18ac99df6, 0x64e176a6a64c99b0, 0x179fa78c58388f1f,
			}},
			c1: Fp{l: [6]uint64{
				0x672a0a11ca2aef12, 0x0d11b9b52aa3f16b, 0xa44412d0699d056e,
				0xc01d0177221a5ba5, 0x66e0cede6c735529, 0x05f5a71e9fddc339,
			}},
		},
	},
	c1: Fp6{
		c0: Fp2{
			c0: Fp{l: [6]uint64{
				0xd30a88a1b062c679, 0x5ac56a5d35fc8304, 0xd0c834a6a81f290d,
				0xcd5430c2da3707c7, 0xf0c27ff780500af0, 0x09245da6e2d72eae,
			}},
			c1: Fp{l: [6]uint64{
				0x9f2e0676791b5156, 0xe2d1c8234918fe13, 0x4c9e459f3c561bf4,
				0xa3e85e53b9d3e3c1, 0x820a121e21a70020, 0x15af618341c59acc,
			}},
		},
		c1: Fp2{
			c0: Fp{l: [6]uint64{
				0x7c95658c24993ab1, 0x73eb38721ca886b9, 0x5256d749477434bc,
				0x8ba41902ea504a8b, 0x04a3d3f80c86ce6d, 0x18a64a87fb686eaa,
			}},
			c1: Fp{l: [6]uint64{
				0xbb83e71bb920cf26, 0x2a5277ac92a73945, 0xfc0ee59f94f046a0,
				0x7158cdf3786058f7, 0x7cc1061b82f945f6, 0x03f847aa9fdbe567,
			}},
		},
		c2: Fp2{
			c0: Fp{l: [6]uint64{
				0x8078dba56134e657, 0x1cd7ec9a43998a6e, 0xb1aa599a1a993766,
				0xc9a0f62f0842ee44, 0x8e159be3b605dffa, 0x0c86ba0d4af13fc2,
			}},
			c1: Fp{l: [6]uint64{
				0xe80ff2a06a52ffb1, 0x7694ca48721a906c, 0x7583183e03b08514,
				0xf567afdd40cee4e2, 0x9a6d96d2e526a5fc, 0x197e9f49861f2242,
			}},
		},
	},
}}

// GtIdentity returns the group identity, 1.
func GtIdentity() Gt {
	var g Gt
	g.f.SetOne()
	return g
}

// GtGenerator returns the fixed generator, the pairing of the G1 and G2
// generators.
func GtGenerator() Gt {
	return gtGenerator
}

// IsIdentity returns true if g is the identity.
func (g *Gt) IsIdentity() bool {
	return g.f.IsOne()
}

// Equal returns true if g and a are the same group element.
func (g *Gt) Equal(a *Gt) bool {
	return g.f.Equal(&a.f)
}

// Select sets g to a if flag is 0 and to b if flag is 1, in constant time.
func (g *Gt) Select(a, b *Gt, flag int) {
	g.f.Select(&a.f, &b.f, flag)
}

// Add sets g = a + b.
func (g *Gt) Add(a, b *Gt) {
	g.f.Mul(&a.f, &b.f)
}

// Neg sets g = -a. Elements of Gt are unitary, so conjugation suffices.
func (g *Gt) Neg(a *Gt) {
	g.f.Conjugate(&a.f)
}

// Sub sets g = a - b.
func (g *Gt) Sub(a, b *Gt) {
	var nb Gt
	nb.Neg(b)
	g.Add(a, &nb)
}

// Double sets g = a + a.
func (g *Gt) Double(a *Gt) {
	g.f.Square(&a.f)
}

// MulScalar sets g = s*a in constant time. All 256 bits of the canonical
// little-endian scalar encoding are walked; canonical scalars always carry a
// clear top bit, so nothing is gained by skipping it.
func (g *Gt) MulScalar(a *Gt, s *Scalar) {
	by := s.Bytes()
	acc := GtIdentity()
	for i := 31; i >= 0; i-- {
		for bit := 7; bit >= 0; bit-- {
			acc.Double(&acc)
			var sum Gt
			sum.Add(&acc, a)
			acc.Select(&acc, &sum, int(by[i]>>uint(bit))&1)
		}
	}
	g.Set(&acc)
}

// Set copies a into g.
func (g *Gt) Set(a *Gt) {
	g.f = a.f
}
