// Package randomname generates wuxia-style character names such as
// "Murong Xueyun, the Silent Zither".
//
// A name is a surname and a given name, optionally followed by a second given
// syllable ("middle") and an epithet. All words come from built-in pools
// embedded from pools.yaml; LoadPools reads an additional YAML file whose
// entries are appended to the built-ins, in the same layout.
//
// # Usage
//
//	gen, err := randomname.New()
//	if err != nil {
//		return err // only possible with custom pools
//	}
//	name := gen.Generate(randomname.Options{Middle: true, Epithet: true})
//	fmt.Println(name.Text)
//
// The package-level Generate uses a shared generator with the built-in pools:
//
//	fmt.Println(randomname.Generate(randomname.Options{}))
//
// # Options
//
//   - Middle  appends a second given-name syllable ("Xue" + "yun").
//   - Epithet appends an epithet after a comma.
//   - Seed    reproduces a previous draw, see WithSeed.
//
// Custom entries are normalized when loaded: surnames and given names are
// title-cased, middle syllables lower-cased, so "MU" and "mu" both become "Mu".
package randomname
