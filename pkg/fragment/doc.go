// Package fragment composes display strings from fixed pools of interchangeable
// text snippets.
//
// A Generator holds a Template (an ordered list of Slots) and the Pools the
// slots draw from. Each call to Generate picks one entry per active slot,
// uniformly and with replacement, and concatenates the picks in template order
// together with each slot's Prefix and Suffix. Optional slots are only drawn
// when the caller includes them by name.
//
// Generators are configured once and validated eagerly: New fails with
// ErrEmptyPool or ErrUnknownPool before any generation is attempted.
//
// # Randomness
//
// Picks come from a math/rand/v2 PCG source. By default the source is seeded
// from crypto/rand; WithSeed makes the sequence reproducible, which is what
// share permalinks rely on. The source is guarded by a mutex so a Generator can
// be shared between request handlers.
//
// Shuffle is an unbiased Fisher-Yates permutation used when callers want the
// drawn parts in random order.
//
// # Configuration files
//
// Config mirrors the YAML layout used for pool files:
//
//	template:
//	  - pool: subject
//	  - pool: conflict
//	    prefix: " "
//	  - pool: twist
//	    prefix: " But "
//	    optional: true
//	pools:
//	  subject: ["A retired swordsman", "A tea merchant"]
//	  conflict: ["must repay an old debt", "loses a map"]
//	  twist: ["nobody remembers the debt."]
package fragment
