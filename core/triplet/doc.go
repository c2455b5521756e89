// Package triplet canonicalizes build-target identifiers.
//
// An identifier such as "amd64-linux" or "sun4" is split into fields,
// expanded through the legacy alias tables, normalized into a CPU, vendor,
// kernel, OS and object format, checked for consistency and formatted back
// as cpu-vendor[-kernel][-os][-objformat]:
//
//	triplet.Canonicalize("amd64-linux")  // "x86_64-pc-linux-gnu"
//	triplet.Canonicalize("w89k-unknown") // "hppa1.1-winbond-proelf"
//
// Every rule table is an ordered list of glob patterns where the first
// match wins. The package performs no I/O and keeps no mutable state; the
// only stateful type is Canonicalizer, which memoizes results.
package triplet
