// Package cowgen holds the runtime contracts shared between the compiler
// and code it generates: the association lookup capability, the lookup
// error taxonomy, and the generation fingerprint cache used to skip
// regeneration of unchanged entities.
//
// The compiler itself lives under compiler/gen, the schema model under
// schema, and the copy-on-write change-tracking runtime under track.
package cowgen
