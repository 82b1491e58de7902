// Package schema defines the descriptor model consumed by the cowgen
// compiler: one ClassDescriptor per entity, holding an ordered list of
// PropertyDescriptors with their mutation policy and structural roles.
//
// Descriptors are value objects. They are populated once at the system
// boundary (see compiler/load) and never mutated afterwards; the compiler
// performs pure derivations over them.
package schema
