// Package frontend reads Go source files and lowers annotated declarations
// into the ir model consumed by the contract pass.
//
// A //contract:fn comment marks a top-level function. A
// //contract:impl [Interface] comment marks a type; the methods of that type
// across the package form its impl block. When Interface is declared in the
// same package, its method set decides which methods belong to the block.
package frontend
