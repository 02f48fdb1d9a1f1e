// Package sdk is the value conversion layer shared by generated contract
// wrappers and their hosts.
//
// Every value crossing the contract ABI is a RawVal, a tagged 64-bit word.
// Wrappers decode arguments with MustFromRawVal and encode results with
// ToRawVal; user types take part by implementing RawValDecoder and
// RawValEncoder.
package sdk
