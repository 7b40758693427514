// Package hcl provides the HCL implementation of the config.Loader interface.
// It is responsible for file discovery, parsing, decoding into the `schema`
// types and translating those into the format-agnostic `config.Model`.
//
// Time attributes are HCL expressions evaluated against a fixed set of unit
// variables, all expressed in nanoseconds:
//
//	reactor "camera" {
//	  tid       = 1000
//	  weight    = 2 * ms
//	  period    = 33 * ms
//	  publishes = ["frames"]
//	}
package hcl
