// Package dataset loads and stores the matrices a separation run works on.
//
// An Archive is a named collection of matrices (for example "sources" and
// "mixing") that round-trips through a YAML document:
//
//	matrices:
//	  sources:
//	    - [0.1, 0.2, 0.3]
//	    - [1.0, 0.0, -1.0]
//
// LoadWAV builds a source matrix from PCM recordings, one row per channel
// of each file, truncated to the shortest recording.
package dataset
