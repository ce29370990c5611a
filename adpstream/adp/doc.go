// Package adp implements the 4-bit ADPCM block format used by console disc
// audio streams (DTK/ADP).
//
// A block is 32 bytes: four header bytes followed by 28 bytes of packed
// nibbles. Header byte 0 drives the right channel and byte 1 the left one
// (bytes 2 and 3 repeat them); the high nibble of a header selects one of four
// fixed predictors and the low nibble a scale shift. Each data byte carries
// one right sample in its low nibble and one left sample in its high nibble,
// so a block expands to 28 stereo sample pairs.
//
// Decoding is stateful: each channel carries two previous-output accumulators
// from block to block, kept in a History owned by the caller.
package adp
