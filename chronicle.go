// Package chronicle implements an append-only, multi-channel binary event
// log. A Writer records frames to named channels in the exact order they
// arrive, interleaving writes across channels into a single global
// sequence; a Reader replays that sequence deterministically, handing back
// each frame as a zero-copy view over a memory-mapped roll file.
//
// A chronicle on disk is a directory containing a sequence file and one
// subdirectory per channel (named by the channel's hex id), each holding
// an index file and a series of size-capped roll files. See SequenceFileName,
// IndexFileName, and DefaultMaxRollBytes for the on-disk layout constants.
package chronicle
