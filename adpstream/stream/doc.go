// Package stream turns ADP audio read from a disc image into PCM for the
// audio DMA engine.
//
// A Stream owns two fixed output regions in DMA-visible memory. While one is
// drained by hardware, the other is refilled: each time the consumer asserts
// the UpdateStream word, Poll reads one chunk of compressed audio from disc,
// decodes it sub-block by sub-block into the region being refilled, writes the
// region back from the CPU cache and flips to the other one.
//
// Poll must be called from a single goroutine, often enough that a refill
// always completes before the consumer exhausts the region it is draining
// (one region lasts about 261 ms at 48 kHz and 392 ms at 32 kHz output).
// The disc read inside Poll blocks.
//
// At 32 kHz output each chunk is larger and the decoded pairs are reduced 3:2
// by a DownsampleWriter: the first pair of every three is written as is, the
// second is held back and averaged with the third.
//
// A track whose end falls inside a chunk has the tail of that chunk zeroed
// before decoding. Looping tracks restart from their first chunk on the next
// refill; non-looping tracks stop one refill later, once the final chunk has
// reached the hardware.
package stream
