// package streamcheck determines whether an untrusted URL is a live,
// audio-producing internet radio stream.
//
// A validation run performs at most two sequential network probes under one
// shared deadline: a header-only HEAD request and, when headers alone are
// inconclusive, a small ranged GET that samples just enough bytes to sniff the
// audio format. Every run returns a structured [Result]; ordinary network
// failure is folded into the result's warning and error lists, never raised.
package streamcheck
