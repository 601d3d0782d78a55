// Package dispatch sends one text message to one or many recipients
// addressed by username handle.
//
// Concepts
//
// A single send is total: Send always produces an Outcome classifying the
// attempt (sent, not_found, invalid_handle, not_a_user, rate_limited,
// blocked, failed) and never propagates an error to the caller. A batch run
// walks its handles in input order and aggregates per-handle outcomes into a
// BatchResult whose Successful and Failed lists partition the processed
// input.
//
// Delivery semantics
//
// Sends are strictly sequential. Consecutive sends in a batch are spaced by
// the configured delay; the first send is immediate and nothing waits after
// the last. A platform-mandated flood wait can be slept out and re-attempted
// up to a configured number of times, while a plain Send never re-attempts.
// Cancelling the context stops a batch between sends and the partial result
// is still returned.
package dispatch
