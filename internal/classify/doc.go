// Package classify maps file metadata to category labels.
//
// Two Model variants exist: a static extension table derived from the
// configured rules, and an adapter over the remote LLM client. Both are total
// over well-formed metadata and return exactly one label; the LLM adapter
// additionally validates the model's answer against the configured set so a
// broken model surfaces as a classification error instead of quietly filing
// everything under the fallback.
package classify
