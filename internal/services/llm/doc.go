// Package llm provides the OpenAI-compatible chat-completion client behind
// the predictive classification model.
//
// The client forces JSON-object responses, retries transient failures (429,
// 5xx, timeouts) with capped exponential backoff honouring Retry-After, and
// tolerates code-fenced payloads. ClassifyFile constrains the model to the
// configured category labels plus the fallback; anything else is surfaced to
// the caller as an error rather than guessed around.
package llm
