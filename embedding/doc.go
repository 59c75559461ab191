// Package embedding wraps a tokenizer backend into a small service that
// turns text into token-ID sequences, reports token counts to a shared
// usage tracker, and scores vector pairs by cosine similarity.
package embedding
