// Package usage tracks token consumption across tokenizer calls as an
// append-only history of immutable snapshots, with an explicit reset and a
// baseline-removal reset kept for compatibility with existing callers.
package usage
