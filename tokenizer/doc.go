// Package tokenizer provides a unified tokenization interface backed by
// tiktoken, plus an encoding-keyed registry so repeated lookups of the same
// encoding reuse one loaded instance.
package tokenizer
