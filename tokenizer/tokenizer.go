package tokenizer

import (
	"errors"
	"sync"
)

// DefaultEncoding is the encoding scheme used when none is specified.
const DefaultEncoding = "cl100k_base"

// ErrEncodingUnavailable is returned when a tokenizer backend cannot load
// the requested encoding. It is surfaced at construction time; there is no
// graceful degradation.
var ErrEncodingUnavailable = errors.New("tokenizer encoding unavailable")

// Tokenizer is the unified tokenization interface.
type Tokenizer interface {
	// CountTokens returns the token count for the given text.
	CountTokens(text string) (int, error)

	// Encode converts text into a list of token IDs.
	Encode(text string) ([]int, error)

	// Decode converts token IDs back into text.
	Decode(tokens []int) (string, error)

	// Name returns the tokenizer name.
	Name() string
}

// Encoding-keyed tokenizer registry.
var (
	encodingTokenizers   = make(map[string]Tokenizer)
	encodingTokenizersMu sync.RWMutex
)

// Register registers a tokenizer for the given encoding name, replacing any
// previous registration.
func Register(encoding string, t Tokenizer) {
	encodingTokenizersMu.Lock()
	defer encodingTokenizersMu.Unlock()
	encodingTokenizers[encoding] = t
}

// Get returns the tokenizer registered for the given encoding name.
func Get(encoding string) (Tokenizer, bool) {
	encodingTokenizersMu.RLock()
	defer encodingTokenizersMu.RUnlock()
	t, ok := encodingTokenizers[encoding]
	return t, ok
}

// ForEncoding returns the tokenizer registered for the encoding, constructing
// and registering a tiktoken-backed one on first use.
func ForEncoding(encoding string) (Tokenizer, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	if t, ok := Get(encoding); ok {
		return t, nil
	}

	t, err := NewTiktoken(encoding)
	if err != nil {
		return nil, err
	}
	Register(encoding, t)
	return t, nil
}
