package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Tiktoken adapts tiktoken for BPE encodings such as cl100k_base.
type Tiktoken struct {
	encoding string
	enc      *tiktoken.Tiktoken
}

// NewTiktoken creates a tiktoken-backed tokenizer for the given encoding
// name. The encoding is loaded eagerly: a backend that cannot serve the
// encoding fails here, wrapped in ErrEncodingUnavailable.
func NewTiktoken(encoding string) (*Tiktoken, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrEncodingUnavailable, encoding, err)
	}
	return &Tiktoken{encoding: encoding, enc: enc}, nil
}

func (t *Tiktoken) CountTokens(text string) (int, error) {
	return len(t.enc.Encode(text, nil, nil)), nil
}

func (t *Tiktoken) Encode(text string) ([]int, error) {
	return t.enc.Encode(text, nil, nil), nil
}

func (t *Tiktoken) Decode(tokens []int) (string, error) {
	return t.enc.Decode(tokens), nil
}

func (t *Tiktoken) Name() string {
	return fmt.Sprintf("tiktoken[%s]", t.encoding)
}

// Encoding returns the encoding scheme name this tokenizer was built with.
func (t *Tiktoken) Encoding() string {
	return t.encoding
}
