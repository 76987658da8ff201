package ngram

import (
	"strconv"
	"strings"
)

// Context is an immutable, ordered sequence of tokens used as a lookup key in
// the transition table. Two Contexts holding the same tokens in the same order
// compare equal with == and hash identically as map keys.
type Context struct {
	// key holds every token as "<byte length>:<token>", so no two distinct
	// sequences share a key whatever the tokens contain.
	key string
	n   int
}

// NewContext builds a Context from the given tokens.
func NewContext(tokens ...string) Context {
	var b strings.Builder
	for _, token := range tokens {
		b.WriteString(strconv.Itoa(len(token)))
		b.WriteByte(':')
		b.WriteString(token)
	}
	return Context{key: b.String(), n: len(tokens)}
}

// startContext returns the canonical context of n copies of StartToken.
func startContext(n int) Context {
	tokens := make([]string, n)
	for i := range tokens {
		tokens[i] = StartToken
	}
	return NewContext(tokens...)
}

// Len returns the number of tokens in the context.
func (c Context) Len() int {
	return c.n
}

// Tokens returns a copy of the context's tokens, oldest first.
func (c Context) Tokens() []string {
	if c.n == 0 {
		return nil
	}
	tokens := make([]string, 0, c.n)
	rest := c.key
	for len(rest) > 0 {
		sep := strings.IndexByte(rest, ':')
		size, _ := strconv.Atoi(rest[:sep])
		rest = rest[sep+1:]
		tokens = append(tokens, rest[:size])
		rest = rest[size:]
	}
	return tokens
}

// Shift returns a new Context with the oldest token dropped and token appended.
func (c Context) Shift(token string) Context {
	if c.n == 0 {
		return c
	}
	tokens := c.Tokens()
	copy(tokens, tokens[1:])
	tokens[len(tokens)-1] = token
	return NewContext(tokens...)
}

// String returns the tokens, space separated and wrapped in parentheses.
func (c Context) String() string {
	return "(" + strings.Join(c.Tokens(), " ") + ")"
}
