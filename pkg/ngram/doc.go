/*
Package ngram provides a small in-memory statistical language model that
learns token transition frequencies from a text corpus and samples new token
sequences from them.

A Model is configured with a context order n (the number of tokens in a
training window) and a minimum frequency below which tokens are folded into
the unknown marker. Training fully resets the model, splits the text into
sentences, pads each sentence with start and end markers, and counts every
(n-1)-token context and the token that follows it. Generation walks those
counts with weighted random sampling until an end marker is drawn or a length
limit is reached.

A Model is not safe for concurrent use. Callers sharing one across goroutines
must serialize access themselves.
*/
package ngram
