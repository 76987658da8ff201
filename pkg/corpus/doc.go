/*
Package corpus acquires and prepares training text for the ngram package.

It downloads Project Gutenberg books with URL fallback, strips the Gutenberg
license boilerplate, collapses whitespace, and caches cleaned documents in a
SQLite database so repeated runs do not hit the network. Cleaned text can be
written to disk atomically for use by the generate command.
*/
package corpus
