// Package render displays conversation turns in a transcript log.
//
// Bot-originated plain text is revealed incrementally, word by word,
// to mimic live generation. The text is inline-formatted first
// (**bold**, *italic*, newlines), then split into fragments on an
// alternation of "one complete tag" or "a run of non-tag text".
// Naive word-splitting of formatted text would tear tags apart; the
// fragment scheme keeps each tag atomic while the words around it are
// still revealed one at a time.
//
// There is a deliberate trust boundary in the display path: text
// beginning with "<" is pre-rendered markup built by this client from
// structured backend responses (cards, lists) and is inserted
// verbatim, while free text is always escaped. Markup fragments are
// transient UI and are never written to conversation history.
//
// Renders are not coordinated: if a second bot message starts while
// the first is still revealing, both proceed independently and their
// fragments interleave. There is no cancellation for an in-flight
// reveal.
package render
