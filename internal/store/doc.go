// Package store persists local conversation history for the chat client.
//
// # Data model
//
// The store holds an ordered list of Conversations, newest-first by
// creation, each an ordered sequence of timestamped Messages, plus a
// pointer naming the active conversation. Both live in a SQLite kv
// table under fixed keys, serialized as JSON text:
//
//   - nexus_health_chat_history: the whole conversation list
//   - nexus_health_current_chat: the active conversation id
//
// Every append rewrites the full list. That is deliberately simple:
// history is small, writes are synchronous and effectively atomic from
// the caller's point of view.
//
// # Failure model
//
// History is convenience state, not source of truth. Reads of missing
// or corrupt values degrade to an empty history; write failures are
// logged and swallowed. No store operation ever fails a user action.
//
// # Ordering
//
// New conversations are inserted at the front; existing ones keep
// their position when they receive messages. An old conversation that
// gets a new message does not move to the top. Sidebar position is
// creation order, not recency order, on purpose.
package store
