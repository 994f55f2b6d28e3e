// Package chat orchestrates conversation turns and action shortcuts.
//
// The Controller is the only code path that sends a chat message:
// it persists the user's text, posts it to the backend, dispatches at
// most one backend-signaled action, and renders the reply. When an
// action fires, the narration that accompanied it is logged but never
// displayed, so the user sees the action's own flow instead of a
// duplicate description of it.
//
// Every flow has the same failure shape. A backend or location error
// is terminal for that one flow and surfaces as a fixed bot message;
// nothing is retried and the conversation stays usable. Storage
// failures are quieter still: the store logs and degrades, and no flow
// ever fails because history could not be written.
//
// The surrounding interaction state lives in Session (voice mode, the
// active conversation) with Speaker, Locator and Prompter as the
// environment seams: text-to-speech, position lookup and interactive
// questions are all injected, which keeps every flow testable without
// a terminal.
package chat
