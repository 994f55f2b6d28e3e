// ABOUTME: Session owns voice-mode state and the active conversation transition
// ABOUTME: Speaker abstracts text-to-speech; the default implementation is silent

package chat

import (
	"context"
	"fmt"
	"sync"

	"github.com/nexushealth/nexus-chat/internal/store"
)

// Speaker voices bot replies when voice mode is active.
type Speaker interface {
	Speak(text string)
}

// NopSpeaker is a Speaker that does nothing.
type NopSpeaker struct{}

func (NopSpeaker) Speak(string) {}

// Session holds per-run interaction state: whether voice mode is on and
// which conversation is active. It is created at startup and torn down
// on exit; conversation data itself lives in the store.
type Session struct {
	mu      sync.Mutex
	voice   bool
	speaker Speaker
	store   store.Store
}

// NewSession creates a Session over the given store. A nil speaker
// falls back to NopSpeaker.
func NewSession(st store.Store, speaker Speaker) *Session {
	if speaker == nil {
		speaker = NopSpeaker{}
	}
	return &Session{speaker: speaker, store: st}
}

// ActivateVoice turns voice mode on. Subsequent bot replies are spoken.
func (s *Session) ActivateVoice() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voice = true
}

// DeactivateVoice turns voice mode off.
func (s *Session) DeactivateVoice() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voice = false
}

// VoiceActive reports whether voice mode is on.
func (s *Session) VoiceActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.voice
}

// Speak voices text if voice mode is active.
func (s *Session) Speak(text string) {
	if s.VoiceActive() {
		s.speaker.Speak(text)
	}
}

// SwitchConversation makes the conversation with the given id active.
func (s *Session) SwitchConversation(ctx context.Context, id string) error {
	if _, err := s.store.GetConversation(ctx, id); err != nil {
		return fmt.Errorf("switching conversation: %w", err)
	}
	s.store.SetActiveConversationID(ctx, id)
	return nil
}

// ActiveConversationID returns the id of the active conversation.
func (s *Session) ActiveConversationID(ctx context.Context) string {
	return s.store.ActiveConversationID(ctx)
}
