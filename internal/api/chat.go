// ABOUTME: Chat endpoint: sends user text and decodes the response, action and recommendations
// ABOUTME: Action types enumerate the shortcuts the backend can trigger instead of free text

package api

import (
	"context"
	"fmt"
)

// Action types the backend can signal. Exactly one action is dispatched
// per response; when one fires, the accompanying free text is suppressed
// from display.
const (
	ActionEmergency       = "EMERGENCY"
	ActionHospitalSearch  = "HOSPITAL_SEARCH"
	ActionBookAppointment = "BOOK_APPOINTMENT"
	ActionOrderMedicine   = "ORDER_MEDICINE"
)

// Action is a backend-signaled intent.
type Action struct {
	Type string `json:"type"`
	Data string `json:"data,omitempty"`
}

// MedicineRecommendation is a purchasable medicine suggestion attached
// to a chat response.
type MedicineRecommendation struct {
	Name           string `json:"name"`
	DisplayName    string `json:"display_name"`
	EstimatedPrice string `json:"estimated_price"`
}

// ChatResponse is the reply to a chat message. Response may embed
// [MED:<name>] markers; callers strip them before display.
type ChatResponse struct {
	Response                string                   `json:"response"`
	Action                  *Action                  `json:"action,omitempty"`
	MedicineRecommendations []MedicineRecommendation `json:"medicine_recommendations,omitempty"`
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
}

// SendText posts a chat message under the given session id.
func (c *Client) SendText(ctx context.Context, sessionID, message string) (*ChatResponse, error) {
	var result ChatResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(chatRequest{
			Message:   message,
			SessionID: sessionID,
			UserID:    c.userID,
		}).
		SetResult(&result).
		Post("/api/chat/text")
	if err != nil {
		return nil, fmt.Errorf("sending chat message: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	action := ""
	if result.Action != nil {
		action = result.Action.Type
	}
	c.logger.Debug("chat response received",
		"session_id", sessionID,
		"action", action,
		"recommendations", len(result.MedicineRecommendations),
	)
	return &result, nil
}
