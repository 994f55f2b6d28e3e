// ABOUTME: Appointment booking endpoint

package api

import (
	"context"
	"fmt"
)

// AppointmentRequest is the booking payload.
type AppointmentRequest struct {
	HospitalID    int    `json:"hospital_id"`
	UserID        string `json:"user_id"`
	UserName      string `json:"user_name"`
	UserPhone     string `json:"user_phone"`
	Symptoms      string `json:"symptoms"`
	PreferredTime string `json:"preferred_time"`
}

// BookingResult confirms a booked appointment.
type BookingResult struct {
	Message string `json:"message"`
}

// BookAppointment books a doctor appointment.
func (c *Client) BookAppointment(ctx context.Context, req AppointmentRequest) (*BookingResult, error) {
	if req.UserID == "" {
		req.UserID = c.userID
	}

	var result BookingResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&result).
		Post("/api/appointments/book")
	if err != nil {
		return nil, fmt.Errorf("booking appointment: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	return &result, nil
}
