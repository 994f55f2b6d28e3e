// ABOUTME: Emergency endpoints: nearby hospital lookup and ambulance dispatch
// ABOUTME: Hospital distances come back pre-computed from the given coordinates

package api

import (
	"context"
	"fmt"
	"strconv"
)

// Hospital is one nearby-hospital result.
type Hospital struct {
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	DistanceKm float64 `json:"distance_km"`
}

// NearbyHospitals lists hospitals around the given position.
func (c *Client) NearbyHospitals(ctx context.Context, latitude, longitude float64) ([]Hospital, error) {
	var result []Hospital

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"latitude":  strconv.FormatFloat(latitude, 'f', -1, 64),
			"longitude": strconv.FormatFloat(longitude, 'f', -1, 64),
		}).
		SetResult(&result).
		Get("/api/emergency/hospitals/nearby")
	if err != nil {
		return nil, fmt.Errorf("finding hospitals: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	c.logger.Debug("hospitals found", "count", len(result))
	return result, nil
}

// AmbulanceRequest is the dispatch payload. PatientName and
// IncidentDetails are optional.
type AmbulanceRequest struct {
	UserID          string  `json:"user_id"`
	Location        string  `json:"location"`
	Symptoms        string  `json:"symptoms"`
	ContactNumber   string  `json:"contact_number"`
	PatientName     *string `json:"patient_name"`
	IncidentDetails *string `json:"incident_details"`
}

// DispatchResult confirms an ambulance dispatch.
type DispatchResult struct {
	Message string `json:"message"`
}

// DispatchAmbulance requests emergency dispatch to the given location.
func (c *Client) DispatchAmbulance(ctx context.Context, req AmbulanceRequest) (*DispatchResult, error) {
	if req.UserID == "" {
		req.UserID = c.userID
	}

	var result DispatchResult
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&result).
		Post("/api/emergency/ambulance")
	if err != nil {
		return nil, fmt.Errorf("dispatching ambulance: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	return &result, nil
}
