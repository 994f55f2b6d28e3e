// ABOUTME: Medical endpoints: prescription analysis upload, medicine purchase and ordering
// ABOUTME: Mirrors the backend request/response shapes exactly

package api

import (
	"context"
	"fmt"
	"strconv"
)

// Medication is one extracted prescription entry.
type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
}

// PrescriptionAnalysis is the structured result of analyzing an
// uploaded prescription.
type PrescriptionAnalysis struct {
	DoctorName          string       `json:"doctor_name"`
	Date                string       `json:"date"`
	Medications         []Medication `json:"medications"`
	SpecialInstructions string       `json:"special_instructions"`
}

type analyzeResponse struct {
	Analysis *PrescriptionAnalysis `json:"analysis"`
}

// AnalyzePrescription uploads a prescription file for analysis.
func (c *Client) AnalyzePrescription(ctx context.Context, path string) (*PrescriptionAnalysis, error) {
	var result analyzeResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetFile("file", path).
		SetResult(&result).
		Post("/api/medical/analyze-prescription")
	if err != nil {
		return nil, fmt.Errorf("uploading prescription: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	if result.Analysis == nil {
		return nil, fmt.Errorf("no analysis in response")
	}

	c.logger.Debug("prescription analyzed", "medications", len(result.Analysis.Medications))
	return result.Analysis, nil
}

// BuyResult is the outcome of adding a medicine to the shopping cart.
type BuyResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Price   string `json:"price,omitempty"`
	CartURL string `json:"cart_url,omitempty"`
}

type buyRequest struct {
	MedicineName string `json:"medicine_name"`
	UserID       string `json:"user_id"`
}

// BuyMedicine asks the shopping agent to put the named medicine in the
// user's cart.
func (c *Client) BuyMedicine(ctx context.Context, medicineName string) (*BuyResult, error) {
	var result BuyResult

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(buyRequest{MedicineName: medicineName, UserID: c.userID}).
		SetResult(&result).
		Post("/api/medical/buy-medicine")
	if err != nil {
		return nil, fmt.Errorf("buying medicine: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	return &result, nil
}

// OrderResult confirms a placed medicine order.
type OrderResult struct {
	OrderID string `json:"order_id"`
	Message string `json:"message"`
}

// OrderMedicine places an order. The backend takes its parameters as
// query values rather than a body.
func (c *Client) OrderMedicine(ctx context.Context, medicineID, quantity int) (*OrderResult, error) {
	var result OrderResult

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"medicine_id": strconv.Itoa(medicineID),
			"user_id":     c.userID,
			"quantity":    strconv.Itoa(quantity),
		}).
		SetResult(&result).
		Post("/api/medical/order-medicine")
	if err != nil {
		return nil, fmt.Errorf("ordering medicine: %w", err)
	}
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	return &result, nil
}
