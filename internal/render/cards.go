// ABOUTME: Builders for pre-rendered markup fragments: medicine cards, prescription tables, hospital lists
// ABOUTME: Their output starts with "<" so it bypasses escaping and is never persisted to history

package render

import (
	"fmt"
	"strings"

	"github.com/nexushealth/nexus-chat/internal/api"
)

// MedicineCards renders purchasable medicine suggestions. The machine
// name is shown so the user can pass it to /buy.
func MedicineCards(meds []api.MedicineRecommendation) string {
	var b strings.Builder
	b.WriteString("<hr>")
	for _, med := range meds {
		b.WriteString("<h6>💊 " + Escape(med.DisplayName) + "</h6>")
		b.WriteString("<small>" + Escape(med.EstimatedPrice) + "</small><br>")
		b.WriteString("<small>buy with: /buy " + Escape(med.Name) + "</small><br>")
	}
	b.WriteString("<hr>")
	return b.String()
}

// PrescriptionCard renders a structured prescription analysis.
func PrescriptionCard(a *api.PrescriptionAnalysis) string {
	doctor := a.DoctorName
	if doctor == "" {
		doctor = "N/A"
	}
	date := a.Date
	if date == "" {
		date = "N/A"
	}

	var b strings.Builder
	b.WriteString("<hr><h6>Prescription Analysis</h6><br>")
	b.WriteString("<strong>Dr:</strong> " + Escape(doctor) + " | <strong>Date:</strong> " + Escape(date))
	for _, med := range a.Medications {
		b.WriteString("<li><strong>" + Escape(med.Name) + "</strong> " +
			Escape(med.Dosage) + " <em>" + Escape(med.Frequency) + "</em>")
	}
	if a.SpecialInstructions != "" {
		b.WriteString("<br><em>" + Escape(a.SpecialInstructions) + "</em>")
	}
	b.WriteString("<hr>")
	return b.String()
}

// HospitalList renders nearby hospitals with distance and address.
func HospitalList(hospitals []api.Hospital) string {
	var b strings.Builder
	b.WriteString("<hr>")
	for _, h := range hospitals {
		b.WriteString(fmt.Sprintf("<li><strong>%s</strong> <small>%.1f km</small><br>%s",
			Escape(h.Name), h.DistanceKm, Escape(h.Address)))
	}
	b.WriteString("<br><small>book with: /book</small><hr>")
	return b.String()
}

// BuyResultCard renders the outcome of a successful cart add.
func BuyResultCard(res *api.BuyResult) string {
	var b strings.Builder
	b.WriteString("<hr><h6>✅ " + Escape(res.Message) + "</h6>")
	if res.Price != "" {
		b.WriteString("<small>Price: " + Escape(res.Price) + "</small><br>")
	}
	if res.CartURL != "" {
		b.WriteString("<small>Cart: " + Escape(res.CartURL) + "</small><br>")
	}
	b.WriteString("<hr>")
	return b.String()
}
