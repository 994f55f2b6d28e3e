// ABOUTME: Controller is the single authoritative routine for every user-initiated flow
// ABOUTME: It persists, calls the backend, dispatches actions and drives the renderer

package chat

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/nexushealth/nexus-chat/internal/api"
	"github.com/nexushealth/nexus-chat/internal/render"
	"github.com/nexushealth/nexus-chat/internal/store"
)

const defaultLocationTimeout = 10 * time.Second

// buyProgressInterval paces the shopping agent's status updates.
// Variable so tests can speed it up.
var buyProgressInterval = 2 * time.Second

// Options configures a Controller.
type Options struct {
	Store    store.Store
	Client   *api.Client
	Renderer *render.Renderer
	Sink     render.Sink
	Session  *Session
	Locator  Locator
	Prompter Prompter

	// UserName and UserPhone prefill bookings and emergency requests.
	UserName  string
	UserPhone string

	// LocationTimeout bounds how long a flow waits for a position.
	LocationTimeout time.Duration

	Logger *slog.Logger
}

// Controller orchestrates chat turns and action shortcuts. Every flow
// follows the same failure shape: a backend or location error is
// terminal for that flow and surfaces as a fixed bot message; the
// conversation itself always stays usable.
type Controller struct {
	store      store.Store
	client     *api.Client
	renderer   *render.Renderer
	sink       render.Sink
	session    *Session
	locator    Locator
	prompter   Prompter
	reminders  *Reminders
	userName   string
	userPhone  string
	locTimeout time.Duration
	logger     *slog.Logger
}

// New creates a Controller from opts.
func New(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "chat")

	timeout := opts.LocationTimeout
	if timeout <= 0 {
		timeout = defaultLocationTimeout
	}

	c := &Controller{
		store:      opts.Store,
		client:     opts.Client,
		renderer:   opts.Renderer,
		sink:       opts.Sink,
		session:    opts.Session,
		locator:    opts.Locator,
		prompter:   opts.Prompter,
		userName:   opts.UserName,
		userPhone:  opts.UserPhone,
		locTimeout: timeout,
		logger:     logger,
	}
	c.reminders = NewReminders(c.fireReminder, logger)
	return c
}

// Close cancels pending reminder timers.
func (c *Controller) Close() {
	c.reminders.Stop()
}

// Reminders exposes the reminder scheduler.
func (c *Controller) Reminders() *Reminders {
	return c.reminders
}

// addMessage renders text and, unless it is pre-rendered markup,
// persists it to the active conversation. Markup is transient UI and
// never enters history.
func (c *Controller) addMessage(ctx context.Context, text, sender string, stream bool) {
	if !render.IsMarkup(text) {
		c.store.AppendMessage(ctx, text, sender)
	}
	c.renderer.Render(store.Message{Text: text, Sender: sender}, !stream)
}

// Send runs one chat turn: persist the user message, post it, dispatch
// at most one backend action and display the reply. When an action
// fires, the accompanying narration is suppressed from display.
func (c *Controller) Send(ctx context.Context, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	c.addMessage(ctx, text, store.SenderUser, false)
	c.sink.ShowStatus("nexus is thinking")

	resp, err := c.client.SendText(ctx, c.store.ActiveConversationID(ctx), text)
	c.sink.ClearStatus()
	if err != nil {
		c.logger.Error("chat request failed", "error", err)
		c.addMessage(ctx, "Failed to get response. Please try again.", store.SenderBot, false)
		return
	}

	actionTriggered := false
	if resp.Action != nil {
		actionTriggered = true
		switch resp.Action.Type {
		case api.ActionEmergency:
			c.TriggerEmergency(ctx)
		case api.ActionHospitalSearch:
			c.FindHospitals(ctx)
		case api.ActionBookAppointment:
			c.BookAppointment(ctx, "")
		case api.ActionOrderMedicine:
			if resp.Action.Data != "" {
				c.OrderMedicine(ctx, resp.Action.Data)
			}
		default:
			c.logger.Warn("unknown action type", "type", resp.Action.Type)
		}
	}

	clean := render.StripMedMarkers(resp.Response)
	switch {
	case !actionTriggered && clean != "":
		c.addMessage(ctx, clean, store.SenderBot, true)
		c.session.Speak(clean)
	case actionTriggered && clean != "":
		c.logger.Debug("response suppressed by action", "action", resp.Action.Type, "response", clean)
	}

	if len(resp.MedicineRecommendations) > 0 {
		c.addMessage(ctx, render.MedicineCards(resp.MedicineRecommendations), store.SenderBot, false)
	}
}

// UploadPrescription sends a prescription file for analysis, shows the
// extracted medications and schedules a reminder for each one.
func (c *Controller) UploadPrescription(ctx context.Context, path string) {
	c.addMessage(ctx, fmt.Sprintf("📄 Uploaded prescription: %s", filepath.Base(path)), store.SenderUser, false)
	c.sink.ShowStatus("analyzing prescription")

	analysis, err := c.client.AnalyzePrescription(ctx, path)
	c.sink.ClearStatus()
	if err != nil {
		c.logger.Error("prescription analysis failed", "error", err)
		c.addMessage(ctx, "Failed to analyze prescription. Please try again.", store.SenderBot, false)
		return
	}

	c.addMessage(ctx, render.PrescriptionCard(analysis), store.SenderBot, false)

	count := len(analysis.Medications)
	c.addMessage(ctx, fmt.Sprintf("✅ I've extracted %d medications and automatically set reminders for you.", count), store.SenderBot, false)
	c.session.Speak(fmt.Sprintf("I have analyzed your prescription and set reminders for %d medications.", count))

	for _, med := range analysis.Medications {
		c.reminders.Set(med.Name, med.Frequency)
	}
}

// FindHospitals locates the user and lists nearby hospitals.
func (c *Controller) FindHospitals(ctx context.Context) {
	c.addMessage(ctx, "Finding hospitals near your location...", store.SenderUser, false)
	c.sink.ShowStatus("locating")

	pos, err := c.position(ctx)
	if err != nil {
		c.sink.ClearStatus()
		c.logger.Error("location lookup failed", "error", err)
		c.addMessage(ctx, "Unable to retrieve your location. Please allow location access.", store.SenderBot, false)
		return
	}

	hospitals, err := c.client.NearbyHospitals(ctx, pos.Latitude, pos.Longitude)
	c.sink.ClearStatus()
	if err != nil {
		c.logger.Error("hospital search failed", "error", err)
		c.addMessage(ctx, "Failed to find hospitals.", store.SenderBot, false)
		return
	}
	if len(hospitals) == 0 {
		c.addMessage(ctx, "No hospitals found nearby.", store.SenderBot, false)
		return
	}

	c.addMessage(ctx, render.HospitalList(hospitals), store.SenderBot, false)
	c.session.Speak(fmt.Sprintf("I found %d hospitals near you.", len(hospitals)))
}

// TriggerEmergency confirms with the user, then dispatches an ambulance
// to their position.
func (c *Controller) TriggerEmergency(ctx context.Context) {
	if !c.prompter.Confirm("🚨 This will call emergency services. Are you in a life-threatening situation?") {
		return
	}
	c.sink.ShowStatus("contacting emergency services")

	pos, err := c.position(ctx)
	if err != nil {
		c.sink.ClearStatus()
		c.logger.Error("location lookup failed", "error", err)
		c.addMessage(ctx, "Failed to get location. Please enable location access!", store.SenderBot, false)
		return
	}

	result, err := c.client.DispatchAmbulance(ctx, api.AmbulanceRequest{
		Location:      fmt.Sprintf("%v, %v", pos.Latitude, pos.Longitude),
		Symptoms:      "Emergency Alert",
		ContactNumber: c.userPhone,
	})
	c.sink.ClearStatus()
	if err != nil {
		c.logger.Error("ambulance dispatch failed", "error", err)
		c.addMessage(ctx, "Failed to call emergency services. Please call 911 immediately!", store.SenderBot, false)
		return
	}

	c.addMessage(ctx, fmt.Sprintf("🚨 EMERGENCY: %s", result.Message), store.SenderBot, false)
}

// BookAppointment asks for a preferred time and books it. hospitalName
// names the chosen hospital, or is empty when none was picked.
func (c *Controller) BookAppointment(ctx context.Context, hospitalName string) {
	msg := "I want to book a doctor appointment"
	if hospitalName != "" {
		msg += " at " + hospitalName
	}
	c.addMessage(ctx, msg, store.SenderUser, false)

	when := c.prompter.Input("Enter preferred time (e.g., Tomorrow 10 AM):")
	if when == "" {
		return
	}
	c.sink.ShowStatus("booking appointment")

	result, err := c.client.BookAppointment(ctx, api.AppointmentRequest{
		HospitalID:    1,
		UserName:      c.userName,
		UserPhone:     c.userPhone,
		Symptoms:      "General checkup",
		PreferredTime: when,
	})
	c.sink.ClearStatus()
	if err != nil {
		c.logger.Error("appointment booking failed", "error", err)
		c.addMessage(ctx, "Failed to book appointment.", store.SenderBot, false)
		return
	}

	confirmation := "Appointment booked! " + result.Message
	if hospitalName != "" {
		confirmation = fmt.Sprintf("Appointment booked! Your appointment at %s is confirmed.", hospitalName)
	}
	c.addMessage(ctx, confirmation, store.SenderBot, false)
	c.session.Speak("Appointment booked successfully.")
}

// BuyMedicine hands the named medicine to the shopping agent and shows
// the cart result. Progress is surfaced through the status line while
// the agent works.
func (c *Controller) BuyMedicine(ctx context.Context, medicineName string) {
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.buyProgress(medicineName, stop)
	}()

	result, err := c.client.BuyMedicine(ctx, medicineName)
	close(stop)
	// Wait for the progress goroutine so its last ShowStatus cannot
	// land after the ClearStatus below.
	<-done
	c.sink.ClearStatus()
	if err != nil {
		c.logger.Error("buy medicine failed", "medicine", medicineName, "error", err)
		c.addMessage(ctx, "❌ Failed to contact shopping agent. Please try again.", store.SenderBot, false)
		return
	}
	if !result.Success {
		c.addMessage(ctx, fmt.Sprintf("❌ Failed to add medicine to cart: %s", result.Message), store.SenderBot, false)
		return
	}

	c.addMessage(ctx, render.BuyResultCard(result), store.SenderBot, false)
	c.session.Speak(result.Message)
}

// buyProgress walks the status line through the shopping agent's stages
// until stop closes.
func (c *Controller) buyProgress(medicineName string, stop <-chan struct{}) {
	stages := []string{
		fmt.Sprintf("🔍 Searching for %s", medicineName),
		fmt.Sprintf("💊 Found %s. Verifying details", medicineName),
		fmt.Sprintf("🛒 Adding %s to cart", medicineName),
		"✅ Verifying cart contents",
	}

	c.sink.ShowStatus("Initializing shopping agent")
	ticker := time.NewTicker(buyProgressInterval)
	defer ticker.Stop()

	for _, stage := range stages {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.sink.ShowStatus(stage)
		}
	}
	<-stop
}

// OrderMedicine confirms and places an order for the named medicine.
func (c *Controller) OrderMedicine(ctx context.Context, medicineName string) {
	if medicineName == "" {
		return
	}
	if !c.prompter.Confirm(fmt.Sprintf("Do you want to place an order for %s?", medicineName)) {
		return
	}
	c.sink.ShowStatus("placing order")

	result, err := c.client.OrderMedicine(ctx, 1, 1)
	c.sink.ClearStatus()
	if err != nil {
		c.logger.Error("order failed", "medicine", medicineName, "error", err)
		c.addMessage(ctx, "Failed to place order.", store.SenderBot, false)
		return
	}

	c.logger.Info("order placed", "medicine", medicineName, "order_id", result.OrderID)
	c.addMessage(ctx, fmt.Sprintf("Order placed successfully for %s! Order ID: %s", medicineName, result.OrderID), store.SenderBot, false)
}

// position resolves the user's position with a bounded wait.
func (c *Controller) position(ctx context.Context) (Position, error) {
	ctx, cancel := context.WithTimeout(ctx, c.locTimeout)
	defer cancel()

	pos, err := c.locator.Position(ctx)
	if err != nil {
		return Position{}, fmt.Errorf("resolving position: %w", err)
	}
	return pos, nil
}

// fireReminder surfaces a due medicine reminder.
func (c *Controller) fireReminder(name, frequency string) {
	c.renderer.Render(store.Message{
		Text:   fmt.Sprintf("⏰ Time to take %s! Dosage: %s", name, frequency),
		Sender: store.SenderBot,
	}, true)
	c.session.Speak(fmt.Sprintf("It is time to take your %s.", name))
}
