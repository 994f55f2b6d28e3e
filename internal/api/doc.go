// Package api is the HTTP client for the Nexus Health backend.
//
// # Endpoints
//
//   - POST /api/chat/text: chat message, may carry an action and
//     medicine recommendations
//   - POST /api/medical/analyze-prescription: multipart file upload
//   - POST /api/medical/buy-medicine: shopping-agent cart add
//   - POST /api/medical/order-medicine: order placement (query params)
//   - GET  /api/emergency/hospitals/nearby: hospital lookup
//   - POST /api/emergency/ambulance: emergency dispatch
//   - POST /api/appointments/book: appointment booking
//
// # Failure model
//
// Transport errors and non-2xx statuses come back as wrapped errors.
// No call is retried and no client-side timeout is applied; callers
// bound calls through their context if they need to. Every failure is
// terminal for the user action that triggered it.
package api
