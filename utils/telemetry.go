package utils

import (
	"log"
	"time"

	"lms/config"

	"github.com/go-resty/resty/v2"
)

// ErrorEvent is the payload posted to the telemetry webhook for 5xx responses
type ErrorEvent struct {
	Path       string    `json:"path"`
	Method     string    `json:"method"`
	StatusCode int       `json:"status_code"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

var telemetryClient = resty.New().SetTimeout(5 * time.Second)

// ReportError posts an error event to the configured webhook. Fire-and-forget;
// delivery failures are only logged.
func ReportError(path, method string, statusCode int, message string) {
	webhookURL := config.AppConfig.TelemetryWebhookURL
	if webhookURL == "" {
		return
	}

	event := ErrorEvent{
		Path:       path,
		Method:     method,
		StatusCode: statusCode,
		Message:    message,
		OccurredAt: time.Now(),
	}

	go func() {
		resp, err := telemetryClient.R().
			SetHeader("Content-Type", "application/json").
			SetBody(event).
			Post(webhookURL)
		if err != nil {
			log.Printf("Error posting telemetry event: %v", err)
			return
		}
		if resp.StatusCode() >= 400 {
			log.Printf("Telemetry webhook returned %d", resp.StatusCode())
		}
	}()
}
