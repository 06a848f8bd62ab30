package events

import "time"

const (
	EventLogin               = "LOGIN"
	EventLogout              = "LOGOUT"
	EventClockIn             = "CLOCK_IN"
	EventClockOut            = "CLOCK_OUT"
	EventAnnouncementCreated = "ANNOUNCEMENT_CREATED"
	EventAnnouncementUpdated = "ANNOUNCEMENT_UPDATED"
	EventAnnouncementDeleted = "ANNOUNCEMENT_DELETED"
	EventWorkingHoursUpdated = "WORKING_HOURS_UPDATED"
	EventHolidayCreated      = "HOLIDAY_CREATED"
	EventHolidayDeleted      = "HOLIDAY_DELETED"
	EventServerShutdown      = "SERVER_SHUTDOWN"
)

// AuditEvent adalah payload yang dikirim ke topic audit dashboard.
type AuditEvent struct {
	ID         string         `json:"id"`
	EventType  string         `json:"event_type"`
	RequestID  string         `json:"request_id,omitempty"`
	SessionID  string         `json:"session_id,omitempty"`
	Role       string         `json:"role,omitempty"`
	Message    string         `json:"message"`
	Meta       map[string]any `json:"meta,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}
