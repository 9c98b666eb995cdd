package dto

import "time"

// AppointmentAgendaDTO is the flattened row the agenda views render: one
// line per appointment with the names already joined in.
type AppointmentAgendaDTO struct {
	ID               uint      `json:"id"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	Status           string    `json:"status"`
	ClientName       string    `json:"client_name"`
	ServiceName      string    `json:"service_name"`
	ProfessionalName string    `json:"professional_name"`
}
