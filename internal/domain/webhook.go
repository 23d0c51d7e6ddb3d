package domain

import (
	"time"

	"github.com/google/uuid"
)

type IncidentCreatedEvent struct {
	IncidentID       uuid.UUID `json:"incident_id"`
	OccurredAt       time.Time `json:"occurred_at"`
	CityCode         string    `json:"city_code"`
	IncidentTypeID   int       `json:"incident_type_id"`
	VehiclesInvolved int       `json:"vehicles_involved"`
	Victims          int       `json:"victims"`
	CreatedAt        time.Time `json:"created_at"`
}

func NewIncidentCreatedEvent(inc *Incident) IncidentCreatedEvent {
	return IncidentCreatedEvent{
		IncidentID:       inc.ID,
		OccurredAt:       inc.OccurredAt,
		CityCode:         inc.CityCode,
		IncidentTypeID:   inc.IncidentTypeID,
		VehiclesInvolved: inc.VehiclesInvolved,
		Victims:          inc.Victims,
		CreatedAt:        inc.CreatedAt,
	}
}
