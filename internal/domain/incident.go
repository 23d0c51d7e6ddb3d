package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"roadIncidents/pkg/e"
)

const (
	CityCodeLength       = 5
	DepartmentCodeLength = 2
	MaxNoteLength        = 1000
)

// Incident is a recorded road-traffic accident. It is immutable once built
// by NewIncident.
type Incident struct {
	ID               uuid.UUID `json:"id"`
	OccurredAt       time.Time `json:"occurred_at"`
	CityCode         string    `json:"city_code"`
	IncidentTypeID   int       `json:"incident_type_id"`
	VehiclesInvolved int       `json:"vehicles_involved"`
	Victims          int       `json:"victims"`
	Note             *string   `json:"note,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewIncident builds an Incident from a draft, enforcing the entity
// invariants regardless of any earlier request validation.
func NewIncident(d CreateIncidentRequest) (*Incident, error) {
	const op = "domain.NewIncident"

	switch {
	case strings.TrimSpace(d.CityCode) == "":
		return nil, fmt.Errorf("%s: city code is required: %w", op, e.ErrInvalidInput)
	case len(d.CityCode) != CityCodeLength || !allDigits(d.CityCode):
		return nil, fmt.Errorf("%s: city code must be %d digits: %w", op, CityCodeLength, e.ErrInvalidInput)
	case d.OccurredAt.IsZero():
		return nil, fmt.Errorf("%s: occurrence time is required: %w", op, e.ErrInvalidInput)
	case d.IncidentTypeID <= 0:
		return nil, fmt.Errorf("%s: incident type is required: %w", op, e.ErrInvalidInput)
	case d.VehiclesInvolved < 0:
		return nil, fmt.Errorf("%s: vehicles involved cannot be negative: %w", op, e.ErrInvalidInput)
	case d.Victims < 0:
		return nil, fmt.Errorf("%s: victims cannot be negative: %w", op, e.ErrInvalidInput)
	}

	note := cleanNote(d.Note)
	if note != nil && utf8.RuneCountInString(*note) > MaxNoteLength {
		return nil, fmt.Errorf("%s: note exceeds %d characters: %w", op, MaxNoteLength, e.ErrInvalidInput)
	}

	return &Incident{
		ID:               uuid.New(),
		OccurredAt:       d.OccurredAt,
		CityCode:         d.CityCode,
		IncidentTypeID:   d.IncidentTypeID,
		VehiclesInvolved: d.VehiclesInvolved,
		Victims:          d.Victims,
		Note:             note,
		CreatedAt:        time.Now().UTC(),
	}, nil
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func cleanNote(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// IncidentView is an incident with its city, department and type names resolved.
type IncidentView struct {
	ID               uuid.UUID `json:"id"`
	OccurredAt       time.Time `json:"occurred_at"`
	CityCode         string    `json:"city_code"`
	City             string    `json:"city"`
	DepartmentCode   string    `json:"department_code"`
	Department       string    `json:"department"`
	IncidentTypeID   int       `json:"incident_type_id"`
	IncidentType     string    `json:"incident_type"`
	VehiclesInvolved int       `json:"vehicles_involved"`
	Victims          int       `json:"victims"`
	Note             *string   `json:"note"`
}
