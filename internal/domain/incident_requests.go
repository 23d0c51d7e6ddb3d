package domain

import (
	"time"

	"github.com/google/uuid"
)

type CreateIncidentRequest struct {
	OccurredAt       time.Time `json:"occurred_at" validate:"required"`
	CityCode         string    `json:"city_code" validate:"required,len=5,digits"`
	IncidentTypeID   int       `json:"incident_type_id" validate:"gt=0"`
	VehiclesInvolved int       `json:"vehicles_involved" validate:"gte=0"`
	Victims          int       `json:"victims" validate:"gte=0"`
	Note             *string   `json:"note" validate:"omitempty,max=1000"`
}

type GetIncidentRequest struct {
	ID uuid.UUID `json:"id"`
}

// SearchIncidentsRequest holds the filter criteria and page request of a search.
// Department and City are name fragments matched flexibly; From and To bound
// the occurrence time inclusively.
type SearchIncidentsRequest struct {
	Department string     `json:"department"`
	City       string     `json:"city"`
	From       *time.Time `json:"from"`
	To         *time.Time `json:"to"`
	Page       int        `json:"page" validate:"gt=0"`
	PageSize   int        `json:"page_size" validate:"gt=0,lte=100"`
}

type ListCitiesRequest struct {
	DepartmentCode string `json:"department_code" validate:"required,len=2,digits"`
}

// DateWindow is the only search predicate evaluated by the store.
type DateWindow struct {
	From *time.Time
	To   *time.Time
}

// NewDateWindow builds the store predicate for a search. A To value without a
// time-of-day component covers that whole day.
func NewDateWindow(from, to *time.Time) DateWindow {
	w := DateWindow{From: from}
	if to != nil {
		end := EndOfDayIfDateOnly(*to)
		w.To = &end
	}
	return w
}

// EndOfDayIfDateOnly moves a midnight timestamp to the last nanosecond of the
// same day, in the timestamp's own location.
func EndOfDayIfDateOnly(t time.Time) time.Time {
	h, m, s := t.Clock()
	if h != 0 || m != 0 || s != 0 || t.Nanosecond() != 0 {
		return t
	}
	return t.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func (w DateWindow) Contains(t time.Time) bool {
	if w.From != nil && t.Before(*w.From) {
		return false
	}
	if w.To != nil && t.After(*w.To) {
		return false
	}
	return true
}
