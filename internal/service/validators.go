package service

import (
	"context"

	"roadIncidents/internal/domain"
	"roadIncidents/internal/pipeline"
)

// RegisterValidators installs the rule sets for every request type handled
// by Service. GetIncidentRequest has none.
func RegisterValidators(r *pipeline.Registry) {
	pipeline.Register[domain.CreateIncidentRequest](r,
		pipeline.FieldRules[domain.CreateIncidentRequest]("OccurredAt"),
		pipeline.FieldRules[domain.CreateIncidentRequest]("CityCode"),
		pipeline.FieldRules[domain.CreateIncidentRequest]("IncidentTypeID"),
		pipeline.FieldRules[domain.CreateIncidentRequest]("VehiclesInvolved", "Victims"),
		pipeline.FieldRules[domain.CreateIncidentRequest]("Note"),
	)

	pipeline.Register[domain.SearchIncidentsRequest](r,
		pipeline.StructRules[domain.SearchIncidentsRequest](),
		pipeline.ValidatorFunc[domain.SearchIncidentsRequest](dateRangeRule),
	)

	pipeline.Register[domain.ListCitiesRequest](r,
		pipeline.StructRules[domain.ListCitiesRequest](),
	)
}

func dateRangeRule(_ context.Context, req domain.SearchIncidentsRequest) []pipeline.FieldError {
	if req.From != nil && req.To != nil && req.From.After(*req.To) {
		return []pipeline.FieldError{{Field: "from", Message: "from must not be after to"}}
	}
	return nil
}
