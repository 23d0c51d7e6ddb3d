package service_test

import (
	"bytes"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"roadIncidents/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func view(city, department string, at time.Time) domain.IncidentView {
	return domain.IncidentView{
		ID:               uuid.New(),
		OccurredAt:       at,
		CityCode:         "00000",
		City:             city,
		DepartmentCode:   "00",
		Department:       department,
		IncidentTypeID:   int(domain.IncidentTypeCollision),
		IncidentType:     "Choque",
		VehiclesInvolved: 2,
	}
}

func day(d, h int) time.Time {
	return time.Date(2025, 1, d, h, 0, 0, 0, time.UTC)
}

func validCreateRequest() domain.CreateIncidentRequest {
	return domain.CreateIncidentRequest{
		OccurredAt:       day(10, 8),
		CityCode:         "73001",
		IncidentTypeID:   int(domain.IncidentTypeRollover),
		VehiclesInvolved: 1,
		Victims:          0,
		Note:             strPtr("  overturned truck  "),
	}
}
