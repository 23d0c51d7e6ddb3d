package postgres

import (
	"roadIncidents/internal/domain"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var incidentColumns = []string{
	"id",
	"occurred_at",
	"city_code",
	"incident_type_id",
	"vehicles_involved",
	"victims",
	"note",
	"created_at",
}

// viewQuery selects incidents with their city, department and type names.
// Column order matches scanView.
func viewQuery() sq.SelectBuilder {
	return psql.
		Select(
			"i.id",
			"i.occurred_at",
			"i.city_code",
			"c.name",
			"c.department_code",
			"d.name",
			"i.incident_type_id",
			"t.name",
			"i.vehicles_involved",
			"i.victims",
			"i.note",
		).
		From("incidents i").
		Join("cities c ON c.code = i.city_code").
		Join("departments d ON d.code = c.department_code").
		Join("incident_types t ON t.id = i.incident_type_id")
}

func buildInsertIncident(inc *domain.Incident) (string, []interface{}, error) {
	return psql.Insert("incidents").
		Columns(incidentColumns...).
		Values(
			inc.ID,
			inc.OccurredAt,
			inc.CityCode,
			inc.IncidentTypeID,
			inc.VehiclesInvolved,
			inc.Victims,
			inc.Note,
			inc.CreatedAt,
		).
		ToSql()
}

func buildGetView(id uuid.UUID) (string, []interface{}, error) {
	return viewQuery().Where("i.id = ?", id).ToSql()
}

// buildCandidateQuery pushes the date window down to the database. Text
// filters are never part of this query.
func buildCandidateQuery(w domain.DateWindow) (string, []interface{}, error) {
	q := viewQuery()
	if w.From != nil {
		q = q.Where(sq.GtOrEq{"i.occurred_at": *w.From})
	}
	if w.To != nil {
		q = q.Where(sq.LtOrEq{"i.occurred_at": *w.To})
	}
	return q.OrderBy("i.occurred_at DESC", "i.id").ToSql()
}
