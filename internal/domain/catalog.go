package domain

// Department codes and city codes are opaque fixed-width strings
// (DIVIPOLA codes), never parsed as numbers.

type Department struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type City struct {
	Code           string `json:"code"`
	DepartmentCode string `json:"department_code"`
	Name           string `json:"name"`
}

type IncidentTypeID int

const (
	IncidentTypeCollision        IncidentTypeID = 1
	IncidentTypePedestrianStrike IncidentTypeID = 2
	IncidentTypeRollover         IncidentTypeID = 3
	IncidentTypeFire             IncidentTypeID = 4
	IncidentTypeOther            IncidentTypeID = 5
)

type IncidentType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
