package domain

import (
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

type Campus struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Description         string          `json:"description"`
	EduMailExtension    string          `json:"eduMailExtension"`
	AverageHalfDistance float64         `json:"averageHalfDistance"`
	Coordinates         []Coordinate    `json:"coordinates"`
	IsActive            bool            `json:"isActive"`
	Zones               []Zone          `json:"zones,omitempty"`
	CreatedAt           strfmt.DateTime `json:"createdAt"`
	UpdatedAt           strfmt.DateTime `json:"updatedAt"`
}

func (c Campus) Key() string { return c.ID }

// CampusPayload is the body of create and update calls.
type CampusPayload struct {
	Name                string       `json:"name" validate:"required"`
	Description         string       `json:"description" validate:"required"`
	EduMailExtension    string       `json:"eduMailExtension" validate:"required"`
	AverageHalfDistance float64      `json:"averageHalfDistance" validate:"gte=0"`
	Coordinates         []Coordinate `json:"coordinates" validate:"len=4"`
}

func (c Campus) Payload() *CampusPayload {
	return &CampusPayload{
		Name:                c.Name,
		Description:         c.Description,
		EduMailExtension:    c.EduMailExtension,
		AverageHalfDistance: c.AverageHalfDistance,
		Coordinates:         cloneQuad(c.Coordinates),
	}
}

type CampusFilter struct {
	Name             string `json:"name,omitempty" form:"name"`
	EduMailExtension string `json:"eduMailExtension,omitempty" form:"eduMailExtension"`
}

// CampusOption is one entry of the campus picker used by zone forms.
type CampusOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var campusScalarFields = []string{"name", "description", "eduMailExtension", "averageHalfDistance"}

func NewCampusDraft() Draft {
	d := Draft{}
	for _, f := range campusScalarFields {
		d[f] = ""
	}
	putQuad(d, nil)
	return d
}

// CampusDraftOf flattens a campus into an edit draft.
func CampusDraftOf(c Campus) Draft {
	d := Draft{
		"name":                c.Name,
		"description":         c.Description,
		"eduMailExtension":    c.EduMailExtension,
		"averageHalfDistance": FormatDecimal(c.AverageHalfDistance),
	}
	putQuad(d, c.Coordinates)
	return d
}

// BuildCampusPayload validates a campus draft and coerces its numeric fields.
func BuildCampusPayload(d Draft) (CampusPayload, error) {
	quad, quadErr := readQuad(d)
	if missing := missingFields(d, campusScalarFields...); missing != nil {
		verr := &ValidationError{Level: LevelError, Message: MsgAllFieldsRequired, Cause: missing}
		if ve, ok := quadErr.(*ValidationError); ok && ve.Inline == MsgQuadIncomplete {
			verr.Field, verr.Inline = ve.Field, ve.Inline
		}
		return CampusPayload{}, verr
	}
	if quadErr != nil {
		return CampusPayload{}, quadErr
	}

	distance, err := ParseDecimal(d.Get("averageHalfDistance"))
	if err != nil {
		return CampusPayload{}, notANumber("Average half distance", err)
	}
	if verr := validate.Minimum("averageHalfDistance", "body", distance, 0, false); verr != nil {
		return CampusPayload{}, &ValidationError{
			Level:   LevelError,
			Message: "Average half distance cannot be negative",
			Cause:   verr,
		}
	}

	return CampusPayload{
		Name:                d.Get("name"),
		Description:         d.Get("description"),
		EduMailExtension:    d.Get("eduMailExtension"),
		AverageHalfDistance: distance,
		Coordinates:         quad,
	}, nil
}

// ApplyCampusDraft returns base overwritten with the draft's fields. Fields the
// draft does not carry (identity, status, timestamps, zones) are kept from base.
func ApplyCampusDraft(base Campus, d Draft) (Campus, error) {
	p, err := BuildCampusPayload(d)
	if err != nil {
		return Campus{}, err
	}
	out := base
	out.Name = p.Name
	out.Description = p.Description
	out.EduMailExtension = p.EduMailExtension
	out.AverageHalfDistance = p.AverageHalfDistance
	out.Coordinates = p.Coordinates
	return out, nil
}
