package domain

import (
	"github.com/go-openapi/strfmt"
)

// Zone is a geofenced area inside a campus. It only references its campus by id.
type Zone struct {
	ID          string          `json:"id"`
	CampusID    string          `json:"campusId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Coordinates []Coordinate    `json:"coordinates"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   strfmt.DateTime `json:"createdAt"`
	UpdatedAt   strfmt.DateTime `json:"updatedAt"`
}

func (z Zone) Key() string { return z.ID }

type ZonePayload struct {
	Name        string       `json:"name" validate:"required"`
	Description string       `json:"description" validate:"required"`
	Coordinates []Coordinate `json:"coordinates" validate:"len=4"`
	CampusID    string       `json:"campusId" validate:"required"`
}

func (z Zone) Payload() *ZonePayload {
	return &ZonePayload{
		Name:        z.Name,
		Description: z.Description,
		Coordinates: cloneQuad(z.Coordinates),
		CampusID:    z.CampusID,
	}
}

func NewZoneDraft() Draft {
	d := Draft{"campusId": "", "name": "", "description": ""}
	putQuad(d, nil)
	return d
}

func ZoneDraftOf(z Zone) Draft {
	d := Draft{
		"campusId":    z.CampusID,
		"name":        z.Name,
		"description": z.Description,
	}
	putQuad(d, z.Coordinates)
	return d
}

func BuildZonePayload(d Draft) (ZonePayload, error) {
	if d.Blank("campusId") {
		return ZonePayload{}, &ValidationError{Level: LevelError, Message: MsgCampusRequired, Field: "campusId", Inline: MsgCampusRequired}
	}

	quad, quadErr := readQuad(d)
	if missing := missingFields(d, "name", "description"); missing != nil {
		verr := &ValidationError{Level: LevelError, Message: MsgAllFieldsRequired, Cause: missing}
		if ve, ok := quadErr.(*ValidationError); ok && ve.Inline == MsgQuadIncomplete {
			verr.Field, verr.Inline = ve.Field, ve.Inline
		}
		return ZonePayload{}, verr
	}
	if quadErr != nil {
		return ZonePayload{}, quadErr
	}

	return ZonePayload{
		Name:        d.Get("name"),
		Description: d.Get("description"),
		Coordinates: quad,
		CampusID:    d.Get("campusId"),
	}, nil
}

func ApplyZoneDraft(base Zone, d Draft) (Zone, error) {
	p, err := BuildZonePayload(d)
	if err != nil {
		return Zone{}, err
	}
	out := base
	out.CampusID = p.CampusID
	out.Name = p.Name
	out.Description = p.Description
	out.Coordinates = p.Coordinates
	return out, nil
}
