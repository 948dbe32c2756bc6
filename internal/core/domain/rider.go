package domain

import (
	"io"

	"github.com/go-openapi/strfmt"
)

type RiderStatus string

const (
	RiderPending  RiderStatus = "PENDING"
	RiderApproved RiderStatus = "APPROVED"
	RiderRejected RiderStatus = "REJECTED"
)

func (s RiderStatus) Valid() bool {
	switch s {
	case RiderPending, RiderApproved, RiderRejected:
		return true
	}
	return false
}

// DocumentKind names one uploaded rider document. The value is also the
// multipart field name sent to the backend.
type DocumentKind string

const (
	NationalIDFront   DocumentKind = "nationalIdFront"
	NationalIDBack    DocumentKind = "nationalIdBack"
	UniversityIDFront DocumentKind = "universityIdFront"
	UniversityIDBack  DocumentKind = "universityIdBack"
	DrivingLicense    DocumentKind = "drivingLicense"
	VehicleLicense    DocumentKind = "vehicleLicense"
	NumberPlate       DocumentKind = "numberPlate"
)

var RiderDocumentKinds = []DocumentKind{
	NationalIDFront, NationalIDBack,
	UniversityIDFront, UniversityIDBack,
	DrivingLicense, VehicleLicense, NumberPlate,
}

// RiderDocuments holds opaque references to files stored by the backend.
type RiderDocuments struct {
	NationalIDFront   string `json:"nationalIdFront,omitempty"`
	NationalIDBack    string `json:"nationalIdBack,omitempty"`
	UniversityIDFront string `json:"universityIdFront,omitempty"`
	UniversityIDBack  string `json:"universityIdBack,omitempty"`
	DrivingLicense    string `json:"drivingLicense,omitempty"`
	VehicleLicense    string `json:"vehicleLicense,omitempty"`
	NumberPlate       string `json:"numberPlate,omitempty"`
}

type Rider struct {
	ID                     string          `json:"id"`
	UserID                 string          `json:"userId,omitempty"`
	FirstName              string          `json:"firstName"`
	LastName               string          `json:"lastName"`
	BikeRegistrationNumber string          `json:"bikeRegistrationNumber"`
	BikeModel              string          `json:"bikeModel"`
	Status                 RiderStatus     `json:"status"`
	Documents              RiderDocuments  `json:"documents"`
	CreatedAt              strfmt.DateTime `json:"createdAt"`
	UpdatedAt              strfmt.DateTime `json:"updatedAt"`
}

func (r Rider) Key() string { return r.ID }

// Upload is one document streamed through to the backend. It is never stored.
type Upload struct {
	Kind     DocumentKind
	Filename string
	Content  io.Reader
}

// RiderApplication is the multipart body of a rider create call.
type RiderApplication struct {
	FirstName              string      `validate:"required"`
	LastName               string      `validate:"required"`
	BikeRegistrationNumber string      `validate:"required"`
	BikeModel              string      `validate:"required"`
	Status                 RiderStatus `validate:"required,oneof=PENDING APPROVED REJECTED"`
	Documents              []Upload    `validate:"len=7"`
}

type RiderFilter struct {
	SearchTerm string `json:"searchTerm,omitempty" form:"searchTerm"`
	Email      string `json:"email,omitempty" form:"email"`
}

// RiderPage is one server-side page of riders.
type RiderPage struct {
	Riders     []Rider
	Page       int
	TotalPages int
	Total      int
}

var riderFields = []string{"firstName", "lastName", "bikeRegistrationNumber", "bikeModel"}

func NewRiderDraft() Draft {
	d := Draft{}
	for _, f := range riderFields {
		d[f] = ""
	}
	return d
}

// BuildRiderApplication validates the text fields and checks that every
// document kind has exactly one upload. Status always starts as PENDING.
func BuildRiderApplication(d Draft, uploads []Upload) (RiderApplication, error) {
	if missing := missingFields(d, riderFields...); missing != nil {
		return RiderApplication{}, &ValidationError{Level: LevelError, Message: MsgAllFieldsRequired, Cause: missing}
	}

	byKind := make(map[DocumentKind]Upload, len(uploads))
	for _, u := range uploads {
		if u.Content == nil {
			continue
		}
		byKind[u.Kind] = u
	}
	docs := make([]Upload, 0, len(RiderDocumentKinds))
	for _, kind := range RiderDocumentKinds {
		u, ok := byKind[kind]
		if !ok {
			return RiderApplication{}, &ValidationError{
				Level:   LevelError,
				Message: MsgDocumentsRequired,
				Field:   string(kind),
				Inline:  "This document is required",
			}
		}
		docs = append(docs, u)
	}

	return RiderApplication{
		FirstName:              d.Get("firstName"),
		LastName:               d.Get("lastName"),
		BikeRegistrationNumber: d.Get("bikeRegistrationNumber"),
		BikeModel:              d.Get("bikeModel"),
		Status:                 RiderPending,
		Documents:              docs,
	}, nil
}

var riderPatchable = map[string]bool{
	"firstName":              true,
	"lastName":               true,
	"bikeRegistrationNumber": true,
	"bikeModel":              true,
	"status":                 true,
}

// BuildRiderPatch turns a partial draft into a PATCH body. Unknown fields are
// rejected and an empty patch is an error.
func BuildRiderPatch(d Draft) (map[string]string, error) {
	if len(d) == 0 {
		return nil, &ValidationError{Level: LevelWarning, Message: "Nothing to update"}
	}
	patch := make(map[string]string, len(d))
	for field, value := range d {
		if !riderPatchable[field] {
			return nil, &ValidationError{Level: LevelError, Message: "Unknown rider field: " + field, Field: field}
		}
		if d.Blank(field) {
			return nil, &ValidationError{Level: LevelError, Message: MsgAllFieldsRequired, Field: field}
		}
		if field == "status" && !RiderStatus(value).Valid() {
			return nil, &ValidationError{Level: LevelError, Message: "Unknown rider status: " + value, Field: field}
		}
		patch[field] = value
	}
	return patch, nil
}

// RiderDraftOf flattens the editable fields of a rider.
func RiderDraftOf(r Rider) Draft {
	return Draft{
		"firstName":              r.FirstName,
		"lastName":               r.LastName,
		"bikeRegistrationNumber": r.BikeRegistrationNumber,
		"bikeModel":              r.BikeModel,
		"status":                 string(r.Status),
	}
}

func ApplyRiderDraft(base Rider, d Draft) (Rider, error) {
	patch, err := BuildRiderPatch(d)
	if err != nil {
		return Rider{}, err
	}
	out := base
	for field, value := range patch {
		switch field {
		case "firstName":
			out.FirstName = value
		case "lastName":
			out.LastName = value
		case "bikeRegistrationNumber":
			out.BikeRegistrationNumber = value
		case "bikeModel":
			out.BikeModel = value
		case "status":
			out.Status = RiderStatus(value)
		}
	}
	return out, nil
}

// EditRider applies the fields of d that differ from base. Fields left as
// they were are not validated, so a record that arrived without a bike can
// be saved unchanged.
func EditRider(base Rider, d Draft) (Rider, error) {
	before := RiderDraftOf(base)
	changed := Draft{}
	for field, value := range d {
		if prev, ok := before[field]; ok && prev == value {
			continue
		}
		changed[field] = value
	}
	if len(changed) == 0 {
		return base, nil
	}
	return ApplyRiderDraft(base, changed)
}

// RiderPatchOf is the PATCH body carrying the non-blank editable fields of r.
func RiderPatchOf(r Rider) map[string]string {
	d := RiderDraftOf(r)
	patch := make(map[string]string, len(d))
	for field, value := range d {
		if d.Blank(field) {
			continue
		}
		patch[field] = value
	}
	return patch
}
