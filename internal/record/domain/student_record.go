// Package domain defines the student record handled by the Level-1 client and the
// placeholders shown when a stored record cannot be read.
package domain

import (
	"bytes"
	"encoding/json"

	validation "github.com/jellydator/validation"

	"github.com/allisson/recordseal/internal/errors"
	customValidation "github.com/allisson/recordseal/internal/validation"
)

// ErrInvalidRecord indicates a record failed validation before encryption.
var ErrInvalidRecord = errors.Wrap(errors.ErrInvalidInput, "invalid student record")

// StudentRecord is the plaintext record sealed by Level 1. Field order is the canonical
// JSON order.
type StudentRecord struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	DOB      string `json:"dob"`
	Gender   string `json:"gender"`
	Address  string `json:"address"`
	Course   string `json:"course"`
	Password string `json:"password"`
}

// Validate requires every field and checks email and date formats.
func (r *StudentRecord) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.FullName, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Email, validation.Required, customValidation.Email),
		validation.Field(&r.Phone, validation.Required, customValidation.NotBlank, customValidation.NoWhitespace),
		validation.Field(&r.DOB, validation.Required, customValidation.Date),
		validation.Field(&r.Gender, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Address, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Course, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Password, validation.Required),
	)
	if err != nil {
		return errors.Wrap(ErrInvalidRecord, err.Error())
	}
	return nil
}

// MarshalCanonical encodes the record as compact JSON in field declaration order.
func (r StudentRecord) MarshalCanonical() ([]byte, error) {
	return json.Marshal(r)
}

// UnmarshalRecord decodes a record, rejecting unknown fields and trailing data.
func UnmarshalRecord(data []byte) (StudentRecord, error) {
	var rec StudentRecord
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rec); err != nil {
		return StudentRecord{}, errors.Wrap(ErrInvalidRecord, err.Error())
	}
	if dec.More() {
		return StudentRecord{}, errors.Wrap(ErrInvalidRecord, "trailing data after record")
	}
	return rec, nil
}
