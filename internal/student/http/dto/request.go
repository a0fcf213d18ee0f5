// Package dto provides data transfer objects for the student HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/recordseal/internal/validation"
)

// MaxPayloadLength bounds the size of a Level-1 envelope accepted by the store.
const MaxPayloadLength = 1 << 20

// StudentRequest carries a Level-1 envelope for create and update.
type StudentRequest struct {
	Payload string `json:"payload"`
}

// Validate checks that the payload is a non-empty printable ASCII string within bounds.
func (r *StudentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Payload,
			validation.Required,
			validation.Length(1, MaxPayloadLength),
			customValidation.PrintableASCII,
		),
	)
}
