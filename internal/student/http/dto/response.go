package dto

import (
	"time"

	studentDomain "github.com/allisson/recordseal/internal/student/domain"
)

// UnwrapFailedError is reported in place of the payload when the Level-2 layer could not be
// removed. Clients show such records with the decryption failed placeholder.
const UnwrapFailedError = "decryption_failed"

// StudentResponse represents a student in API responses. Payload is the Level-1 envelope and
// is only included when reading.
type StudentResponse struct {
	ID        string    `json:"id"`
	Payload   string    `json:"payload,omitempty"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListStudentsResponse represents a page of students.
type ListStudentsResponse struct {
	Data []StudentResponse `json:"data"`
}

// MapStudentToWriteResponse converts a student to a create or update response. The payload is
// not echoed back.
func MapStudentToWriteResponse(student *studentDomain.Student) StudentResponse {
	return StudentResponse{
		ID:        student.ID.String(),
		CreatedAt: student.CreatedAt,
		UpdatedAt: student.UpdatedAt,
	}
}

// MapStudentToReadResponse converts a student to a read response.
func MapStudentToReadResponse(student *studentDomain.Student) StudentResponse {
	response := MapStudentToWriteResponse(student)
	if student.Unavailable {
		response.Error = UnwrapFailedError
		return response
	}
	response.Payload = student.Payload
	return response
}

// MapStudentsToListResponse converts a page of students to a list response.
func MapStudentsToListResponse(students []*studentDomain.Student) ListStudentsResponse {
	data := make([]StudentResponse, 0, len(students))
	for _, student := range students {
		data = append(data, MapStudentToReadResponse(student))
	}
	return ListStudentsResponse{Data: data}
}
