package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	recordDomain "github.com/allisson/recordseal/internal/record/domain"
	recordUsecase "github.com/allisson/recordseal/internal/record/usecase"
)

// recordPrompt pairs a form label with the record field it fills.
type recordPrompt struct {
	label string
	field func(rec *recordDomain.StudentRecord) *string
}

var recordPrompts = []recordPrompt{
	{"Full name", func(r *recordDomain.StudentRecord) *string { return &r.FullName }},
	{"Email", func(r *recordDomain.StudentRecord) *string { return &r.Email }},
	{"Phone", func(r *recordDomain.StudentRecord) *string { return &r.Phone }},
	{"Date of birth (YYYY-MM-DD)", func(r *recordDomain.StudentRecord) *string { return &r.DOB }},
	{"Gender", func(r *recordDomain.StudentRecord) *string { return &r.Gender }},
	{"Address", func(r *recordDomain.StudentRecord) *string { return &r.Address }},
	{"Course", func(r *recordDomain.StudentRecord) *string { return &r.Course }},
	{"Password", func(r *recordDomain.StudentRecord) *string { return &r.Password }},
}

// RunAddStudent seals a record and stores it. The record is taken from recordJSON, or
// prompted for field by field when recordJSON is empty.
func RunAddStudent(
	ctx context.Context,
	recordUseCase recordUsecase.RecordUseCase,
	logger *slog.Logger,
	io IOTuple,
	recordJSON string,
) error {
	rec, err := recordFromInput(io, recordJSON)
	if err != nil {
		return err
	}

	id, err := recordUseCase.Add(ctx, rec)
	if err != nil {
		return fmt.Errorf("failed to add student: %w", err)
	}

	_, _ = fmt.Fprintf(io.Writer, "Student added: %s\n", id)
	logger.Info("student added", slog.String("student_id", id))
	return nil
}

// RunUpdateStudent seals a replacement record for id.
func RunUpdateStudent(
	ctx context.Context,
	recordUseCase recordUsecase.RecordUseCase,
	logger *slog.Logger,
	io IOTuple,
	id string,
	recordJSON string,
) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("student id is required")
	}

	rec, err := recordFromInput(io, recordJSON)
	if err != nil {
		return err
	}

	if err := recordUseCase.Update(ctx, id, rec); err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}

	_, _ = fmt.Fprintf(io.Writer, "Student updated: %s\n", id)
	logger.Info("student updated", slog.String("student_id", id))
	return nil
}

// RunDeleteStudent removes the student with id.
func RunDeleteStudent(
	ctx context.Context,
	recordUseCase recordUsecase.RecordUseCase,
	logger *slog.Logger,
	writer io.Writer,
	id string,
) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("student id is required")
	}

	if err := recordUseCase.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "Student deleted: %s\n", id)
	logger.Info("student deleted", slog.String("student_id", id))
	return nil
}

// RunListStudents fetches a page of students and prints them. Records that cannot be
// opened are printed as placeholders and never abort the listing.
func RunListStudents(
	ctx context.Context,
	recordUseCase recordUsecase.RecordUseCase,
	logger *slog.Logger,
	writer io.Writer,
	offset, limit int,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	records, err := recordUseCase.List(ctx, offset, limit)
	if err != nil {
		return fmt.Errorf("failed to list students: %w", err)
	}

	if format == FormatJSON {
		if err := writeJSON(writer, toStudentListOutput(records)); err != nil {
			return err
		}
	} else {
		outputStudentsText(records, writer)
	}

	unreadable := 0
	for _, r := range records {
		if r.IsPlaceholder() {
			unreadable++
		}
	}
	logger.Info("students listed",
		slog.Int("count", len(records)),
		slog.Int("unreadable", unreadable),
	)
	return nil
}

type studentOutput struct {
	ID     string                     `json:"id"`
	Status recordDomain.Status        `json:"status"`
	Record recordDomain.StudentRecord `json:"record"`
}

func toStudentListOutput(records []recordDomain.OpenedRecord) []studentOutput {
	out := make([]studentOutput, 0, len(records))
	for _, r := range records {
		rec := r.Record
		// Shown as a marker; the list never reveals stored passwords.
		rec.Password = recordDomain.UnavailableMarker
		out = append(out, studentOutput{ID: r.ID, Status: r.Status, Record: rec})
	}
	return out
}

func outputStudentsText(records []recordDomain.OpenedRecord, writer io.Writer) {
	if len(records) == 0 {
		_, _ = fmt.Fprintln(writer, "No students found")
		return
	}
	for _, r := range records {
		_, _ = fmt.Fprintf(writer, "ID:      %s\n", r.ID)
		if r.IsPlaceholder() {
			_, _ = fmt.Fprintf(writer, "Status:  %s\n", r.Status)
		}
		_, _ = fmt.Fprintf(writer, "Name:    %s\n", r.Record.FullName)
		_, _ = fmt.Fprintf(writer, "Email:   %s\n", r.Record.Email)
		_, _ = fmt.Fprintf(writer, "Phone:   %s\n", r.Record.Phone)
		_, _ = fmt.Fprintf(writer, "DOB:     %s\n", r.Record.DOB)
		_, _ = fmt.Fprintf(writer, "Gender:  %s\n", r.Record.Gender)
		_, _ = fmt.Fprintf(writer, "Address: %s\n", r.Record.Address)
		_, _ = fmt.Fprintf(writer, "Course:  %s\n", r.Record.Course)
		_, _ = fmt.Fprintln(writer)
	}
}

func recordFromInput(io IOTuple, recordJSON string) (recordDomain.StudentRecord, error) {
	if recordJSON != "" {
		return parseRecordJSON(recordJSON)
	}
	rec, err := promptForRecord(io)
	if err != nil {
		return recordDomain.StudentRecord{}, fmt.Errorf("failed to read record: %w", err)
	}
	return rec, nil
}

func promptForRecord(streams IOTuple) (recordDomain.StudentRecord, error) {
	reader := bufio.NewReader(streams.Reader)
	writer := streams.Writer
	var rec recordDomain.StudentRecord

	_, _ = fmt.Fprintln(writer, "\nEnter the student record")
	_, _ = fmt.Fprintln(writer)

	for _, p := range recordPrompts {
		_, _ = fmt.Fprintf(writer, "%s: ", p.label)
		value, err := reader.ReadString('\n')
		// A last line without a newline is still accepted.
		if err != nil && (!errors.Is(err, io.EOF) || value == "") {
			return recordDomain.StudentRecord{}, fmt.Errorf("failed to read %s: %w", strings.ToLower(p.label), err)
		}
		*p.field(&rec) = strings.TrimSpace(value)
	}

	return rec, nil
}
