package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	recordDomain "github.com/allisson/recordseal/internal/record/domain"
	"github.com/allisson/recordseal/internal/record/usecase/mocks"
)

func sampleRecord() recordDomain.StudentRecord {
	return recordDomain.StudentRecord{
		FullName: "Grace Hopper",
		Email:    "grace@example.edu",
		Phone:    "555-0101",
		DOB:      "1906-12-09",
		Gender:   "female",
		Address:  "1 Navy Yard",
		Course:   "Mathematics",
		Password: "cobol",
	}
}

func TestRunAddStudent(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()

	t.Run("from json flag", func(t *testing.T) {
		uc := mocks.NewMockRecordUseCase(t)
		uc.On("Add", ctx, sampleRecord()).Return("0190a1b2-0000-7000-8000-000000000001", nil)

		var out bytes.Buffer
		err := RunAddStudent(ctx, uc, logger, IOTuple{Reader: strings.NewReader(""), Writer: &out}, sampleRecordJSON)
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Student added: 0190a1b2-0000-7000-8000-000000000001")
	})

	t.Run("interactive prompts", func(t *testing.T) {
		uc := mocks.NewMockRecordUseCase(t)
		uc.On("Add", ctx, sampleRecord()).Return("id-1", nil)

		input := strings.Join([]string{
			"Grace Hopper",
			"grace@example.edu",
			"555-0101",
			"1906-12-09",
			"female",
			"1 Navy Yard",
			"Mathematics",
			"cobol",
		}, "\n")

		var out bytes.Buffer
		err := RunAddStudent(ctx, uc, logger, IOTuple{Reader: strings.NewReader(input), Writer: &out}, "")
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Full name: ")
		assert.Contains(t, out.String(), "Date of birth (YYYY-MM-DD): ")
		assert.Contains(t, out.String(), "Student added: id-1")
	})

	t.Run("interactive input ends early", func(t *testing.T) {
		uc := mocks.NewMockRecordUseCase(t)

		err := RunAddStudent(ctx, uc, logger,
			IOTuple{Reader: strings.NewReader("Grace Hopper\n"), Writer: &bytes.Buffer{}}, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read email")
	})

	t.Run("invalid json", func(t *testing.T) {
		uc := mocks.NewMockRecordUseCase(t)

		err := RunAddStudent(ctx, uc, logger, IOTuple{Writer: &bytes.Buffer{}}, "{")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse record JSON")
	})

	t.Run("use case error", func(t *testing.T) {
		uc := mocks.NewMockRecordUseCase(t)
		uc.On("Add", ctx, sampleRecord()).Return("", recordDomain.ErrInvalidRecord)

		err := RunAddStudent(ctx, uc, logger, IOTuple{Writer: &bytes.Buffer{}}, sampleRecordJSON)
		require.Error(t, err)
		assert.ErrorIs(t, err, recordDomain.ErrInvalidRecord)
	})
}

func TestRunUpdateStudent(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()

	t.Run("success", func(t *testing.T) {
		uc := mocks.NewMockRecordUseCase(t)
		uc.On("Update", ctx, "id-1", sampleRecord()).Return(nil)

		var out bytes.Buffer
		err := RunUpdateStudent(ctx, uc, logger, IOTuple{Writer: &out}, "id-1", sampleRecordJSON)
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Student updated: id-1")
	})

	t.Run("missing id", func(t *testing.T) {
		uc := mocks.NewMockRecordUseCase(t)

		err := RunUpdateStudent(ctx, uc, logger, IOTuple{Writer: &bytes.Buffer{}}, " ", sampleRecordJSON)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "student id is required")
	})

	t.Run("use case error", func(t *testing.T) {
		uc := mocks.NewMockRecordUseCase(t)
		uc.On("Update", ctx, "id-1", sampleRecord()).Return(errors.New("store down"))

		err := RunUpdateStudent(ctx, uc, logger, IOTuple{Writer: &bytes.Buffer{}}, "id-1", sampleRecordJSON)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to update student")
	})
}

func TestRunDeleteStudent(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()

	t.Run("success", func(t *testing.T) {
		uc := mocks.NewMockRecordUseCase(t)
		uc.On("Delete", ctx, "id-1").Return(nil)

		var out bytes.Buffer
		require.NoError(t, RunDeleteStudent(ctx, uc, logger, &out, "id-1"))
		assert.Contains(t, out.String(), "Student deleted: id-1")
	})

	t.Run("missing id", func(t *testing.T) {
		uc := mocks.NewMockRecordUseCase(t)

		err := RunDeleteStudent(ctx, uc, logger, &bytes.Buffer{}, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "student id is required")
	})
}

func TestRunListStudents(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()

	records := []recordDomain.OpenedRecord{
		{ID: "id-1", Record: sampleRecord(), Status: recordDomain.StatusOK},
		recordDomain.DecryptionFailedPlaceholder("id-2"),
		recordDomain.NoDataPlaceholder("id-3"),
	}

	t.Run("text", func(t *testing.T) {
		uc := mocks.NewMockRecordUseCase(t)
		uc.On("List", ctx, 0, 50).Return(records, nil)

		var out bytes.Buffer
		require.NoError(t, RunListStudents(ctx, uc, logger, &out, 0, 50, FormatText))

		text := out.String()
		assert.Contains(t, text, "Name:    Grace Hopper")
		assert.Contains(t, text, "Name:    Decryption Error")
		assert.Contains(t, text, "Status:  decryption_failed")
		assert.Contains(t, text, "Name:    No Data")
		assert.NotContains(t, text, "cobol")
	})

	t.Run("json", func(t *testing.T) {
		uc := mocks.NewMockRecordUseCase(t)
		uc.On("List", ctx, 10, 5).Return(records, nil)

		var out bytes.Buffer
		require.NoError(t, RunListStudents(ctx, uc, logger, &out, 10, 5, FormatJSON))

		var decoded []studentOutput
		require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
		require.Len(t, decoded, 3)
		assert.Equal(t, "id-1", decoded[0].ID)
		assert.Equal(t, recordDomain.StatusOK, decoded[0].Status)
		assert.Equal(t, recordDomain.UnavailableMarker, decoded[0].Record.Password)
		assert.Equal(t, recordDomain.StatusDecryptionFailed, decoded[1].Status)
		assert.Equal(t, recordDomain.StatusNoData, decoded[2].Status)
	})

	t.Run("empty", func(t *testing.T) {
		uc := mocks.NewMockRecordUseCase(t)
		uc.On("List", ctx, 0, 50).Return([]recordDomain.OpenedRecord{}, nil)

		var out bytes.Buffer
		require.NoError(t, RunListStudents(ctx, uc, logger, &out, 0, 50, FormatText))
		assert.Equal(t, "No students found\n", out.String())
	})

	t.Run("invalid format", func(t *testing.T) {
		uc := mocks.NewMockRecordUseCase(t)

		err := RunListStudents(ctx, uc, logger, &bytes.Buffer{}, 0, 50, "yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid format")
	})

	t.Run("use case error", func(t *testing.T) {
		uc := mocks.NewMockRecordUseCase(t)
		uc.On("List", ctx, 0, 50).Return(nil, errors.New("connection refused"))

		err := RunListStudents(ctx, uc, logger, &bytes.Buffer{}, 0, 50, FormatText)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list students")
	})
}

func TestPromptForRecord_AcceptsLastLineWithoutNewline(t *testing.T) {
	input := "a\nb@example.edu\nc\n2000-01-01\nd\ne\nf\ng"

	rec, err := promptForRecord(IOTuple{Reader: strings.NewReader(input), Writer: &bytes.Buffer{}})

	require.NoError(t, err)
	assert.Equal(t, "g", rec.Password)
	assert.Equal(t, "2000-01-01", rec.DOB)
}
