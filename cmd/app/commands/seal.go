package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	recordUsecase "github.com/allisson/recordseal/internal/record/usecase"
)

// maxStdinBytes bounds what seal and open read from stdin.
const maxStdinBytes = 1 << 20

// RunSeal reads a JSON student record from io.Reader and writes its Level-1 envelope.
// Nothing is sent to the record store.
func RunSeal(
	ctx context.Context,
	recordUseCase recordUsecase.RecordUseCase,
	logger *slog.Logger,
	io IOTuple,
) error {
	data, err := readInput(io.Reader)
	if err != nil {
		return err
	}

	rec, err := parseRecordJSON(data)
	if err != nil {
		return err
	}

	envelope, err := recordUseCase.Seal(ctx, rec)
	if err != nil {
		return fmt.Errorf("failed to seal record: %w", err)
	}

	_, _ = fmt.Fprintln(io.Writer, envelope)
	logger.Debug("record sealed", slog.Int("envelope_length", len(envelope)))
	return nil
}

// RunOpen reads a Level-1 envelope from io.Reader and writes the decrypted record as JSON.
func RunOpen(
	ctx context.Context,
	recordUseCase recordUsecase.RecordUseCase,
	logger *slog.Logger,
	io IOTuple,
) error {
	data, err := readInput(io.Reader)
	if err != nil {
		return err
	}

	rec, err := recordUseCase.Open(ctx, strings.TrimSpace(data))
	if err != nil {
		return fmt.Errorf("failed to open envelope: %w", err)
	}

	if err := writeJSON(io.Writer, rec); err != nil {
		return err
	}
	logger.Debug("envelope opened")
	return nil
}

func readInput(reader io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(reader, maxStdinBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	if len(data) > maxStdinBytes {
		return "", fmt.Errorf("input exceeds %d bytes", maxStdinBytes)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("input is empty")
	}
	return string(data), nil
}
