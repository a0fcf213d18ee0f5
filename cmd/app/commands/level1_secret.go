package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"

	envelopeDomain "github.com/allisson/recordseal/internal/envelope/domain"
	envelopeService "github.com/allisson/recordseal/internal/envelope/service"
)

// level1SecretBytes is the entropy of a generated Level-1 secret before encoding.
const level1SecretBytes = 32

// RunCreateLevel1Secret generates a random Level-1 secret and prints it as env lines.
//
// Without kmsKeyURI the secret is printed as is. With kmsKeyURI it is encrypted with that
// KMS key first and LEVEL1_KMS_KEY_URI is printed alongside, so the plaintext secret never
// leaves the process.
func RunCreateLevel1Secret(
	ctx context.Context,
	kmsService envelopeService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	kmsKeyURI string,
) error {
	raw := make([]byte, level1SecretBytes)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("failed to generate level-1 secret: %w", err)
	}
	defer envelopeDomain.Zero(raw)

	// 43 printable characters, comfortably above MinSecretLength.
	secret := []byte(base64.RawURLEncoding.EncodeToString(raw))
	defer envelopeDomain.Zero(secret)

	if kmsKeyURI == "" {
		logger.Warn("printing a plaintext level-1 secret; prefer --kms-key-uri outside development")

		_, _ = fmt.Fprintln(writer, "# Level-1 Secret Configuration")
		_, _ = fmt.Fprintln(writer, "# Keep this value on the client only. The record store must never see it.")
		_, _ = fmt.Fprintln(writer)
		_, _ = fmt.Fprintf(writer, "LEVEL1_SECRET=\"%s\"\n", secret)
		return nil
	}

	wrapped, err := envelopeService.WrapSecret(ctx, kmsService, kmsKeyURI, secret)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(writer, "# Level-1 Secret Configuration (KMS Mode)")
	_, _ = fmt.Fprintln(writer, "# Keep these values on the client only. The record store must never see them.")
	_, _ = fmt.Fprintln(writer)
	_, _ = fmt.Fprintf(writer, "LEVEL1_KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	_, _ = fmt.Fprintf(writer, "LEVEL1_SECRET=\"%s\"\n", wrapped)

	logger.Info("level-1 secret created", slog.Bool("kms", true))
	return nil
}
