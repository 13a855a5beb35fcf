package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/eaudeweb/lawkit/internal/apperr"
)

func TestNewValidation(t *testing.T) {
	err := apperr.NewValidation("field is required")

	if err.Error() != "field is required" {
		t.Errorf("expected 'field is required', got %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Errorf("expected nil unwrap, got %v", err.Unwrap())
	}
}

func TestNewValidationWrap(t *testing.T) {
	inner := fmt.Errorf("parse failed")
	err := apperr.NewValidationWrap("invalid bucket index", inner)

	if err.Error() != "invalid bucket index: parse failed" {
		t.Errorf("expected 'invalid bucket index: parse failed', got %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}
}

func TestValidationError_SurvivesFmtWrapping(t *testing.T) {
	original := apperr.NewValidation("population index out of range")

	wrapped := fmt.Errorf("failed to build filters: %w", original)
	doubleWrapped := fmt.Errorf("explorer error: %w", wrapped)

	var ve *apperr.ValidationError
	if !errors.As(doubleWrapped, &ve) {
		t.Fatal("errors.As should find ValidationError through double wrapping")
	}
	if ve.Message != "population index out of range" {
		t.Errorf("expected 'population index out of range', got %q", ve.Message)
	}
}

func TestUpstreamError(t *testing.T) {
	inner := fmt.Errorf("connection refused")
	err := apperr.NewUpstream("elasticsearch", inner)

	if err.Error() != "elasticsearch failure: connection refused" {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}

	wrapped := fmt.Errorf("search failed: %w", err)
	var ue *apperr.UpstreamError
	if !errors.As(wrapped, &ue) {
		t.Fatal("errors.As should find UpstreamError through wrapping")
	}
	if ue.System != "elasticsearch" {
		t.Errorf("expected system 'elasticsearch', got %q", ue.System)
	}
}

func TestValidationError_NotFoundForPlainErrors(t *testing.T) {
	plain := fmt.Errorf("database connection failed")
	wrapped := fmt.Errorf("storage error: %w", plain)

	var ve *apperr.ValidationError
	if errors.As(wrapped, &ve) {
		t.Fatal("errors.As should NOT find ValidationError in plain error chain")
	}
}
