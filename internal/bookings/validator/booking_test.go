package validator

import (
	"strings"
	"testing"

	"fitbooker/pkg/logger"
	"fitbooker/pkg/model"
)

func newTestValidator(t *testing.T) *BookingValidator {
	t.Helper()
	log := logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
	return NewBookingValidator(log)
}

func validRequest() *model.BookingRequest {
	return &model.BookingRequest{
		ClassID:     1,
		ClientName:  "Alice Smith",
		ClientEmail: "alice@example.com",
	}
}

func TestValidate_OK(t *testing.T) {
	v := newTestValidator(t)

	if err := v.Validate(validRequest()); err != nil {
		t.Errorf("expected valid request, got %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name    string
		mutate  func(*model.BookingRequest)
		field   string
	}{
		{"missing class id", func(r *model.BookingRequest) { r.ClassID = 0 }, "ClassID"},
		{"negative class id", func(r *model.BookingRequest) { r.ClassID = -3 }, "ClassID"},
		{"empty name", func(r *model.BookingRequest) { r.ClientName = "" }, "ClientName"},
		{"name with digits", func(r *model.BookingRequest) { r.ClientName = "Alice2" }, "ClientName"},
		{"name with symbols", func(r *model.BookingRequest) { r.ClientName = "Alice; DROP TABLE" }, "ClientName"},
		{"name too long", func(r *model.BookingRequest) { r.ClientName = strings.Repeat("a", 101) }, "ClientName"},
		{"empty email", func(r *model.BookingRequest) { r.ClientEmail = "" }, "ClientEmail"},
		{"malformed email", func(r *model.BookingRequest) { r.ClientEmail = "not-an-email" }, "ClientEmail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			err := v.Validate(req)
			if err == nil {
				t.Fatalf("expected validation error")
			}

			verrs, ok := err.(ValidationErrors)
			if !ok {
				t.Fatalf("expected ValidationErrors, got %T: %v", err, err)
			}
			found := false
			for _, ve := range verrs {
				if ve.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on field %s, got %v", tt.field, verrs)
			}
		})
	}
}

func TestValidate_UnicodeNames(t *testing.T) {
	v := newTestValidator(t)

	req := validRequest()
	req.ClientName = "José García"
	if err := v.Validate(req); err != nil {
		t.Errorf("accented letters should be accepted, got %v", err)
	}
}
