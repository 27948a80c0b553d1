package validator

import (
	"testing"

	"eventdesk/pkg/logger"
	"eventdesk/pkg/model"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{
			name:  "plain address",
			email: "a@b.co",
			want:  true,
		},
		{
			name:  "dots and plus in local part",
			email: "first.last+tag@example.org",
			want:  true,
		},
		{
			name:  "no at sign",
			email: "not-an-email",
			want:  false,
		},
		{
			name:  "no dot after domain",
			email: "user@localhost",
			want:  false,
		},
		{
			name:  "space in local part",
			email: "a user@example.com",
			want:  false,
		},
		{
			name:  "double at sign",
			email: "a@@example.com",
			want:  false,
		},
		{
			name:  "empty",
			email: "",
			want:  false,
		},
		{
			// Format check only: syntactically dubious but shape-conformant
			// addresses pass.
			name:  "permissive about odd tld",
			email: "a@b.c-",
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateEmail(tt.email)
			if got != tt.want {
				t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	v := NewBookingValidator(log)

	tests := []struct {
		name      string
		booking   *model.Booking
		wantError bool
	}{
		{
			name: "valid booking",
			booking: &model.Booking{
				EventID: "507f1f77bcf86cd799439011",
				Email:   "a@b.co",
			},
			wantError: false,
		},
		{
			name: "bad email",
			booking: &model.Booking{
				EventID: "507f1f77bcf86cd799439011",
				Email:   "not-an-email",
			},
			wantError: true,
		},
		{
			name: "missing event reference",
			booking: &model.Booking{
				Email: "a@b.co",
			},
			wantError: true,
		},
		{
			name: "malformed event reference",
			booking: &model.Booking{
				EventID: "abc",
				Email:   "a@b.co",
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.booking)
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}
