package validator

import (
	"testing"

	"eventdesk/pkg/logger"
	"eventdesk/pkg/model"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:     "info",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
}

func validEvent() *model.Event {
	return &model.Event{
		Title:       "Go Meetup 2026",
		Description: "An evening of Go talks",
		Overview:    "Talks, pizza, networking",
		Image:       "https://cdn.example.com/go-meetup.png",
		Venue:       "Community Hall",
		Location:    "Tel Aviv",
		Date:        "2026-03-14",
		Time:        "18:30",
		Mode:        "in-person",
		Audience:    "developers",
		Agenda:      []string{"Opening", "Talks", "Q&A"},
		Organizer:   "Go TLV",
		Tags:        []string{"go", "meetup"},
	}
}

func TestValidate_RequiredFields(t *testing.T) {
	v := NewEventValidator(testLogger())

	tests := []struct {
		name      string
		mutate    func(*model.Event)
		wantError bool
	}{
		{
			name:      "valid event",
			mutate:    func(e *model.Event) {},
			wantError: false,
		},
		{
			name:      "missing title",
			mutate:    func(e *model.Event) { e.Title = "" },
			wantError: true,
		},
		{
			name:      "whitespace-only venue",
			mutate:    func(e *model.Event) { e.Venue = "   " },
			wantError: true,
		},
		{
			name:      "missing organizer",
			mutate:    func(e *model.Event) { e.Organizer = "" },
			wantError: true,
		},
		{
			name:      "whitespace-only mode",
			mutate:    func(e *model.Event) { e.Mode = "\t" },
			wantError: true,
		},
		{
			name:      "missing image",
			mutate:    func(e *model.Event) { e.Image = "" },
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := validEvent()
			tt.mutate(event)

			err := v.Validate(event)
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestValidate_AgendaAndTags(t *testing.T) {
	v := NewEventValidator(testLogger())

	tests := []struct {
		name      string
		mutate    func(*model.Event)
		wantError bool
	}{
		{
			name:      "single agenda item",
			mutate:    func(e *model.Event) { e.Agenda = []string{"Opening"} },
			wantError: false,
		},
		{
			name:      "empty agenda",
			mutate:    func(e *model.Event) { e.Agenda = []string{} },
			wantError: true,
		},
		{
			name:      "nil agenda",
			mutate:    func(e *model.Event) { e.Agenda = nil },
			wantError: true,
		},
		{
			name:      "blank agenda element",
			mutate:    func(e *model.Event) { e.Agenda = []string{"Opening", "  "} },
			wantError: true,
		},
		{
			name:      "empty tags",
			mutate:    func(e *model.Event) { e.Tags = []string{} },
			wantError: true,
		},
		{
			name:      "blank tag element",
			mutate:    func(e *model.Event) { e.Tags = []string{""} },
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := validEvent()
			tt.mutate(event)

			err := v.Validate(event)
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      string
		wantError bool
	}{
		{
			name:  "canonical input unchanged",
			input: "2026-03-14",
			want:  "2026-03-14",
		},
		{
			name:  "RFC3339 drops time and zone",
			input: "2026-03-14T18:30:00+02:00",
			want:  "2026-03-14",
		},
		{
			name:  "datetime without zone",
			input: "2026-03-14 18:30:00",
			want:  "2026-03-14",
		},
		{
			name:  "long month name",
			input: "March 14, 2026",
			want:  "2026-03-14",
		},
		{
			name:      "unparseable",
			input:     "next friday",
			wantError: true,
		},
		{
			name:      "empty",
			input:     "",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDate(tt.input)
			if (err != nil) != tt.wantError {
				t.Fatalf("NormalizeDate(%q) error = %v, wantError %v", tt.input, err, tt.wantError)
			}
			if !tt.wantError && got != tt.want {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeDate_Idempotent(t *testing.T) {
	once, err := NormalizeDate("2026-12-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := NormalizeDate(once)
	if err != nil {
		t.Fatalf("unexpected error on second pass: %v", err)
	}
	if once != twice {
		t.Errorf("NormalizeDate not idempotent: %q != %q", once, twice)
	}
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      string
		wantError bool
	}{
		{
			name:  "plain HH:MM",
			input: "18:30",
			want:  "18:30",
		},
		{
			name:  "seconds are dropped",
			input: "09:05:30",
			want:  "09:05",
		},
		{
			name:  "midnight",
			input: "00:00",
			want:  "00:00",
		},
		{
			name:  "last minute of the day",
			input: "23:59:59",
			want:  "23:59",
		},
		{
			name:      "one-digit hour rejected",
			input:     "9:05:30",
			wantError: true,
		},
		{
			name:      "hour out of range",
			input:     "24:00",
			wantError: true,
		},
		{
			name:      "minute out of range",
			input:     "12:60",
			wantError: true,
		},
		{
			name:      "second out of range",
			input:     "12:30:60",
			wantError: true,
		},
		{
			name:      "garbage",
			input:     "noonish",
			wantError: true,
		},
		{
			name:      "empty",
			input:     "",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeTime(tt.input)
			if (err != nil) != tt.wantError {
				t.Fatalf("NormalizeTime(%q) error = %v, wantError %v", tt.input, err, tt.wantError)
			}
			if !tt.wantError && got != tt.want {
				t.Errorf("NormalizeTime(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
