package book_tour

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/max-tl-2000/red-sub012/internal/domain"
	"github.com/max-tl-2000/red-sub012/internal/integrations/partyservice"
)

func TestValidateRequest(t *testing.T) {
	valid := &Request{
		PropertyID: uuid.New(),
		TeamID:     uuid.New(),
		Contact:    partyservice.ContactInfo{Email: "guest@example.com"},
		StartDate:  time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC),
	}
	assert.NoError(t, validateRequest(valid))

	noProperty := *valid
	noProperty.PropertyID = uuid.Nil
	assert.ErrorIs(t, validateRequest(&noProperty), ErrInvalidInput)

	noContact := *valid
	noContact.Contact = partyservice.ContactInfo{Name: "Guest"}
	assert.ErrorIs(t, validateRequest(&noContact), ErrInvalidInput)

	noDate := *valid
	noDate.StartDate = time.Time{}
	assert.ErrorIs(t, validateRequest(&noDate), ErrIncorrectDate)
}

func TestValidateStartDate(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	assert.NoError(t, validateStartDate(now.Add(2*time.Hour), now))
	assert.ErrorIs(t, validateStartDate(now.Add(-time.Hour), now), ErrIncorrectDate)
	assert.ErrorIs(t, validateStartDate(now, now), ErrIncorrectDate)
}

func TestValidateSlotAlignment(t *testing.T) {
	tz, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tests := []struct {
		name    string
		start   time.Time
		minutes int
		wantErr bool
	}{
		{"on the hour", time.Date(2026, 9, 1, 14, 0, 0, 0, tz), 60, false},
		{"half past with 60m grid", time.Date(2026, 9, 1, 14, 30, 0, 0, tz), 60, true},
		{"half past with 30m grid", time.Date(2026, 9, 1, 14, 30, 0, 0, tz), 30, false},
		{"quarter past with 30m grid", time.Date(2026, 9, 1, 14, 15, 0, 0, tz), 30, true},
		{"stray seconds", time.Date(2026, 9, 1, 14, 0, 30, 0, tz), 60, true},
		{"midnight", time.Date(2026, 9, 1, 0, 0, 0, 0, tz), 60, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSlotAlignment(tt.start, tt.minutes, tz)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrIncorrectStartDate)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSlotAlignment_GridFollowsPropertyTimezone(t *testing.T) {
	tz, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 14:00 по Нью-Йорку, выраженное в UTC - сетка считается в таймзоне объекта
	startUTC := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	assert.NoError(t, validateSlotAlignment(startUTC, 60, tz))
}

func TestValidateTourType(t *testing.T) {
	available := []domain.TourType{domain.TourVirtual, domain.TourInPerson}

	got, err := validateTourType("", available)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTourType, got, "empty input falls back to the default")

	got, err = validateTourType(string(domain.TourVirtual), available)
	require.NoError(t, err)
	assert.Equal(t, domain.TourVirtual, got)

	_, err = validateTourType("spaceTour", available)
	assert.ErrorIs(t, err, ErrIncorrectTourType)

	// Известный тип, но объект его не предлагает
	_, err = validateTourType(string(domain.TourAgentless), available)
	assert.ErrorIs(t, err, ErrIncorrectTourType)

	// Пустой список настроек означает "все известные типы доступны"
	got, err = validateTourType(string(domain.TourAgentless), nil)
	require.NoError(t, err)
	assert.Equal(t, domain.TourAgentless, got)
}
