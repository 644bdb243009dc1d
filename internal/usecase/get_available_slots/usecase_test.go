package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/max-tl-2000/red-sub012/internal/domain"
	"github.com/max-tl-2000/red-sub012/internal/integrations/propertyservice"
	"github.com/max-tl-2000/red-sub012/internal/service/availability"
	"github.com/max-tl-2000/red-sub012/internal/service/candidates"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeTxManager struct{}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAvailability struct{ busy []domain.BusyInterval }

func (f *fakeAvailability) BusyIntervalsFor(ctx context.Context, teamID uuid.UUID, staffIDs []uuid.UUID, from, to time.Time) (*availability.Availability, error) {
	return availability.NewAvailability(f.busy), nil
}

type fakePool struct{ pool []uuid.UUID }

func (f *fakePool) Resolve(ctx context.Context, teamID uuid.UUID, day time.Time) ([]uuid.UUID, error) {
	if len(f.pool) == 0 {
		return nil, candidates.ErrEmptyPool
	}
	return f.pool, nil
}

type fakePropertyService struct{ team propertyservice.TeamSettings }

func (fakePropertyService) GetPropertySettings(ctx context.Context, propertyID uuid.UUID) (*propertyservice.PropertySettings, error) {
	return &propertyservice.PropertySettings{Timezone: "UTC"}, nil
}

func (f fakePropertyService) GetTeamSettings(ctx context.Context, teamID uuid.UUID) (*propertyservice.TeamSettings, error) {
	settings := f.team
	return &settings, nil
}

var (
	staffA = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	staffB = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

// Рабочий день 10:00-12:00, часовые слоты
func workdaySettings() propertyservice.TeamSettings {
	return propertyservice.TeamSettings{
		SlotDurationMinutes: 60,
		WorkdayStartMinutes: 10 * 60,
		WorkdayEndMinutes:   12 * 60,
	}
}

func newUC(avail *fakeAvailability, pool *fakePool, team propertyservice.TeamSettings, now time.Time) *UseCase {
	uc := NewUseCase(avail, pool, fakePropertyService{team: team}, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestGenerateDaySlots(t *testing.T) {
	dayStart := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	settings := workdaySettings()

	// now задолго до начала дня - вся сетка
	slots := generateDaySlots(dayStart, &settings, dayStart.Add(-24*time.Hour))
	require.Len(t, slots, 2)
	assert.Equal(t, dayStart.Add(10*time.Hour), slots[0])
	assert.Equal(t, dayStart.Add(11*time.Hour), slots[1])

	// now внутри рабочего дня - начавшиеся слоты отброшены
	slots = generateDaySlots(dayStart, &settings, dayStart.Add(10*time.Hour+15*time.Minute))
	require.Len(t, slots, 1)
	assert.Equal(t, dayStart.Add(11*time.Hour), slots[0])

	// 90-минутные слоты: первая точка сетки от полуночи внутри рабочего дня -
	// 10:30, следующая уже не влезает до конца рабочего дня
	settings.SlotDurationMinutes = 90
	slots = generateDaySlots(dayStart, &settings, dayStart.Add(-24*time.Hour))
	require.Len(t, slots, 1)
	assert.Equal(t, dayStart.Add(10*time.Hour+30*time.Minute), slots[0])
}

func TestGenerateDaySlots_OffGridWorkdayStart(t *testing.T) {
	dayStart := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	// Рабочий день 09:30-12:00, часовые слоты: сетка остается кратной
	// длительности слота от полуночи, первый слот сдвигается на 10:00
	settings := propertyservice.TeamSettings{
		SlotDurationMinutes: 60,
		WorkdayStartMinutes: 9*60 + 30,
		WorkdayEndMinutes:   12 * 60,
	}

	slots := generateDaySlots(dayStart, &settings, dayStart.Add(-24*time.Hour))

	require.Len(t, slots, 2)
	assert.Equal(t, dayStart.Add(10*time.Hour), slots[0])
	assert.Equal(t, dayStart.Add(11*time.Hour), slots[1])

	slot := time.Duration(settings.SlotDurationMinutes) * time.Minute
	for _, s := range slots {
		assert.Zero(t, s.Sub(dayStart)%slot, "every advertised slot must be bookable")
	}
}

func TestDayStartsForWindow(t *testing.T) {
	tz, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	from := time.Date(2026, 9, 1, 17, 45, 0, 0, tz)
	starts := dayStartsForWindow(from, 3, tz)

	require.Len(t, starts, 3)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, tz), starts[0])
	assert.Equal(t, time.Date(2026, 9, 2, 0, 0, 0, 0, tz), starts[1])
	assert.Equal(t, time.Date(2026, 9, 3, 0, 0, 0, 0, tz), starts[2])

	// Дата, распарсенная как полночь UTC, не уезжает на день назад
	fromUTC := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	starts = dayStartsForWindow(fromUTC, 1, tz)
	require.Len(t, starts, 1)
	assert.True(t, starts[0].Equal(time.Date(2026, 9, 1, 0, 0, 0, 0, tz)))
}

func TestValidateRequest(t *testing.T) {
	valid := &Request{
		PropertyID: uuid.New(),
		TeamID:     uuid.New(),
		FromDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	}

	days, err := validateRequest(valid)
	require.NoError(t, err)
	assert.Equal(t, 1, days, "zero days defaults to a single day")

	wide := *valid
	wide.Days = domain.MaxSlotsWindowDays
	days, err = validateRequest(&wide)
	require.NoError(t, err)
	assert.Equal(t, domain.MaxSlotsWindowDays, days)

	tooWide := *valid
	tooWide.Days = domain.MaxSlotsWindowDays + 1
	_, err = validateRequest(&tooWide)
	assert.ErrorIs(t, err, ErrWindowTooLarge)

	negative := *valid
	negative.Days = -1
	_, err = validateRequest(&negative)
	assert.ErrorIs(t, err, ErrInvalidInput)

	noTeam := *valid
	noTeam.TeamID = uuid.Nil
	_, err = validateRequest(&noTeam)
	assert.ErrorIs(t, err, ErrInvalidInput)

	noDate := *valid
	noDate.FromDate = time.Time{}
	_, err = validateRequest(&noDate)
	assert.ErrorIs(t, err, ErrIncorrectDate)
}

func TestExecute_CountsFreeAgentsPerSlot(t *testing.T) {
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	// staffA занят в слоте 10:00-11:00
	avail := &fakeAvailability{busy: []domain.BusyInterval{
		{StaffID: staffA, Start: day.Add(10 * time.Hour), End: day.Add(11 * time.Hour)},
	}}
	uc := newUC(avail, &fakePool{pool: []uuid.UUID{staffA, staffB}}, workdaySettings(), day.Add(-time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{
		PropertyID: uuid.New(),
		TeamID:     uuid.New(),
		FromDate:   day,
	})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)

	assert.Equal(t, day.Add(10*time.Hour), resp.Slots[0].Start)
	assert.Equal(t, 1, resp.Slots[0].FreeAgents)
	assert.Equal(t, day.Add(11*time.Hour), resp.Slots[1].Start)
	assert.Equal(t, 2, resp.Slots[1].FreeAgents)
}

func TestExecute_SkipsFullyBookedSlots(t *testing.T) {
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	avail := &fakeAvailability{busy: []domain.BusyInterval{
		{StaffID: staffA, Start: day.Add(10 * time.Hour), End: day.Add(11 * time.Hour)},
	}}
	uc := newUC(avail, &fakePool{pool: []uuid.UUID{staffA}}, workdaySettings(), day.Add(-time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{
		PropertyID: uuid.New(),
		TeamID:     uuid.New(),
		FromDate:   day,
	})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, day.Add(11*time.Hour), resp.Slots[0].Start)
}

func TestExecute_EmptyPoolYieldsNoSlots(t *testing.T) {
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	uc := newUC(&fakeAvailability{}, &fakePool{}, workdaySettings(), day.Add(-time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{
		PropertyID: uuid.New(),
		TeamID:     uuid.New(),
		FromDate:   day,
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_MultiDayWindow(t *testing.T) {
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	uc := newUC(&fakeAvailability{}, &fakePool{pool: []uuid.UUID{staffA}}, workdaySettings(), day.Add(-time.Hour))

	resp, err := uc.Execute(context.Background(), &Request{
		PropertyID: uuid.New(),
		TeamID:     uuid.New(),
		FromDate:   day,
		Days:       2,
	})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 4, "two slots per day over two days")
	assert.Equal(t, day.Add(10*time.Hour), resp.Slots[0].Start)
	assert.Equal(t, day.AddDate(0, 0, 1).Add(11*time.Hour), resp.Slots[3].Start)
}
