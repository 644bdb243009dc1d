package book_tour

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/max-tl-2000/red-sub012/internal/domain"
	"github.com/max-tl-2000/red-sub012/internal/infra/events"
	"github.com/max-tl-2000/red-sub012/internal/integrations/partyservice"
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

// fakeTxManager выполняет функцию без настоящей транзакции;
// commitErr имитирует обрыв транзакции на коммите
type fakeTxManager struct{ commitErr error }

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return f.commitErr
}

type fakeApptRepo struct {
	existing []*domain.Appointment
	counts   map[uuid.UUID]int

	created          *domain.Appointment
	updatedSlotID    uuid.UUID
	updatedSlotStaff uuid.UUID
	updatedResources []uuid.UUID
}

func (f *fakeApptRepo) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if appt.ID == uuid.Nil {
		appt.ID = uuid.New()
	}
	f.created = appt
	return appt, nil
}

func (f *fakeApptRepo) ListActiveByRequester(ctx context.Context, requesterID uuid.UUID) ([]*domain.Appointment, error) {
	return f.existing, nil
}

func (f *fakeApptRepo) CountSameDayByStaff(ctx context.Context, teamID uuid.UUID, dayStart, dayEnd time.Time) (map[uuid.UUID]int, error) {
	if f.counts == nil {
		return map[uuid.UUID]int{}, nil
	}
	return f.counts, nil
}

func (f *fakeApptRepo) UpdateSlotAndAgent(ctx context.Context, id uuid.UUID, start, end time.Time, staffID uuid.UUID) error {
	f.updatedSlotID = id
	f.updatedSlotStaff = staffID
	return nil
}

func (f *fakeApptRepo) UpdateResources(ctx context.Context, id uuid.UUID, resources []uuid.UUID) error {
	f.updatedResources = resources
	return nil
}

type fakeCalendarRepo struct{ blackout bool }

func (f *fakeCalendarRepo) TeamHasEventOverlapping(ctx context.Context, teamID uuid.UUID, start, end time.Time) (bool, error) {
	return f.blackout, nil
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

type fakeOwnerAssigner struct {
	ownerID  uuid.UUID
	assigned bool
}

func (f *fakeOwnerAssigner) AssignOwner(ctx context.Context, teamID uuid.UUID, strategy domain.RoutingStrategy) (uuid.UUID, error) {
	f.assigned = true
	return f.ownerID, nil
}

type fakePartyService struct {
	personID uuid.UUID
	party    *partyservice.Party

	createdParty *partyservice.CreatePartyRequest
}

func (f *fakePartyService) ResolveRequester(ctx context.Context, contact partyservice.ContactInfo) (*partyservice.Requester, error) {
	return &partyservice.Requester{PersonID: f.personID}, nil
}

func (f *fakePartyService) GetActiveParty(ctx context.Context, personID, propertyID uuid.UUID) (*partyservice.Party, error) {
	if f.party == nil {
		return nil, partyservice.ErrPartyNotFound
	}
	return f.party, nil
}

func (f *fakePartyService) CreateParty(ctx context.Context, createReq partyservice.CreatePartyRequest) (*partyservice.Party, error) {
	f.createdParty = &createReq
	return &partyservice.Party{
		ID:      uuid.MustParse("facefeed-0000-0000-0000-000000000000"),
		OwnerID: createReq.OwnerID,
		TeamID:  createReq.TeamID,
	}, nil
}

type fakePropertyService struct{}

func (fakePropertyService) GetPropertySettings(ctx context.Context, propertyID uuid.UUID) (*propertyservice.PropertySettings, error) {
	return &propertyservice.PropertySettings{Timezone: "UTC"}, nil
}

func (fakePropertyService) GetTeamSettings(ctx context.Context, teamID uuid.UUID) (*propertyservice.TeamSettings, error) {
	return &propertyservice.TeamSettings{
		SlotDurationMinutes: 60,
		RoutingStrategy:     domain.RoutingRoundRobin,
	}, nil
}

type fakePublisher struct{ published []events.AppointmentBooked }

func (f *fakePublisher) PublishAppointmentBooked(ctx context.Context, event events.AppointmentBooked) error {
	f.published = append(f.published, event)
	return nil
}

var (
	staffA = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	staffB = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

type fixture struct {
	uc        *UseCase
	apptRepo  *fakeApptRepo
	calendar  *fakeCalendarRepo
	avail     *fakeAvailability
	pool      *fakePool
	assigner  *fakeOwnerAssigner
	party     *fakePartyService
	publisher *fakePublisher
	txManager *fakeTxManager
}

func newFixture() *fixture {
	f := &fixture{
		apptRepo:  &fakeApptRepo{},
		calendar:  &fakeCalendarRepo{},
		avail:     &fakeAvailability{},
		pool:      &fakePool{pool: []uuid.UUID{staffA, staffB}},
		assigner:  &fakeOwnerAssigner{ownerID: staffB},
		party:     &fakePartyService{personID: uuid.New()},
		publisher: &fakePublisher{},
		txManager: &fakeTxManager{},
	}

	f.uc = NewUseCase(
		f.apptRepo,
		f.calendar,
		f.avail,
		f.pool,
		candidates.NewSelector(nopLogger{}),
		f.assigner,
		f.party,
		fakePropertyService{},
		f.publisher,
		f.txManager,
		nopLogger{},
	)
	f.uc.timeProvider = fixedTime{now: time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)}

	return f
}

func validRequest() *Request {
	return &Request{
		PropertyID: uuid.New(),
		TeamID:     uuid.New(),
		Contact:    partyservice.ContactInfo{Email: "guest@example.com"},
		StartDate:  time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC),
	}
}

func TestExecute_CreatesAppointmentWithExistingParty(t *testing.T) {
	f := newFixture()
	owner := uuid.New()
	f.party.party = &partyservice.Party{ID: uuid.New(), OwnerID: owner}

	// Владелец партии занят - fairness выбирает наименее нагруженного
	f.apptRepo.counts = map[uuid.UUID]int{staffA: 2, staffB: 0}

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, resp.Outcome)
	assert.Equal(t, staffB, resp.StaffID)
	assert.Equal(t, f.party.party.ID, resp.OwnerRecordID)

	require.NotNil(t, f.apptRepo.created)
	assert.Equal(t, domain.StateActive, f.apptRepo.created.State)
	assert.Equal(t, domain.DefaultTourType, f.apptRepo.created.TourType)
	assert.Nil(t, f.party.createdParty, "existing party must be reused")
	assert.False(t, f.assigner.assigned)

	require.Len(t, f.publisher.published, 1)
	assert.Equal(t, "created", f.publisher.published[0].Outcome)
}

func TestExecute_PartyOwnerPreferredWhenFree(t *testing.T) {
	f := newFixture()
	f.party.party = &partyservice.Party{ID: uuid.New(), OwnerID: staffA}

	// staffA нагружен сильнее, но владеет партией и свободен
	f.apptRepo.counts = map[uuid.UUID]int{staffA: 5, staffB: 0}

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, staffA, resp.StaffID)
}

func TestExecute_CreatesPartyWhenNoneActive(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.True(t, f.assigner.assigned, "owner must be assigned by team strategy")
	require.NotNil(t, f.party.createdParty)
	assert.Equal(t, staffB, f.party.createdParty.OwnerID)
	assert.Equal(t, resp.OwnerRecordID, f.apptRepo.created.OwnerRecordID)
}

func TestExecute_DuplicateAppointment(t *testing.T) {
	f := newFixture()
	req := validRequest()

	f.apptRepo.existing = []*domain.Appointment{{
		ID:    uuid.New(),
		Start: req.StartDate,
		End:   req.StartDate.Add(time.Hour),
		State: domain.StateActive,
	}}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDuplicateAppointment)
	assert.Empty(t, f.publisher.published)
}

func TestExecute_MergesResourcesIntoSameSlot(t *testing.T) {
	f := newFixture()
	req := validRequest()

	oldUnit := uuid.New()
	newUnit := uuid.New()
	req.Resources = []uuid.UUID{newUnit}

	f.apptRepo.existing = []*domain.Appointment{{
		ID:               uuid.New(),
		AssignedStaffIDs: []uuid.UUID{staffA},
		Start:            req.StartDate,
		End:              req.StartDate.Add(time.Hour),
		ResourceRefs:     []uuid.UUID{oldUnit},
		State:            domain.StateActive,
	}}

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, OutcomeMerged, resp.Outcome)
	assert.Equal(t, staffA, resp.StaffID, "merge must not change the agent")
	assert.Equal(t, []uuid.UUID{oldUnit, newUnit}, f.apptRepo.updatedResources)
	assert.Nil(t, f.apptRepo.created)
}

func TestExecute_ReschedulesByResource(t *testing.T) {
	f := newFixture()
	req := validRequest()

	unit := uuid.New()
	req.Resources = []uuid.UUID{unit}

	existing := &domain.Appointment{
		ID:               uuid.New(),
		AssignedStaffIDs: []uuid.UUID{staffB},
		Start:            req.StartDate.Add(24 * time.Hour),
		End:              req.StartDate.Add(25 * time.Hour),
		ResourceRefs:     []uuid.UUID{unit},
		State:            domain.StateActive,
	}
	f.apptRepo.existing = []*domain.Appointment{existing}

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, OutcomeRescheduled, resp.Outcome)
	assert.Equal(t, existing.ID, resp.AppointmentID, "reschedule keeps the record id")
	assert.Equal(t, staffB, resp.StaffID, "current agent preferred when free")
	assert.Equal(t, existing.ID, f.apptRepo.updatedSlotID)
	assert.Equal(t, req.StartDate, resp.Start)
}

func TestExecute_SerializationAbortLosesSlotRace(t *testing.T) {
	f := newFixture()

	// Конкурентная бронь того же слота обрывает сериализуемую транзакцию
	f.txManager.commitErr = &pq.Error{
		Code:    "40001",
		Message: "could not serialize access due to concurrent update",
	}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, f.publisher.published)
}

func TestExecute_TeamBlackoutBlocksSlot(t *testing.T) {
	f := newFixture()
	f.calendar.blackout = true

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_AllAgentsBusy(t *testing.T) {
	f := newFixture()
	req := validRequest()

	f.avail.busy = []domain.BusyInterval{
		{StaffID: staffA, Start: req.StartDate, End: req.StartDate.Add(time.Hour)},
		{StaffID: staffB, Start: req.StartDate, End: req.StartDate.Add(time.Hour)},
	}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_EmptyPool(t *testing.T) {
	f := newFixture()
	f.pool.pool = nil

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_RejectsPastSlot(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.StartDate = time.Date(2026, 9, 1, 7, 0, 0, 0, time.UTC) // now is 08:00

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrIncorrectDate)
}

func TestExecute_RejectsMisalignedSlot(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.StartDate = req.StartDate.Add(17 * time.Minute)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrIncorrectStartDate)
}

func TestExecute_RejectsUnknownTourType(t *testing.T) {
	f := newFixture()
	req := validRequest()
	req.TourType = "spaceTour"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrIncorrectTourType)
}
