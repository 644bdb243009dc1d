package candidates

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/max-tl-2000/red-sub012/internal/domain"
)

// fakeTeamRepo in-memory реализация TeamRepository для тестов
type fakeTeamRepo struct {
	roster     []domain.TeamMember
	dayEntries []domain.DayAvailability
	totals     map[uuid.UUID]int
}

func (f *fakeTeamRepo) ListRoster(ctx context.Context, teamID uuid.UUID) ([]domain.TeamMember, error) {
	return f.roster, nil
}

func (f *fakeTeamRepo) ListDayEntriesForUsers(ctx context.Context, userIDs []uuid.UUID, day time.Time) ([]domain.DayAvailability, error) {
	return f.dayEntries, nil
}

func (f *fakeTeamRepo) CountEntriesForUsers(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	if f.totals == nil {
		return map[uuid.UUID]int{}, nil
	}
	return f.totals, nil
}

var (
	teamID     = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000000")
	otherTeam  = uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000000")
	testDay    = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	agentRoles = []domain.FunctionalRole{domain.RoleAgent}
)

func member(id uuid.UUID, roles []domain.FunctionalRole, multiTeam bool) domain.TeamMember {
	return domain.TeamMember{UserID: id, TeamID: teamID, Roles: roles, MultiTeam: multiTeam}
}

func TestPoolResolver_ExcludesDispatcher(t *testing.T) {
	dispatcher := uuid.MustParse("99999999-9999-9999-9999-999999999999")

	repo := &fakeTeamRepo{roster: []domain.TeamMember{
		member(staffB, agentRoles, false),
		member(staffA, agentRoles, false),
		member(dispatcher, []domain.FunctionalRole{domain.RoleDispatcher}, false),
	}}

	pool, err := NewPoolResolver(repo, nopLogger{}).Resolve(context.Background(), teamID, testDay)

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{staffA, staffB}, pool, "sorted by staff id, dispatcher excluded")
}

func TestPoolResolver_DispatcherFallbackWhenAlone(t *testing.T) {
	dispatcher := uuid.MustParse("99999999-9999-9999-9999-999999999999")

	repo := &fakeTeamRepo{roster: []domain.TeamMember{
		member(dispatcher, []domain.FunctionalRole{domain.RoleDispatcher}, false),
	}}

	pool, err := NewPoolResolver(repo, nopLogger{}).Resolve(context.Background(), teamID, testDay)

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{dispatcher}, pool, "dispatcher serves when nobody else can")
}

func TestPoolResolver_EmptyRoster(t *testing.T) {
	repo := &fakeTeamRepo{}

	_, err := NewPoolResolver(repo, nopLogger{}).Resolve(context.Background(), teamID, testDay)
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestPoolResolver_FloatingAgentWithEntryElsewhere(t *testing.T) {
	// Плавающий агент с записью доступности на другую команду в этот день
	// не попадает в пул этой команды
	repo := &fakeTeamRepo{
		roster: []domain.TeamMember{
			member(staffA, agentRoles, false),
			member(staffB, agentRoles, true),
		},
		totals: map[uuid.UUID]int{staffB: 4},
		dayEntries: []domain.DayAvailability{
			{UserID: staffB, TeamID: otherTeam, Day: testDay},
		},
	}

	pool, err := NewPoolResolver(repo, nopLogger{}).Resolve(context.Background(), teamID, testDay)

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{staffA}, pool)
}

func TestPoolResolver_FloatingAgentWithEntryHere(t *testing.T) {
	repo := &fakeTeamRepo{
		roster: []domain.TeamMember{
			member(staffA, agentRoles, false),
			member(staffB, agentRoles, true),
		},
		totals: map[uuid.UUID]int{staffB: 4},
		dayEntries: []domain.DayAvailability{
			{UserID: staffB, TeamID: teamID, Day: testDay},
		},
	}

	pool, err := NewPoolResolver(repo, nopLogger{}).Resolve(context.Background(), teamID, testDay)

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{staffA, staffB}, pool)
}

func TestPoolResolver_FloatingAgentWithoutAnyEntries(t *testing.T) {
	// Агент вообще без записей доступности считается доступным на любой из команд
	repo := &fakeTeamRepo{
		roster: []domain.TeamMember{
			member(staffB, agentRoles, true),
		},
		totals: map[uuid.UUID]int{},
	}

	pool, err := NewPoolResolver(repo, nopLogger{}).Resolve(context.Background(), teamID, testDay)

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{staffB}, pool)
}
