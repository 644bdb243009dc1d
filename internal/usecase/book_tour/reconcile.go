package book_tour

import (
	"time"

	"github.com/google/uuid"

	"github.com/max-tl-2000/red-sub012/internal/domain"
)

// collisionKind исход сверки запроса с существующими записями гостя
type collisionKind int

const (
	collisionNone collisionKind = iota
	collisionDuplicate
	collisionMerge
	collisionReschedule
)

// collision результат сверки: вид коллизии и затронутая запись (кроме collisionNone)
type collision struct {
	Kind        collisionKind
	Appointment *domain.Appointment
}

// resolveCollision сверяет запрошенный слот и юниты с активными записями гостя.
//
// Правила (первая сработавшая побеждает):
//   - тот же слот, а запрос без юнитов либо с тем же набором юнитов - дубликат;
//   - тот же слот, но в той же записи уже есть запрошенный юнит - тоже дубликат;
//   - тот же слот с другими юнитами - merge: юниты дописываются в существующую
//     запись, слот и агент не трогаются;
//   - другой слот, но ровно один юнит и он уже есть в активной записи -
//     reschedule: та же запись переносится на новый слот;
//   - иначе коллизии нет, создается новая запись.
//
// Записи приходят упорядоченными по start_at, поэтому при нескольких
// кандидатах детерминированно выбирается самая ранняя.
func resolveCollision(existing []*domain.Appointment, start, end time.Time, resources []uuid.UUID) collision {
	var sameSlot *domain.Appointment
	for _, appt := range existing {
		if appt.SameSlot(start, end) {
			sameSlot = appt
			break
		}
	}

	var sameResource *domain.Appointment
	if len(resources) == 1 {
		for _, appt := range existing {
			if appt.HasResource(resources[0]) {
				sameResource = appt
				break
			}
		}
	}

	if sameSlot != nil {
		if len(resources) == 0 || sameSlot.SameResourceSet(resources) {
			return collision{Kind: collisionDuplicate, Appointment: sameSlot}
		}
		if sameResource != nil && sameResource.ID == sameSlot.ID {
			return collision{Kind: collisionDuplicate, Appointment: sameSlot}
		}
		return collision{Kind: collisionMerge, Appointment: sameSlot}
	}

	if sameResource != nil {
		return collision{Kind: collisionReschedule, Appointment: sameResource}
	}

	return collision{Kind: collisionNone}
}

// preferredChain строит упорядоченную цепочку предпочтений для выбора агента:
// текущий агент записи (при reschedule), затем владелец партии, затем
// коллабораторы. Дубликаты отбрасываются с сохранением порядка.
func preferredChain(current uuid.UUID, party *partyOwnership) []uuid.UUID {
	chain := make([]uuid.UUID, 0, 4)
	seen := make(map[uuid.UUID]bool)

	add := func(id uuid.UUID) {
		if id != uuid.Nil && !seen[id] {
			chain = append(chain, id)
			seen[id] = true
		}
	}

	add(current)
	if party != nil {
		add(party.OwnerID)
		for _, id := range party.CollaboratorIDs {
			add(id)
		}
	}

	return chain
}

// partyOwnership срез данных партии, влияющий на предпочтения при выборе агента
type partyOwnership struct {
	OwnerID         uuid.UUID
	CollaboratorIDs []uuid.UUID
}
