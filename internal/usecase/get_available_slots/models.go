package get_available_slots

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	PropertyID uuid.UUID // ID объекта
	TeamID     uuid.UUID // ID команды, обслуживающей объект
	FromDate   time.Time // Первый день окна (время игнорируется)
	Days       int       // Количество дней в окне; 0 означает 1 день
}

// Response модель ответа со списком доступных слотов
type Response struct {
	PropertyID uuid.UUID // ID объекта
	TeamID     uuid.UUID // ID команды
	Timezone   string    // Таймзона объекта, в которой посчитана сетка
	Slots      []Slot    // Доступные слоты по возрастанию времени начала
}

// Slot модель временного слота
type Slot struct {
	Start      time.Time // Начало слота
	End        time.Time // Конец слота
	FreeAgents int       // Количество свободных агентов в слоте
}
