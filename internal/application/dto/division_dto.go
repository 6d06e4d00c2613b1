package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Diarios de trabajo ────────────────────────────────────────────────────────

// CreateDiaryRequest body para POST /api/diaries.
type CreateDiaryRequest struct {
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
	Tags    string `json:"tags" validate:"max=200"`
}

// UpdateDiaryRequest body para PUT /api/diaries/:id.
type UpdateDiaryRequest struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Content *string `json:"content,omitempty"`
	Tags    *string `json:"tags,omitempty" validate:"omitempty,max=200"`
}

// DiaryResponse representación HTTP de una entrada de diario.
type DiaryResponse struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Date      string    `json:"date"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      string    `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ── Comisiones de servicio ────────────────────────────────────────────────────

// CreateTripRequest body para POST /api/trips.
type CreateTripRequest struct {
	Destination string          `json:"destination" validate:"required,max=200"`
	Purpose     string          `json:"purpose" validate:"required,max=500"`
	StartDate   string          `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string          `json:"end_date" validate:"required,datetime=2006-01-02"`
	Expenses    decimal.Decimal `json:"expenses"`
}

// UpdateTripRequest body para PUT /api/trips/:id.
type UpdateTripRequest struct {
	Destination *string          `json:"destination,omitempty" validate:"omitempty,max=200"`
	Purpose     *string          `json:"purpose,omitempty" validate:"omitempty,max=500"`
	StartDate   *string          `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string          `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Expenses    *decimal.Decimal `json:"expenses,omitempty"`
	Report      *string          `json:"report,omitempty"`
	Status      *string          `json:"status,omitempty" validate:"omitempty,oneof=draft submitted approved"`
}

// TripResponse representación HTTP de una comisión de servicio.
type TripResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Destination string          `json:"destination"`
	Purpose     string          `json:"purpose"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	Expenses    decimal.Decimal `json:"expenses"`
	Report      string          `json:"report"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ── Agenda ────────────────────────────────────────────────────────────────────

// CreateScheduleRequest body para POST /api/schedules.
type CreateScheduleRequest struct {
	Title    string    `json:"title" validate:"required,max=200"`
	Detail   string    `json:"detail" validate:"max=1000"`
	StartsAt time.Time `json:"starts_at" validate:"required"`
	EndsAt   time.Time `json:"ends_at" validate:"required,gtfield=StartsAt"`
	Shared   bool      `json:"shared"`
}

// UpdateScheduleRequest body para PUT /api/schedules/:id.
type UpdateScheduleRequest struct {
	Title    *string    `json:"title,omitempty" validate:"omitempty,max=200"`
	Detail   *string    `json:"detail,omitempty" validate:"omitempty,max=1000"`
	StartsAt *time.Time `json:"starts_at,omitempty"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
	Shared   *bool      `json:"shared,omitempty"`
}

// ScheduleResponse representación HTTP de un evento de agenda.
type ScheduleResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Title     string    `json:"title"`
	Detail    string    `json:"detail"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	Shared    bool      `json:"shared"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ── Proyectos ─────────────────────────────────────────────────────────────────

// CreateProjectRequest body para POST /api/projects.
type CreateProjectRequest struct {
	Code        string `json:"code" validate:"required,max=64"`
	Name        string `json:"name" validate:"required,max=200"`
	StartDate   string `json:"start_date" validate:"required,datetime=2006-01-02"`
	Description string `json:"description" validate:"max=2000"`
}

// UpdateProjectRequest body para PUT /api/projects/:id.
type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=200"`
	EndDate     *string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=planned active done canceled"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// ProjectResponse representación HTTP de un proyecto.
type ProjectResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	ManagerID   string    `json:"manager_id"`
	StartDate   string    `json:"start_date"`
	EndDate     *string   `json:"end_date,omitempty"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
