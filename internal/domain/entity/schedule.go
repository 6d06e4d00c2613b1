package entity

import "time"

// ScheduleEvent es un evento de la agenda de la división. Shared lo hace
// visible para todos los usuarios; si no, solo para su dueño.
type ScheduleEvent struct {
	ID        string
	OwnerID   string
	Title     string
	Detail    string
	StartsAt  time.Time
	EndsAt    time.Time
	Shared    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
