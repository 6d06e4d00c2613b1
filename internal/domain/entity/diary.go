package entity

import "time"

// WorkDiary es una entrada del diario de trabajo de un técnico.
type WorkDiary struct {
	ID        string
	AuthorID  string
	Date      time.Time // día al que corresponde la entrada
	Title     string
	Content   string
	Tags      string // etiquetas separadas por coma
	CreatedAt time.Time
	UpdatedAt time.Time
}
