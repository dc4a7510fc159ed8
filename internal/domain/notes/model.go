package notes

import "time"

type Note struct {
	ID        string
	AnimalID  string
	AuthorID  string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
