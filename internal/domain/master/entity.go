package master

import "time"

type Department struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Position struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
