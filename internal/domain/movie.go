package domain

import (
	"context"
	"time"
)

type Movie struct {
	ID          int
	Title       string
	Duration    int // minutes
	Description string
	ReleaseDate time.Time
	ImageURL    string
	Category    Category
}

type MovieFilters struct {
	Term       string
	CategoryID int // zero means all categories
	Page       int
	PageSize   int
}

func (f MovieFilters) Limit() int {
	return f.PageSize
}

func (f MovieFilters) Offset() int {
	return (f.Page - 1) * f.PageSize
}

type MovieRepository interface {
	Search(ctx context.Context, filters MovieFilters) ([]Movie, *Metadata, error)
	GetById(ctx context.Context, id int) (*Movie, error)
	Create(ctx context.Context, movie *Movie) error
	Update(ctx context.Context, movie *Movie) error
	Delete(ctx context.Context, id int) error
}
