package domain

import "context"

type Category struct {
	ID   int
	Name string
}

type CategoryRepository interface {
	GetAll(ctx context.Context) ([]Category, error)
	GetById(ctx context.Context, id int) (*Category, error)
	Create(ctx context.Context, category *Category) error
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id int) error
}
