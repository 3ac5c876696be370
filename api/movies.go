package api

import "time"

type CategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=50"`
}

type CategoryResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type MovieRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"max=2000"`
	Duration    int       `json:"duration" validate:"required,gt=0,lte=600"`
	ReleaseDate time.Time `json:"releaseDate" validate:"required"`
	ImageURL    string    `json:"imageUrl" validate:"omitempty,url"`
	CategoryID  int       `json:"categoryId" validate:"required,gt=0"`
}

type MovieResponse struct {
	ID          int              `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Duration    int              `json:"duration"`
	ReleaseDate time.Time        `json:"releaseDate"`
	ImageURL    string           `json:"imageUrl,omitempty"`
	Category    CategoryResponse `json:"category"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type MovieListResponse struct {
	Movies   []MovieResponse `json:"movies"`
	Metadata Metadata        `json:"metadata"`
}
