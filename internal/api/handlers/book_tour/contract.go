package book_tour

import (
	"context"

	bookTour "github.com/max-tl-2000/red-sub012/internal/usecase/book_tour"
)

type BookTourUseCase interface {
	Execute(ctx context.Context, req *bookTour.Request) (*bookTour.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
