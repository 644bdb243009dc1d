package cancel_tour

import (
	"context"

	cancelTour "github.com/max-tl-2000/red-sub012/internal/usecase/cancel_tour"
)

type CancelTourUseCase interface {
	Execute(ctx context.Context, req *cancelTour.Request) (*cancelTour.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
