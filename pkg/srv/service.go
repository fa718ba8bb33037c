package srv

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandevgo/inspire/pkg/log"
)

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// Run starts every service in its own goroutine and blocks until ctx is
// done or a service fails to start. It then shuts all services down in
// slice order and returns the start error joined with any shutdown errors.
func Run(ctx context.Context, services []Service) error {
	logger := log.FromCtx(ctx)
	failed := make(chan error, len(services))

	for _, service := range services {
		go func() {
			if err := service.Start(ctx); err != nil {
				failed <- fmt.Errorf("%T failed to start: %w", service, err)
			}
		}()
	}

	var startErr error
	select {
	case <-ctx.Done():
	case startErr = <-failed:
		logger.Error().Err(startErr).Msg("service failed, shutting down")
	}

	// Shutdown runs after cancellation; services bound their own timeouts.
	shutdownCtx := context.WithoutCancel(ctx)
	errs := []error{startErr}
	for _, service := range services {
		if err := service.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msgf("%T failed to shutdown", service)
			errs = append(errs, fmt.Errorf("%T failed to shutdown: %w", service, err))
		}
	}
	return errors.Join(errs...)
}
