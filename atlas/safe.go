package atlas

import "fmt"
import "errors"
import "context"

import "github.com/tinne26/texfont/cache"

// Default memory bound for the bitmap cache [SafeGenerate]() creates
// when the config doesn't provide one.
const DefaultCacheSize = 32*1024*1024

// The outcome of [SafeGenerate]().
type Result struct {
	Metrics FontMetrics
	Pages   []Page

	// Set when the first run failed and the pages come from the retry
	// with TopOffset and BaselineOffset reset to 0. Cause keeps the
	// error of the first run.
	FellBack bool
	Cause    error
}

// Validates the config and runs [Generate](). If the run fails with
// anything other than a validation error or a cancellation, and the
// top or baseline offsets are non-zero, the run is retried once with
// both offsets reset to 0. If the retry fails too, the first error is
// returned (unless the retry was cancelled, which is reported as such).
//
// Panics during the layout are recovered and reported as [*LayoutError].
func SafeGenerate(ctx context.Context, config Config) (Result, error) {
	if err := Validate(config); err != nil { return Result{}, err }
	config.Tunables = ClampTunables(config.Tunables)
	if config.Cache == nil { config.Cache = cache.NewBitmapCache(DefaultCacheSize) }

	metrics, pages, err := generateRecovered(ctx, config)
	if err == nil { return Result{ Metrics: metrics, Pages: pages }, nil }
	if !isRetryable(err) { return Result{}, err }
	if config.Tunables.TopOffset == 0 && config.Tunables.BaselineOffset == 0 {
		return Result{}, err
	}

	config.withDefaults().Logger.Warn("generation failed, retrying with reset offsets", "err", err)
	retry := config
	retry.Tunables.TopOffset = 0
	retry.Tunables.BaselineOffset = 0
	metrics, pages, retryErr := generateRecovered(ctx, retry)
	if retryErr != nil {
		if errors.Is(retryErr, ErrCancelled) { return Result{}, retryErr }
		return Result{}, err
	}
	return Result{ Metrics: metrics, Pages: pages, FellBack: true, Cause: err }, nil
}

func generateRecovered(ctx context.Context, config Config) (metrics FontMetrics, pages []Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			metrics, pages = FontMetrics{}, nil
			err = &LayoutError{ fmt.Errorf("panic: %v", r) }
		}
	}()

	metrics, pages, err = Generate(ctx, config)
	if err != nil && isRetryable(err) {
		var layoutErr *LayoutError
		if !errors.As(err, &layoutErr) { err = &LayoutError{ err } }
	}
	return metrics, pages, err
}

func isRetryable(err error) bool {
	if errors.Is(err, ErrCancelled) { return false }
	var validationErr *ValidationError
	return !errors.As(err, &validationErr)
}
