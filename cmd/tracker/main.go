// Command tracker reports a simulated courier position to the dispatch API, the way the
// courier app does while on shift.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/tracking"
)

func main() {
	apiURL := flag.String("api", "http://localhost:8080/api/v1", "dispatch API base URL")
	courier := flag.String("courier", "", "courier id")
	token := flag.String("token", os.Getenv("DISPATCH_TOKEN"), "courier bearer token (default $DISPATCH_TOKEN)")
	lat := flag.Float64("lat", 41.0082, "start latitude")
	lng := flag.Float64("lng", 28.9784, "start longitude")
	step := flag.Float64("step-km", 0.05, "maximum distance moved between samples")
	interval := flag.Duration("interval", tracking.DefaultInterval, "sampling interval")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	courierID, err := kernel.UUIDFromString(*courier)
	if err != nil {
		logger.Error("--courier must be a courier id", "error", err)
		os.Exit(2)
	}
	start, err := kernel.NewGeoPoint(*lat, *lng)
	if err != nil {
		logger.Error("invalid start point", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := tracking.NewSession(
		courierID,
		tracking.NewRandomWalk(start, *step, uint64(time.Now().UnixNano())),
		tracking.NewHTTPRecorder(&http.Client{Timeout: 15 * time.Second}, *apiURL, *token),
		tracking.Config{Interval: *interval},
		logger,
	)
	logger.Info("tracking started", "courier_id", courierID.String(), "interval", session.Interval())

	session.Start(ctx)
	<-ctx.Done()
	session.Stop()
	logger.Info("tracking stopped")
}
