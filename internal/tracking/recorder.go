package tracking

import (
	"context"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	domain "dispatch/internal/core/domain/model/tracking"
)

// CommandRecorder records fixes in process through the location command handler.
type CommandRecorder struct {
	handler commands.RecordLocationCommandHandler
}

func NewCommandRecorder(handler commands.RecordLocationCommandHandler) CommandRecorder {
	return CommandRecorder{handler: handler}
}

func (r CommandRecorder) RecordLocation(ctx context.Context, courierID kernel.UUID, fix Fix) (domain.Outcome, error) {
	cmd, err := commands.NewRecordLocationCommand(courierID, fix.Latitude, fix.Longitude, fix.Accuracy)
	if err != nil {
		return domain.Outcome{}, err
	}
	return r.handler.Handle(ctx, cmd)
}
