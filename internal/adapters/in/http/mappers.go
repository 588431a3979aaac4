package http

import (
	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/generated/servers"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// kernelID converts a bound path parameter. The nil UUID is rejected.
func kernelID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

// apiID converts a record id. Records are written from kernel.UUID values, so a parse
// failure cannot happen for stored data and maps to the nil UUID.
func apiID(s string) openapi_types.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func toAssignment(r events.AssignmentRecord) servers.DeliveryAssignment {
	return servers.DeliveryAssignment{
		Id:           apiID(r.ID),
		OrderId:      apiID(r.OrderID),
		CourierId:    apiID(r.CourierID),
		RestaurantId: apiID(r.RestaurantID),
		Status:       servers.DeliveryAssignmentStatus(r.Status),
		DeliveryFee:  r.DeliveryFee,
		AssignedAt:   r.AssignedAt,
		AcceptedAt:   r.AcceptedAt,
		PickedUpAt:   r.PickedUpAt,
		OnTheWayAt:   r.OnTheWayAt,
		DeliveredAt:  r.DeliveredAt,
		RejectedAt:   r.RejectedAt,
		CancelledAt:  r.CancelledAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func toAssignments(records []events.AssignmentRecord) []servers.DeliveryAssignment {
	out := make([]servers.DeliveryAssignment, len(records))
	for i, r := range records {
		out[i] = toAssignment(r)
	}
	return out
}

func toOrder(r events.OrderRecord) servers.Order {
	return servers.Order{
		Id:            apiID(r.ID),
		RestaurantId:  apiID(r.RestaurantID),
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Street:        r.Street,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
		Subtotal:      r.Subtotal,
		DeliveryFee:   r.DeliveryFee,
		Total:         r.Total,
		Status:        servers.OrderStatus(r.Status),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func toOrders(records []events.OrderRecord) []servers.Order {
	out := make([]servers.Order, len(records))
	for i, r := range records {
		out[i] = toOrder(r)
	}
	return out
}

func toCourier(r events.CourierRecord) servers.Courier {
	c := servers.Courier{
		Id:                 apiID(r.ID),
		Name:               r.Name,
		Phone:              r.Phone,
		VehicleType:        r.VehicleType,
		IsActive:           r.IsActive,
		IsAvailable:        r.IsAvailable,
		CourierStatus:      servers.CourierCourierStatus(r.CourierStatus),
		ActiveAssignments:  r.ActiveAssignments,
		CurrentLatitude:    r.CurrentLatitude,
		CurrentLongitude:   r.CurrentLongitude,
		LastLocationUpdate: r.LastLocationUpdate,
		UpdatedAt:          r.UpdatedAt,
	}
	if r.VehiclePlate != "" {
		plate := r.VehiclePlate
		c.VehiclePlate = &plate
	}
	return c
}

func toCouriers(records []events.CourierRecord) []servers.Courier {
	out := make([]servers.Courier, len(records))
	for i, r := range records {
		out[i] = toCourier(r)
	}
	return out
}

func toLocationSamples(records []events.LocationSampleRecord) []servers.CourierLocationSample {
	out := make([]servers.CourierLocationSample, len(records))
	for i, r := range records {
		out[i] = servers.CourierLocationSample{
			Id:         apiID(r.ID),
			CourierId:  apiID(r.CourierID),
			Latitude:   r.Latitude,
			Longitude:  r.Longitude,
			Accuracy:   r.Accuracy,
			RecordedAt: r.RecordedAt,
		}
	}
	return out
}

func toRestaurant(r events.RestaurantRecord) servers.Restaurant {
	return servers.Restaurant{
		Id:        apiID(r.ID),
		Name:      r.Name,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
	}
}
