package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row.
type OrderDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RestaurantID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerName  string          `gorm:"type:varchar(255);not null"`
	CustomerPhone string          `gorm:"type:varchar(64);not null"`
	Street        string          `gorm:"type:text;not null"`
	Latitude      *float64        `gorm:"type:double precision"`
	Longitude     *float64        `gorm:"type:double precision"`
	Subtotal      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	DeliveryFee   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Status        string          `gorm:"type:varchar(32);not null;index"`
	CreatedAt     time.Time       `gorm:"autoCreateTime:false;not null;index"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime:false;not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:            o.ID().Bytes(),
		RestaurantID:  o.RestaurantID().Bytes(),
		CustomerName:  o.Customer().Name(),
		CustomerPhone: o.Customer().Phone(),
		Street:        o.Address().Street(),
		Subtotal:      o.Subtotal().Decimal(),
		DeliveryFee:   o.DeliveryFee().Decimal(),
		Total:         o.Total().Decimal(),
		Status:        o.Status().String(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}
	if p, ok := o.Address().Position(); ok {
		lat, lng := p.Latitude(), p.Longitude()
		dto.Latitude, dto.Longitude = &lat, &lng
	}
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	customer, err := order.NewCustomer(dto.CustomerName, dto.CustomerPhone)
	if err != nil {
		return nil, err
	}

	var position *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		p, posErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if posErr != nil {
			return nil, posErr
		}
		position = &p
	}
	address, err := order.NewAddress(dto.Street, position)
	if err != nil {
		return nil, err
	}

	subtotal, err := kernel.NewMoney(dto.Subtotal)
	if err != nil {
		return nil, err
	}
	fee, err := kernel.NewMoney(dto.DeliveryFee)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:           id,
		RestaurantID: restaurantID,
		Customer:     customer,
		Address:      address,
		Subtotal:     subtotal,
		DeliveryFee:  fee,
		Status:       status,
		CreatedAt:    dto.CreatedAt,
		UpdatedAt:    dto.UpdatedAt,
	})
}
