package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"dispatch/api"
	apihttp "dispatch/internal/adapters/in/http"
	amqpsink "dispatch/internal/adapters/out/amqp"
	"dispatch/internal/adapters/out/kafka"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/locationrepo"
	"dispatch/internal/adapters/out/postgres/outboxrepo"
	"dispatch/internal/adapters/out/realtime"
	"dispatch/internal/adapters/out/redisbus"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	domaintracking "dispatch/internal/core/domain/model/tracking"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"
	"dispatch/internal/tracking"

	"github.com/IBM/sarama"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	listenerMinReconnect = 10 * time.Second
	listenerMaxReconnect = time.Minute
)

// CompositionRoot owns the process-wide dependencies and builds handlers from them.
type CompositionRoot struct {
	cfg        *Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	clock      kernel.Clock
	logger     *slog.Logger

	hub      *realtime.Hub
	bus      *redisbus.Bus
	listener *postgres.OutboxListener
	sinks    []ports.EventPublisher
	closers  []func() error
}

// NewCompositionRoot connects the optional brokers named in cfg. Brokers that are not
// configured are left out; a configured broker that cannot be reached is an error.
func NewCompositionRoot(cfg *Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	clock := kernel.SystemClock{}
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, clock),
		clock:      clock,
		logger:     logger,
		hub: realtime.NewHub(realtime.Options{
			BufferSize:   cfg.Realtime.BufferSize,
			ReplaySize:   cfg.Realtime.ReplaySize,
			PollInterval: cfg.Realtime.PollInterval,
		}, logger),
		listener: postgres.NewOutboxListener(cfg.DB.DSN(), logger),
	}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		c.bus = redisbus.NewBus(client, cfg.Redis.Channel, logger)
		c.closers = append(c.closers, client.Close)
	}

	if len(cfg.Kafka.Brokers) > 0 {
		producerCfg, err := kafka.NewProducerConfig(cfg.Kafka.Version)
		if err != nil {
			return nil, errors.Join(err, c.Close())
		}
		producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, producerCfg)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("connect kafka: %w", err), c.Close())
		}
		sink := kafka.NewSink(producer, cfg.Kafka.Topic)
		c.sinks = append(c.sinks, sink)
		c.closers = append(c.closers, sink.Close)
	}

	if cfg.AMQP.URL != "" {
		sink, conn, err := amqpsink.Dial(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			return nil, errors.Join(err, c.Close())
		}
		c.sinks = append(c.sinks, sink)
		c.closers = append(c.closers, sink.Close, conn.Close)
	}

	return c, nil
}

// RunBackground starts the outbox listener and, with Redis configured, the bus consumer
// feeding the local hub. Both stop when ctx is done.
func (c *CompositionRoot) RunBackground(ctx context.Context) {
	go func() {
		if err := c.listener.Run(ctx, listenerMinReconnect, listenerMaxReconnect); err != nil && ctx.Err() == nil {
			c.logger.ErrorContext(ctx, "outbox listener stopped", "error", err)
		}
	}()
	if c.bus != nil {
		go func() {
			if err := c.bus.Run(ctx, c.hub); err != nil && ctx.Err() == nil {
				c.logger.ErrorContext(ctx, "redis bus stopped", "error", err)
			}
		}()
	}
}

// Close ends every stream and releases broker connections.
func (c *CompositionRoot) Close() error {
	c.hub.Close()
	var errList []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errList = append(errList, err)
		}
	}
	c.closers = nil
	return errors.Join(errList...)
}

func (c *CompositionRoot) Hub() *realtime.Hub { return c.hub }

// LivePublisher reaches every instance's hub: through Redis when configured, otherwise
// the local hub only.
func (c *CompositionRoot) LivePublisher() ports.EventPublisher {
	if c.bus != nil {
		return c.bus
	}
	return c.hub
}

// OutboxPublisher receives relayed outbox events: the live publisher plus the configured sinks.
func (c *CompositionRoot) OutboxPublisher() ports.EventPublisher {
	return realtime.NewFanout(append([]ports.EventPublisher{c.LivePublisher()}, c.sinks...)...)
}

func (c *CompositionRoot) CreateCreateAssignmentCommandHandler() commands.CreateAssignmentCommandHandler {
	return commands.NewCreateAssignmentCommandHandler(c.uowFactoryFunc(), c.clock, commands.DefaultRetryPolicy())
}

func (c *CompositionRoot) CreateTransitionAssignmentCommandHandler() commands.TransitionAssignmentCommandHandler {
	return commands.NewTransitionAssignmentCommandHandler(c.uowFactoryFunc(), c.clock, commands.DefaultRetryPolicy())
}

func (c *CompositionRoot) CreateRejectAssignmentCommandHandler() commands.RejectAssignmentCommandHandler {
	return commands.NewRejectAssignmentCommandHandler(c.CreateTransitionAssignmentCommandHandler())
}

func (c *CompositionRoot) CreatePickUpCommandHandler() commands.PickUpCommandHandler {
	return commands.NewPickUpCommandHandler(c.CreateTransitionAssignmentCommandHandler())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.uowFactoryFunc(), c.clock, commands.DefaultRetryPolicy())
}

func (c *CompositionRoot) CreateAdvanceOrderStatusCommandHandler() commands.AdvanceOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceOrderStatusCommandHandler(f, c.clock, commands.DefaultRetryPolicy())
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateCourierCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateSetCourierAvailabilityCommandHandler() commands.SetCourierAvailabilityCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetCourierAvailabilityCommandHandler(f, c.clock, commands.DefaultRetryPolicy())
}

func (c *CompositionRoot) CreateCreateRestaurantCommandHandler() commands.CreateRestaurantCommandHandler {
	var f commands.RestaurantUoWFactory = FuncRestaurantUoWFactory(func() commands.RestaurantUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateRestaurantCommandHandler(f)
}

// CreateRecordLocationCommandHandler publishes location events live; they skip the outbox.
func (c *CompositionRoot) CreateRecordLocationCommandHandler() commands.RecordLocationCommandHandler {
	var f commands.LocationUoWFactory = FuncLocationUoWFactory(func() commands.LocationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordLocationCommandHandler(
		f,
		domaintracking.NewGate(c.cfg.Tracking.Debounce),
		c.clock,
		c.LivePublisher(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateAutoAssignCommandHandler() commands.AutoAssignCommandHandler {
	return commands.NewAutoAssignCommandHandler(
		c.uowFactoryFunc(),
		c.CreateCreateAssignmentCommandHandler(),
		services.NewOrderDispatcher(c.cfg.AutoDispatch.RadiusKm),
	)
}

func (c *CompositionRoot) CreateGetAllCouriersQueryHandler() queries.GetAllCouriersQueryHandler {
	return queries.NewGetAllCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAssignmentQueryHandler() queries.GetAssignmentQueryHandler {
	return queries.NewGetAssignmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRestaurantQueryHandler() queries.GetRestaurantQueryHandler {
	return queries.NewGetRestaurantQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRecentLocationsQueryHandler() queries.GetRecentLocationsQueryHandler {
	return queries.NewGetRecentLocationsQueryHandler(locationrepo.NewGormLocationRepository(c.gormDB))
}

func (c *CompositionRoot) CreateListCourierAssignmentsQueryHandler() queries.ListCourierAssignmentsQueryHandler {
	return queries.NewListCourierAssignmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListRestaurantOrdersQueryHandler() queries.ListRestaurantOrdersQueryHandler {
	return queries.NewListRestaurantOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *apihttp.Server {
	return apihttp.NewServer(apihttp.Handlers{
		CreateAssignment:       c.CreateCreateAssignmentCommandHandler(),
		TransitionAssignment:   c.CreateTransitionAssignmentCommandHandler(),
		RejectAssignment:       c.CreateRejectAssignmentCommandHandler(),
		PickUp:                 c.CreatePickUpCommandHandler(),
		CancelOrder:            c.CreateCancelOrderCommandHandler(),
		AdvanceOrderStatus:     c.CreateAdvanceOrderStatusCommandHandler(),
		CreateOrder:            c.CreateCreateOrderCommandHandler(),
		CreateCourier:          c.CreateCreateCourierCommandHandler(),
		CreateRestaurant:       c.CreateCreateRestaurantCommandHandler(),
		SetCourierAvailability: c.CreateSetCourierAvailabilityCommandHandler(),
		RecordLocation:         c.CreateRecordLocationCommandHandler(),
		GetAllCouriers:         c.CreateGetAllCouriersQueryHandler(),
		GetAssignment:          c.CreateGetAssignmentQueryHandler(),
		GetRestaurant:          c.CreateGetRestaurantQueryHandler(),
		GetRecentLocations:     c.CreateGetRecentLocationsQueryHandler(),
		ListCourierAssignments: c.CreateListCourierAssignmentsQueryHandler(),
		ListRestaurantOrders:   c.CreateListRestaurantOrdersQueryHandler(),
	}, c.hub, c.logger)
}

func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	validator, err := apihttp.NewRequestValidator(api.OpenAPI, apihttp.BasePath)
	if err != nil {
		return nil, err
	}
	if c.cfg.Auth.JWTSecret == "" {
		c.logger.Warn("JWT secret is not set, every request is treated as a dispatcher")
	}
	auth := apihttp.NewAuthenticator(c.cfg.Auth.JWTSecret, nil)
	return apihttp.NewRouter(c.CreateHTTPServer(), auth, validator, c.logger), nil
}

// CreateJobs returns the background jobs enabled by the configuration.
func (c *CompositionRoot) CreateJobs() ([]jobs.Job, error) {
	list := []jobs.Job{
		jobs.NewOutboxRelayJob(
			outboxrepo.NewRelay(c.gormDB, c.clock.Now),
			c.OutboxPublisher(),
			c.listener.Wake(),
			jobs.OutboxRelayConfig{
				Schedule:  c.cfg.Outbox.Schedule,
				Batch:     c.cfg.Outbox.Batch,
				Retention: c.cfg.Outbox.Retention,
			},
			c.clock.Now,
			c.logger,
		),
	}

	if c.cfg.AutoDispatch.Enabled {
		list = append(list, jobs.NewAutoAssignJob(c.CreateAutoAssignCommandHandler(), c.cfg.AutoDispatch.Schedule, c.logger))
	}

	if len(c.cfg.Simulation.Couriers) > 0 {
		fleet, err := c.CreateSimulatedFleet()
		if err != nil {
			return nil, err
		}
		list = append(list, fleet)
	}
	return list, nil
}

// CreateSimulatedFleet tracks the configured couriers in process, each on its own random walk.
func (c *CompositionRoot) CreateSimulatedFleet() (*tracking.Fleet, error) {
	start, err := kernel.NewGeoPoint(c.cfg.Simulation.Latitude, c.cfg.Simulation.Longitude)
	if err != nil {
		return nil, fmt.Errorf("simulation start point: %w", err)
	}

	recorder := tracking.NewCommandRecorder(c.CreateRecordLocationCommandHandler())
	sessions := make([]*tracking.Session, 0, len(c.cfg.Simulation.Couriers))
	for i, raw := range c.cfg.Simulation.Couriers {
		courierID, err := kernel.UUIDFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("simulation courier %q: %w", raw, err)
		}
		source := tracking.NewRandomWalk(start, c.cfg.Simulation.StepKm, uint64(i+1))
		sessions = append(sessions, tracking.NewSession(courierID, source, recorder,
			tracking.Config{Interval: c.cfg.Tracking.Interval}, c.logger))
	}
	return tracking.NewFleet(sessions...), nil
}

func (c *CompositionRoot) uowFactoryFunc() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncRestaurantUoWFactory func() commands.RestaurantUoW

func (f FuncRestaurantUoWFactory) Create() commands.RestaurantUoW {
	return f()
}

type FuncLocationUoWFactory func() commands.LocationUoW

func (f FuncLocationUoWFactory) Create() commands.LocationUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
