package locationrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/locationrepo"
	"dispatch/internal/adapters/out/postgres/pgtest"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tracking"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type LocationRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *locationrepo.GormLocationRepository
	couriers   *courierrepo.GormCourierRepository
	gate       tracking.Gate
}

func (suite *LocationRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.gate = tracking.NewGate(5 * time.Second)
}

func (suite *LocationRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Reset())

	tracker := new(pgtest.MockAggregateTracker)
	tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.repository = locationrepo.NewGormLocationRepository(suite.pg.DB)
	suite.couriers = courierrepo.NewGormCourierRepository(suite.pg.DB, tracker)
}

func (suite *LocationRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.pg != nil {
		suite.Require().NoError(suite.pg.Terminate(context.Background()))
	}
}

func (suite *LocationRepositoryIntegrationTestSuite) courier(available bool) *courier.Courier {
	c := pgtest.NewAvailableCourier("Bob")
	c.SetAvailability(available, pgtest.Now)
	suite.Require().NoError(suite.couriers.Add(context.Background(), c))
	return c
}

func (suite *LocationRepositoryIntegrationTestSuite) record(courierID kernel.UUID, lat, lng float64, at time.Time) tracking.Outcome {
	sample, err := tracking.NewSample(kernel.NewUUID(), courierID, lat, lng, 5, at)
	suite.Require().NoError(err)
	outcome, err := suite.repository.Record(context.Background(), sample, suite.gate, at)
	suite.Require().NoError(err)
	return outcome
}

func (suite *LocationRepositoryIntegrationTestSuite) samples(courierID kernel.UUID) []tracking.Sample {
	out, err := suite.repository.Recent(context.Background(), courierID, 0)
	suite.Require().NoError(err)
	return out
}

func (suite *LocationRepositoryIntegrationTestSuite) TestRecord_FirstSampleAccepted() {
	c := suite.courier(true)

	outcome := suite.record(c.ID(), 52.52, 13.405, pgtest.Now)

	suite.Equal(tracking.Ack(), outcome)
	stored, err := suite.couriers.Get(context.Background(), c.ID())
	suite.Require().NoError(err)
	position, ok := stored.Position()
	suite.Require().True(ok)
	suite.InDelta(13.405, position.Longitude(), 1e-9)
	suite.Len(suite.samples(c.ID()), 1)
}

func (suite *LocationRepositoryIntegrationTestSuite) TestRecord_WithinDebounceSkipped() {
	c := suite.courier(true)
	suite.record(c.ID(), 52.52, 13.405, pgtest.Now)

	outcome := suite.record(c.ID(), 52.53, 13.406, pgtest.Now.Add(2*time.Second))

	suite.Equal(tracking.Skipped(tracking.ReasonTooSoon), outcome)
	stored, err := suite.couriers.Get(context.Background(), c.ID())
	suite.Require().NoError(err)
	position, _ := stored.Position()
	suite.InDelta(52.52, position.Latitude(), 1e-9, "the first position stays")
	suite.Len(suite.samples(c.ID()), 1)
}

func (suite *LocationRepositoryIntegrationTestSuite) TestRecord_AfterDebounceAccepted() {
	c := suite.courier(true)
	suite.record(c.ID(), 52.52, 13.405, pgtest.Now)

	outcome := suite.record(c.ID(), 52.53, 13.406, pgtest.Now.Add(10*time.Second))

	suite.Equal(tracking.Ack(), outcome)
	samples := suite.samples(c.ID())
	suite.Require().Len(samples, 2)
	suite.True(samples[0].RecordedAt().After(samples[1].RecordedAt()), "newest first")
}

func (suite *LocationRepositoryIntegrationTestSuite) TestRecord_OfflineSkipped() {
	c := suite.courier(false)

	outcome := suite.record(c.ID(), 52.52, 13.405, pgtest.Now)

	suite.Equal(tracking.Skipped(tracking.ReasonOffline), outcome)
	suite.Empty(suite.samples(c.ID()))
}

func (suite *LocationRepositoryIntegrationTestSuite) TestRecord_UnknownCourier() {
	sample, err := tracking.NewSample(kernel.NewUUID(), kernel.NewUUID(), 52.52, 13.405, 5, pgtest.Now)
	suite.Require().NoError(err)

	_, err = suite.repository.Record(context.Background(), sample, suite.gate, pgtest.Now)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *LocationRepositoryIntegrationTestSuite) TestRecord_ConcurrentSamplesOneWins() {
	c := suite.courier(true)

	const writers = 10
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		acked    int
		tooSoon  int
		failures []error
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sample, err := tracking.NewSample(kernel.NewUUID(), c.ID(), 52.5+float64(i)/1000, 13.4, 5, pgtest.Now)
			if err != nil {
				mu.Lock()
				failures = append(failures, err)
				mu.Unlock()
				return
			}
			outcome, err := suite.repository.Record(context.Background(), sample, suite.gate, pgtest.Now)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				failures = append(failures, err)
			case outcome.Recorded:
				acked++
			case outcome.Reason == tracking.ReasonTooSoon:
				tooSoon++
			}
		}(i)
	}
	wg.Wait()

	suite.Empty(failures)
	suite.Equal(1, acked)
	suite.Equal(writers-1, tooSoon)
	suite.Len(suite.samples(c.ID()), 1)
}

func (suite *LocationRepositoryIntegrationTestSuite) TestRecent_Limit() {
	c := suite.courier(true)
	for i := 0; i < 3; i++ {
		suite.record(c.ID(), 52.52, 13.405, pgtest.Now.Add(time.Duration(i)*10*time.Second))
	}

	recent, err := suite.repository.Recent(context.Background(), c.ID(), 2)
	suite.Require().NoError(err)
	suite.Len(recent, 2)
}

func TestLocationRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(LocationRepositoryIntegrationTestSuite))
}
