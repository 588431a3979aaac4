package outboxrepo_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/outboxrepo"
	"dispatch/internal/adapters/out/postgres/pgtest"
	"dispatch/internal/core/domain/events"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type OutboxIntegrationTestSuite struct {
	suite.Suite
	pg    *pgtest.Database
	relay *outboxrepo.Relay
	now   time.Time
}

func (suite *OutboxIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *OutboxIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Reset())
	suite.now = pgtest.Now.Add(time.Minute)
	suite.relay = outboxrepo.NewRelay(suite.pg.DB, func() time.Time { return suite.now })
}

func (suite *OutboxIntegrationTestSuite) TearDownSuite() {
	if suite.pg != nil {
		suite.Require().NoError(suite.pg.Terminate(context.Background()))
	}
}

// appendOrders commits n order.created envelopes and returns them in commit order.
func (suite *OutboxIntegrationTestSuite) appendOrders(n int) []events.Envelope {
	restaurantID := kernel.NewUUID()
	envelopes := make([]events.Envelope, 0, n)
	for i := 0; i < n; i++ {
		envelopes = append(envelopes, events.NewOrderEvent(events.OrderCreated, pgtest.NewOrder(restaurantID), pgtest.Now))
	}

	err := suite.pg.DB.Transaction(func(tx *gorm.DB) error {
		return outboxrepo.NewWriter(tx).Append(context.Background(), envelopes)
	})
	suite.Require().NoError(err)
	return envelopes
}

func (suite *OutboxIntegrationTestSuite) TestAppend_RolledBackWithTransaction() {
	envelope := events.NewOrderEvent(events.OrderCreated, pgtest.NewOrder(kernel.NewUUID()), pgtest.Now)
	boom := errors.New("boom")

	err := suite.pg.DB.Transaction(func(tx *gorm.DB) error {
		if err := outboxrepo.NewWriter(tx).Append(context.Background(), []events.Envelope{envelope}); err != nil {
			return err
		}
		return boom
	})
	suite.Require().ErrorIs(err, boom)

	count, _, err := suite.relay.Backlog(context.Background())
	suite.Require().NoError(err)
	suite.Zero(count)
}

func (suite *OutboxIntegrationTestSuite) TestAppend_Empty() {
	suite.Require().NoError(outboxrepo.NewWriter(suite.pg.DB).Append(context.Background(), nil))
}

func (suite *OutboxIntegrationTestSuite) TestDrain_InCommitOrderOnce() {
	ctx := context.Background()
	written := suite.appendOrders(3)

	var got []events.Envelope
	n, err := suite.relay.Drain(ctx, 10, func(_ context.Context, e events.Envelope) error {
		got = append(got, e)
		return nil
	})
	suite.Require().NoError(err)
	suite.Equal(3, n)
	suite.Require().Len(got, 3)
	for i := range written {
		suite.Equal(written[i].ID, got[i].ID)
		suite.Equal(written[i].RestaurantID, got[i].RestaurantID)
		suite.Require().NotNil(got[i].Order)
	}

	n, err = suite.relay.Drain(ctx, 10, func(context.Context, events.Envelope) error {
		suite.Fail("already dispatched")
		return nil
	})
	suite.Require().NoError(err)
	suite.Zero(n)
}

func (suite *OutboxIntegrationTestSuite) TestDrain_StopsAtFirstFailure() {
	ctx := context.Background()
	written := suite.appendOrders(3)
	unavailable := errors.New("broker unavailable")

	n, err := suite.relay.Drain(ctx, 10, func(_ context.Context, e events.Envelope) error {
		if e.ID == written[1].ID {
			return unavailable
		}
		return nil
	})
	suite.Require().ErrorIs(err, unavailable)
	suite.Equal(1, n)

	var retried []string
	n, err = suite.relay.Drain(ctx, 10, func(_ context.Context, e events.Envelope) error {
		retried = append(retried, e.ID)
		return nil
	})
	suite.Require().NoError(err)
	suite.Equal(2, n)
	suite.Equal([]string{written[1].ID, written[2].ID}, retried)
}

func (suite *OutboxIntegrationTestSuite) TestDrain_ConcurrentRelaysDeliverEachRowOnce() {
	ctx := context.Background()
	suite.appendOrders(40)

	var (
		mu   sync.Mutex
		seen = make(map[string]int)
		wg   sync.WaitGroup
	)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				n, err := suite.relay.Drain(ctx, 5, func(_ context.Context, e events.Envelope) error {
					mu.Lock()
					seen[e.ID]++
					mu.Unlock()
					return nil
				})
				if err != nil || n == 0 {
					return
				}
			}
		}()
	}
	wg.Wait()

	count, _, err := suite.relay.Backlog(ctx)
	suite.Require().NoError(err)
	suite.Zero(count)
	suite.Len(seen, 40)
	for id, times := range seen {
		suite.Equal(1, times, id)
	}
}

func (suite *OutboxIntegrationTestSuite) TestBacklogAndPurge() {
	ctx := context.Background()
	suite.appendOrders(2)

	count, age, err := suite.relay.Backlog(ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(2), count)
	suite.Equal(time.Minute, age)

	_, err = suite.relay.Drain(ctx, 10, func(context.Context, events.Envelope) error { return nil })
	suite.Require().NoError(err)

	purged, err := suite.relay.Purge(ctx, suite.now)
	suite.Require().NoError(err)
	suite.Zero(purged, "rows dispatched at the cutoff are kept")

	purged, err = suite.relay.Purge(ctx, suite.now.Add(time.Second))
	suite.Require().NoError(err)
	suite.Equal(int64(2), purged)
}

func TestOutboxIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OutboxIntegrationTestSuite))
}
