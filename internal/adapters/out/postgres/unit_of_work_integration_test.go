package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "courierhub/internal/adapters/out/postgres"
	"courierhub/internal/adapters/out/postgres/orderrepo"
	"courierhub/internal/adapters/out/postgres/remittancerepo"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/domain/model/remittance"
	"courierhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type UnitOfWorkTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres_adapter.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.StageDTO{},
		&remittancerepo.RemittanceDTO{},
		&remittancerepo.RemittanceOrderDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkTestSuite) SetupTest() {
	for _, table := range []string{"remittance_orders", "remittances", "order_stages", "orders"} {
		suite.Require().NoError(suite.db.Exec("DELETE FROM " + table).Error)
	}
}

func (suite *UnitOfWorkTestSuite) TestCommit_PersistsOrder() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	aggregate := suite.newOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Commit(ctx))

	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *UnitOfWorkTestSuite) TestRollback_DiscardsOrder() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	aggregate := suite.newOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Rollback(ctx))

	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(int64(0), count)
}

func (suite *UnitOfWorkTestSuite) TestRollbackAfterCommit_KeepsCommittedData() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	aggregate := suite.newOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Commit(ctx))
	suite.ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *UnitOfWorkTestSuite) TestOrdersAndRemittancesShareTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))

	aggregate := suite.newOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))

	payout, err := remittance.NewRemittance(
		aggregate.SellerID(),
		time.Now().UTC(),
		decimal.NewFromInt(500),
		[]kernel.UUID{aggregate.ID()},
		time.Now().UTC(),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.RemittanceRepository().Add(ctx, payout))

	suite.Require().NoError(uow.Rollback(ctx))

	var orderCount, remittanceCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&orderCount).Error)
	suite.Require().NoError(suite.db.Model(&remittancerepo.RemittanceDTO{}).Count(&remittanceCount).Error)
	suite.Equal(int64(0), orderCount)
	suite.Equal(int64(0), remittanceCount)
}

func (suite *UnitOfWorkTestSuite) TestOptimisticLockAcrossUnitsOfWork() {
	ctx := context.Background()

	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	aggregate := suite.newOrder()
	suite.Require().NoError(setup.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(setup.Commit(ctx))

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	firstCopy, err := first.OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	second := suite.factory.Create()
	suite.Require().NoError(second.Begin(ctx))
	secondCopy, err := second.OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	now := time.Now().UTC()
	suite.Require().NoError(firstCopy.ApplyEvent(order.ReadyToShip, now, "booked"))
	suite.Require().NoError(first.OrderRepository().Update(ctx, firstCopy))
	suite.Require().NoError(first.Commit(ctx))

	suite.Require().NoError(secondCopy.ApplyEvent(order.ReadyToShip, now.Add(time.Second), "booked twice"))
	err = second.OrderRepository().Update(ctx, secondCopy)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrVersionIsInvalid)
	suite.Require().NoError(second.Rollback(ctx))
}

func (suite *UnitOfWorkTestSuite) newOrder() *order.Order {
	customerPin, err := kernel.NewPincode("560001")
	suite.Require().NoError(err)
	sellerPin, err := kernel.NewPincode("110001")
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		"REF-1",
		false,
		order.PackageDetails{
			WeightKg: decimal.RequireFromString("2.4"),
			LengthCm: decimal.NewFromInt(30),
			WidthCm:  decimal.NewFromInt(20),
			HeightCm: decimal.NewFromInt(10),
			BoxCount: 1,
		},
		order.PaymentCOD,
		decimal.NewFromInt(500),
		order.CustomerDetails{
			Name:    "Asha Rao",
			Phone:   "9876543210",
			Address: "14 MG Road",
			Pincode: customerPin,
			City:    "Bengaluru",
			State:   "Karnataka",
		},
		order.SellerDetails{
			Name:    "Acme Retail",
			Address: "1 Connaught Place",
			Pincode: sellerPin,
			City:    "New Delhi",
			State:   "Delhi",
			Phone:   "9811111111",
		},
		order.ProductLine{
			Name:         "Cotton Kurta",
			Category:     "apparel",
			Quantity:     1,
			TaxableValue: decimal.NewFromInt(450),
			TaxRate:      decimal.NewFromInt(5),
		},
		order.PickupHub{
			ID:      kernel.NewUUID(),
			Name:    "Delhi Hub",
			Phone:   "9810000000",
			Address: "Okhla Phase 2",
			Pincode: sellerPin,
			City:    "New Delhi",
			State:   "Delhi",
		},
		time.Now().UTC().Truncate(time.Second),
	)
	suite.Require().NoError(err)
	return aggregate
}

func TestUnitOfWorkTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkTestSuite))
}
