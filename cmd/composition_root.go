package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"courierhub/internal/adapters/out/channels"
	"courierhub/internal/adapters/out/postgres"
	"courierhub/internal/adapters/out/postgres/pincoderepo"
	"courierhub/internal/adapters/out/postgres/pricingrepo"
	"courierhub/internal/adapters/out/redis/quotecache"
	"courierhub/internal/adapters/out/vendors"
	"courierhub/internal/core/application/usecases/commands"
	"courierhub/internal/core/application/usecases/queries"
	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/domain/model/vendor"
	"courierhub/internal/core/domain/services"
	"courierhub/internal/core/ports"
	"courierhub/internal/jobs"
	"courierhub/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot wires every adapter and use case of the application.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	pool       *vendors.Pool
	classifier *services.ZoneClassifier
	shopper    *services.RateShopper
	quoteCache *quotecache.RedisQuoteCache
	accounts   []commands.ChannelAccount
	logger     *slog.Logger
}

// NewCompositionRoot builds the object graph. The pincode directory is
// loaded once here; zone classification never touches the database again.
func NewCompositionRoot(
	ctx context.Context,
	config Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	records, err := pincoderepo.NewGormPincodeRepository(gormDB).GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading pincode directory: %w", err)
	}

	gateways := make([]ports.VendorGateway, 0, len(config.Vendors))
	for _, vc := range config.Vendors {
		caps, capErr := parseCapabilities(vc.Capabilities)
		if capErr != nil {
			return nil, capErr
		}
		gateways = append(gateways, vendors.NewGateway(vendors.Config{
			ID:           vc.ID,
			Name:         vc.Name,
			BaseURL:      vc.BaseURL,
			Email:        vc.Email,
			Password:     vc.Password,
			Capabilities: caps,
			Timeout:      time.Duration(vc.TimeoutSeconds) * time.Second,
		}, logger))
	}
	pool := vendors.NewPool(gateways...)

	root := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		pool:       pool,
		classifier: services.NewZoneClassifier(records),
		shopper:    services.NewRateShopper(services.NewPriceCalculator()),
		quoteCache: quotecache.NewRedisQuoteCache(redisClient),
		logger:     logger,
	}

	if config.Shopify != nil {
		account, accErr := root.shopifyAccount(*config.Shopify)
		if accErr != nil {
			return nil, accErr
		}
		root.accounts = append(root.accounts, account)
	}

	return root, nil
}

func (c *CompositionRoot) shopifyAccount(cfg ChannelConfig) (commands.ChannelAccount, error) {
	sellerID, err := kernel.UUIDFromString(cfg.SellerID)
	if err != nil {
		return commands.ChannelAccount{}, fmt.Errorf("channel seller id: %w", err)
	}
	pincode, err := kernel.NewPincode(cfg.SellerPincode)
	if err != nil {
		return commands.ChannelAccount{}, fmt.Errorf("channel seller pincode: %w", err)
	}

	client := channels.NewShopifyClient(channels.ShopifyConfig{
		ShopURL:     cfg.ShopURL,
		AccessToken: cfg.AccessToken,
		Timeout:     time.Duration(cfg.TimeoutSeconds) * time.Second,
	}, c.logger)

	return commands.ChannelAccount{
		Client:   client,
		SellerID: sellerID,
		Seller: order.SellerDetails{
			Name:    cfg.SellerName,
			GSTIN:   cfg.SellerGSTIN,
			Address: cfg.SellerAddress,
			Pincode: pincode,
			City:    cfg.SellerCity,
			State:   cfg.SellerState,
			Phone:   cfg.SellerPhone,
		},
		Hub: order.PickupHub{
			ID:      kernel.NewUUID(),
			Name:    cfg.HubName,
			Phone:   cfg.SellerPhone,
			Address: cfg.SellerAddress,
			Pincode: pincode,
			City:    cfg.SellerCity,
			State:   cfg.SellerState,
		},
	}, nil
}

func parseCapabilities(names []string) ([]vendor.Capability, error) {
	byName := map[string]vendor.Capability{
		"Authenticate":         vendor.Authenticate,
		"CreateShipment":       vendor.CreateShipment,
		"CreateReturnShipment": vendor.CreateReturnShipment,
		"CancelShipment":       vendor.CancelShipment,
		"FetchQuote":           vendor.FetchQuote,
	}
	caps := make([]vendor.Capability, 0, len(names))
	for _, name := range names {
		capability, ok := byName[name]
		if !ok {
			return nil, errs.NewValueIsInvalidErrorWithCause("capability",
				fmt.Errorf("%q is not a defined capability", name))
		}
		caps = append(caps, capability)
	}
	return caps, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateShopRatesCommandHandler() commands.ShopRatesCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewShopRatesCommandHandler(
		f,
		pricingrepo.NewGormPricingProfileRepository(c.gormDB),
		c.pool,
		c.classifier,
		c.shopper,
		c.quoteCache,
	)
}

func (c *CompositionRoot) CreateBookVendorCommandHandler() commands.BookVendorCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewBookVendorCommandHandler(f, c.pool, c.quoteCache)
}

func (c *CompositionRoot) CreateApplyStatusEventCommandHandler() commands.ApplyStatusEventCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApplyStatusEventCommandHandler(f)
}

func (c *CompositionRoot) CreatePollChannelCommandHandler() *commands.PollChannelCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPollChannelCommandHandler(f, c.accounts, c.logger)
}

func (c *CompositionRoot) CreateComputeRemittanceCommandHandler() commands.ComputeRemittanceCommandHandler {
	var f commands.RemittanceUoWFactory = FuncRemittanceUoWFactory(func() commands.RemittanceUoW {
		return c.uowFactory.Create()
	})
	return commands.NewComputeRemittanceCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

// CreateJobManager builds the scheduled job set over the wired handlers.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	channelNames := make([]string, 0, len(c.accounts))
	for _, a := range c.accounts {
		channelNames = append(channelNames, a.Client.Name())
	}
	return jobs.NewJobManager(
		c.pool,
		c.CreatePollChannelCommandHandler(),
		channelNames,
		c.CreateComputeRemittanceCommandHandler(),
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncRemittanceUoWFactory func() commands.RemittanceUoW

func (f FuncRemittanceUoWFactory) Create() commands.RemittanceUoW {
	return f()
}
