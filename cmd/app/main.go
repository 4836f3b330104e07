package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"courierhub/cmd"
	httpin "courierhub/internal/adapters/in/http"
	"courierhub/internal/adapters/out/postgres/orderrepo"
	"courierhub/internal/adapters/out/postgres/pincoderepo"
	"courierhub/internal/adapters/out/postgres/pricingrepo"
	"courierhub/internal/adapters/out/postgres/remittancerepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := godotenv.Load(".env"); err != nil {
		logger.Warn("No .env file found, using process environment")
	}
	configs := getConfigs()

	db, err := openDatabase(configs)
	if err != nil {
		logger.Error("Failed to open database", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
	})

	root, err := cmd.NewCompositionRoot(context.Background(), configs, db, redisClient, logger)
	if err != nil {
		logger.Error("Failed to build application", "error", err)
		os.Exit(1)
	}

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		logger.Error("Failed to start jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:      envVariable("HTTP_PORT"),
		DBHost:        envVariable("DB_HOST"),
		DBPort:        envVariable("DB_PORT"),
		DBUser:        envVariable("DB_USER"),
		DBPassword:    envVariable("DB_PASSWORD"),
		DBName:        envVariable("DB_NAME"),
		DBSslMode:     envVariable("DB_SSLMODE"),
		RedisAddr:     envVariable("REDIS_ADDR"),
		RedisPassword: envVariable("REDIS_PASSWORD"),
		Vendors:       vendorConfigs(),
	}

	if shopURL := envVariable("SHOPIFY_SHOP_URL"); shopURL != "" {
		config.Shopify = &cmd.ChannelConfig{
			ShopURL:        shopURL,
			AccessToken:    envVariable("SHOPIFY_ACCESS_TOKEN"),
			TimeoutSeconds: envIntVariable("SHOPIFY_TIMEOUT_SECONDS"),
			SellerID:       envVariable("SHOPIFY_SELLER_ID"),
			SellerName:     envVariable("SHOPIFY_SELLER_NAME"),
			SellerPhone:    envVariable("SHOPIFY_SELLER_PHONE"),
			SellerGSTIN:    envVariable("SHOPIFY_SELLER_GSTIN"),
			SellerAddress:  envVariable("SHOPIFY_SELLER_ADDRESS"),
			SellerPincode:  envVariable("SHOPIFY_SELLER_PINCODE"),
			SellerCity:     envVariable("SHOPIFY_SELLER_CITY"),
			SellerState:    envVariable("SHOPIFY_SELLER_STATE"),
			HubName:        envVariable("SHOPIFY_HUB_NAME"),
		}
	}

	return config
}

// vendorConfigs reads the vendor list from VENDOR_IDS and the per-vendor
// settings from VENDOR_<ID>_* variables. The VENDOR_IDS order is the rate
// tie-break priority.
func vendorConfigs() []cmd.VendorConfig {
	ids := strings.Split(envVariable("VENDOR_IDS"), ",")

	configs := make([]cmd.VendorConfig, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		prefix := "VENDOR_" + strings.ToUpper(id) + "_"
		configs = append(configs, cmd.VendorConfig{
			ID:             id,
			Name:           envVariable(prefix + "NAME"),
			BaseURL:        envVariable(prefix + "BASE_URL"),
			Email:          envVariable(prefix + "EMAIL"),
			Password:       envVariable(prefix + "PASSWORD"),
			Capabilities:   strings.Split(envVariable(prefix+"CAPABILITIES"), ","),
			TimeoutSeconds: envIntVariable(prefix + "TIMEOUT_SECONDS"),
		})
	}
	return configs
}

func envVariable(key string) string {
	return os.Getenv(key)
}

// envIntVariable parses an integer variable; missing or malformed values
// fall back to 0 so adapter defaults apply.
func envIntVariable(key string) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return 0
	}
	return value
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.StageDTO{},
		&pricingrepo.ProfileDTO{},
		&pincoderepo.PincodeDTO{},
		&remittancerepo.RemittanceDTO{},
		&remittancerepo.RemittanceOrderDTO{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateShopRatesCommandHandler(),
		root.CreateBookVendorCommandHandler(),
		root.CreateApplyStatusEventCommandHandler(),
		root.CreateGetOrdersQueryHandler(),
		root.CreateGetOrderQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
