package cmd

// VendorConfig carries the connection settings for one courier vendor
// gateway. Capabilities name the operations the vendor's API implements.
type VendorConfig struct {
	ID           string
	Name         string
	BaseURL      string
	Email        string
	Password     string
	Capabilities []string

	// TimeoutSeconds bounds one call to the vendor API. Zero takes the
	// gateway default.
	TimeoutSeconds int
}

// ChannelConfig carries a Shopify store connection and the seller account
// the imported orders belong to. The hub defaults to the seller's address.
type ChannelConfig struct {
	ShopURL     string
	AccessToken string

	// TimeoutSeconds bounds one store API call. Zero takes the client
	// default.
	TimeoutSeconds int

	SellerID      string
	SellerName    string
	SellerPhone   string
	SellerGSTIN   string
	SellerAddress string
	SellerPincode string
	SellerCity    string
	SellerState   string
	HubName       string
}

type Config struct {
	HTTPPort      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string
	RedisAddr     string
	RedisPassword string

	// Vendors in priority order: the first entry wins rate ties.
	Vendors []VendorConfig

	// Shopify is nil when no channel store is connected.
	Shopify *ChannelConfig
}
