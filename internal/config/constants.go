package config

// Database drivers accepted by DB_DRIVER
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DefaultCatalogPath is where the upgrade catalog is read from
const DefaultCatalogPath = "configs/upgrades.yaml"

// Example values shipped in .env.example
const (
	exampleDBPassword = "change_this_secure_password"
	exampleAPIKey     = "generate_with_openssl_rand_hex_32"
)
