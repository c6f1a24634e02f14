package database

// Supported values for Config.Driver.
const (
	DriverSQLServer = "sqlserver"
	DriverMySQL     = "mysql"
	DriverSQLite    = "sqlite"
)

// Config holds configuration for the database connection.
type Config struct {
	// Driver is the database driver (sqlserver, mysql, sqlite).
	Driver string `mapstructure:"driver" default:"sqlserver"`
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"1433"`
	// User is the database user.
	User string `mapstructure:"user" default:"sa"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name. For sqlite it is the file path or DSN.
	Name string `mapstructure:"name" default:"master"`
	// Encrypt enables TLS for the SQL Server connection.
	Encrypt bool `mapstructure:"encrypt" default:"false"`
	// TrustServerCertificate skips server certificate validation.
	TrustServerCertificate bool `mapstructure:"trust_server_certificate" default:"true"`
	// TimeoutSeconds bounds connection setup and the initial ping.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// MaxOpenConns caps the pool size.
	MaxOpenConns int `mapstructure:"max_open_conns" default:"10"`
	// MaxIdleConns is the number of idle connections kept in the pool.
	MaxIdleConns int `mapstructure:"max_idle_conns" default:"5"`
}

// Procedures names the stored procedures called by the read-only features.
type Procedures struct {
	// Products lists the general product catalog.
	Products string `mapstructure:"products" default:"sp_returnCupDigitacao"`
	// Settlements lists a promoter's pending settlements.
	Settlements string `mapstructure:"settlements" default:"sp_CobrancaAcerto"`
	// OrderItems lists the line items of an order.
	OrderItems string `mapstructure:"order_items" default:"sp_returnItensPedido"`
}
