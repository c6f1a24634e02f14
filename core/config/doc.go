// Package config loads returns-bridge settings from the environment.
//
// Values come from environment variables, optionally seeded from a .env file
// with godotenv. Every key is registered in viper from the `default` struct tags,
// so DATABASE_HOST maps to database.host and so on.
//
// # Sections
//
//   - Server: port, API key and CORS origins
//   - Database: driver (sqlserver, mysql, sqlite) and connection settings
//   - Log: level and encoding
//   - Storage: MinIO report archive
//   - Reconcile: engine policy (atomic, tolerant)
//   - Catalog: product cache TTL
//   - Procedures: stored procedure names
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Database.Host)
package config
