package database

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"gigflow/internal/logger"
)

// Backend identifies the store selected by DATABASE_URL.
type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendSQLite   Backend = "sqlite"
	BackendMongo    Backend = "mongo"
)

func BackendFor(dsn string) Backend {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return BackendPostgres
	case strings.HasPrefix(dsn, "mongodb://"), strings.HasPrefix(dsn, "mongodb+srv://"):
		return BackendMongo
	default:
		return BackendSQLite
	}
}

func Connect(dsn string) (*gorm.DB, error) {
	return ConnectWithConfig(dsn, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
}

// ConnectWithConfig opens a PostgreSQL or SQLite database. SQLite is limited to
// a single open connection so writers are serialized by the pool.
func ConnectWithConfig(dsn string, cfg *gorm.Config) (*gorm.DB, error) {
	switch BackendFor(dsn) {
	case BackendPostgres:
		logger.Info("connecting to PostgreSQL")
		return gorm.Open(postgres.Open(dsn), cfg)
	case BackendMongo:
		return nil, fmt.Errorf("database: %q is a MongoDB URL, use ConnectMongo", redact(dsn))
	}

	logger.Info("using SQLite", "dsn", dsn)

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Exec("PRAGMA busy_timeout = 5000").Error; err != nil {
		return nil, fmt.Errorf("database: set busy_timeout: %w", err)
	}
	return db, nil
}

// Migrate runs AutoMigrate for the given models.
func Migrate(db *gorm.DB, models ...any) error {
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("database: migrate %T: %w", m, err)
		}
	}
	return nil
}

// ProbeTransactions reports whether db can run multi-statement transactions.
// A transaction-unsupported failure answers false without an error; any other
// failure is returned.
func ProbeTransactions(ctx context.Context, db *gorm.DB) (bool, error) {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Exec("SELECT 1").Error
	})
	if err == nil {
		return true, nil
	}
	if IsTransactionUnsupported(err) {
		return false, nil
	}
	return false, err
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func redact(dsn string) string {
	if i := strings.Index(dsn, "@"); i > 0 {
		if j := strings.Index(dsn, "://"); j > 0 && j < i {
			return dsn[:j+3] + "***" + dsn[i:]
		}
	}
	return dsn
}
