package shared

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Sweep and activation transactions hold balance row locks until commit,
// so the pool stays modest to keep lock queues short.
const (
	maxOpenConns    = 16
	maxIdleConns    = 8
	connMaxIdleTime = 5 * time.Minute
	connMaxLifetime = time.Hour
)

func NewDatabasePool(databaseURL string, logger *log.Logger) *sql.DB {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		panic(err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxIdleTime(connMaxIdleTime)
	db.SetConnMaxLifetime(connMaxLifetime)

	if logger != nil {
		logger.Printf("database pool ready max_open_conns=%d", maxOpenConns)
	}

	return db
}
