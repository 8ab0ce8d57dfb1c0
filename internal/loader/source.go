package loader

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"

	"github.com/mesh-intelligence/tabview/pkg/types"
)

// Open opens and pings the relational source named by driver and dsn.
// Returns ErrConnectionFailed if the driver is unknown or the source cannot
// be reached. A sqlite DSN naming a missing file is rejected rather than
// creating an empty database.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	if !types.KnownDriver(driver) {
		return nil, fmt.Errorf("%w: %w %q", types.ErrConnectionFailed, types.ErrDriverUnknown, driver)
	}
	if driver == types.DriverSQLite {
		if err := checkSQLitePath(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrConnectionFailed, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", types.ErrConnectionFailed, err)
	}
	return db, nil
}

// LoadSource opens the source, runs query with LoadQuery and closes it.
func LoadSource(ctx context.Context, driver, dsn, query string) (types.Rows, error) {
	db, err := Open(ctx, driver, dsn)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return LoadQuery(ctx, db, query)
}

// checkSQLitePath rejects plain file DSNs that do not exist. In-memory
// databases and file: URIs are left to the driver.
func checkSQLitePath(dsn string) error {
	if dsn == "" {
		return fmt.Errorf("%w: empty sqlite dsn", types.ErrConnectionFailed)
	}
	if dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		return nil
	}
	if _, err := os.Stat(dsn); err != nil {
		return fmt.Errorf("%w: %v", types.ErrConnectionFailed, err)
	}
	return nil
}
