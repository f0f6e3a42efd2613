// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/GoSecureSettings/GoSecureSettings/internal/config"
)

// Create builds the Data Source Name for the configured engine.
func Create(db *config.DB) string {
	switch db.Engine {
	case config.EngineMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
			db.User,
			db.Password,
			db.Host,
			db.Port,
			db.Name,
			db.Extras,
		)
	case config.EnginePostgres:
		out := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
			db.Host,
			db.Port,
			db.User,
			db.Password,
			db.Name,
		)
		if db.Extras != "" {
			out += " " + db.Extras
		}

		return out
	default:
		// sqlite: the pool is limited to one connection, busy_timeout covers a second process
		out := db.Path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
		if db.Extras != "" {
			out += "&" + strings.TrimPrefix(db.Extras, "&")
		}

		return out
	}
}
