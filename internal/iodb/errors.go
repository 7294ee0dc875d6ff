package iodb

import (
	"errors"
	"fmt"

	"github.com/oceanobs/argodb/pkg/config"
)

// errNotConnected reports operator use before Connect.
var errNotConnected = errors.New("not connected to database")

// connectionError decorates a connection failure with the target
// coordinates. The password is never included.
func connectionError(cfg *config.DatabaseConfig, err error) error {
	return fmt.Errorf("failed to connect to %s@%s:%d/%s: %w",
		cfg.User, cfg.Host, cfg.Port, cfg.Database, err)
}
