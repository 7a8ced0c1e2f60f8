// Command s1bq runs one report cycle: request a report from the partner
// reporting service, wait for it to finish, stage the payload in object
// storage and load it into the warehouse. It is stateless and intended to be
// invoked on a schedule.
package main

import (
	"context"
	"os"

	"github.com/buyers-scofflaw/s1-bq-connector/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := bootstrap.Run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}
