// Package apps wraps the client and server packages into runnable
// applications configured via functional options, matching the shape the
// cmd/bankrpc entrypoint composes from parsed CLI flags.
package apps

import "context"

// App is anything the CLI entrypoint can run.
type App interface {
	Run(ctx context.Context, args []string) error
}
