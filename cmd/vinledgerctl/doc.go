// Package main implements vinledgerctl, the vehicle history ledger CLI.
//
// The ledger keeps a per-VIN append-only record store with role-gated
// writes. This binary runs the server side and wraps the client-side
// signing pipeline.
//
// # Architecture
//
// The repository is organized into several packages:
//
//   - pkg/server: HTTP server and routing
//   - pkg/server/endpoints: REST API endpoint handlers
//   - pkg/server/store: store contracts with gorm and in-memory backends
//   - pkg/client: caller-side pipeline (roles, custody, signing, history)
//   - pkg/keys: ECDSA key material and the key custodian
//   - pkg/txn: signed envelope construction and verification
//   - pkg/model: database models
//   - pkg/db: database connection utilities
//   - pkg/audit: audit logging
//   - pkg/config: configuration management
//
// # Quick Start
//
//	# Run database migrations
//	vinledgerctl db migrate
//
//	# Generate an admin keypair
//	vinledgerctl key generate > admin.pem
//
//	# Start the server with a bootstrapped admin
//	vinledgerctl server --bootstrap-admin <address>
//
//	# Register a vehicle
//	vinledgerctl vehicle register <vin> <owner-address> --key-file admin.pem
//
// # Environment Variables
//
//   - DATABASE_URL: PostgreSQL connection string
//   - VINLEDGER_ENDPOINT: backend URL for client commands
//   - VINLEDGER_LEDGER_ADDRESS: ledger deployment address shorthand
//   - VINLEDGER_LOG_LEVEL: log level (debug enables SQL logging)
//   - PORT: server port (default: 8000)
package main
