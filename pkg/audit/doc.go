// Package audit provides security audit logging for the ledger server.
//
// Events are written in RFC5424 syslog format with structured data
// carrying the caller, subject VIN, operation, and result. Every
// mutation attempt is audited whether it succeeds or is denied.
package audit
