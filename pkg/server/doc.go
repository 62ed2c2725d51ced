// Package server provides the HTTP server for the vehicle history
// ledger. Routing is handled by gorilla/mux; endpoint handlers live in
// the endpoints subpackage and storage behind the store subpackage.
package server
