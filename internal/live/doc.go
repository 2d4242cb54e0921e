// Package live serves a scenario replay over HTTP.
//
// Endpoints:
//
//	GET /ws       websocket stream of step and change messages
//	GET /state    latest step as JSON
//	GET /healthz  liveness
//	GET /metrics  Prometheus metrics (path configurable)
//
// Every websocket client first receives a hello message carrying the
// latest step, then every message published to the Hub.
package live
