// Package server exposes the progress of a run as Prometheus metrics over
// HTTP.
package server
