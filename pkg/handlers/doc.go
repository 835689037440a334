// Package handlers provides the built-in dispatch handlers.
//
//	ref          handler
//	trace        writes the error's full trace to a writer
//	log          logs the error through zap
//	logr         logs the error through a logr.Logger
//	counter      counts errors per type in a Prometheus counter
//	clickhouse   stores one audit row per error in ClickHouse
//	kube-event   emits a Warning event on a Kubernetes object
//
// RegisterBuiltins adds factories for all of them to a dispatch.Registry.
// Factories whose prerequisites are missing (no ClickHouse DSN, no cluster)
// fail, and the dispatcher drops those refs.
package handlers
