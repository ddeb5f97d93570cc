// Package logger provides structured logging for collectionkit using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields. Library entry points
// default to Nop so that importing collectionkit never writes to stdout
// unless the caller hands in a configured logger.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.NewDefault("hasher").WithComponent("collection")
//	log.Info("run finished", logger.Fields(logger.FieldRunID, id, logger.FieldTotal, 12))
package logger
