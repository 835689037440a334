// Package source loads dispatch configurations from declarative documents.
//
// A document lists default handler refs and, per handler, the error type
// identifiers it handles:
//
//	defaultHandlers:
//	  - log
//	handlers:
//	  - handlerRef: counter
//	    exceptions: ["81000", "*fs.PathError"]
//	  - handlerRef: trace
//	    exceptions: ["71000"]
//
// Sources never fail: a missing or malformed document is logged and yields
// an empty (or partially populated) configuration.
package source
