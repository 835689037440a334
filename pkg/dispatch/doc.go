// Package dispatch maps errors to the handlers configured for them.
//
// A Configuration associates error type identifiers with handler refs and
// holds a set of default refs used for types with no explicit mapping:
//
//	cfg := dispatch.NewConfiguration()
//	cfg.AddDefaultHandler("log")
//	cfg.AddExceptionHandler("81000", "counter")
//	cfg.AddExceptionHandler("*fs.PathError", "trace")
//
// Handler refs are resolved through a Registry of factories exactly once, when
// the Dispatcher is built. Refs that cannot be resolved are logged and dropped
// from both the dispatcher and the configuration:
//
//	reg := dispatch.NewRegistry()
//	reg.MustRegister("log", func() (dispatch.Handler, error) { return newLogHandler(), nil })
//
//	d := dispatch.New(cfg, dispatch.WithRegistry(reg), dispatch.WithLogger(logger))
//	d.Dispatch(err)
//
// Dispatch never fails and never panics on behalf of a handler: handler
// errors and panics are logged and the remaining handlers still run.
//
// The type identifier of an error is the TypeID() of the first error in its
// chain that provides one (every *errx.Error does, returning its code), and
// otherwise the dynamic Go type name, for example "*fs.PathError".
//
// Applications that prefer process-wide state can use Initialize, Default and
// the package-level Dispatch instead of passing a *Dispatcher around.
package dispatch
