package dispatch

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"faultline/pkg/errx"
)

// Dispatcher invokes the handlers a Configuration assigns to each error.
//
// Handlers are resolved once, in New. After that a Dispatcher is never
// mutated, so Dispatch may be called from any number of goroutines.
type Dispatcher struct {
	config     *Configuration
	handlers   map[string]Handler
	order      []string
	unresolved []string
	logger     *zap.Logger
}

// Option configures a Dispatcher.
type Option func(*options)

type options struct {
	registry *Registry
	logger   *zap.Logger
}

// WithRegistry resolves handler refs from r instead of the default registry.
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

// WithLogger sets the logger used for resolution and handler failures.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Report describes what a single dispatch did.
type Report struct {
	TypeID string
	// Invoked lists refs whose handler returned without error.
	Invoked []string
	// Failed maps refs to the error or panic their handler produced.
	Failed map[string]error
	// Skipped lists refs that had no resolved handler.
	Skipped []string
}

// Handled reports whether at least one handler ran successfully.
func (r Report) Handled() bool {
	return len(r.Invoked) > 0
}

// New builds a Dispatcher for cfg, resolving every handler ref it references.
// A nil cfg means no handling is configured. Refs that cannot be resolved are
// logged and removed from cfg.
func New(cfg *Configuration, opts ...Option) *Dispatcher {
	o := options{registry: defaultRegistry, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if cfg == nil {
		cfg = NewConfiguration()
	}

	d := &Dispatcher{
		config:   cfg,
		handlers: make(map[string]Handler),
		logger:   o.logger.Named("dispatch"),
	}
	d.resolveHandlers(o.registry)
	return d
}

func (d *Dispatcher) resolveHandlers(reg *Registry) {
	for _, ref := range d.config.AllHandlers() {
		h, err := reg.Resolve(ref)
		if err != nil {
			d.unresolved = append(d.unresolved, ref)
			d.logger.Error("Handler could not be resolved; ignoring every reference to it",
				append(errx.ZapFields(err), zap.String("handler.ref", ref))...)
			continue
		}
		d.handlers[ref] = h
		d.order = append(d.order, ref)
	}
	if len(d.unresolved) > 0 {
		d.config.RemoveHandlerReferences(d.unresolved...)
	}
	d.logger.Debug("Handlers resolved",
		zap.Int("resolved", len(d.order)),
		zap.Strings("unresolved", d.unresolved))
}

// Dispatch runs every handler configured for err. A nil err is ignored.
func (d *Dispatcher) Dispatch(err error) {
	_ = d.DispatchReport(err)
}

// DispatchReport is Dispatch with a summary of the outcome.
func (d *Dispatcher) DispatchReport(err error) Report {
	if err == nil {
		return Report{}
	}
	typeID, idErr := identify(err)
	report := Report{TypeID: typeID}
	logger := d.logger.With(
		zap.String("dispatch.id", uuid.NewString()),
		zap.String("error.type_id", typeID),
	)
	if idErr != nil {
		logger.Error("Error type could not be identified; using its Go type",
			errx.ZapFields(idErr)...)
	}

	for _, ref := range d.config.ExceptionHandlers(typeID) {
		h, ok := d.handlers[ref]
		if !ok {
			logger.Info("Handler was not found; skipping it for this error type",
				zap.String("handler.ref", ref))
			report.Skipped = append(report.Skipped, ref)
			continue
		}
		if herr := invoke(ref, h, err); herr != nil {
			if report.Failed == nil {
				report.Failed = make(map[string]error)
			}
			report.Failed[ref] = herr
			logger.Error("Handler failed while processing error",
				append(errx.ZapFields(herr), zap.String("handler.ref", ref))...)
			continue
		}
		report.Invoked = append(report.Invoked, ref)
	}
	return report
}

// invoke isolates a single handler call, converting panics into errors.
func invoke(ref string, h Handler, err error) (herr error) {
	defer func() {
		if p := recover(); p != nil {
			herr = errx.Handler(fmt.Sprintf("handler %q panicked: %v", ref, p)).
				WithContext("ref", ref)
		}
	}()
	if cause := h.Handle(err); cause != nil {
		return errx.WrapHandler(fmt.Sprintf("handler %q failed: %v", ref, cause), cause).
			WithContext("ref", ref)
	}
	return nil
}

// Configuration returns the configuration the dispatcher consults.
func (d *Dispatcher) Configuration() *Configuration {
	return d.config
}

// Handler returns the resolved handler for ref.
func (d *Dispatcher) Handler(ref string) (Handler, bool) {
	h, ok := d.handlers[ref]
	return h, ok
}

// HandlerCount returns the number of resolved handlers.
func (d *Dispatcher) HandlerCount() int {
	return len(d.handlers)
}

// HandlerRefs returns the resolved refs in resolution order.
func (d *Dispatcher) HandlerRefs() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Close closes every resolved handler that implements io.Closer and returns
// their combined errors. The dispatcher must not be used afterwards.
func (d *Dispatcher) Close() error {
	var errs []error
	for _, ref := range d.order {
		closer, ok := d.handlers[ref].(io.Closer)
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil {
			errs = append(errs, errx.WrapHandler(fmt.Sprintf("handler %q failed to close: %v", ref, err), err).
				WithContext("ref", ref))
		}
	}
	return errors.Join(errs...)
}

// Unresolved returns the refs that failed resolution.
func (d *Dispatcher) Unresolved() []string {
	out := make([]string, len(d.unresolved))
	copy(out, d.unresolved)
	return out
}
