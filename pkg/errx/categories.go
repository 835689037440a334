package errx

// CreateByCode creates an Error using the provided code, description, and message,
// wrapping cause when it is non-nil.
func CreateByCode(code, description, message string, cause error) *Error {
	if cause != nil {
		return Wrap(code, description, message, cause)
	}
	return New(code, description, message)
}

// FromSentinel creates an Error whose category is looked up from sentinel.
// Unknown sentinels fall back to the CLI category.
func FromSentinel(sentinel error, lookup func(error) (code, description string), message string, cause error) *Error {
	code, desc := lookup(sentinel)
	if code == "" {
		code = CodeCLI
		desc = DescCLI
	}
	return CreateByCode(code, desc, message, cause).WithBase(sentinel)
}

// WrapCLI wraps a cause with a CLI/argument validation error.
func WrapCLI(message string, cause error) *Error {
	return Wrap(CodeCLI, DescCLI, message, cause)
}

// Config creates a configuration error.
// Configuration sources use it for unreadable or malformed documents.
func Config(message string) *Error {
	return New(CodeConfig, DescConfig, message)
}

// WrapConfig wraps a cause with a configuration error.
func WrapConfig(message string, cause error) *Error {
	return Wrap(CodeConfig, DescConfig, message, cause)
}

// Registry creates a handler registry error, used when a handler ref
// cannot be registered or resolved.
func Registry(message string) *Error {
	return New(CodeRegistry, DescRegistry, message)
}

// WrapRegistry wraps a cause with a handler registry error.
func WrapRegistry(message string, cause error) *Error {
	return Wrap(CodeRegistry, DescRegistry, message, cause)
}

// Handler creates a handler execution error.
func Handler(message string) *Error {
	return New(CodeHandler, DescHandler, message)
}

// WrapHandler wraps a cause with a handler execution error.
func WrapHandler(message string, cause error) *Error {
	return Wrap(CodeHandler, DescHandler, message, cause)
}

// Dispatch creates a dispatch error.
func Dispatch(message string) *Error {
	return New(CodeDispatch, DescDispatch, message)
}

// Sink creates a handler sink error.
func Sink(message string) *Error {
	return New(CodeSink, DescSink, message)
}

// WrapSink wraps a cause with a handler sink error.
func WrapSink(message string, cause error) *Error {
	return Wrap(CodeSink, DescSink, message, cause)
}
