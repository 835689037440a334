// Package errx provides the structured, code-based error record that faultline
// dispatches to handlers.
//
// Every Error carries:
//   - A stable 5-digit code, which doubles as the error's type identifier when
//     the error is dispatched (see TypeID)
//   - A category description (e.g., "Handler registry error")
//   - A user-facing message
//   - Optional structured context (key-value pairs)
//   - Optional cause and base sentinel errors
//
// Error codes follow a scheme where the first two digits represent the domain:
//   - 70xxx: CLI/argument validation errors
//   - 71xxx: Configuration errors
//   - 72xxx: Handler registry/resolution errors
//   - 73xxx: Handler execution errors
//   - 74xxx: Dispatch errors
//   - 75xxx: Handler sink errors (ClickHouse, Kubernetes events)
//
// Applications are free to mint their own codes outside this range; the
// dispatcher only needs them to be stable.
//
// Example usage:
//
//	err := errx.Wrap("81000", "Payment error", "card declined", cause).
//		WithContext("order", orderID)
//
//	dispatch.Dispatch(err) // runs every handler configured for "81000"
//
//	fmt.Println(errx.UserString(err))  // User-friendly message
//	err.PrintTrace(os.Stderr)          // Full debug details
package errx
