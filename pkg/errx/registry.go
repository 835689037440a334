package errx

// RegistryEntry describes a registered error code.
type RegistryEntry struct {
	Code        string
	Description string
}

// Codes used by faultline itself. The last three digits are reserved for
// subcodes.
const (
	CodeCLI      = "70000"
	CodeConfig   = "71000"
	CodeRegistry = "72000"
	CodeHandler  = "73000"
	CodeDispatch = "74000"
	CodeSink     = "75000"
)

const (
	DescCLI      = "CLI/argument validation error"
	DescConfig   = "Configuration error"
	DescRegistry = "Handler registry error"
	DescHandler  = "Handler execution error"
	DescDispatch = "Dispatch error"
	DescSink     = "Handler sink error"
)

var registryEntries = []RegistryEntry{
	{Code: CodeCLI, Description: DescCLI},
	{Code: CodeConfig, Description: DescConfig},
	{Code: CodeRegistry, Description: DescRegistry},
	{Code: CodeHandler, Description: DescHandler},
	{Code: CodeDispatch, Description: DescDispatch},
	{Code: CodeSink, Description: DescSink},
}

var registryMap = func() map[string]string {
	m := make(map[string]string, len(registryEntries))
	for _, entry := range registryEntries {
		m[entry.Code] = entry.Description
	}
	return m
}()

// ErrorRegistry returns the registered codes in deterministic order.
func ErrorRegistry() []RegistryEntry {
	entries := make([]RegistryEntry, len(registryEntries))
	copy(entries, registryEntries)
	return entries
}

// DescriptionFor returns the registry description for a code.
func DescriptionFor(code string) (string, bool) {
	desc, ok := registryMap[code]
	return desc, ok
}

// IsValidCode checks if the given error code is registered.
func IsValidCode(code string) bool {
	_, ok := registryMap[code]
	return ok
}
