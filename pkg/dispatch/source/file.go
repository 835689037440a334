package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	k8syaml "sigs.k8s.io/yaml"

	"faultline/pkg/dispatch"
	"faultline/pkg/errx"
)

// DefaultPath is the document read when File.Path is blank.
const DefaultPath = "faultline.yaml"

// File loads a Document from disk. ".json" files are decoded as JSON,
// everything else as YAML. Unknown fields are rejected in both formats.
type File struct {
	Path   string
	Logger *zap.Logger
}

// NewFile returns a File source for path.
func NewFile(path string, logger *zap.Logger) *File {
	return &File{Path: path, Logger: logger}
}

// ResolvedPath returns the path Load reads.
func (f *File) ResolvedPath() string {
	if strings.TrimSpace(f.Path) == "" {
		return DefaultPath
	}
	return f.Path
}

// Load reads and expands the document. A missing file is logged at Warn, any
// other failure at Error; both yield an empty configuration.
func (f *File) Load() *dispatch.Configuration {
	logger := f.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	path := f.ResolvedPath()

	doc, err := f.Read()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("Error handling configuration file was not found; no handlers configured",
				zap.String("path", path))
		} else {
			logger.Error("Error handling configuration file could not be loaded; no handlers configured",
				append(errx.ZapFields(err), zap.String("path", path))...)
		}
		return dispatch.NewConfiguration()
	}
	cfg := doc.Configuration()
	logger.Debug("Error handling configuration loaded",
		zap.String("path", path),
		zap.Int("defaultHandlers", len(cfg.DefaultHandlers())),
		zap.Int("types", len(cfg.TypeIDs())))
	return cfg
}

// Read decodes the document without expanding it.
func (f *File) Read() (Document, error) {
	path := f.ResolvedPath()
	// #nosec G304 -- the path is chosen by the operator.
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Document{}, errx.WrapConfig(fmt.Sprintf("configuration file %s not found", path), err).
				WithContext("path", path)
		}
		return Document{}, errx.WrapConfig(fmt.Sprintf("failed to read configuration file %s: %v", path, err), err).
			WithContext("path", path)
	}
	doc, err := Decode(data, formatFor(path))
	if err != nil {
		return Document{}, errx.WrapConfig(fmt.Sprintf("failed to parse configuration file %s: %v", path, err), err).
			WithContext("path", path)
	}
	return doc, nil
}

// Format selects a document decoder.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

func formatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Decode parses data in the given format. An empty document decodes to an
// empty Document.
func Decode(data []byte, format Format) (Document, error) {
	var doc Document
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}
	switch format {
	case FormatJSON:
		if err := k8syaml.UnmarshalStrict(data, &doc); err != nil {
			return Document{}, err
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// a document holding only comments decodes to io.EOF
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return Document{}, err
		}
	default:
		return Document{}, errx.Config(fmt.Sprintf("unsupported configuration format %q", format)).
			WithContext("format", string(format))
	}
	return doc, nil
}
