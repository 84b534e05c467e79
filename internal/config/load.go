package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/dshills/keybind/internal/logging"
)

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// FS adapts an fs.FS, such as fstest.MapFS, to FileSystem.
type FS struct {
	fs.FS
}

// ReadFile reads the entire file at path.
func (f FS) ReadFile(path string) ([]byte, error) {
	return fs.ReadFile(f.FS, path)
}

// Format is a document encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
}

// SupportedVersions is the format_version constraint documents must meet.
const SupportedVersions = "^1"

// Loader reads configuration documents.
type Loader struct {
	fs  FileSystem
	log *logrus.Entry
}

// Option configures a Loader.
type Option func(*Loader)

// WithFS sets the file system documents are read from.
func WithFS(fsys FileSystem) Option {
	return func(l *Loader) {
		l.fs = fsys
	}
}

// WithLogger sets the logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(l *Loader) {
		l.log = logging.Component(logger, "config")
	}
}

// NewLoader creates a loader reading from the OS file system.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		fs:  OSFS{},
		log: logging.Component(nil, "config"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadFile reads and decodes one document.
func (l *Loader) LoadFile(path string) (*Document, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrFileNotFound)
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	doc, err := Decode(format, path, data)
	if err != nil {
		return nil, err
	}

	l.log.WithFields(logrus.Fields{
		"path":   path,
		"format": format,
	}).Debug("loaded config document")
	return doc, nil
}

// LoadFiles reads every path in order and merges the documents.
func (l *Loader) LoadFiles(paths ...string) (*Document, error) {
	docs := make([]*Document, 0, len(paths))
	for _, p := range paths {
		doc, err := l.LoadFile(p)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return Merge(docs...), nil
}

// Decode parses data in the given format. Unknown fields are rejected.
func Decode(format Format, source string, data []byte) (*Document, error) {
	var doc Document
	var err error

	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	default:
		return nil, fmt.Errorf("%s: %q: %w", source, format, ErrUnknownFormat)
	}
	if err != nil {
		return nil, parseError(source, data, err)
	}

	if err := checkVersion(doc.FormatVersion); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	doc.Source = source
	return &doc, nil
}

func checkVersion(v string) error {
	if v == "" {
		return nil
	}
	ver, err := semver.NewVersion(v)
	if err != nil {
		return fmt.Errorf("format_version %q: %w: %v", v, ErrUnsupportedVersion, err)
	}
	c, err := semver.NewConstraint(SupportedVersions)
	if err != nil {
		return err
	}
	if !c.Check(ver) {
		return fmt.Errorf("format_version %s does not satisfy %s: %w", ver, SupportedVersions, ErrUnsupportedVersion)
	}
	return nil
}

func parseError(source string, data []byte, err error) *ParseError {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}

	var tomlErr *toml.DecodeError
	var jsonErr *json.SyntaxError
	switch {
	case errors.As(err, &tomlErr):
		pe.Line, pe.Column = tomlErr.Position()
	case errors.As(err, &jsonErr):
		pe.Line, pe.Column = position(data, jsonErr.Offset)
	}
	return pe
}

// position converts a byte offset to a 1-based line and column.
func position(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	before := data[:offset]
	line := bytes.Count(before, []byte("\n")) + 1
	col := int(offset) - bytes.LastIndexByte(before, '\n')
	return line, col
}
