package updater

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/descriptor.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// Descriptor is the subset of the vendor download response that carries the
// latest client version: result.downloadVO.zoom.version.
type Descriptor struct {
	Result DescriptorResult `json:"result"`
}

// DescriptorResult is the "result" object of the descriptor.
type DescriptorResult struct {
	DownloadVO DownloadVO `json:"downloadVO"`
}

// DownloadVO lists the downloadable products.
type DownloadVO struct {
	Zoom Product `json:"zoom"`
}

// Product describes one downloadable product.
type Product struct {
	Version string `json:"version"`
}

// DescriptorError reports a cache file that is not valid JSON or lacks the
// version field.
type DescriptorError struct {
	Path   string
	Issues []string
	Err    error
}

func (e *DescriptorError) Error() string {
	var b strings.Builder
	b.WriteString("invalid version descriptor")
	if e.Path != "" {
		fmt.Fprintf(&b, " %s", e.Path)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if len(e.Issues) > 0 {
		fmt.Fprintf(&b, ": %s", strings.Join(e.Issues, "; "))
	}
	return b.String()
}

func (e *DescriptorError) Unwrap() error {
	return e.Err
}

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("descriptor.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("descriptor.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// ParseDescriptor validates data against the descriptor schema and returns
// the published version.
func ParseDescriptor(data []byte) (string, error) {
	schema, err := getSchema()
	if err != nil {
		return "", fmt.Errorf("loading schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return "", &DescriptorError{Err: err}
	}

	if err := schema.Validate(inst); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return "", &DescriptorError{Err: err}
		}
		return "", &DescriptorError{Issues: validationIssues(ve)}
	}

	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return "", &DescriptorError{Err: err}
	}
	return d.Result.DownloadVO.Zoom.Version, nil
}

// ReadVersion reads the cache file at path and returns the published version.
func ReadVersion(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading version cache: %w", err)
	}

	version, err := ParseDescriptor(data)
	if err != nil {
		var de *DescriptorError
		if errors.As(err, &de) {
			de.Path = path
		}
		return "", err
	}
	return version, nil
}

// validationIssues flattens the error tree into "location: message" strings.
func validationIssues(ve *jsonschema.ValidationError) []string {
	var issues []string
	collectIssues(ve, &issues)
	if len(issues) == 0 {
		return []string{ve.Error()}
	}
	return issues
}

func collectIssues(ve *jsonschema.ValidationError, issues *[]string) {
	if len(ve.Causes) == 0 {
		if ve.ErrorKind == nil {
			return
		}
		loc := "/" + strings.Join(ve.InstanceLocation, "/")
		*issues = append(*issues, loc+": "+ve.ErrorKind.LocalizedString(printer))
		return
	}
	for _, cause := range ve.Causes {
		collectIssues(cause, issues)
	}
}
