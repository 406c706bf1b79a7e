// Package inspect projects arbitrary property lists into JSON and YAML trees
// and answers gjson path queries over them. Unlike the launchd package it
// does not apply the job schema, so it can show documents that fail strict
// decoding.
package inspect

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
	"howett.net/plist"
)

// Document is a decoded property list.
type Document struct {
	// Tree holds maps, slices, strings, bools and numbers only. Data values
	// are base64 strings and dates are RFC 3339 strings.
	Tree   any
	Format string
}

var formatNames = map[int]string{
	plist.XMLFormat:      "xml",
	plist.BinaryFormat:   "binary",
	plist.OpenStepFormat: "openstep",
	plist.GNUStepFormat:  "gnustep",
}

// Parse decodes data in any property list format.
func Parse(data []byte) (*Document, error) {
	var raw any
	format, err := plist.Unmarshal(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("decode plist: %w", err)
	}
	return &Document{Tree: normalize(raw), Format: formatNames[format]}, nil
}

// ParseFile decodes the property list stored at path.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = normalize(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = normalize(item)
		}
		return out
	case []byte:
		return base64.StdEncoding.EncodeToString(t)
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	default:
		return v
	}
}

// JSON renders the tree as indented JSON.
func (d *Document) JSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d.Tree); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// YAML renders the tree as YAML.
func (d *Document) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d.Tree); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Query evaluates a gjson path such as "ProgramArguments.0" or
// "StartCalendarInterval.#.Hour" against the JSON projection.
func (d *Document) Query(path string) (gjson.Result, error) {
	data, err := d.JSON()
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, fmt.Errorf("projection is not valid JSON")
	}
	res := gjson.GetBytes(data, path)
	if !res.Exists() {
		return res, &MissingPathError{Path: path}
	}
	return res, nil
}

// MissingPathError reports a query path that matched nothing.
type MissingPathError struct {
	Path string
}

func (e *MissingPathError) Error() string {
	return fmt.Sprintf("path %q not found", e.Path)
}
