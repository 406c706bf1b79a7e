package launchd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"howett.net/plist"
)

// Format selects a property list encoding.
type Format int

const (
	XML Format = iota + 1
	Binary
	// OpenStep and GNUStep are recognised when reading; Write only produces
	// XML and Binary.
	OpenStep
	GNUStep
)

func (f Format) String() string {
	switch f {
	case XML:
		return "xml"
	case Binary:
		return "binary"
	case OpenStep:
		return "openstep"
	case GNUStep:
		return "gnustep"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat accepts the writable format names "xml" and "binary".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "xml", "":
		return XML, nil
	case "binary", "bin":
		return Binary, nil
	}
	return 0, &EnumError{Type: "Format", Value: s}
}

func (f Format) codec() (int, error) {
	switch f {
	case XML:
		return plist.XMLFormat, nil
	case Binary:
		return plist.BinaryFormat, nil
	}
	return 0, fmt.Errorf("format %s is not writable", f)
}

func formatOf(codec int) Format {
	switch codec {
	case plist.XMLFormat:
		return XML
	case plist.BinaryFormat:
		return Binary
	case plist.OpenStepFormat:
		return OpenStep
	case plist.GNUStepFormat:
		return GNUStep
	}
	return 0
}

// Decode parses data in any supported format and reports which one it was.
//
// A dictionary that repeats a key keeps the last occurrence; the codec gives
// no way to detect the repetition. Integers that do not fit the Go type of
// their key fail with an IntegerRangeError.
func Decode(data []byte) (Job, Format, error) {
	var job Job
	codec, err := plist.Unmarshal(data, &job)
	if err != nil {
		return Job{}, 0, &ReadError{Err: err}
	}
	return job, formatOf(codec), nil
}

// ReadBytes parses an XML, binary or OpenStep document. Duplicate keys
// follow Decode: the last one wins.
func ReadBytes(data []byte) (Job, error) {
	job, _, err := Decode(data)
	return job, err
}

// Read parses a document from r. As with Decode, a repeated key keeps its
// last value.
func Read(r io.ReadSeeker) (Job, error) {
	var job Job
	if err := plist.NewDecoder(r).Decode(&job); err != nil {
		return Job{}, &ReadError{Err: err}
	}
	return job, nil
}

// ReadFile parses the document stored at path, with the same duplicate key
// handling as Decode.
func ReadFile(path string) (Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return Job{}, &ReadError{Err: err}
	}
	defer f.Close()
	return Read(f)
}

// Write encodes the job to w. XML output is indented with tabs and dictionary
// keys are written in sorted order, not declaration order.
func (j Job) Write(w io.Writer, format Format) error {
	codec, err := format.codec()
	if err != nil {
		return &WriteError{Err: err}
	}
	enc := plist.NewEncoderForFormat(w, codec)
	if format == XML {
		enc.Indent("\t")
	}
	if err := enc.Encode(j); err != nil {
		return &WriteError{Err: err}
	}
	return nil
}

// Bytes returns the encoded job.
func (j Job) Bytes(format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := j.Write(&buf, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile encodes the job into path, replacing any existing file only once
// encoding has succeeded.
func (j Job) WriteFile(path string, format Format) error {
	data, err := j.Bytes(format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &WriteError{Err: err}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return &WriteError{Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &WriteError{Err: err}
	}
	return nil
}
