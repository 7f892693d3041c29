package jsonstore

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/todolist/internal/model"
)

// JSON-backed snapshot of a single list. Single file, human-readable.
// No locking; fine for a local single-user CLI.

const DefaultFileName = "todos.json"

const schemaURL = "mem://todolist/snapshot.schema.json"

//go:embed schema.json
var schemaJSON []byte

type record struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

type document struct {
	Label string   `json:"label"`
	Items []record `json:"items"`
}

// ValidationError lists the schema violations found in a snapshot file.
type ValidationError struct {
	Path   string
	Causes []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid snapshot: %s", e.Path, strings.Join(e.Causes, "; "))
}

// ResolvePath makes p absolute against the working directory. A blank p
// means todos.json in the working directory.
func ResolvePath(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		p = DefaultFileName
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}
	return filepath.Join(wd, p), nil
}

// Load reads the list stored at path. A missing file yields an empty list
// labelled label. The stored label wins over label when present.
func Load(path, label string) (*model.List, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewList(label), nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	if err := validate(path, b); err != nil {
		return nil, err
	}
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if doc.Label != "" {
		label = doc.Label
	}
	l := model.NewList(label)
	for _, r := range doc.Items {
		it := model.NewItem(r.Title)
		if r.Done {
			it.MarkDone()
		}
		if err := l.Add(it); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Save writes l to path with 2-space indentation.
func Save(path string, l *model.List) error {
	doc := document{Label: l.Label(), Items: make([]record, 0, l.Size())}
	l.ForEach(func(it *model.Item) {
		doc.Items = append(doc.Items, record{Title: it.Title(), Done: it.IsDone()})
	})
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func compileSchema() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return c.Compile(schemaURL)
}

func validate(path string, b []byte) error {
	schema, err := compileSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("json unmarshal: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		out := &ValidationError{Path: path}
		collectCauses(out, ve)
		return out
	}
	return nil
}

func collectCauses(out *ValidationError, ve *jsonschema.ValidationError) {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		out.Causes = append(out.Causes, loc+": "+ve.Message)
		return
	}
	for _, c := range ve.Causes {
		collectCauses(out, c)
	}
}
