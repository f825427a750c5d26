package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/marloweh/quill/pkg/resource"
	"github.com/marloweh/quill/pkg/template"
)

type renderOptions struct {
	templatePath string
	dataPath     string
	locale       language.Tag
	contentType  template.ContentType
	resourceDir  string
	outputPath   string
	context      map[string]any
}

// renderOnce renders a single template to a file or stdout. Includes resolve
// relative to the template's directory.
func renderOnce(logger *slog.Logger, opts renderOptions) error {
	value, err := loadData(opts.dataPath)
	if err != nil {
		return err
	}

	contentType := opts.contentType
	if contentType == template.ContentTypeUnspecified {
		contentType = template.ContentTypeForName(opts.templatePath)
	}

	engineOpts := []template.Option{
		template.WithContentType(contentType),
		template.WithContext(opts.context),
	}
	if opts.resourceDir != "" {
		store, err := resource.NewStore(logger, opts.resourceDir)
		if err != nil {
			return err
		}
		engineOpts = append(engineOpts, template.WithResources(store))
	}

	dir, name := filepath.Split(opts.templatePath)
	if dir == "" {
		dir = "."
	}
	engine := template.NewEngine(logger, template.NewDirLoader(dir), engineOpts...)

	var buf bytes.Buffer
	if err = engine.Render(&buf, name, value, opts.locale); err != nil {
		return err
	}

	if opts.outputPath == "" {
		_, err = buf.WriteTo(os.Stdout)
		return err
	}

	if err = atomic.WriteFile(opts.outputPath, &buf); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Info("Rendered template", "template", opts.templatePath, "output", opts.outputPath)
	return nil
}

// loadData reads the root value from a JSON or YAML file. With no data file
// the root is an empty dictionary, which lets purely contextual templates
// render.
func loadData(path string) (any, error) {
	if path == "" {
		return map[string]any{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	var value any
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &value)
	default:
		err = json.Unmarshal(data, &value)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse data file: %w", err)
	}
	return value, nil
}
