package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/language"

	"github.com/marloweh/quill/pkg/template"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// contextFlag collects repeatable -context key=value pairs into the engine's
// named context table.
type contextFlag map[string]any

func (c contextFlag) String() string {
	pairs := make([]string, 0, len(c))
	for name, value := range c {
		pairs = append(pairs, fmt.Sprintf("%s=%v", name, value))
	}
	return strings.Join(pairs, ",")
}

func (c contextFlag) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	c[name] = value
	return nil
}

func main() {
	contextValues := contextFlag{}

	templatePath := flag.String("template", "", "template file to render")
	dataPath := flag.String("data", "", "data file (JSON or YAML by extension) supplying the root dictionary")
	localeName := flag.String("locale", "en", "BCP 47 locale for formatting and resource lookup")
	contentType := flag.String("content-type", "", "output content type (html, xml, json, csv); default derives from the template extension")
	resourceDir := flag.String("resources", "", "directory of per-locale YAML resource bundles")
	outputPath := flag.String("o", "", "output file (written atomically); default stdout")
	serveAddr := flag.String("serve", "", "serve templates over HTTP on this address instead of rendering once")
	templateDir := flag.String("templates", "./templates", "template directory for serve mode")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Var(contextValues, "context", "named context value as key=value; repeatable")
	flag.Parse()

	if *showVersion {
		fmt.Printf("quill %s (%s, built %s)\n", Version, Commit, BuildDate)
		return
	}

	var level slog.Level
	switch strings.ToLower(*logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	locale, err := language.Parse(*localeName)
	if err != nil {
		logger.Error("Invalid locale", "locale", *localeName, "error", err)
		os.Exit(1)
	}

	if *serveAddr != "" {
		err = serve(logger, *serveAddr, *templateDir, *resourceDir, contextValues)
	} else {
		if *templatePath == "" {
			flag.Usage()
			os.Exit(2)
		}
		err = renderOnce(logger, renderOptions{
			templatePath: *templatePath,
			dataPath:     *dataPath,
			locale:       locale,
			contentType:  template.ContentType(*contentType),
			resourceDir:  *resourceDir,
			outputPath:   *outputPath,
			context:      contextValues,
		})
	}
	if err != nil {
		logger.Error("quill failed", "error", err)
		os.Exit(1)
	}
}
