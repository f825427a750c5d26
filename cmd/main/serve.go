package main

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/text/language"

	"github.com/marloweh/quill/pkg/resource"
	"github.com/marloweh/quill/pkg/template"
)

// server renders templates from a directory per request, choosing the output
// content type from the requested file's extension and injecting
// request-scoped named context values.
type server struct {
	logger  *slog.Logger
	loader  template.Loader
	store   *resource.Store
	context map[string]any
}

func serve(logger *slog.Logger, addr, templateDir, resourceDir string, contextValues map[string]any) error {
	srv := &server{
		logger:  logger,
		loader:  template.NewDirLoader(templateDir),
		context: contextValues,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if resourceDir != "" {
		store, err := resource.NewStore(logger, resourceDir)
		if err != nil {
			return err
		}
		srv.store = store
		go func() {
			if err := store.Watch(ctx); err != nil {
				logger.Error("Resource watcher stopped", "error", err)
			}
		}()
	}

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      srv,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("OS signal received, shutting down.")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("Serving templates", "addr", addr, "dir", templateDir)
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/")
	if name == "" || strings.HasSuffix(name, "/") {
		name += "index.html"
	}

	locale := requestLocale(r)
	contentType := template.ContentTypeForName(name)

	// Request-scoped named context, reachable through the $ prefix.
	named := map[string]any{
		"path":       r.URL.Path,
		"method":     r.Method,
		"remoteAddr": r.RemoteAddr,
	}
	for key, values := range r.URL.Query() {
		named["query."+key] = values[0]
	}
	for key, value := range s.context {
		named[key] = value
	}

	opts := []template.Option{
		template.WithContentType(contentType),
		template.WithContext(named),
	}
	if s.store != nil {
		opts = append(opts, template.WithResources(s.store))
	}
	engine := template.NewEngine(s.logger, s.loader, opts...)

	var buf bytes.Buffer
	err := engine.Render(&buf, name, map[string]any{}, locale)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		s.logger.Error("Failed to render template", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	s.logger.Info("Served template", "template", name, "locale", locale, "remote_addr", r.RemoteAddr)

	w.Header().Set("Content-Type", contentType.MIMEType())
	w.Header().Set("Cache-Control", "no-store, no-cache")
	_, _ = buf.WriteTo(w)
}

// requestLocale picks the first language from the Accept-Language header,
// falling back to English.
func requestLocale(r *http.Request) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return language.English
	}
	return tags[0]
}
