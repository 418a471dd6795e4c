package cli

import (
	"context"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/depview/depview/pkg/pkggraph"
	"github.com/depview/depview/pkg/render/jsonout"
	"github.com/depview/depview/pkg/render/mermaid"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string
	reverse bool
}

// newServeCmd creates the serve command. It loads a graph once and serves
// a browser preview that renders the Mermaid flowchart client-side.
func newServeCmd(cfg *Config) *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve an interactive dependency graph preview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.addr == "" {
				opts.addr = cfg.ServeAddr
			}
			return runServe(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVarP(&opts.reverse, "reverse", "r", false, "serve the reversed graph")

	return cmd
}

func runServe(ctx context.Context, input string, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	g, err := loadGraph(ctx, input)
	if err != nil {
		return err
	}
	if opts.reverse {
		g = g.Reverse()
	}
	logger.Infof("Serving graph: %d packages, %d dependencies", g.NodeCount(), g.EdgeCount())

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           newServeHandler(g, input),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	printInfo("Listening on http://%s", opts.addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// newServeHandler builds the chi router for the preview server.
func newServeHandler(g *pkggraph.PackageDAG, title string) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(accessLog)

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = previewTemplate.Execute(w, previewData{
			Title:   title,
			Mermaid: mermaid.Render(g),
		})
	})
	r.Get("/mermaid", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, mermaid.Render(g))
	})
	r.Get("/graph.json", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = jsonout.Write(g, w)
	})

	return r
}

// requestID attaches a fresh UUID to each request for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, req.WithContext(withRequestID(req.Context(), id)))
	})
}

// requestIDKey is the context key for the request ID.
const requestIDKey ctxKey = 1

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func requestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// accessLog logs each request with method, path, status, and duration.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		logger := loggerFromContext(req.Context())
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)
		logger.Info("request",
			"id", requestIDFromContext(req.Context()),
			"method", req.Method,
			"path", req.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}

type previewData struct {
	Title   string
	Mermaid string
}

var previewTemplate = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>depview: {{.Title}}</title>
  <style>
    body { font-family: system-ui, sans-serif; margin: 2rem; }
    h1 { font-size: 1.2rem; }
    .links a { margin-right: 1rem; font-size: 0.9rem; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <div class="links">
    <a href="/mermaid">mermaid source</a>
    <a href="/graph.json">graph JSON</a>
  </div>
  <pre class="mermaid">{{.Mermaid}}</pre>
  <script type="module">
    import mermaid from "https://cdn.jsdelivr.net/npm/mermaid@11/dist/mermaid.esm.min.mjs";
    mermaid.initialize({ startOnLoad: true, maxEdges: 5000 });
  </script>
</body>
</html>
`))
