package network

import (
	goLog "log"
	"net/http"

	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"
	"golang.org/x/net/http2"
)

type HTTP2ErrorLog15Writer struct {
	l logging.Logger
}

func (w HTTP2ErrorLog15Writer) Write(b []byte) (int, error) {
	w.l.Error("error", "error", string(b))
	return len(b), nil
}

// HTTP2Server serves the node API over HTTP/2; plain `http` endpoints fall
// back to HTTP/1.1.
type HTTP2Server struct {
	server *http.Server
	router *mux.Router
	config HTTP2ServerConfig
	log    logging.Logger
}

func NewHTTP2Server(config HTTP2ServerConfig) *HTTP2Server {
	httpLog := log.New(logging.Ctx{"addr": config.Addr})
	errorLog := goLog.New(HTTP2ErrorLog15Writer{httpLog}, "", 0)

	router := mux.NewRouter()

	server := &http.Server{
		Addr:              config.Addr,
		Handler:           router,
		ReadTimeout:       config.ReadTimeout,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
		WriteTimeout:      config.WriteTimeout,
		ErrorLog:          errorLog,
	}
	server.SetKeepAlivesEnabled(true)

	http2.ConfigureServer(
		server,
		&http2.Server{
			IdleTimeout: config.IdleTimeout,
		},
	)

	return &HTTP2Server{
		server: server,
		router: router,
		config: config,
		log:    httpLog,
	}
}

func (t *HTTP2Server) Router() *mux.Router {
	return t.router
}

func (t *HTTP2Server) AddMiddleware(mws ...mux.MiddlewareFunc) {
	for _, mw := range mws {
		t.router.Use(mw)
	}
}

// Start blocks until the server is stopped.
func (t *HTTP2Server) Start() (err error) {
	t.log.Info("starting server", "endpoint", t.config.Endpoint.String(), "https", t.config.IsHTTPS())

	if t.config.IsHTTPS() {
		err = t.server.ListenAndServeTLS(t.config.TLSCertFile, t.config.TLSKeyFile)
	} else {
		err = t.server.ListenAndServe()
	}

	if err == http.ErrServerClosed {
		err = nil
	}

	return
}

func (t *HTTP2Server) Stop() {
	t.server.Close()
}
