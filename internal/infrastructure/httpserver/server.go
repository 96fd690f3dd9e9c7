package httpserver

import (
	"context"
	stderrors "errors"
	"log"
	"net/http"
	"time"
)

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 60 * time.Second
)

type Server struct {
	httpServer *http.Server
	logger     *log.Logger
}

func New(address string, handler http.Handler, logger *log.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              address,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
			IdleTimeout:       idleTimeout,
		},
		logger: logger,
	}
}

func (s *Server) Start() error {
	s.logger.Printf("http server listening address=%s", s.httpServer.Addr)

	err := s.httpServer.ListenAndServe()
	if err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Printf("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}
