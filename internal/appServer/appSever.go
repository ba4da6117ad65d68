// launching the http server, the render worker and their dependencies
package appServer

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ds124wfegd/WB_L3/6/config"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/kafka"
	"github.com/ds124wfegd/WB_L3/6/internal/pkg/processor"
	"github.com/ds124wfegd/WB_L3/6/internal/service"
	"github.com/ds124wfegd/WB_L3/6/internal/transport"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},           // ban on outdate TLS certificate
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags), // os.Stderr can be replaced with ElsasticSearch in the feature
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func NewServer(cfg *config.Config) {

	logrus.SetFormatter(new(logrus.JSONFormatter))

	deps := newDependencies(cfg)
	defer deps.Close()

	kafkaProducer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer kafkaProducer.Close()

	creativeService := service.NewCreativeService(deps.repo, kafkaProducer, deps.processor)
	creativeHandler := transport.NewCreativeHandler(creativeService, cfg.App.MaxUploadMB, cfg.App.BaseURL)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, transport.InitRoutes(creativeHandler, cfg.Server.Timeout)); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.WithFields(logrus.Fields{
		"port":    cfg.Server.Port,
		"version": cfg.Server.AppVersion,
	}).Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}

// RunWorker consumes queued render tasks until SIGINT or SIGTERM.
func RunWorker(cfg *config.Config) {

	logrus.SetFormatter(new(logrus.JSONFormatter))

	deps := newDependencies(cfg)
	defer deps.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	logrus.Print("Render Worker Started")

	if err := processor.StartRenderConsumer(ctx, cfg.Kafka, cfg.App.RenderWorkers, deps.processor); err != nil && ctx.Err() == nil {
		logrus.Errorf("render consumer stopped: %s", err.Error())
	}

	logrus.Print("Render Worker Shutting Down")
}
