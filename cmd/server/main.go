package main

import (
	"log"
	"net/http"
	"os"
	"runtime/debug"

	"github.com/flowgate/flowgate/modules"
	"github.com/flowgate/flowgate/pkg/application"
	"github.com/flowgate/flowgate/pkg/configuration"
	"github.com/flowgate/flowgate/pkg/eventbus"
	"github.com/flowgate/flowgate/pkg/httpapi"
	"github.com/flowgate/flowgate/pkg/metrics"
	"github.com/flowgate/flowgate/pkg/middleware"
	"github.com/flowgate/flowgate/pkg/server"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	app := application.New(&application.ApplicationOptions{
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
	})

	app.RegisterMiddleware(
		middleware.WithLogger(logger),
		middleware.Cors(conf.Origin),
	)

	if err := modules.Load(app, modules.BuiltInModules...); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}

	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "resource not found", nil)
	})
	notAllowed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = httpapi.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
	})

	serverInstance := server.NewHTTPServer(app, notFound, notAllowed)
	log.Printf("Listening on: %s\n", conf.Origin)
	if err := serverInstance.Start(conf.SocketAddress); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
