package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/thermalkit/isp2go/internal/api"
	"github.com/thermalkit/isp2go/internal/configuration"
	"github.com/thermalkit/isp2go/internal/cooling"
	"github.com/thermalkit/isp2go/internal/ect"
	"github.com/thermalkit/isp2go/internal/persistence"
	"github.com/thermalkit/isp2go/internal/statistics"
	"github.com/thermalkit/isp2go/internal/throttle"
	"github.com/thermalkit/isp2go/internal/ui"
	"github.com/thermalkit/isp2go/internal/zone"
)

func RunDaemon() {
	pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
	if err := pers.Init(); err != nil {
		ui.Fatal("Unable to initialize journal db: %v", err)
	}

	registry, err := InitializeObjects(pers)
	if err != nil {
		ui.Fatal("Unable to initialize frame rate throttling: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		enabled := configuration.CurrentConfig.Statistics.Enabled
		if enabled {
			// === Prometheus Exporter
			g.Add(func() error {
				port := configuration.CurrentConfig.Statistics.Port
				if port <= 0 || port >= 65535 {
					port = 9408
				}
				endpoint := "/metrics"
				addr := fmt.Sprintf(":%d", port)
				handler := promhttp.Handler()
				http.Handle(endpoint, handler)
				server := &http.Server{Addr: addr, Handler: handler}
				if err := server.ListenAndServe(); err != nil {
					ui.Error("Cannot start prometheus metrics endpoint (%s)", err.Error())
				}

				select {
				case <-ctx.Done():
					ui.Info("Stopping statistics server...")
					timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer timeoutCancel()
					return server.Shutdown(timeoutCtx)
				}
			}, func(err error) {
				if err != nil {
					ui.Warning("Error stopping statistics server: " + err.Error())
				} else {
					ui.Info("Statistics server stopped.")
				}
			})
		}
	}
	{
		enabled := configuration.CurrentConfig.Api.Enabled
		if enabled {
			// === REST api
			restService := api.CreateRestService(registry, pers)

			g.Add(func() error {
				host := configuration.CurrentConfig.Api.Host
				port := configuration.CurrentConfig.Api.Port
				if port <= 0 || port >= 65535 {
					port = 9407
				}
				addr := fmt.Sprintf("%s:%d", host, port)
				if err := restService.Start(addr); err != nil {
					ui.Error("Cannot start REST api endpoint (%s)", err.Error())
				}

				select {
				case <-ctx.Done():
					ui.Info("Stopping REST api server...")
					timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer timeoutCancel()
					return restService.Shutdown(timeoutCtx)
				}
			}, func(err error) {
				if err != nil {
					ui.Warning("Error stopping REST api server: " + err.Error())
				} else {
					ui.Info("REST api server stopped.")
				}
			})
		}
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			<-sig
			ui.Info("Received SIGTERM signal, exiting...")
			return nil
		}, func(err error) {
			defer close(sig)
			cancel()
		})
	}

	if err := g.Run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	} else {
		ui.Info("Done.")
		os.Exit(0)
	}
}

// InitializeObjects builds the throttle table from calibration data, creates
// the cooling registry and registers one cooling device with the zone
// authority. Any failure here is fatal to initialization and leaves no
// partial state behind.
func InitializeObjects(pers persistence.Persistence) (*cooling.Registry, error) {
	config := configuration.CurrentConfig

	provider := ect.NewProvider(config.Calibration)

	table, err := throttle.NewTable(provider, ect.FunctionISP)
	if err != nil {
		return nil, err
	}

	authority := zone.NewAuthority(config.Node, config.Zones)

	hub := cooling.NewHub()
	if err := hub.Register(persistence.NewJournalListener(pers)); err != nil {
		return nil, err
	}

	registry := cooling.NewRegistry(table, hub, authority, provider, ect.FunctionISP, config.MaxDevices)

	node, err := authority.FindNode(config.Node)
	if err != nil {
		return nil, err
	}

	device, err := registry.Register(node)
	if err != nil {
		return nil, err
	}

	maxLevel, err := device.GetMaxLevel()
	if err != nil {
		return nil, err
	}
	ui.Info("Registered cooling device %s with max level %d", device.Name(), maxLevel)

	statistics.Register(statistics.NewDeviceCollector(registry))
	statistics.Register(statistics.NewTableCollector(table))

	return registry, nil
}
