//
// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// This is an HTTP server answering power computations for an interactive
// hypothesis test visualizer.
// Usage example:
// (From the repository root)
// go run ./server/main --addr=:8080 --logtostderr
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/golang/glog"
	"github.com/okiyitooo/hyp-tests/curve"
	"github.com/okiyitooo/hyp-tests/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	addr          = flag.String("addr", ":8080", "Address to listen on.")
	ginMode       = flag.String("gin_mode", gin.ReleaseMode, "Gin mode: debug, release or test.")
	densityPoints = flag.Int("density_points", curve.DefaultDensityPoints, "Number of intervals of each density curve.")
	areaPoints    = flag.Int("area_points", curve.DefaultAreaPoints, "Number of intervals of each shaded region.")
)

const shutdownTimeout = 10 * time.Second

func main() {
	flag.Parse()
	defer log.Flush()

	log.Infof("The server was run with arguments: addr = %q, ginMode = %q, densityPoints = %d, areaPoints = %d",
		*addr, *ginMode, *densityPoints, *areaPoints)

	switch *ginMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(*ginMode)
	default:
		log.Exitf("Unknown gin mode %q, please use one of 'debug', 'release', 'test'", *ginMode)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	s := server.New(&server.Options{
		Curve:    &curve.Options{DensityPoints: *densityPoints, AreaPoints: *areaPoints},
		Registry: reg,
	})
	srv := &http.Server{
		Addr:              *addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infof("Listening on %s", *addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Exitf("Couldn't serve on %s, err = %v", *addr, err)
		}
	}()

	<-ctx.Done()
	log.Infof("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Exitf("Couldn't shut down cleanly, err = %v", err)
	}
}
