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

// Package server exposes power computations over HTTP.
//
// Routes:
//
//	POST /api/calculate-power  CalculateRequest -> CalculateResponse
//	POST /api/solve-power      SolveRequest -> SolveResponse
//	GET  /healthz
//	GET  /metrics              Prometheus exposition
//
// Validation failures are answered with 422 and an ErrorResponse, malformed
// bodies with 400. Every response carries an X-Request-ID header.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/okiyitooo/hyp-tests/curve"
	"github.com/okiyitooo/hyp-tests/power"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "requestID"

	outcomeOK        = "ok"
	labelUnknown     = "unknown"
	metricsNamespace = "hyptests"
)

// Options contains the options of New.
type Options struct {
	// Sampling options of the returned curves. nil selects the curve package
	// defaults.
	Curve *curve.Options
	// Registry the metrics are registered with and served from. nil creates a
	// fresh registry.
	Registry *prometheus.Registry
}

// Server answers the HTTP API. Use Handler to serve it.
type Server struct {
	engine  *gin.Engine
	curve   *curve.Options
	metrics *metrics
}

type metrics struct {
	computations *prometheus.CounterVec
	solves       *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		computations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "computations_total",
			Help:      "Power computations by test family, alternative and outcome.",
		}, []string{"family", "alternative", "outcome"}),
		solves: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "solves_total",
			Help:      "Power targeting requests by adjusted parameter and outcome.",
		}, []string{"adjust", "outcome"}),
	}
}

// New returns a Server. A nil opt selects the defaults.
func New(opt *Options) *Server {
	if opt == nil {
		opt = &Options{}
	}
	reg := opt.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	s := &Server{
		engine:  gin.New(),
		curve:   opt.Curve,
		metrics: newMetrics(reg),
	}
	s.engine.Use(gin.Recovery(), requestID(), logRequests())
	s.engine.POST("/api/calculate-power", s.calculatePower)
	s.engine.POST("/api/solve-power", s.solvePower)
	s.engine.GET("/healthz", healthz)
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	return s
}

// Handler returns the http.Handler serving the API.
func (s *Server) Handler() http.Handler { return s.engine }

// requestID echoes the client's X-Request-ID or assigns a new uuid.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if log.V(1) {
			log.Infof("%s %s %d %v request_id=%s", c.Request.Method, c.Request.URL.Path,
				c.Writer.Status(), time.Since(start), c.GetString(requestIDKey))
		}
	}
}

func healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: kindBadRequest})
}

func unprocessable(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Kind: errorKind(err)})
}

// compute validates req and computes its result and visualization. It counts
// the computation under the family and alternative of req.
func (s *Server) compute(req CalculateRequest) (*power.Parameters, CalculateResponse, error) {
	p, err := req.parameters()
	if err != nil {
		s.metrics.computations.WithLabelValues(labelUnknown, labelUnknown, errorKind(err)).Inc()
		return nil, CalculateResponse{}, err
	}
	family, alt := p.Family.String(), p.Alternative.String()
	r, err := power.Compute(p)
	if err != nil {
		s.metrics.computations.WithLabelValues(family, alt, errorKind(err)).Inc()
		return nil, CalculateResponse{}, err
	}
	s.metrics.computations.WithLabelValues(family, alt, outcomeOK).Inc()
	return p, responseOf(p, r, curve.BuildVisualization(p, r, s.curve)), nil
}

func (s *Server) calculatePower(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	_, resp, err := s.compute(req)
	if err != nil {
		unprocessable(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) solvePower(c *gin.Context) {
	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	adjust, err := power.ParseAdjustable(req.Adjust)
	if err != nil {
		s.metrics.solves.WithLabelValues(labelUnknown, errorKind(parseError{err})).Inc()
		unprocessable(c, parseError{err})
		return
	}
	p, err := req.Params.parameters()
	if err == nil {
		p, err = power.Solve(p, req.TargetPower, adjust)
	}
	if err != nil {
		s.metrics.solves.WithLabelValues(adjust.String(), errorKind(err)).Inc()
		unprocessable(c, err)
		return
	}
	s.metrics.solves.WithLabelValues(adjust.String(), outcomeOK).Inc()
	params := requestOf(p)
	_, result, err := s.compute(params)
	if err != nil {
		unprocessable(c, err)
		return
	}
	c.JSON(http.StatusOK, SolveResponse{Params: params, Result: result})
}
