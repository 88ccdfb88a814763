/*
Copyright 2025 David Arnold
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at
    http://www.apache.org/licenses/LICENSE-2.0
Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"gitlab.com/davidxarnold/costglance/pkg/core"
	"gitlab.com/davidxarnold/costglance/pkg/telemetry"
)

const shutdownTimeout = 10 * time.Second

// NewServeCmd provides the serve command: a long-running HTTP service whose
// exported traces carry the instance attribute set as their resource.
func NewServeCmd() *cobra.Command {
	var (
		listenAddr  string
		serviceName string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Host an HTTP service exporting traces with instance attributes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			resolver, instanceID, err := newResolver(ctx)
			if err != nil {
				return err
			}

			// Resolution is blocking: a hung control-plane call holds up
			// startup, matching the one-shot resolve behavior.
			detector := telemetry.NewDetector(resolver, instanceID)
			res, err := telemetry.NewResource(ctx, telemetry.ServiceName(viper.GetString("service-name")), detector)
			if err != nil {
				return err
			}

			tp, err := telemetry.InitTracerProvider(ctx, res)
			if err != nil {
				return err
			}
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := tp.Shutdown(shutdownCtx); err != nil {
					log.Warnf("tracer provider shutdown: %v", err)
				}
			}()

			srv := newServer(listenAddr, resolver, instanceID)

			errCh := make(chan error, 1)
			go func() {
				log.WithFields(log.Fields{
					"addr":     listenAddr,
					"instance": instanceID,
				}).Info("serving")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVar(&listenAddr, "listen", ":8080", "Address for the HTTP server to listen on.")
	cmd.Flags().StringVar(&serviceName, "service-name", "", "OpenTelemetry service name; falls back to OTEL_SERVICE_NAME.")
	_ = viper.BindPFlag("listen", cmd.Flags().Lookup("listen"))
	_ = viper.BindPFlag("service-name", cmd.Flags().Lookup("service-name"))

	return cmd
}

// attributeResolver is the subset of *cloud.Resolver the HTTP handlers need.
type attributeResolver interface {
	Resolve(ctx context.Context, instanceID string) (core.AttributeSet, error)
}

func newServer(addr string, resolver attributeResolver, instanceID string) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/", otelhttp.NewHandler(attributesHandler(resolver, instanceID), "costglance.attributes"))

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// attributesHandler serves the current attribute set as JSON. Repeated
// requests are answered from the resolver's cache.
func attributesHandler(resolver attributeResolver, instanceID string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attrs, err := resolver.Resolve(r.Context(), instanceID)
		if err != nil {
			log.Errorf("resolve attributes: %v", err)
			http.Error(w, "attribute resolution failed", http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(attrs); err != nil {
			log.Debugf("encode attributes: %v", err)
		}
	})
}
