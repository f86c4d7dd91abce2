// Copyright 2025 The IntelliShop Authors
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

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"cloud.google.com/go/profiler"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/ha31457/Intelli-Shop-FE/checkout"
	"github.com/ha31457/Intelli-Shop-FE/session"
)

const (
	port         = "8080"
	cookieMaxAge = 60 * 60 * 48

	cookiePrefix    = "shop_"
	cookieSessionID = cookiePrefix + "session-id"
	// Convenience hints written after shop fetches. Display only; owner
	// pages re-fetch shop details whenever correctness matters.
	cookieShopID   = cookiePrefix + "hint-shop-id"
	cookieShopName = cookiePrefix + "hint-shop-name"
)

var (
	baseUrl = ""
)

type ctxKeySessionID struct{}

type frontendServer struct {
	backendAddr string

	httpClient *http.Client
	pricing    checkout.Pricing
	mailer     *smtpRelay
}

func main() {
	ctx := context.Background()
	log := logrus.New()
	log.Level = logrus.DebugLevel
	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}
	log.Out = os.Stdout

	svc := new(frontendServer)
	svc.httpClient = &http.Client{Timeout: 10 * time.Second}
	svc.pricing = pricingFromEnv(log)
	svc.mailer = smtpRelayFromEnv(log)

	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{}, propagation.Baggage{}))

	baseUrl = os.Getenv("BASE_URL")

	if os.Getenv("ENABLE_TRACING") == "1" {
		log.Info("Tracing enabled.")
		initTracing(log, ctx)
	} else {
		log.Info("Tracing disabled.")
	}

	if os.Getenv("ENABLE_PROFILER") == "1" {
		log.Info("Profiling enabled.")
		go initProfiling(log, "storefront", "1.0.0")
	} else {
		log.Info("Profiling disabled.")
	}

	srvPort := port
	if os.Getenv("PORT") != "" {
		srvPort = os.Getenv("PORT")
	}
	addr := os.Getenv("LISTEN_ADDR")
	mustMapEnv(&svc.backendAddr, "BACKEND_ADDR")

	r := mux.NewRouter()

	// Public pages.
	r.HandleFunc(baseUrl+"/", svc.homeHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(baseUrl+"/login", svc.loginPageHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(baseUrl+"/login", svc.loginSubmitHandler).Methods(http.MethodPost)
	r.HandleFunc(baseUrl+"/signup", svc.signupPageHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(baseUrl+"/signup", svc.signupSubmitHandler).Methods(http.MethodPost)
	r.HandleFunc(baseUrl+"/logout", svc.logoutHandler).Methods(http.MethodGet)
	r.HandleFunc(baseUrl+"/contact", svc.contactPageHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(baseUrl+"/contact", svc.contactSubmitHandler).Methods(http.MethodPost)
	r.HandleFunc(baseUrl+"/unauthorized", svc.unauthorizedHandler).Methods(http.MethodGet, http.MethodHead)

	// Customer pages.
	customer := func(h http.HandlerFunc) http.HandlerFunc {
		return svc.requireRole(h, session.RoleCustomer)
	}
	r.HandleFunc(baseUrl+"/customer/dashboard", customer(svc.customerDashboardHandler)).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(baseUrl+"/customer/shops", customer(svc.browseShopsHandler)).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(baseUrl+"/customer/shops/{id:[0-9]+}", customer(svc.shopHandler)).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(baseUrl+"/customer/products/{id:[0-9]+}", customer(svc.productHandler)).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(baseUrl+"/customer/cart", customer(svc.viewCartHandler)).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(baseUrl+"/customer/cart/add", customer(svc.addToCartHandler)).Methods(http.MethodPost)
	r.HandleFunc(baseUrl+"/customer/cart/update", customer(svc.updateCartItemHandler)).Methods(http.MethodPost)
	r.HandleFunc(baseUrl+"/customer/cart/remove", customer(svc.removeCartItemHandler)).Methods(http.MethodPost)
	r.HandleFunc(baseUrl+"/customer/checkout", customer(svc.checkoutPageHandler)).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(baseUrl+"/customer/checkout", customer(svc.placeOrderHandler)).Methods(http.MethodPost)
	r.HandleFunc(baseUrl+"/customer/orders", customer(svc.orderHistoryHandler)).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(baseUrl+"/customer/orders/{id:[0-9]+}", customer(svc.orderDetailsHandler)).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(baseUrl+"/customer/profile", customer(svc.profilePageHandler)).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(baseUrl+"/customer/profile", customer(svc.profileUpdateHandler)).Methods(http.MethodPost)

	// Owner pages.
	owner := func(h http.HandlerFunc) http.HandlerFunc {
		return svc.requireRole(h, session.RoleOwner)
	}
	r.HandleFunc(baseUrl+"/owner/dashboard", owner(svc.ownerDashboardHandler)).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(baseUrl+"/owner/register-shop", owner(svc.registerShopPageHandler)).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(baseUrl+"/owner/register-shop", owner(svc.registerShopSubmitHandler)).Methods(http.MethodPost)
	r.HandleFunc(baseUrl+"/owner/products", owner(svc.ownerProductsHandler)).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(baseUrl+"/owner/products/add", owner(svc.addProductPageHandler)).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(baseUrl+"/owner/products/add", owner(svc.addProductSubmitHandler)).Methods(http.MethodPost)
	r.HandleFunc(baseUrl+"/owner/products/{id:[0-9]+}", owner(svc.ownerProductHandler)).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(baseUrl+"/owner/products/{id:[0-9]+}/edit", owner(svc.editProductPageHandler)).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(baseUrl+"/owner/products/{id:[0-9]+}/edit", owner(svc.editProductSubmitHandler)).Methods(http.MethodPost)
	r.HandleFunc(baseUrl+"/owner/products/{id:[0-9]+}/delete", owner(svc.deleteProductHandler)).Methods(http.MethodPost)
	r.HandleFunc(baseUrl+"/owner/orders", owner(svc.ownerOrdersHandler)).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(baseUrl+"/owner/orders/{id:[0-9]+}", owner(svc.ownerOrderDetailsHandler)).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(baseUrl+"/owner/orders/{id:[0-9]+}", owner(svc.ownerOrderStatusHandler)).Methods(http.MethodPost)
	r.HandleFunc(baseUrl+"/owner/shop", owner(svc.shopProfilePageHandler)).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(baseUrl+"/owner/shop", owner(svc.shopProfileUpdateHandler)).Methods(http.MethodPost)
	r.HandleFunc(baseUrl+"/owner/notifications", owner(svc.notificationsHandler)).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(baseUrl+"/owner/notifications/clear", owner(svc.clearNotificationsHandler)).Methods(http.MethodPost)

	r.PathPrefix(baseUrl + "/static/").Handler(http.StripPrefix(baseUrl+"/static/", http.FileServer(http.Dir("./static/"))))
	r.HandleFunc(baseUrl+"/robots.txt", func(w http.ResponseWriter, _ *http.Request) { fmt.Fprint(w, "User-agent: *\nDisallow: /") })
	r.HandleFunc(baseUrl+"/_healthz", func(w http.ResponseWriter, _ *http.Request) { fmt.Fprint(w, "ok") })

	var handler http.Handler = r
	handler = &logHandler{log: log, next: handler}      // add logging
	handler = ensureSessionID(handler)                  // add session ID
	handler = otelhttp.NewHandler(handler, "storefront") // add OTel tracing

	log.Infof("starting server on %s:%s", addr, srvPort)
	log.Fatal(http.ListenAndServe(addr+":"+srvPort, handler))
}

func initTracing(log logrus.FieldLogger, ctx context.Context) (*sdktrace.TracerProvider, error) {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()))
	otel.SetTracerProvider(tp)
	log.Info("Tracing provider initialized (no exporter configured)")
	return tp, nil
}

func initProfiling(log logrus.FieldLogger, service, version string) {
	for i := 1; i <= 3; i++ {
		log = log.WithField("retry", i)
		if err := profiler.Start(profiler.Config{
			Service:        service,
			ServiceVersion: version,
			// ProjectID must be set if not running on GCP.
			// ProjectID: "my-project",
		}); err != nil {
			log.Warnf("warn: failed to start profiler: %+v", err)
		} else {
			log.Info("started profiler")
			return
		}
		d := time.Second * 10 * time.Duration(i)
		log.Debugf("sleeping %v to retry initializing profiler", d)
		time.Sleep(d)
	}
	log.Warn("warning: could not initialize profiler after retrying, giving up")
}

func mustMapEnv(target *string, envKey string) {
	v := os.Getenv(envKey)
	if v == "" {
		panic(fmt.Sprintf("environment variable %q not set", envKey))
	}
	*target = v
}

// pricingFromEnv starts from the storefront defaults and lets deployments
// override the shipping threshold, flat fee and tax rate.
func pricingFromEnv(log logrus.FieldLogger) checkout.Pricing {
	p := checkout.DefaultPricing()
	overrides := []struct {
		key    string
		target *decimal.Decimal
	}{
		{"FREE_SHIPPING_THRESHOLD", &p.FreeShippingThreshold},
		{"FLAT_SHIPPING_FEE", &p.FlatShippingFee},
		{"TAX_RATE", &p.TaxRate},
	}
	for _, o := range overrides {
		v := os.Getenv(o.key)
		if v == "" {
			continue
		}
		d, err := decimal.NewFromString(v)
		if err != nil {
			log.Warnf("ignoring invalid %s=%q: %v", o.key, v, err)
			continue
		}
		*o.target = d
	}
	return p
}
