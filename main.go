package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eltablero/db"
	"eltablero/hub"
	"eltablero/mirror"
	"eltablero/models"
	"eltablero/mq"
	"eltablero/ratelim"
	"eltablero/rdx"
	"eltablero/routes"
	"eltablero/store"
	"eltablero/utils"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// XSS, content sniffing, framing
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		// HSTS (must be on HTTPS)
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		// Referrer and permissions
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		duration := time.Since(start)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, duration)
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func setupRouter(rateLimiter *ratelim.RateLimiter) *httprouter.Router {
	router := httprouter.New()
	router.GET("/health", Index)

	routes.AddAuthRoutes(router, rateLimiter)
	routes.AddReservationRoutes(router, rateLimiter)
	routes.AddTimeSlotRoutes(router)
	routes.AddCalendarRoutes(router)
	routes.AddSettingsRoutes(router)
	routes.AddNewsRoutes(router)
	routes.AddFreePlayRoutes(router)
	routes.AddReportRoutes(router)
	routes.AddStaticRoutes(router)

	return router
}

// wireRealtime pushes every store change into the websocket room named
// after the collection, so open admin and customer pages re-render from the
// fresh snapshot. Returns a teardown cancelling all subscriptions.
func wireRealtime(h *hub.Hub) func() {
	push := func(room string, payload any) {
		data, err := json.Marshal(utils.M{"collection": room, "data": payload})
		if err != nil {
			log.Printf("realtime: marshal for %s failed: %v", room, err)
			return
		}
		h.Broadcast(room, data)
	}

	disposers := []func(){
		store.Reservations.Subscribe(func(snap []models.Reservation) { push("reservations", snap) }),
		store.TimeSlots.Subscribe(func(snap []models.TimeSlot) { push("timeslots", snap) }),
		store.News.Subscribe(func(snap []models.NewsItem) { push("news", snap) }),
		store.FreePlay.Subscribe(func(snap []models.FreePlayTable) { push("freeplay", snap) }),
		store.Conf.SubscribePrice(func(price int) { push("price", price) }),
		store.Conf.SubscribeAlias(func(alias string) { push("paymentAlias", alias) }),
		store.Conf.SubscribeBlockedDates(func(blocked []string) { push("blockedDates", blocked) }),
		store.Conf.SubscribeSpecialDates(func(special map[string]string) { push("specialDates", special) }),
	}

	return func() {
		for _, dispose := range disposers {
			dispose()
		}
	}
}

// newSession opens a per-connection booking view for clients joining the
// "booking" room: selections arrive as websocket commands and rendered
// slots/calendar/summary go back over the same connection. Snapshot rooms
// carry no per-client state.
func newSession(room string, send func([]byte)) hub.Session {
	if room != "booking" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sess, err := mirror.NewSession(ctx, mirror.Sources{
		Reservations: store.Reservations,
		TimeSlots:    store.TimeSlots,
		Config:       store.Conf,
	}, send)
	if err != nil {
		log.Printf("booking session failed to open: %v", err)
		return nil
	}
	return sess
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	// read port
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	} else if port[0] != ':' {
		port = ":" + port
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.Connect(ctx); err != nil {
		cancel()
		log.Fatalf("❌ Mongo connection failed: %v", err)
	}
	cancel()

	rdx.Init()
	store.Init()

	rateLimiter := ratelim.NewRateLimiter()

	wsHub := hub.NewHub()
	go wsHub.Run()
	unwire := wireRealtime(wsHub)

	// changes made by other processes re-deliver local snapshots
	go mq.StartChangeWorker(store.Poke)

	router := setupRouter(rateLimiter)
	routes.AddWebsocketRoutes(router, wsHub, newSession)

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	server.RegisterOnShutdown(func() {
		log.Println("🛑 Shutting down websocket hub...")
		unwire()
		wsHub.Stop()
	})

	// start server
	go func() {
		log.Printf("🚀 Server listening on %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe error: %v", err)
		}
	}()

	// wait for interrupt or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	// initiate graceful shutdown
	log.Println("🛑 Shutdown signal received; shutting down gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("❌ Graceful shutdown failed: %v", err)
	}

	db.Disconnect(shutdownCtx)
	log.Println("✅ Server stopped cleanly")
}
