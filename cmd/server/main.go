package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/jrsteele09/go-gmail-sender/gmail"
	"github.com/jrsteele09/go-gmail-sender/googleauth"
	"github.com/jrsteele09/go-gmail-sender/internal/config"
	"github.com/jrsteele09/go-gmail-sender/internal/metrics"
	"github.com/jrsteele09/go-gmail-sender/server"
	"github.com/jrsteele09/go-gmail-sender/server/ratelimit"
	"github.com/jrsteele09/go-gmail-sender/server/sessionstore"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c, err := config.New()
	if err != nil {
		return fmt.Errorf("config.New: %w", err)
	}
	displayAppname(c.GetAppName())

	ctx := context.Background()
	authService, err := googleauth.NewService(ctx, c)
	if err != nil {
		return fmt.Errorf("googleauth.NewService: %w", err)
	}

	sessions, limiter := buildStores(c)
	collector := metrics.NewPrometheusCollector(prometheus.NewRegistry())

	handler := server.New(c, authService, gmail.NewClient(), sessions, limiter, collector)
	httpServer := &http.Server{Addr: c.GetPort(), Handler: handler}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

// buildStores selects Redis-backed session and rate-limit storage when
// REDIS_ADDR is configured, in-memory implementations otherwise.
func buildStores(c config.Config) (sessionstore.Repo, ratelimit.Limiter) {
	if addr := c.GetRedisAddr(); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		return sessionstore.NewRedisRepo(client, c.GetSessionTTL()),
			ratelimit.NewRedisSlidingWindow(client, c.GetRateLimitMax(), c.GetRateLimitWindow())
	}
	return sessionstore.NewInMemoryRepo(),
		ratelimit.NewSlidingWindow(c.GetRateLimitMax(), c.GetRateLimitWindow())
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
