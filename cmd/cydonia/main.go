package main

import (
	"context"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gitlab.com/lologarithm/cydonia/dashboard"
	"gitlab.com/lologarithm/cydonia/dataapi"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the json config file")
	host := flag.String("host", "", "host:port to serve on, overrides the config")
	fake := flag.Bool("fake", false, "serve made up data instead of calling the data api")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %s", err)
	}
	if *host != "" {
		cfg.Host = *host
	}

	var fetcher dashboard.Fetcher
	if *fake {
		log.Printf("Using fake data.")
		fetcher = newFakeMonitor()
	} else {
		client, err := dataapi.NewClient(cfg.DataURL, &http.Client{})
		if err != nil {
			log.Fatalf("Failed to create data client: %s", err)
		}
		fetcher = client
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctrl := dashboard.NewController(fetcher, cfg.Catalog())
	if cfg.Mailgun.Enabled() {
		a := newAlerter(func(subj, msg string) { sendMail(cfg.Mailgun, subj, msg) })
		ctrl.Subscribe(a.observe)
	}
	srv := newServer(ctx, ctrl)

	ctrl.SetLocation(ctx, cfg.Locations[0].ID)
	go ctrl.Run(ctx, cfg.Refresh())

	hs := &http.Server{
		Addr:        cfg.Host,
		Handler:     srv.routes(),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hs.Shutdown(sctx); err != nil {
			log.Printf("[Error] Shutdown: %s", err)
		}
	}()

	log.Printf("starting webhost on: %s", cfg.Host)
	if err := hs.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
	ctrl.Wait()
	log.Printf("Done!")
}
