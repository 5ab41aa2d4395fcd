package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	log.SetFlags(0)

	cfg, err := parseArgs(os.Args[1:])
	if err != nil {
		log.Printf("%+v", err)
		os.Exit(1)
	}

	srv := newServer(cfg)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Printf("received %s, shutting down", sig)
		srv.Shutdown()
	}()

	if err := srv.listenAndServe(); err != nil {
		log.Printf("%+v", err)
		os.Exit(1)
	}

	os.Exit(0)
}
