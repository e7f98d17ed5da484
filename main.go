package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-dbds/config"
	"go-dbds/services"
	"go-dbds/util/logger"
)

func main() {
	configs := config.New()
	if len(os.Args) > 1 {
		var err error
		if configs, err = config.Load(os.Args[1]); err != nil {
			fatal(err)
		}
	}

	if err := logger.SetLevel(configs.LogLevel); err != nil {
		fatal(err)
	}

	ss := services.New(configs)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := ss.StressService.Run(ctx)
		done <- err
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	select {
	case err := <-done:
		if err != nil {
			fatal(err)
		}
	case q := <-quit:
		fmt.Printf("\n%s signal received, stopping gracefully...\n", q.String())
		cancel()
		<-done
		os.Exit(1)
	}
}

func fatal(val interface{}) {
	fmt.Println(val)
	os.Exit(1)
}
