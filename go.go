package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/gin-gonic/gin"
	"os"
	"os/signal"
	"plist/logger"
	"plist/schedule"
	"plist/server"
	"syscall"
	"time"
)

func main() {
	var ip string
	var port int
	var tick int
	var logDir string
	flag.StringVar(&ip, "ip", "", "bind ip address.default is empty for all address.")
	flag.IntVar(&port, "p", 8080, "bind port")
	flag.IntVar(&tick, "i", 1, "scheduler tick interval in seconds.")
	flag.StringVar(&logDir, "log", "", "log directory.default is ~/.plist/debug.")
	flag.Parse()
	logger.Setup(logDir)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	r := gin.Default()
	stop := server.Start(ctx, schedule.MakeScheduler(time.Duration(tick)*time.Second), r)
	defer stop()

	go func() {
		err := r.Run(fmt.Sprintf("%s:%d", ip, port))
		if err != nil {
			logger.Error(err)
			cancel()
		}
	}()
	<-ctx.Done()
	logger.Info("shutting down")
}
