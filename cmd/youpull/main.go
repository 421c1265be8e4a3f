package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"youpull-go/internal/config"
	"youpull-go/internal/logger"
	"youpull-go/internal/processor"
)

func main() {
	os.Exit(run())
}

func run() int {
	refFlag := flag.String("ref", "", "playlist, channel, feed URL or .xlsx file (prompted when empty)")
	diarizeFlag := flag.String("diarize", "", "enable speaker diarization: y or n (prompted when empty)")
	selectFlag := flag.String("select", "", "selection expression, e.g. 1,3,5 or A (prompted when empty)")
	flag.Parse()

	log := logger.New().WithRun()
	log.WithField("service", "youpull").Info("starting")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Error("invalid configuration, set the missing values in the environment or a .env file")
		return 1
	}

	in := bufio.NewReader(os.Stdin)
	diarize := strings.ToLower(strings.TrimSpace(*diarizeFlag))
	if diarize == "" {
		diarize = prompt(in, "Enable diarization? (y/n): ")
	}
	reference := strings.TrimSpace(*refFlag)
	if reference == "" {
		reference = prompt(in, "Enter YouTube playlist or channel URL: ")
	}

	driver := processor.NewDriver(cfg, strings.ToLower(diarize) == "y", log)
	driver.In = in
	driver.Out = os.Stdout
	driver.Selection = *selectFlag

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	_, err = driver.Run(ctx, reference)
	switch {
	case err == nil:
		return 0
	case processor.IsQuit(err):
		return 0
	case errors.Is(err, context.Canceled):
		log.Warn("interrupted")
		return 0
	default:
		return 1
	}
}

func prompt(in *bufio.Reader, question string) string {
	fmt.Print(question)
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return ""
	}
	return strings.TrimSpace(line)
}
