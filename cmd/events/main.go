package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"asset-selector-be/pkg/events"
	pktNats "asset-selector-be/pkg/nats"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

// Tails the selection stream and prints each event.
func main() {
	durable := flag.String("durable", "", "durable consumer name; empty for an ephemeral tail")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	url := os.Getenv("NATS_URL")
	if url == "" {
		url = "nats://localhost:4222"
	}

	sub, err := pktNats.NewSubscriber(url)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	defer sub.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	subject := pktNats.Subject(events.TypeAssetSelected)
	err = sub.Subscribe(ctx, subject, *durable, func(ctx context.Context, evt events.Event) error {
		data := evt.Payload()
		fmt.Printf("%s %s %s %v\n",
			color.CyanString(evt.Timestamp().Format("15:04:05")),
			color.MagentaString("%-8v", data["sentiment"]),
			color.GreenString("%v", data["url"]),
			data["title"],
		)
		return nil
	})
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	color.Cyan("Listening on %s (Ctrl+C to stop)", subject)
	<-ctx.Done()
}
