package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"menucraft/internal/kitchen"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

var (
	flagServer   string
	flagWS       string
	flagSlug     string
	flagUsername string
	flagPassword string
)

func main() {
	root := &cobra.Command{
		Use:   "kitchen",
		Short: "Terminal kitchen dashboard for a restaurant",
		RunE:  run,
	}

	root.Flags().StringVar(&flagServer, "server", "http://localhost:5001", "backend base URL")
	root.Flags().StringVar(&flagWS, "ws", "", "websocket URL (default: derived from --server)")
	root.Flags().StringVar(&flagSlug, "slug", "", "restaurant slug")
	root.Flags().StringVar(&flagUsername, "username", "admin", "kitchen username")
	root.Flags().StringVar(&flagPassword, "password", "", "kitchen password")
	_ = root.MarkFlagRequired("slug")
	_ = root.MarkFlagRequired("password")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	token, restaurantID, err := kitchen.Login(ctx, flagServer, flagUsername, flagPassword, flagSlug)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	wsURL := flagWS
	if wsURL == "" {
		wsURL = strings.Replace(flagServer, "http", "ws", 1) + "/ws"
	}

	api := kitchen.NewHTTPAPI(flagServer, token)
	client := kitchen.NewClient(api, flagSlug, &realClock{}, log.With().Str("component", "sync").Logger())
	feed := kitchen.NewFeed(wsURL, restaurantID, token, log.With().Str("component", "feed").Logger())

	go client.Run(ctx, feed.Run(ctx))

	//5秒ごとにキューを描き直す
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			render(client)
		}
	}
}

func render(c *kitchen.Client) {
	now := time.Now()
	st := c.Stats()

	fmt.Print("\033[2J\033[H")
	fmt.Printf("== Kitchen | today: %d total / %d pending / %d in progress / %d completed ==\n\n",
		st.Total, st.Pending, st.InProgress, st.Completed)

	renderQueue("PENDING", c.Pending(), now)
	renderQueue("IN PROGRESS", c.InProgress(), now)
	renderQueue("COMPLETED", c.Completed(), now)
}

func renderQueue(title string, orders []kitchen.Order, now time.Time) {
	fmt.Printf("-- %s (%d)\n", title, len(orders))
	for _, o := range orders {
		mark := "  "
		if kitchen.IsUrgent(now, o) {
			mark = "!!"
		}
		fmt.Printf("%s #%d %s | %d items | %s\n",
			mark, o.OrderNumber, o.CustomerName, len(o.Items), kitchen.Elapsed(now, o.PlacedAt))
	}
	fmt.Println()
}
