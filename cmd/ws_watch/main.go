package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todo_backend/internal/logger"

	"github.com/gorilla/websocket"
)

// ws_watch prints every change event the server publishes until
// interrupted.
func main() {
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8000"
	}
	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	url := flag.String("url", fmt.Sprintf("ws://127.0.0.1:%s/ws", port), "event stream URL")
	flag.Parse()

	conn, _, err := websocket.DefaultDialer.Dial(*url, nil)
	if err != nil {
		logger.Fatal("dial failed", "url", *url, "error", err)
	}
	defer conn.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				logger.Info("stream closed", "error", err)
				return
			}
			fmt.Println(string(msg))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-done:
	case <-quit:
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}
