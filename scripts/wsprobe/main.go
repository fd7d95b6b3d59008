package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"
)

// connects to a running server, sends one player action, and prints
// everything that comes back
func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run ./scripts/wsprobe <token> <player_action>")
		fmt.Println("Example: go run ./scripts/wsprobe jwt_token_here \"look around\"")
		os.Exit(1)
	}

	token := os.Args[1]
	playerAction := os.Args[2]

	u := url.URL{
		Scheme: "ws",
		Host:   "localhost:8080",
		Path:   "/api/v1/ws",
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()

	fmt.Printf("Connecting to %s\n", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatal("dial:", err)
	}
	defer c.Close()

	fmt.Println("✅ Connected to WebSocket!")

	// handle interrupt
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	done := make(chan struct{})

	// read messages
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Println("read:", err)
				return
			}
			fmt.Printf("📨 Received: %s\n", message)
		}
	}()

	// send a turn once the ack has had a moment to arrive
	time.Sleep(1 * time.Second)
	turn := map[string]interface{}{
		"player_action": playerAction,
	}
	turnJSON, _ := json.Marshal(turn)
	fmt.Printf("📤 Sending turn: %s\n", turnJSON)
	err = c.WriteMessage(websocket.TextMessage, turnJSON)
	if err != nil {
		log.Println("write:", err)
		return
	}

	// wait for interrupt or done
	select {
	case <-done:
		return
	case <-interrupt:
		fmt.Println("\n🛑 Interrupt received, closing connection...")

		// cleanly close the connection
		err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		if err != nil {
			log.Println("write close:", err)
			return
		}
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}
