package app

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/trackhub-io/trackhub/internal/tracker/core/model"
)

func newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stream live events from the server until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wsURL := toWebsocketURL(serverAddr) + "/ws"
			conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
			if err != nil {
				return fmt.Errorf("connecting to %s: %w", wsURL, err)
			}
			defer conn.Close()
			if resp != nil {
				resp.Body.Close()
			}

			// Interrupt closes the connection, which unblocks ReadJSON.
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigCh
				conn.Close()
			}()

			fmt.Fprintln(os.Stderr, "watching events, ctrl-c to stop")
			for {
				var event struct {
					Type model.EventType `json:"type"`
					Data json.RawMessage `json:"data"`
				}
				if err := conn.ReadJSON(&event); err != nil {
					return nil
				}
				fmt.Printf("%-16s %s\n", event.Type, event.Data)
			}
		},
	}
}

func toWebsocketURL(httpURL string) string {
	switch {
	case strings.HasPrefix(httpURL, "https://"):
		return "wss://" + strings.TrimPrefix(httpURL, "https://")
	case strings.HasPrefix(httpURL, "http://"):
		return "ws://" + strings.TrimPrefix(httpURL, "http://")
	default:
		return "ws://" + httpURL
	}
}
