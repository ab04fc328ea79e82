package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trackhub-io/trackhub/internal/tracker/core/model"
)

func newSendCommand() *cobra.Command {
	var paramsJSON string

	cmd := &cobra.Command{
		Use:   "send <vehicle-id> <command>",
		Short: "Dispatch a command to a vehicle",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]any{
				"vehicle_id": args[0],
				"command":    args[1],
			}
			if paramsJSON != "" {
				var params map[string]any
				if err := json.Unmarshal([]byte(paramsJSON), &params); err != nil {
					return fmt.Errorf("parsing --params: %w", err)
				}
				body["parameters"] = params
			}

			var out model.Command
			if err := postJSON("/api/v1/commands", body, &out); err != nil {
				return err
			}

			fmt.Printf("command %s dispatched to %s (status: %s)\n", out.ID, out.VehicleID, out.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&paramsJSON, "params", "", "Command parameters as a JSON object.")

	return cmd
}
