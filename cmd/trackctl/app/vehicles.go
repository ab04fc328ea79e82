package app

import (
	"fmt"
	"time"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/trackhub-io/trackhub/internal/tracker/core/model"
)

func newVehiclesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "vehicles [vehicle-id]",
		Short: "List tracked vehicles or show one vehicle's latest state",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return showVehicle(args[0])
			}
			return listVehicles()
		},
	}
}

func listVehicles() error {
	var states []model.VehicleState
	if err := getJSON("/api/v1/vehicles", &states); err != nil {
		return err
	}

	table := uitable.New()
	table.AddRow("VEHICLE", "LAT", "LON", "SPEED", "HEADING", "BATTERY", "STATUS", "LAST UPDATE")
	for _, s := range states {
		table.AddRow(s.VehicleID,
			fmt.Sprintf("%.5f", s.Lat), fmt.Sprintf("%.5f", s.Lon),
			fmt.Sprintf("%.1f", s.Speed), fmt.Sprintf("%.1f", s.Heading),
			fmt.Sprintf("%.0f%%", s.BatteryLevel), s.Status,
			s.LastUpdate.Format(time.RFC3339))
	}
	fmt.Println(table)
	return nil
}

func showVehicle(vehicleID string) error {
	var s model.VehicleState
	if err := getJSON("/api/v1/vehicles/"+vehicleID, &s); err != nil {
		return err
	}

	table := uitable.New()
	table.AddRow("Vehicle:", s.VehicleID)
	table.AddRow("Position:", fmt.Sprintf("%.5f, %.5f", s.Lat, s.Lon))
	table.AddRow("Speed:", fmt.Sprintf("%.1f km/h", s.Speed))
	table.AddRow("Heading:", fmt.Sprintf("%.1f°", s.Heading))
	table.AddRow("Battery:", fmt.Sprintf("%.0f%%", s.BatteryLevel))
	table.AddRow("Status:", s.Status)
	table.AddRow("Last update:", s.LastUpdate.Format(time.RFC3339))
	fmt.Println(table)
	return nil
}
