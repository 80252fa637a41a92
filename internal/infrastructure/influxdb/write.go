package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// MeasurementHouseInventory holds one point per house change.
const MeasurementHouseInventory = "house_inventory"

// WriteHouseInventory records a house's room count and total floor area.
// The write is non-blocking; points are batched and sent asynchronously.
//
// Example:
//
//	client.WriteHouseInventory("5f1c...", 3, 420, time.Now())
func (c *Client) WriteHouseInventory(houseID string, rooms, squareFeet int, at time.Time) {
	c.WritePoint(MeasurementHouseInventory,
		map[string]string{"house_id": houseID},
		map[string]any{
			"rooms":       rooms,
			"square_feet": squareFeet,
		},
		at,
	)
}

// WritePoint writes a custom point. A zero timestamp means now.
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]any, at time.Time) {
	if !c.IsConnected() {
		return
	}
	if at.IsZero() {
		at = time.Now()
	}
	c.writeAPI.WritePoint(write.NewPoint(measurement, tags, fields, at))
}
