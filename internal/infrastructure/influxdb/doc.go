// Package influxdb records house inventory metrics in InfluxDB.
//
// It wraps the official influxdb-client-go v2 library. Every house or room
// lifecycle event produces one house_inventory point tagged with house_id
// and carrying the rooms and square_feet fields, so room count and floor
// area can be graphed over time.
//
// # Usage
//
//	client, err := influxdb.Connect(ctx, cfg.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	client.WriteHouseInventory(houseID, 3, 420, time.Now())
//
// # Thread Safety
//
// All methods are safe for concurrent use. Writes are non-blocking and
// batched according to batch_size and flush_interval; asynchronous write
// failures are delivered to the SetOnError callback.
package influxdb
