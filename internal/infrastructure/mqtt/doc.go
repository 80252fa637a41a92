// Package mqtt publishes Homestead inventory events to an MQTT broker.
//
// The client connects with auto-reconnect and a Last Will so subscribers
// can tell when the service drops off the bus. Each house or room
// lifecycle event is published, not retained, to
//
//	homestead/event/{event_type}
//
// and the retained online/offline status lives at homestead/system/status.
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	err = client.PublishEvent("room.created", payload)
package mqtt
