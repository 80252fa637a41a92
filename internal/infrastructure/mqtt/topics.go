package mqtt

import "fmt"

const (
	// TopicPrefix is the root of every Homestead topic.
	TopicPrefix = "homestead"

	// TopicPrefixEvent is the base for inventory lifecycle events.
	TopicPrefixEvent = TopicPrefix + "/event"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = TopicPrefix + "/system"
)

// Topics provides builders for Homestead MQTT topics.
//
//	topic := mqtt.Topics{}.Event("room.created")
//	// Returns: "homestead/event/room.created"
type Topics struct{}

// Event returns the topic for a lifecycle event type.
//
// Example: homestead/event/room.removed
func (Topics) Event(eventType string) string {
	return fmt.Sprintf("%s/%s", TopicPrefixEvent, eventType)
}

// AllEvents returns a pattern matching every lifecycle event.
//
// Pattern: homestead/event/+
func (Topics) AllEvents() string {
	return TopicPrefixEvent + "/+"
}

// SystemStatus returns the retained online/offline status topic.
//
// Example: homestead/system/status
func (Topics) SystemStatus() string {
	return TopicPrefixSystem + "/status"
}
