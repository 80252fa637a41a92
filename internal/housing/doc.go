// Package housing provides the house and room inventory.
//
// A House owns zero or more Rooms. Every Room references exactly one House,
// and the referenced house must exist when the room is stored. The list of
// room ids on a House is derived from the rooms table at read time, so it
// always agrees with the rooms that actually point at the house.
//
// Service is the entry point used by the HTTP layer. It validates input,
// enforces name uniqueness, runs the room lifecycle hooks and fans each
// lifecycle Event out to the registered EventSinks (WebSocket hub, MQTT,
// InfluxDB, audit log).
//
// # Thread Safety
//
// Service and SQLiteRepository are safe for concurrent use. Writes that
// touch both tables run inside a single SQLite transaction.
package housing
