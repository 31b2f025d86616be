// Package mqtt publishes watch-face frames to an MQTT broker.
//
// Frames are sent as JSON with QoS 0. The connection is opened lazily on the
// first publish and re-opened after a failure.
package mqtt
