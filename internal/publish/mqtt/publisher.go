package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	mqtt "github.com/soypat/natiu-mqtt"

	"github.com/oshokin/pinepoint/internal/domain/face"
	"github.com/oshokin/pinepoint/internal/logger"
	"github.com/oshokin/pinepoint/internal/publish"
)

const (
	// clientIDPrefix prefixes generated client identifiers.
	clientIDPrefix = "pinepoint-"
	// decoderBufferSize bounds incoming packets; the feed only receives acks.
	decoderBufferSize = 1024
	// connectPollInterval is the pause between CONNACK reads.
	connectPollInterval = 100 * time.Millisecond
	// connectAttempts bounds how many reads wait for CONNACK.
	connectAttempts = 20
)

var (
	// errBrokerRequired is returned when no broker address is configured.
	errBrokerRequired = errors.New("mqtt broker address must be provided")
	// errNotConnected is returned when the broker never acknowledged the connection.
	errNotConnected = errors.New("mqtt broker did not acknowledge connection")
)

// Config holds broker connection settings.
type Config struct {
	BrokerAddress string
	Topic         string
	ClientID      string
	Username      string
	Password      string
	Timeout       time.Duration
}

// Publisher sends frames to an MQTT topic.
type Publisher struct {
	cfg      Config
	pubFlags mqtt.PacketFlags

	// mu serialises access to the connection.
	mu       sync.Mutex
	conn     net.Conn
	client   *mqtt.Client
	packetID uint16
}

// New validates cfg and returns a publisher. No connection is made yet.
func New(cfg Config) (*Publisher, error) {
	if cfg.BrokerAddress == "" {
		return nil, errBrokerRequired
	}

	if cfg.ClientID == "" {
		cfg.ClientID = clientIDPrefix + uuid.NewString()
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	flags, err := mqtt.NewPublishFlags(mqtt.QoS0, false, false)
	if err != nil {
		return nil, fmt.Errorf("publish flags: %w", err)
	}

	return &Publisher{
		cfg:      cfg,
		pubFlags: flags,
	}, nil
}

// ClientID returns the identifier presented to the broker.
func (p *Publisher) ClientID() string {
	return p.cfg.ClientID
}

// Publish sends the frame, connecting first if needed.
func (p *Publisher) Publish(ctx context.Context, f face.Frame) error {
	payload, err := json.Marshal(publish.NewPayload(f))
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client == nil || !p.client.IsConnected() {
		if err = p.connectLocked(ctx); err != nil {
			return err
		}
	}

	p.packetID++

	vars := mqtt.VariablesPublish{
		TopicName:        []byte(p.cfg.Topic),
		PacketIdentifier: p.packetID,
	}

	if err = p.conn.SetDeadline(time.Now().Add(p.cfg.Timeout)); err != nil {
		p.dropLocked()

		return fmt.Errorf("set deadline: %w", err)
	}

	if err = p.client.PublishPayload(p.pubFlags, vars, payload); err != nil {
		p.dropLocked()

		return fmt.Errorf("publish frame: %w", err)
	}

	logger.DebugKV(ctx, "Frame published", "topic", p.cfg.Topic, "minutes_left", f.MinutesLeft)

	return nil
}

// Close disconnects from the broker.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.dropLocked()

	return nil
}

// connectLocked dials the broker and waits for CONNACK. Callers hold mu.
func (p *Publisher) connectLocked(ctx context.Context) error {
	p.dropLocked()

	dialer := net.Dialer{Timeout: p.cfg.Timeout}

	conn, err := dialer.DialContext(ctx, "tcp", p.cfg.BrokerAddress)
	if err != nil {
		return fmt.Errorf("dial mqtt broker: %w", err)
	}

	client := mqtt.NewClient(mqtt.ClientConfig{
		Decoder: mqtt.DecoderNoAlloc{UserBuffer: make([]byte, decoderBufferSize)},
		OnPub: func(_ mqtt.Header, varPub mqtt.VariablesPublish, _ io.Reader) error {
			logger.DebugKV(ctx, "Ignoring inbound message", "topic", string(varPub.TopicName))

			return nil
		},
	})

	var varconn mqtt.VariablesConnect
	varconn.SetDefaultMQTT([]byte(p.cfg.ClientID))

	if p.cfg.Username != "" {
		varconn.Username = []byte(p.cfg.Username)
		if p.cfg.Password != "" {
			varconn.Password = []byte(p.cfg.Password)
		}
	}

	if err = conn.SetDeadline(time.Now().Add(p.cfg.Timeout)); err != nil {
		_ = conn.Close()

		return fmt.Errorf("set deadline: %w", err)
	}

	if err = client.StartConnect(conn, &varconn); err != nil {
		_ = conn.Close()

		return fmt.Errorf("start mqtt connect: %w", err)
	}

	for range connectAttempts {
		if client.IsConnected() {
			break
		}

		if err = client.HandleNext(); err != nil {
			logger.DebugKV(ctx, "Waiting for CONNACK", "error", err)
		}

		if client.IsConnected() {
			break
		}

		select {
		case <-ctx.Done():
			_ = conn.Close()

			return ctx.Err()
		case <-time.After(connectPollInterval):
		}
	}

	if !client.IsConnected() {
		_ = conn.Close()

		return fmt.Errorf("%w: %v", errNotConnected, client.Err())
	}

	p.conn = conn
	p.client = client

	logger.InfoKV(ctx, "Connected to MQTT broker", "broker", p.cfg.BrokerAddress, "client_id", p.cfg.ClientID)

	return nil
}

// dropLocked closes the current connection, if any. Callers hold mu.
func (p *Publisher) dropLocked() {
	if p.conn != nil {
		_ = p.conn.Close()
	}

	p.conn = nil
	p.client = nil
}
