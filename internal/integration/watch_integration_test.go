package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/pinepoint/internal/config"
	"github.com/oshokin/pinepoint/internal/publish"
	"github.com/oshokin/pinepoint/internal/service/watch"
)

// startBroker accepts one MQTT client, acknowledges its session and returns
// the JSON body of the first PUBLISH it receives.
func startBroker(t *testing.T) (addr string, payload <-chan []byte) {
	t.Helper()

	lc := net.ListenConfig{}

	listener, err := lc.Listen(context.Background(), "tcp", "127.0.0.1:0")
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = listener.Close()
	})

	payloadCh := make(chan []byte, 1)

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}

		defer func() {
			_ = conn.Close()
		}()

		_ = conn.SetDeadline(time.Now().Add(3 * time.Second))

		buf := make([]byte, 1024)

		// CONNECT carries the client ID, which defaults to a pinepoint- prefix.
		var hello []byte
		for !bytes.Contains(hello, []byte("pinepoint-")) {
			n, err := conn.Read(buf)
			if err != nil {
				return
			}

			hello = append(hello, buf[:n]...)
		}

		if _, err = conn.Write([]byte{0x20, 0x02, 0x00, 0x00}); err != nil {
			return
		}

		var received []byte
		for !bytes.HasSuffix(received, []byte("}")) {
			n, err := conn.Read(buf)
			if err != nil {
				return
			}

			received = append(received, buf[:n]...)
		}

		payloadCh <- received[bytes.IndexByte(received, '{'):]
	}()

	return listener.Addr().String(), payloadCh
}

// TestWatch_PublishesInitFrame runs the face until the first frame reached the broker.
func TestWatch_PublishesInitFrame(t *testing.T) {
	t.Parallel()

	brokerAddr, payload := startBroker(t)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "settings.yaml")
	snapshot := filepath.Join(dir, "face.png")

	require.NoError(t, config.Save(cfgPath, &config.Config{
		TimeZone: "UTC",
		Timeout:  2 * time.Second,
		MQTT: config.MQTT{
			BrokerAddress: brokerAddr,
			Topic:         "school/pinepoint",
		},
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	var out bytes.Buffer

	go func() {
		done <- watch.Run(ctx, &watch.Options{
			ConfigPath:   cfgPath,
			Output:       &out,
			SnapshotPath: snapshot,
			Force:        true,
		})
	}()

	var body []byte
	select {
	case body = <-payload:
	case <-time.After(5 * time.Second):
		t.Fatal("broker received no frame")
	}

	cancel()
	require.NoError(t, <-done)

	var frame publish.Payload
	require.NoError(t, json.Unmarshal(body, &frame))
	require.GreaterOrEqual(t, frame.MinutesLeft, 0)
	require.NotEmpty(t, frame.ClockText)

	require.Contains(t, out.String(), "min left")

	_, err := os.Stat(snapshot)
	require.NoError(t, err)
}
