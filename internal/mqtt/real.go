package mqtt

import (
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"
)

// bufferCapacity bounds the messages kept while the broker is unreachable.
const bufferCapacity = 100

// RealPublisher publishes to an actual MQTT broker. Publishing never blocks
// the caller: messages sent while disconnected are buffered and replayed on
// reconnect, and delivery errors are only logged.
type RealPublisher struct {
	client pahoClient

	mu  sync.Mutex
	buf *ring[bufferedMsg]
}

// pahoClient is the part of paho.Client the publisher uses.
type pahoClient interface {
	IsConnectionOpen() bool
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Disconnect(quiesce uint)
}

func newPublisher(client pahoClient) *RealPublisher {
	return &RealPublisher{client: client, buf: newRing[bufferedMsg](bufferCapacity)}
}

// NewRealPublisher creates a publisher for the given broker. The connection
// is established in the background and retried until it succeeds.
func NewRealPublisher(broker string) *RealPublisher {
	p := newPublisher(nil)

	will, _ := FormatSystemPayload(SystemEvent{Event: "OFFLINE", Reason: "MQTT_DISCONNECT"})

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5*time.Second).
		SetBinaryWill(TopicSystem, will, 1, true).
		SetOnConnectHandler(p.onConnect).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			log.Warnf("mqtt: connection lost: %v", err)
		})

	client := paho.NewClient(opts)
	p.client = client
	client.Connect()
	return p
}

func (p *RealPublisher) onConnect(paho.Client) {
	n := p.flush()
	log.Infof("mqtt: connected, replayed %d buffered messages", n)
}

// flush sends everything buffered, oldest first, and returns the count.
func (p *RealPublisher) flush() int {
	p.mu.Lock()
	pending := p.buf.drain()
	p.mu.Unlock()

	for _, m := range pending {
		p.send(m)
	}
	return len(pending)
}

// Publish sends a press event to the MQTT broker.
func (p *RealPublisher) Publish(event PressEvent) error {
	payload, err := FormatPayload(event)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}
	// QoS 0 (at-most-once), not retained
	p.publish(bufferedMsg{topic: Topic, payload: payload})
	return nil
}

// PublishSystem sends a system lifecycle event to the MQTT broker.
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}
	// QoS 1 (at-least-once) for lifecycle events
	p.publish(bufferedMsg{topic: TopicSystem, payload: payload, qos: 1, retained: event.Retained})
	return nil
}

// publish sends m now or buffers it. The connection check and the push
// happen under mu, the same lock onConnect drains under. A connection that
// opens right after the push is caught by the second check, so a message
// never waits for the next reconnect.
func (p *RealPublisher) publish(m bufferedMsg) {
	p.mu.Lock()
	if p.client.IsConnectionOpen() {
		p.mu.Unlock()
		p.send(m)
		return
	}
	if p.buf.push(m) {
		log.Debugf("mqtt: evicted oldest buffered message for %s", m.topic)
	}
	p.mu.Unlock()

	if p.client.IsConnectionOpen() {
		p.flush()
	}
}

func (p *RealPublisher) send(m bufferedMsg) {
	p.watch(m.topic, p.client.Publish(m.topic, m.qos, m.retained, m.payload))
}

// watch logs the outcome of a publish without holding up the caller.
func (p *RealPublisher) watch(topic string, token paho.Token) {
	go func() {
		if !token.WaitTimeout(5 * time.Second) {
			log.Warnf("mqtt: publish to %s timed out", topic)
			return
		}
		if err := token.Error(); err != nil {
			log.Warnf("mqtt: publish to %s: %v", topic, err)
		}
	}()
}

// IsConnected reports whether the broker connection is up.
func (p *RealPublisher) IsConnected() bool {
	return p.client.IsConnectionOpen()
}

// Buffered returns the number of messages waiting for a connection.
func (p *RealPublisher) Buffered() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.buf.len()
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000) // 1 second timeout
	return nil
}
