package mqtt

import (
	"context"
	"log"
	"strings"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// Handler processes one inbound message from a subscription.
type Handler func(topic string, msg paho.Message) error

// IConsumer is the consuming side used by every service.
type IConsumer interface {
	ConsumeMessage(ctx context.Context)
	SetHandler(handler Handler)
}

// qosFor: comandi e alert viaggiano QoS1 (possibili redelivery, dedup a
// carico del consumatore); le letture grezze restano QoS0.
func qosFor(topic string) byte {
	t := strings.TrimSpace(topic)
	if strings.HasPrefix(t, "event/NodeCommand") ||
		strings.HasPrefix(t, "event/CommandResult") ||
		strings.HasPrefix(t, "node/aggregated") {
		return 1
	}
	return 0
}

// Consumer subscribes to a single topic filter.
type Consumer struct {
	client  paho.Client
	topic   string
	handler Handler
}

func NewConsumer(client paho.Client, topic string, handler Handler) *Consumer {
	return &Consumer{client: client, topic: topic, handler: handler}
}

func (c *Consumer) SetHandler(handler Handler) { c.handler = handler }

// ConsumeMessage subscribes and blocks until the context is cancelled.
func (c *Consumer) ConsumeMessage(ctx context.Context) {
	token := c.client.Subscribe(c.topic, qosFor(c.topic), func(_ paho.Client, m paho.Message) {
		if c.handler == nil {
			log.Printf("mqtt: no handler set for topic %s", c.topic)
			return
		}
		if err := c.handler(m.Topic(), m); err != nil {
			log.Printf("mqtt: handler error on %s: %v", m.Topic(), err)
		}
	})
	if token.Wait() && token.Error() != nil {
		log.Printf("mqtt: subscribe %s failed: %v", c.topic, token.Error())
		return
	}
	log.Printf("mqtt: subscribed to %s", c.topic)

	<-ctx.Done()

	unsub := c.client.Unsubscribe(c.topic)
	unsub.Wait()
}

// MultiConsumer subscribes to several topic filters with one handler.
type MultiConsumer struct {
	client  paho.Client
	topics  []string
	handler Handler
}

func NewMultiConsumer(client paho.Client, topics []string, handler Handler) *MultiConsumer {
	return &MultiConsumer{client: client, topics: topics, handler: handler}
}

func (m *MultiConsumer) SetHandler(handler Handler) { m.handler = handler }

func (m *MultiConsumer) ConsumeMessage(ctx context.Context) {
	for _, topic := range m.topics {
		topic := topic
		token := m.client.Subscribe(topic, qosFor(topic), func(_ paho.Client, msg paho.Message) {
			if m.handler == nil {
				log.Printf("mqtt: no handler set for topic %s", topic)
				return
			}
			if err := m.handler(msg.Topic(), msg); err != nil {
				log.Printf("mqtt: handler error on %s: %v", msg.Topic(), err)
			}
		})
		token.Wait()
		if token.Error() != nil {
			log.Printf("mqtt: subscribe %s failed: %v", topic, token.Error())
		} else {
			log.Printf("mqtt: subscribed to %s", topic)
		}
	}

	<-ctx.Done()

	for _, topic := range m.topics {
		m.client.Unsubscribe(topic)
	}
}
