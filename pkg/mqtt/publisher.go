package mqtt

import (
	"fmt"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// IPublisher is the publishing side used by every service.
type IPublisher interface {
	PublishMessage(payload string) error
	PublishMessageQos(qos byte, retained bool, payload string) error
	Close()
}

// Publisher binds a shared client to one topic.
type Publisher struct {
	client paho.Client
	topic  string
}

func NewPublisher(client paho.Client, topic string) *Publisher {
	return &Publisher{client: client, topic: topic}
}

// PublishMessage publishes at QoS 0.
func (p *Publisher) PublishMessage(payload string) error {
	return p.PublishMessageQos(0, false, payload)
}

func (p *Publisher) PublishMessageQos(qos byte, retained bool, payload string) error {
	token := p.client.Publish(p.topic, qos, retained, payload)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("publish to %s failed: %w", p.topic, token.Error())
	}
	return nil
}

// Close gracefully closes the underlying MQTT connection.
func (p *Publisher) Close() {
	CloseConn(p.client)
}
