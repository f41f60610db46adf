package aggregator

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/sdcc-labs/pollnode/internal/model/messages"
	"github.com/sdcc-labs/pollnode/pkg/mqtt"
)

// PublisherFactory returns the publisher for one node's aggregated stream.
// Implementations are expected to cache per topic.
type PublisherFactory func(zoneID, nodeID string) mqtt.IPublisher

type DataAggregatorService struct {
	consumer            mqtt.IConsumer
	pubFor              PublisherFactory
	buffer              map[string][]messages.NodeReading // key zoneID/nodeID
	mutex               sync.Mutex
	aggregationInterval time.Duration
}

func NewDataAggregatorService(consumer mqtt.IConsumer, pubFor PublisherFactory, aggregationInterval time.Duration) *DataAggregatorService {
	return &DataAggregatorService{
		consumer:            consumer,
		pubFor:              pubFor,
		aggregationInterval: aggregationInterval,
		buffer:              make(map[string][]messages.NodeReading),
	}
}

func (d *DataAggregatorService) messageHandler(_ string, message paho.Message) error {
	var rd messages.NodeReading
	if err := json.Unmarshal(message.Payload(), &rd); err != nil {
		log.Printf("aggregator: bad reading payload: %v", err)
		return err
	}
	if rd.Aggregated {
		// non rimettere in coda i nostri stessi output
		return nil
	}

	d.mutex.Lock()
	d.buffer[rd.ZoneID+"/"+rd.NodeID] = append(d.buffer[rd.ZoneID+"/"+rd.NodeID], rd)
	d.mutex.Unlock()
	return nil
}

func (d *DataAggregatorService) Start(ctx context.Context) {
	d.consumer.SetHandler(d.messageHandler)
	go d.consumer.ConsumeMessage(ctx)

	ticker := time.NewTicker(d.aggregationInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.aggregateAndPublish()
		}
	}
}

// aggregateAndPublish drains the window buffer and emits one mean reading per
// node. Published QoS1: downstream consumers dedup redeliveries.
func (d *DataAggregatorService) aggregateAndPublish() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	for key, readings := range d.buffer {
		if len(readings) == 0 {
			continue
		}
		var rawSum, pctSum int
		for _, r := range readings {
			rawSum += int(r.Raw)
			pctSum += r.Pct
		}

		out := messages.NodeReading{
			ZoneID:     readings[0].ZoneID,
			NodeID:     readings[0].NodeID,
			Raw:        uint16(rawSum / len(readings)),
			Pct:        pctSum / len(readings),
			Aggregated: true,
			Timestamp:  time.Now().UTC(),
		}

		b, err := json.Marshal(out)
		if err != nil {
			log.Printf("aggregator: marshal err %v", err)
			continue
		}
		pub := d.pubFor(out.ZoneID, out.NodeID)
		if err := pub.PublishMessageQos(1, false, string(b)); err != nil {
			log.Printf("aggregator: publish err %v", err)
		} else {
			log.Printf("aggregator: published mean for %s over %d samples", key, len(readings))
		}

		d.buffer[key] = readings[:0]
	}
}
