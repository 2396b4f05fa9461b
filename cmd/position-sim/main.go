// Command position-sim publishes a collector walking toward a pickup point over MQTT.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

type positionPayload struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Accuracy  float64   `json:"accuracy"`
	Timestamp time.Time `json:"timestamp"`
}

func main() {
	brokerAddr := flag.String("broker", "tcp://localhost:1883", "MQTT broker address")
	collectorID := flag.String("collector-id", "", "Collector user id (uuid)")
	fromLat := flag.Float64("from-lat", -23.5610, "Start latitude")
	fromLng := flag.Float64("from-lng", -46.6560, "Start longitude")
	toLat := flag.Float64("to-lat", -23.5505, "Pickup latitude")
	toLng := flag.Float64("to-lng", -46.6333, "Pickup longitude")
	steps := flag.Int("steps", 20, "Fixes published before reaching the pickup point")
	interval := flag.Duration("interval", 2*time.Second, "Interval between published fixes")
	accuracy := flag.Float64("accuracy", 8, "Reported horizontal accuracy in meters")

	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	id, err := uuid.Parse(*collectorID)
	if err != nil {
		logger.Error("collector-id must be a uuid", slog.Any("error", err))
		os.Exit(1)
	}
	if *steps <= 0 {
		*steps = 1
	}

	clientID := fmt.Sprintf("position-sim-%d", time.Now().UnixNano())
	opts := mqtt.NewClientOptions().AddBroker(*brokerAddr).SetClientID(clientID)
	opts = opts.SetOrderMatters(false)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		logger.Error("failed to connect to broker", slog.Any("error", token.Error()))
		os.Exit(1)
	}
	logger.Info("connected to MQTT broker", slog.String("broker", *brokerAddr), slog.String("client_id", clientID))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	from := orb.Point{*fromLng, *fromLat}
	to := orb.Point{*toLng, *toLat}
	topic := fmt.Sprintf("collectors/%s/positions", id)

	step := 0
	publish := func() {
		point := interpolate(from, to, float64(step)/float64(*steps))
		payload := positionPayload{
			Lat:       point.Lat(),
			Lng:       point.Lon(),
			Accuracy:  *accuracy,
			Timestamp: time.Now().UTC(),
		}

		data, err := json.Marshal(payload)
		if err != nil {
			logger.Error("failed to encode payload", slog.Any("error", err))

			return
		}

		token := client.Publish(topic, 1, false, data)
		token.Wait()
		if err := token.Error(); err != nil {
			logger.Error("publish error", slog.Any("error", err))

			return
		}
		logger.Info("published fix",
			slog.String("topic", topic),
			slog.Int("step", step),
			slog.Float64("remaining_m", geo.Distance(point, to)))
	}

	publish()

	for {
		select {
		case <-ctx.Done():
			logger.Info("received shutdown signal, disconnecting")
			client.Disconnect(250)

			return
		case <-ticker.C:
			if step < *steps {
				step++
			}
			publish()
		}
	}
}

// interpolate walks the straight line between two points; fine at neighbourhood scale.
func interpolate(from, to orb.Point, fraction float64) orb.Point {
	if fraction > 1 {
		fraction = 1
	}

	return orb.Point{
		from[0] + (to[0]-from[0])*fraction,
		from[1] + (to[1]-from[1])*fraction,
	}
}
