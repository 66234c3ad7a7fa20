//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	warmupStream = "stream:dashboard:warmup"
	doneStream   = "stream:dashboard:warmup:done"
)

type WarmupEvent struct {
	RequestID uuid.UUID `json:"request_id"`
	Dates     []string  `json:"dates,omitempty"`
	Locations []string  `json:"locations,omitempty"`
	Metrics   []string  `json:"metrics,omitempty"`
}

func split(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	dates := flag.String("dates", "", "comma separated dates YYYY-MM-DD (empty = whole range)")
	locations := flag.String("locations", "", "comma separated ISO codes (empty = national series)")
	metrics := flag.String("metrics", "", "comma separated metrics (empty = worker defaults)")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := WarmupEvent{
		RequestID: uuid.New(),
		Dates:     split(*dates),
		Locations: split(*locations),
		Metrics:   split(*metrics),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: warmupStream,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", warmupStream)
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Request ID: %s\n", event.RequestID)
	fmt.Printf("\nWaiting for response in %s...\n", doneStream)

	timeout := time.After(60 * time.Second)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("Timeout waiting for response")
			return
		case <-ticker.C:
			results, err := client.XRead(ctx, &redis.XReadArgs{
				Streams: []string{doneStream, "0"},
				Count:   100,
				Block:   -1,
			}).Result()
			if err != nil && err != redis.Nil {
				continue
			}

			for _, stream := range results {
				for _, msg := range stream.Messages {
					dataStr, ok := msg.Values["data"].(string)
					if !ok {
						continue
					}

					var response map[string]interface{}
					if err := json.Unmarshal([]byte(dataStr), &response); err != nil {
						continue
					}

					if id, _ := response["request_id"].(string); id == event.RequestID.String() {
						fmt.Printf("\nResponse received\n")
						prettyJSON, _ := json.MarshalIndent(response, "", "  ")
						fmt.Printf("%s\n", prettyJSON)
						return
					}
				}
			}
		}
	}
}
