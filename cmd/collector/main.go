// Package main is the entry point for the RabbitMQ collector.
package main

import "rabbitmq-collector/cmd/collector/cmd"

func main() {
	cmd.Execute()
}
