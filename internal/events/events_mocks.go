package events

//go:generate moq -pkg mocks -out ./mocks/nats_connection_mock.go . NatsConnection

//go:generate moq -pkg mocks -out ./mocks/notifier_mock.go . Notifier
