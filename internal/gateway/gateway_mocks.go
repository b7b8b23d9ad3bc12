package gateway

//go:generate moq -pkg mocks -out ./mocks/gateway_mock.go . Gateway
