package webhook

//go:generate moq -pkg mocks -out ./mocks/sender_mock.go . Sender
