package handler

//go:generate moq -pkg mocks -out ./mocks/lifecycle_mock.go . Lifecycle

//go:generate moq -pkg mocks -out ./mocks/verifier_mock.go . Verifier
