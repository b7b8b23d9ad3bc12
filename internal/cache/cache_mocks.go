package cache

//go:generate moq -pkg mocks -out ./mocks/store_mock.go . Store
