package verification

//go:generate moq -pkg mocks -out ./mocks/record_reader_mock.go . RecordReader
