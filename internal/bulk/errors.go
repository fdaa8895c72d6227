package bulk

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrEmptyFile              = errors.New("bulk: file is empty or contains no data")
	ErrInvalidFileFormat      = errors.New("bulk: invalid file format")
	ErrFileTooLarge           = errors.New("bulk: file size exceeds maximum limit")
	ErrMissingRequiredColumns = errors.New("bulk: missing required columns in CSV")
	ErrNoValidRecords         = errors.New("bulk: no valid records in file")
	ErrBatchSizeExceeded      = errors.New("bulk: batch size exceeds maximum limit")
	ErrBatchNotFound          = errors.New("bulk: batch not found")
	ErrBatchNotActive         = errors.New("bulk: batch is not active")
	ErrDeadLetterNotFound     = errors.New("bulk: dead letter not found")
	ErrAlreadyReprocessed     = errors.New("bulk: dead letter already reprocessed")
	ErrMalformedChunk         = errors.New("bulk: malformed chunk message")
	ErrChunkPersistFailed     = errors.New("bulk: failed to persist chunk")
	ErrChunkRejected          = errors.New("bulk: chunk rejected by a database constraint")
)

// Error codes grouped by origin. Validation and serialization failures are
// terminal, infrastructure failures are worth retrying.
const (
	CodeEmptyFile              = "V1001"
	CodeInvalidFileFormat      = "V1002"
	CodeMissingRequiredColumns = "V1003"
	CodeInvalidRowData         = "V1004"
	CodeMissingTicketNumber    = "V1005"
	CodeInvalidCustomerID      = "V1006"
	CodeBatchSizeExceeded      = "V1009"

	CodeDuplicateTicket       = "P2001"
	CodeChunkProcessingFailed = "P2003"

	CodeDatabaseError = "I3001"
	CodeRedisError    = "I3002"
	CodeTimeoutError  = "I3004"

	CodeKafkaProducerError      = "K4001"
	CodeKafkaDeserializationErr = "K4004"
	CodeSentToDeadLetter        = "K4007"

	CodeUnknownError = "E9001"
)

// Classification carries the error code and whether the failure is retryable.
type Classification struct {
	Code      string
	Retryable bool
}

// Classify maps an error from chunk processing to its classification.
// Malformed payloads and validation failures never retry; database and
// broker failures do.
func Classify(err error) Classification {
	switch {
	case errors.Is(err, ErrMalformedChunk):
		return Classification{Code: CodeKafkaDeserializationErr, Retryable: false}
	case errors.Is(err, ErrBatchSizeExceeded):
		return Classification{Code: CodeBatchSizeExceeded, Retryable: false}
	case errors.Is(err, ErrChunkRejected):
		return Classification{Code: CodeChunkProcessingFailed, Retryable: false}
	case errors.Is(err, ErrChunkPersistFailed):
		return Classification{Code: CodeDatabaseError, Retryable: true}
	case errors.Is(err, context.DeadlineExceeded):
		return Classification{Code: CodeTimeoutError, Retryable: true}
	case err != nil:
		return Classification{Code: CodeUnknownError, Retryable: true}
	default:
		return Classification{}
	}
}

// RowValidationError reports why a single CSV row was rejected.
type RowValidationError struct {
	Line   int
	Code   string
	Reason string
}

func (e *RowValidationError) Error() string {
	return fmt.Sprintf("row %d: %s (%s)", e.Line, e.Reason, e.Code)
}
