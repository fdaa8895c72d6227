package http

import (
	"net/http"

	"ticket-srv/internal/bulk"
	pkgErrors "ticket-srv/pkg/errors"
)

var (
	errEmptyFile              = pkgErrors.NewHTTPError(41001, "Uploaded file is empty")
	errInvalidFileFormat      = pkgErrors.NewHTTPError(41002, "File must be CSV or TXT format")
	errFileTooLarge           = pkgErrors.NewHTTPErrorWithStatus(41003, "File size exceeds limit", http.StatusRequestEntityTooLarge)
	errMissingRequiredColumns = pkgErrors.NewHTTPError(41004, "Missing required columns in CSV")
	errNoValidRecords         = pkgErrors.NewHTTPError(41005, "No valid records found in file")
	errBatchSizeExceeded      = pkgErrors.NewHTTPError(41006, "Too many records in file")
	errBatchNotFound          = pkgErrors.NewHTTPErrorWithStatus(41007, "Batch not found", http.StatusNotFound)
	errDeadLetterNotFound     = pkgErrors.NewHTTPErrorWithStatus(41008, "Dead letter not found", http.StatusNotFound)
	errAlreadyReprocessed     = pkgErrors.NewHTTPErrorWithStatus(41009, "Dead letter already reprocessed", http.StatusConflict)
	errMissingFile            = pkgErrors.NewHTTPError(41010, "Request must contain a file field")
)

func (h *handler) mapError(err error) error {
	switch err {
	case bulk.ErrEmptyFile:
		return errEmptyFile
	case bulk.ErrInvalidFileFormat:
		return errInvalidFileFormat
	case bulk.ErrFileTooLarge:
		return errFileTooLarge
	case bulk.ErrMissingRequiredColumns:
		return errMissingRequiredColumns
	case bulk.ErrNoValidRecords:
		return errNoValidRecords
	case bulk.ErrBatchSizeExceeded:
		return errBatchSizeExceeded
	case bulk.ErrBatchNotFound:
		return errBatchNotFound
	case bulk.ErrDeadLetterNotFound:
		return errDeadLetterNotFound
	case bulk.ErrAlreadyReprocessed:
		return errAlreadyReprocessed
	default:
		return err
	}
}
