package usecase

import (
	"bufio"
	"bytes"
	"context"
	"strconv"
	"strings"

	"ticket-srv/internal/bulk"
	"ticket-srv/internal/model"
)

var requiredColumns = []string{"ticketnumber", "customerid"}

// parseResult collects the outcome of CSV parsing.
type parseResult struct {
	Records     []model.TicketEvent
	SkippedRows []model.RowError
	TotalRows   int
}

// parseCSV reads the file into validated ticket events. Rows that fail
// validation are skipped and reported, a missing header or required column
// rejects the whole file.
func (uc *implUseCase) parseCSV(ctx context.Context, content []byte) (parseResult, error) {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	// Header
	if !scanner.Scan() {
		return parseResult{}, bulk.ErrEmptyFile
	}
	headerLine := scanner.Text()
	lineNumber := 1
	if strings.TrimSpace(headerLine) == "" {
		return parseResult{}, bulk.ErrEmptyFile
	}

	columnIndex := make(map[string]int)
	for i, h := range splitCSVLine(headerLine) {
		columnIndex[normalizeColumn(h)] = i
	}
	for _, required := range requiredColumns {
		if _, ok := columnIndex[required]; !ok {
			uc.l.Warnf(ctx, "bulk.usecase.parseCSV: Missing required column: %s", required)
			return parseResult{}, bulk.ErrMissingRequiredColumns
		}
	}

	result := parseResult{}
	seenTicketNumbers := make(map[string]struct{})

	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		result.TotalRows++

		values := splitCSVLine(line)
		record, rowErr := parseRow(values, columnIndex, lineNumber, seenTicketNumbers)
		if rowErr != nil {
			uc.l.Warnf(ctx, "bulk.usecase.parseCSV: %v", rowErr)
			result.SkippedRows = append(result.SkippedRows, model.RowError{
				Line:   rowErr.Line,
				Reason: rowErr.Reason,
			})
			continue
		}

		seenTicketNumbers[record.TicketNumber] = struct{}{}
		result.Records = append(result.Records, record)
	}
	if err := scanner.Err(); err != nil {
		uc.l.Errorf(ctx, "bulk.usecase.parseCSV: Failed to read file: %v", err)
		return parseResult{}, bulk.ErrInvalidFileFormat
	}

	uc.l.Infof(ctx, "bulk.usecase.parseCSV: Parsing complete, rows=%d, valid=%d, skipped=%d",
		result.TotalRows, len(result.Records), len(result.SkippedRows))

	if len(result.Records) == 0 {
		return parseResult{}, bulk.ErrNoValidRecords
	}
	return result, nil
}

// parseRow validates one CSV row. Returns the first validation failure, rows
// with a ticket number already seen in this file lose to the earlier row.
func parseRow(values []string, columnIndex map[string]int, lineNumber int, seen map[string]struct{}) (model.TicketEvent, *bulk.RowValidationError) {
	ticketNumber := strings.TrimSpace(columnValue(values, columnIndex, "ticketnumber"))
	if ticketNumber == "" {
		return model.TicketEvent{}, &bulk.RowValidationError{
			Line: lineNumber, Code: bulk.CodeMissingTicketNumber, Reason: "missing ticket number"}
	}
	if _, dup := seen[ticketNumber]; dup {
		return model.TicketEvent{}, &bulk.RowValidationError{
			Line: lineNumber, Code: bulk.CodeDuplicateTicket, Reason: "duplicate ticket number: " + ticketNumber}
	}

	customerIDRaw := strings.TrimSpace(columnValue(values, columnIndex, "customerid"))
	if customerIDRaw == "" {
		return model.TicketEvent{}, &bulk.RowValidationError{
			Line: lineNumber, Code: bulk.CodeInvalidCustomerID, Reason: "missing customer ID"}
	}
	customerID, err := strconv.ParseInt(customerIDRaw, 10, 64)
	if err != nil || customerID <= 0 {
		return model.TicketEvent{}, &bulk.RowValidationError{
			Line: lineNumber, Code: bulk.CodeInvalidCustomerID, Reason: "invalid customer ID: " + customerIDRaw}
	}

	record := model.TicketEvent{
		TicketNumber: ticketNumber,
		Status:       model.NormalizeStatus(columnValue(values, columnIndex, "status")),
		Priority:     model.NormalizePriority(columnValue(values, columnIndex, "priority")),
		CustomerID:   customerID,
	}

	// assignedTo is optional, bad values are silently dropped
	if raw := strings.TrimSpace(columnValue(values, columnIndex, "assignedto")); raw != "" {
		if assignedTo, parseErr := strconv.ParseInt(raw, 10, 64); parseErr == nil && assignedTo > 0 {
			record.AssignedTo = &assignedTo
		}
	}

	return record, nil
}

// splitCSVLine splits a line on commas, honoring double quotes. Quotes toggle
// in/out and are stripped from the value.
func splitCSVLine(line string) []string {
	var values []string
	var current strings.Builder
	inQuotes := false

	for _, c := range line {
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			values = append(values, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(c)
		}
	}
	values = append(values, strings.TrimSpace(current.String()))
	return values
}

// normalizeColumn lowercases a header and strips spaces and underscores so
// "Ticket_Number" and "ticket number" both resolve to ticketnumber.
func normalizeColumn(column string) string {
	column = strings.ToLower(strings.TrimSpace(column))
	column = strings.ReplaceAll(column, " ", "")
	return strings.ReplaceAll(column, "_", "")
}

func columnValue(values []string, columnIndex map[string]int, column string) string {
	idx, ok := columnIndex[column]
	if !ok || idx >= len(values) {
		return ""
	}
	return values[idx]
}
