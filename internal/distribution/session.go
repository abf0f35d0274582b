package distribution

import (
	"time"

	"github.com/google/uuid"
)

// Session runs one upload through validation, parsing and partitioning.
// It holds no state between runs; build one per upload.
type Session struct {
	Validator Validator
	Parser    Parser
	Now       func() time.Time
	NewID     func() string
}

// NewSession constructs a Session with the wall clock and UUID identifiers.
// A nil parser defaults to NaiveParser.
func NewSession(v Validator, p Parser) *Session {
	if p == nil {
		p = NaiveParser{}
	}
	return &Session{
		Validator: v,
		Parser:    p,
		Now:       utcNow,
		NewID:     uuid.NewString,
	}
}

// CheckFile reports whether file passes the validator, so hosts can reject an
// unsupported upload before doing their own request checks.
func (s *Session) CheckFile(file File) error {
	if !s.Validator.Validate(file.Name, file.DeclaredMimeType) {
		return &Error{Kind: KindUnsupportedFileType, Message: "Please upload a CSV, XLSX, or XLS file."}
	}
	return nil
}

// Run validates file, parses its content and partitions the records across
// roster. The first failing stage ends the run.
func (s *Session) Run(file File, roster []string) (Result, error) {
	if err := s.CheckFile(file); err != nil {
		return Result{}, err
	}

	parser := s.Parser
	if parser == nil {
		parser = NaiveParser{}
	}
	records, err := parser.Parse(file.Content)
	if err != nil {
		return Result{}, err
	}

	groups, err := Partition(records, roster)
	if err != nil {
		return Result{}, err
	}

	now, newID := s.Now, s.NewID
	if now == nil {
		now = utcNow
	}
	if newID == nil {
		newID = uuid.NewString
	}

	return Result{
		ID:               newID(),
		SourceName:       file.Name,
		CreatedAt:        now(),
		TotalRecordCount: len(records),
		Groups:           groups,
	}, nil
}

func utcNow() time.Time {
	return time.Now().UTC()
}
