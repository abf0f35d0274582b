package distribution

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"
)

func fixedSession(p Parser) *Session {
	s := NewSession(NewValidator(), p)
	s.Now = func() time.Time { return time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC) }
	calls := 0
	s.NewID = func() string {
		calls++
		return fmt.Sprintf("list-%d", calls)
	}
	return s
}

func sevenContacts() string {
	content := "FirstName,Phone,Notes\n"
	for i := 0; i < 7; i++ {
		content += fmt.Sprintf("name-%d,555-%04d,note %d\n", i, i, i)
	}
	return content
}

func TestSessionRun(t *testing.T) {
	s := fixedSession(nil)
	res, err := s.Run(File{Name: "contacts.csv", DeclaredMimeType: "text/csv", Content: sevenContacts()}, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.ID != "list-1" {
		t.Fatalf("expected generated id, got %q", res.ID)
	}
	if res.SourceName != "contacts.csv" {
		t.Fatalf("expected source name, got %q", res.SourceName)
	}
	if !res.CreatedAt.Equal(time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC)) {
		t.Fatalf("unexpected createdAt %s", res.CreatedAt)
	}
	if res.TotalRecordCount != 7 {
		t.Fatalf("expected 7 records, got %d", res.TotalRecordCount)
	}
	if got := res.GroupSizes(); !reflect.DeepEqual(got, []int{3, 2, 2}) {
		t.Fatalf("expected sizes [3 2 2], got %v", got)
	}
}

func TestSessionRunIDsUnique(t *testing.T) {
	s := NewSession(NewValidator(), nil)
	file := File{Name: "contacts.csv", Content: sevenContacts()}
	seen := map[string]struct{}{}
	for i := 0; i < 50; i++ {
		res, err := s.Run(file, []string{"a"})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if _, dup := seen[res.ID]; dup {
			t.Fatalf("duplicate id %s", res.ID)
		}
		seen[res.ID] = struct{}{}
	}
}

func TestSessionRunFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		file     File
		roster   []string
		wantErr  error
		wantKind Kind
	}{
		{
			name:     "unsupported file",
			file:     File{Name: "brochure.pdf", DeclaredMimeType: "application/pdf", Content: sevenContacts()},
			roster:   []string{"a"},
			wantErr:  ErrUnsupportedFileType,
			wantKind: KindUnsupportedFileType,
		},
		{
			name:     "missing notes column",
			file:     File{Name: "contacts.csv", Content: "FirstName,Phone\nx,y,z\n"},
			roster:   []string{"a"},
			wantErr:  ErrFormat,
			wantKind: KindFormat,
		},
		{
			name:     "no usable rows",
			file:     File{Name: "contacts.csv", Content: "FirstName,Phone,Notes\nonly,two\n"},
			roster:   []string{"a"},
			wantErr:  ErrFormat,
			wantKind: KindFormat,
		},
		{
			name:     "empty roster",
			file:     File{Name: "contacts.csv", Content: sevenContacts()},
			roster:   nil,
			wantErr:  ErrConfig,
			wantKind: KindConfig,
		},
		{
			name:     "validation runs before roster check",
			file:     File{Name: "notes.txt", DeclaredMimeType: "text/plain"},
			roster:   nil,
			wantErr:  ErrUnsupportedFileType,
			wantKind: KindUnsupportedFileType,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := fixedSession(nil).Run(tt.file, tt.roster)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if KindOf(err) != tt.wantKind {
				t.Fatalf("expected kind %s, got %s", tt.wantKind, KindOf(err))
			}
			if err.Error() == "" {
				t.Fatalf("expected human readable message")
			}
			if !reflect.DeepEqual(res, Result{}) {
				t.Fatalf("expected no partial result, got %+v", res)
			}
		})
	}
}

func TestKindOfForeignError(t *testing.T) {
	if KindOf(errors.New("boom")) != "" {
		t.Fatalf("expected empty kind for foreign error")
	}
	if KindOf(fmt.Errorf("wrapped: %w", ErrConfig)) != KindConfig {
		t.Fatalf("expected kind through wrapping")
	}
	if errors.Is(ErrFormat, ErrConfig) {
		t.Fatalf("expected kinds to be distinct")
	}
}

func TestSessionZeroValueStampsUTC(t *testing.T) {
	s := &Session{Validator: NewValidator()}
	res, err := s.Run(File{Name: "contacts.csv", Content: sevenContacts()}, []string{"a"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.CreatedAt.Location() != time.UTC {
		t.Fatalf("expected UTC timestamp, got %v", res.CreatedAt.Location())
	}
	if res.ID == "" {
		t.Fatalf("expected generated id")
	}
}

func TestSessionCheckFile(t *testing.T) {
	s := NewSession(NewValidator(), nil)
	if err := s.CheckFile(File{Name: "contacts.csv"}); err != nil {
		t.Fatalf("expected csv to pass, got %v", err)
	}
	err := s.CheckFile(File{Name: "brochure.pdf", DeclaredMimeType: "application/pdf"})
	if !errors.Is(err, ErrUnsupportedFileType) {
		t.Fatalf("expected unsupported file type, got %v", err)
	}
}
