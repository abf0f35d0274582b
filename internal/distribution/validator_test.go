package distribution

import "testing"

func TestValidatorValidate(t *testing.T) {
	t.Parallel()

	v := NewValidator()
	tests := []struct {
		name     string
		fileName string
		mime     string
		want     bool
	}{
		{name: "csv extension wrong mime", fileName: "contacts.CSV", mime: "application/octet-stream", want: true},
		{name: "xlsx extension", fileName: "report.final.xlsx", mime: "", want: true},
		{name: "xls extension", fileName: "old.Xls", mime: "text/plain", want: true},
		{name: "mime match without extension", fileName: "contacts", mime: "text/csv", want: true},
		{name: "mime match case insensitive", fileName: "upload.bin", mime: " Text/CSV ", want: true},
		{name: "excel mime", fileName: "upload.bin", mime: "application/vnd.ms-excel", want: true},
		{name: "no extension no mime", fileName: "contacts", mime: "application/octet-stream", want: false},
		{name: "trailing dot", fileName: "contacts.", mime: "", want: false},
		{name: "extension only mid name", fileName: "contacts.csv.exe", mime: "application/x-msdownload", want: false},
		{name: "pdf", fileName: "brochure.pdf", mime: "application/pdf", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := v.Validate(tt.fileName, tt.mime); got != tt.want {
				t.Fatalf("Validate(%q, %q) = %v, want %v", tt.fileName, tt.mime, got, tt.want)
			}
		})
	}
}

func TestValidatorCustomMimeList(t *testing.T) {
	v := NewValidator("application/json")
	if !v.Validate("payload", "application/json") {
		t.Fatalf("expected configured mime to be accepted")
	}
	if v.Validate("payload", "text/csv") {
		t.Fatalf("expected default mime list to be replaced")
	}
	if !v.Validate("payload.csv", "") {
		t.Fatalf("expected extension test to stay active")
	}
}

func TestZeroValidatorUsesExtensionOnly(t *testing.T) {
	var v Validator
	if v.Validate("x", "text/csv") {
		t.Fatalf("expected zero validator to have no mime allow-list")
	}
	if !v.Validate("x.csv", "") {
		t.Fatalf("expected extension match")
	}
}
