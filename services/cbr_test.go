package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

const sampleDirectoryXML = `<?xml version="1.0" encoding="UTF-8"?>
<BICDirectoryEntries>
	<BICDirectoryEntry BIC="044525225">
		<ParticipantInfo NameP="ПАО СБЕРБАНК"/>
		<Accounts Account="30101810400000000225"/>
	</BICDirectoryEntry>
	<BICDirectoryEntry BIC="044525974">
		<ParticipantInfo NameP="АО ТБАНК"/>
		<Accounts Account="30101810145250000974"/>
		<Accounts Account="30101810145250000999"/>
	</BICDirectoryEntry>
	<BICDirectoryEntry BIC="044525000">
	</BICDirectoryEntry>
</BICDirectoryEntries>`

func TestParseBankDirectory(t *testing.T) {
	banks, err := ParseBankDirectory(strings.NewReader(sampleDirectoryXML))
	if err != nil {
		t.Fatalf("ParseBankDirectory: %v", err)
	}

	if len(banks) != 2 {
		t.Fatalf("got %d banks, want 2 (entry without participant info is skipped)", len(banks))
	}
	if banks[0].BIC != "044525225" || banks[0].Name != "ПАО СБЕРБАНК" {
		t.Errorf("first bank = %+v", banks[0])
	}
	if banks[0].CorrespondentAccount != "30101810400000000225" {
		t.Errorf("first correspondent account = %q", banks[0].CorrespondentAccount)
	}
	if banks[1].CorrespondentAccount != "30101810145250000974" {
		t.Errorf("second bank must use its first account, got %q", banks[1].CorrespondentAccount)
	}
}

func TestParseBankDirectory_Windows1251(t *testing.T) {
	utf8XML := `<?xml version="1.0" encoding="windows-1251"?>
<BICDirectoryEntries>
	<BICDirectoryEntry BIC="044525225">
		<ParticipantInfo NameP="ПАО СБЕРБАНК"/>
	</BICDirectoryEntry>
</BICDirectoryEntries>`

	encoded, err := charmap.Windows1251.NewEncoder().String(utf8XML)
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	banks, err := ParseBankDirectory(strings.NewReader(encoded))
	if err != nil {
		t.Fatalf("ParseBankDirectory: %v", err)
	}
	if len(banks) != 1 || banks[0].Name != "ПАО СБЕРБАНК" {
		t.Fatalf("got %+v, windows-1251 text must decode to UTF-8", banks)
	}
}

func TestParseBankDirectory_CapsEntries(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><BICDirectoryEntries>`)
	for i := 0; i < maxDirectoryBanks+50; i++ {
		b.WriteString(`<BICDirectoryEntry BIC="040000000"><ParticipantInfo NameP="Банк"/></BICDirectoryEntry>`)
	}
	b.WriteString(`</BICDirectoryEntries>`)

	banks, err := ParseBankDirectory(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("ParseBankDirectory: %v", err)
	}
	if len(banks) != maxDirectoryBanks {
		t.Errorf("got %d banks, want cap of %d", len(banks), maxDirectoryBanks)
	}
}

func TestFetchBankDirectory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(sampleDirectoryXML))
	}))
	defer srv.Close()

	banks, err := FetchBankDirectory(context.Background(), srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("FetchBankDirectory: %v", err)
	}
	if len(banks) != 2 {
		t.Errorf("got %d banks, want 2", len(banks))
	}
}

func TestFetchBankDirectory_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := FetchBankDirectory(context.Background(), srv.Client(), srv.URL); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}
