package services

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// DefaultBankDirectoryURL is the central bank's BIC directory feed.
const DefaultBankDirectoryURL = "https://www.cbr.ru/s/newbik"

// maxDirectoryBanks caps how many directory entries are kept. The admin UI
// uses the list as a picker, not as a full registry mirror.
const maxDirectoryBanks = 100

// DirectoryBank is one parsed entry of the BIC directory.
type DirectoryBank struct {
	BIC                  string
	Name                 string
	CorrespondentAccount string
}

type bicDirectory struct {
	Entries []bicDirectoryEntry `xml:"BICDirectoryEntry"`
}

type bicDirectoryEntry struct {
	BIC             string           `xml:"BIC,attr"`
	ParticipantInfo *participantInfo `xml:"ParticipantInfo"`
	Accounts        []bicAccount     `xml:"Accounts"`
}

type participantInfo struct {
	NameP string `xml:"NameP,attr"`
}

type bicAccount struct {
	Account string `xml:"Account,attr"`
}

// FetchBankDirectory downloads and parses the central-bank BIC directory.
// The feed is windows-1251 encoded XML.
func FetchBankDirectory(ctx context.Context, client *http.Client, url string) ([]DirectoryBank, error) {
	if client == nil {
		client = http.DefaultClient
	}
	if url == "" {
		url = DefaultBankDirectoryURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build directory request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch bank directory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bank directory returned status %d", resp.StatusCode)
	}

	return ParseBankDirectory(resp.Body)
}

// ParseBankDirectory decodes BICDirectoryEntry elements from r. Entries
// without participant info are skipped; at most maxDirectoryBanks entries
// are returned.
func ParseBankDirectory(r io.Reader) ([]DirectoryBank, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		switch strings.ToLower(charset) {
		case "windows-1251", "cp1251":
			return charmap.Windows1251.NewDecoder().Reader(input), nil
		case "utf-8", "":
			return input, nil
		default:
			return nil, fmt.Errorf("unsupported charset %q", charset)
		}
	}

	var directory bicDirectory
	if err := decoder.Decode(&directory); err != nil {
		return nil, fmt.Errorf("parse bank directory: %w", err)
	}

	var banks []DirectoryBank
	for _, entry := range directory.Entries {
		if entry.ParticipantInfo == nil {
			continue
		}
		bank := DirectoryBank{
			BIC:  entry.BIC,
			Name: entry.ParticipantInfo.NameP,
		}
		if len(entry.Accounts) > 0 {
			bank.CorrespondentAccount = entry.Accounts[0].Account
		}
		banks = append(banks, bank)
		if len(banks) >= maxDirectoryBanks {
			break
		}
	}
	return banks, nil
}
