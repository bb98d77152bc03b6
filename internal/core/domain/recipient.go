package domain

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// RecipientID identifies a transfer recipient. Values are always produced by
// NormalizeRecipientID so that equality is exact.
type RecipientID string

// NormalizeRecipientID canonicalises raw selector or config input: surrounding
// whitespace is dropped and decimal integers lose leading zeros, so " 03 " and
// "3" name the same recipient.
func NormalizeRecipientID(raw string) RecipientID {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return RecipientID(strconv.FormatUint(n, 10))
	}
	return RecipientID(s)
}

// Empty reports whether no recipient is referenced.
func (id RecipientID) Empty() bool { return id == "" }

func (id RecipientID) String() string { return string(id) }

// Recipient is an entity a user can send a transfer to.
type Recipient struct {
	ID            RecipientID `json:"id"`
	Name          string      `json:"name"`
	AccountNumber string      `json:"account_number"` // pre-masked, e.g. "4587******9012"
	Bank          string      `json:"bank"`
	IsRecent      bool        `json:"is_recent"`
}

// Initials concatenates the first letter of each whitespace-separated token
// of the name: "Carol Williams" -> "CW".
func (r Recipient) Initials() string {
	var b strings.Builder
	for _, tok := range strings.FieldsFunc(r.Name, unicode.IsSpace) {
		first, _ := utf8.DecodeRuneInString(tok)
		b.WriteRune(first)
	}
	return b.String()
}
