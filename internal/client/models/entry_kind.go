package models

import (
	"fmt"
	"strings"
)

// EntryKind is the backend's tipoLancamento.
type EntryKind string

const (
	EntryIncome  EntryKind = "RECEITA"
	EntryExpense EntryKind = "DESPESA"
)

func ParseEntryKind(s string) (EntryKind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "RECEITA", "INCOME", "IN", "+":
		return EntryIncome, nil
	case "DESPESA", "EXPENSE", "OUT", "-":
		return EntryExpense, nil
	}
	return "", fmt.Errorf("unknown entry kind %q", s)
}

func (k EntryKind) Label() string {
	switch k {
	case EntryIncome:
		return "income"
	case EntryExpense:
		return "expense"
	default:
		return string(k)
	}
}
