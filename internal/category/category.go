package category

import (
	"errors"
	"fmt"
)

// Group is one of the fixed logical revenue groups.
type Group string

const (
	GroupTaxInvoiced Group = "tax_invoiced"
	GroupZeroRated   Group = "zero_rated"
)

// Kind tells revenue sources and expense items apart.
type Kind string

const (
	KindRevenue Kind = "revenue"
	KindExpense Kind = "expense"
)

// Other is the implicit catch-all name present on both sides of the ledger.
const Other = "기타"

var (
	ErrDuplicateName = errors.New("category name already exists")
	ErrNotFound      = errors.New("category name not found")
	ErrUnknownGroup  = errors.New("unknown revenue group")
	ErrInvalidName   = errors.New("invalid category name")
	ErrUnknownKind   = errors.New("unknown category kind")
)

// ParseGroup accepts the wire names of the revenue groups.
func ParseGroup(s string) (Group, error) {
	switch Group(s) {
	case GroupTaxInvoiced, GroupZeroRated:
		return Group(s), nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownGroup, s)
}

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindRevenue, KindExpense:
		return Kind(s), nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Groups lists the revenue groups in display order.
func Groups() []Group {
	return []Group{GroupTaxInvoiced, GroupZeroRated}
}

// Default lists used when no configuration overrides them.
var (
	DefaultTaxInvoiced = []string{"Everllence Prime", "SUNJIN & FMD", "USNS", "RENK", "Vine Plant", "종합해사", "Jodiac", "BCKR"}
	DefaultZeroRated   = []string{"Everllence LEO", "Mitsui"}
	DefaultExpense     = []string{"급여", "수당", "법인카드 사용액", "전자세금계산서", "세금", "이자", "퇴직금", "기타"}
)
