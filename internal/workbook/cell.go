package workbook

import (
	"fmt"
	"time"
)

// Kind is the variant of a cell value
type Kind int

const (
	KindEmpty Kind = iota
	KindText
	KindNumber
	KindBoolean
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindDate:
		return "date"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Cell is a single value read from a sheet. Only the field matching Kind is meaningful.
type Cell struct {
	Kind   Kind
	Text   string
	Number float64
	Bool   bool
	Time   time.Time
}

func Empty() Cell { return Cell{Kind: KindEmpty} }
func Text(s string) Cell { return Cell{Kind: KindText, Text: s} }
func Number(v float64) Cell { return Cell{Kind: KindNumber, Number: v} }
func Boolean(v bool) Cell { return Cell{Kind: KindBoolean, Bool: v} }
func Date(t time.Time) Cell { return Cell{Kind: KindDate, Time: t} }
