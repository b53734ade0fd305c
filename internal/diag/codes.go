package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Сканер скобок
	ScanUnbalancedAngle Code = 1001

	// Подстановки
	RewriteNoFixpoint Code = 2001
)

// ID renders the stable short form, e.g. SCN1001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("SCN%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("RWR%04d", ic)
	}
	return "E0000"
}
