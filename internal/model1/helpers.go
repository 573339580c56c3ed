package model1

import (
	"time"

	"github.com/fvbommel/sortorder"
)

// Compare orders two entity field values. Strings use natural order so
// "order-9" sorts before "order-10". Mismatched or unknown types compare equal.
func Compare(a, b any) int {
	switch va := a.(type) {
	case string:
		vb, ok := b.(string)
		if !ok {
			return 0
		}
		return compareStrings(va, vb)
	case time.Time:
		vb, ok := b.(time.Time)
		if !ok {
			return 0
		}
		return va.Compare(vb)
	case int:
		vb, ok := b.(int)
		if !ok {
			return 0
		}
		return compareOrdered(va, vb)
	case int64:
		vb, ok := b.(int64)
		if !ok {
			return 0
		}
		return compareOrdered(va, vb)
	case float64:
		vb, ok := b.(float64)
		if !ok {
			return 0
		}
		return compareOrdered(va, vb)
	case bool:
		vb, ok := b.(bool)
		if !ok || va == vb {
			return 0
		}
		if !va {
			return -1
		}
		return 1
	default:
		return 0
	}
}

func compareStrings(a, b string) int {
	switch {
	case a == b:
		return 0
	case sortorder.NaturalLess(a, b):
		return -1
	case sortorder.NaturalLess(b, a):
		return 1
	default:
		return 0
	}
}

func compareOrdered[T int | int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
