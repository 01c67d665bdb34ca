package types

import "fmt"

// Units is the unit of measure recorded for a monitor. The numeric values are
// the on-disk encoding of the data_units byte.
type Units uint8

const (
	UnitsNone   Units = 1
	UnitsBytes  Units = 2
	UnitsTicks  Units = 3
	UnitsEvents Units = 4
	UnitsString Units = 5
	UnitsHertz  Units = 6
)

// ParseUnits decodes a data_units byte. Anything outside the closed set,
// including the zero value, is rejected.
func ParseUnits(v uint8) (Units, error) {
	u := Units(v)
	switch u {
	case UnitsNone, UnitsBytes, UnitsTicks, UnitsEvents, UnitsString, UnitsHertz:
		return u, nil
	}
	return 0, fmt.Errorf("invalid units code %d", v)
}

func (u Units) String() string {
	switch u {
	case UnitsNone:
		return "None"
	case UnitsBytes:
		return "Bytes"
	case UnitsTicks:
		return "Ticks"
	case UnitsEvents:
		return "Events"
	case UnitsString:
		return "String"
	case UnitsHertz:
		return "Hertz"
	default:
		return fmt.Sprintf("Units(%d)", uint8(u))
	}
}

// Variability classifies how a monitor's value may change over time.
type Variability uint8

const (
	VariabilityConstant  Variability = 1
	VariabilityMonotonic Variability = 2
	VariabilityVariable  Variability = 3
)

// ParseVariability decodes a data_variability byte.
func ParseVariability(v uint8) (Variability, error) {
	vv := Variability(v)
	switch vv {
	case VariabilityConstant, VariabilityMonotonic, VariabilityVariable:
		return vv, nil
	}
	return 0, fmt.Errorf("invalid variability code %d", v)
}

func (v Variability) String() string {
	switch v {
	case VariabilityConstant:
		return "Constant"
	case VariabilityMonotonic:
		return "Monotonic"
	case VariabilityVariable:
		return "Variable"
	default:
		return fmt.Sprintf("Variability(%d)", uint8(v))
	}
}

// TypeCode is the element type of a monitor, stored as the JVM basic type
// character.
type TypeCode byte

const (
	TypeBoolean TypeCode = 'Z'
	TypeChar    TypeCode = 'C'
	TypeFloat   TypeCode = 'F'
	TypeDouble  TypeCode = 'D'
	TypeByte    TypeCode = 'B'
	TypeShort   TypeCode = 'S'
	TypeInt     TypeCode = 'I'
	TypeLong    TypeCode = 'J'
	TypeObject  TypeCode = 'L'
	TypeArray   TypeCode = '['
	TypeVoid    TypeCode = 'V'
)

// ParseTypeCode decodes a data_type byte.
func ParseTypeCode(v uint8) (TypeCode, error) {
	t := TypeCode(v)
	switch t {
	case TypeBoolean, TypeChar, TypeFloat, TypeDouble, TypeByte, TypeShort,
		TypeInt, TypeLong, TypeObject, TypeArray, TypeVoid:
		return t, nil
	}
	return 0, fmt.Errorf("invalid type code 0x%02x", v)
}

func (t TypeCode) String() string {
	switch t {
	case TypeBoolean:
		return "boolean"
	case TypeChar:
		return "char"
	case TypeFloat:
		return "float"
	case TypeDouble:
		return "double"
	case TypeByte:
		return "byte"
	case TypeShort:
		return "short"
	case TypeInt:
		return "int"
	case TypeLong:
		return "long"
	case TypeObject:
		return "object"
	case TypeArray:
		return "array"
	case TypeVoid:
		return "void"
	default:
		return fmt.Sprintf("TypeCode(0x%02x)", byte(t))
	}
}
