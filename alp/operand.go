/*
NAME
  operand.go

DESCRIPTION
  operand.go implements the small operands shared across several actions:
  FileOffset, the Query union, and the permission-level/permission operands
  used by PermissionRequest.
*/

package alp

import (
	"github.com/vhdirk/dash7-go/bits"
	"github.com/vhdirk/dash7-go/d7err"
	"github.com/vhdirk/dash7-go/length"
)

// FileOffset locates a byte range on the filesystem: a file ID plus a
// length-encoded byte offset into it.
type FileOffset struct {
	FileID uint8
	Offset length.Length
}

func decodeFileOffset(r *bits.Reader) (FileOffset, error) {
	id, err := r.ReadBits(8)
	if err != nil {
		return FileOffset{}, d7err.UnexpectedEndOf("FileOffset.file_id", err)
	}
	off, err := length.Decode(r)
	if err != nil {
		return FileOffset{}, err
	}
	return FileOffset{FileID: uint8(id), Offset: off}, nil
}

func encodeFileOffset(w *bits.Writer, f FileOffset) error {
	if err := w.WriteBits(uint32(f.FileID), 8); err != nil {
		return err
	}
	return length.Encode(w, f.Offset)
}

// ArithmeticComparisonType is the 3-bit comparator used by
// ComparisonWithZero/ComparisonWithValue/ComparisonWithOtherFile.
type ArithmeticComparisonType uint8

const (
	CompareInequal            ArithmeticComparisonType = 0
	CompareEqual              ArithmeticComparisonType = 1
	CompareLessThan           ArithmeticComparisonType = 2
	CompareLessThanOrEqual    ArithmeticComparisonType = 3
	CompareGreaterThan        ArithmeticComparisonType = 4
	CompareGreaterThanOrEqual ArithmeticComparisonType = 5
)

// ArithmeticQueryParams is the signed flag plus comparator shared by the
// three arithmetic query variants.
type ArithmeticQueryParams struct {
	Signed         bool
	ComparisonType ArithmeticComparisonType
}

func decodeArithmeticQueryParams(r *bits.Reader) (ArithmeticQueryParams, error) {
	signed, err := r.ReadBits(1)
	if err != nil {
		return ArithmeticQueryParams{}, d7err.UnexpectedEndOf("ArithmeticQueryParams.signed", err)
	}
	ct, err := r.ReadBits(3)
	if err != nil {
		return ArithmeticQueryParams{}, d7err.UnexpectedEndOf("ArithmeticQueryParams.comparison_type", err)
	}
	return ArithmeticQueryParams{Signed: signed != 0, ComparisonType: ArithmeticComparisonType(ct)}, nil
}

func encodeArithmeticQueryParams(w *bits.Writer, p ArithmeticQueryParams) error {
	if err := w.WriteBits(boolBit(p.Signed), 1); err != nil {
		return err
	}
	return w.WriteBits(uint32(p.ComparisonType), 3)
}

// RangeComparisonType is the 3-bit comparator used by BitmapRangeComparison.
type RangeComparisonType uint8

const (
	RangeNotInRange RangeComparisonType = 0
	RangeInRange    RangeComparisonType = 1
)

// RangeQueryParams is the signed flag plus comparator BitmapRangeComparison
// carries.
type RangeQueryParams struct {
	Signed         bool
	ComparisonType RangeComparisonType
}

func decodeRangeQueryParams(r *bits.Reader) (RangeQueryParams, error) {
	signed, err := r.ReadBits(1)
	if err != nil {
		return RangeQueryParams{}, d7err.UnexpectedEndOf("RangeQueryParams.signed", err)
	}
	ct, err := r.ReadBits(3)
	if err != nil {
		return RangeQueryParams{}, d7err.UnexpectedEndOf("RangeQueryParams.comparison_type", err)
	}
	return RangeQueryParams{Signed: signed != 0, ComparisonType: RangeComparisonType(ct)}, nil
}

func encodeRangeQueryParams(w *bits.Writer, p RangeQueryParams) error {
	if err := w.WriteBits(boolBit(p.Signed), 1); err != nil {
		return err
	}
	return w.WriteBits(uint32(p.ComparisonType), 3)
}

// QueryKind discriminates the Query union (a 3-bit leading tag).
type QueryKind uint8

const (
	QueryNonVoid                QueryKind = 0x00
	QueryComparisonWithZero     QueryKind = 0x01
	QueryComparisonWithValue    QueryKind = 0x02
	QueryComparisonWithOtherFile QueryKind = 0x03
	QueryBitmapRangeComparison  QueryKind = 0x04
	QueryStringTokenSearch      QueryKind = 0x07
)

// Query is a filter expression embedded in ActionQuery/BreakQuery/
// VerifyChecksum. Exactly one field group is populated, selected by Kind.
type Query struct {
	Kind QueryKind

	// NonVoid
	NonVoidLength length.Length
	NonVoidFile   FileOffset

	// ComparisonWithZero / ComparisonWithValue / ComparisonWithOtherFile
	ArithParams ArithmeticQueryParams
	Mask        []byte
	Value       []byte
	File        FileOffset
	File2       FileOffset // ComparisonWithOtherFile only

	// BitmapRangeComparison
	RangeParams RangeQueryParams
	Start       length.Length
	Stop        length.Length

	// StringTokenSearch
	MaxErrors uint8
}

// DecodeQuery reads a Query (3-bit kind tag plus its variant body) from r.
func DecodeQuery(r *bits.Reader) (Query, error) {
	kind, err := r.ReadBits(3)
	if err != nil {
		return Query{}, d7err.UnexpectedEndOf("Query.kind", err)
	}
	switch QueryKind(kind) {
	case QueryNonVoid:
		if _, err := r.ReadBits(5); err != nil {
			return Query{}, d7err.UnexpectedEndOf("Query.reserved")
		}
		l, err := length.Decode(r)
		if err != nil {
			return Query{}, err
		}
		f, err := decodeFileOffset(r)
		if err != nil {
			return Query{}, err
		}
		return Query{Kind: QueryNonVoid, NonVoidLength: l, NonVoidFile: f}, nil

	case QueryComparisonWithZero:
		maskPresent, err := r.ReadBits(1)
		if err != nil {
			return Query{}, d7err.UnexpectedEndOf("Query.mask_present", err)
		}
		params, err := decodeArithmeticQueryParams(r)
		if err != nil {
			return Query{}, err
		}
		l, err := length.Decode(r)
		if err != nil {
			return Query{}, err
		}
		var mask []byte
		if maskPresent != 0 {
			mask, err = r.ReadBytes(int(l))
			if err != nil {
				return Query{}, d7err.UnexpectedEndOf("Query.mask", err)
			}
		}
		f, err := decodeFileOffset(r)
		if err != nil {
			return Query{}, err
		}
		return Query{Kind: QueryComparisonWithZero, ArithParams: params, Mask: mask, File: f}, nil

	case QueryComparisonWithValue:
		maskPresent, err := r.ReadBits(1)
		if err != nil {
			return Query{}, d7err.UnexpectedEndOf("Query.mask_present", err)
		}
		params, err := decodeArithmeticQueryParams(r)
		if err != nil {
			return Query{}, err
		}
		l, err := length.Decode(r)
		if err != nil {
			return Query{}, err
		}
		var mask []byte
		if maskPresent != 0 {
			mask, err = r.ReadBytes(int(l))
			if err != nil {
				return Query{}, d7err.UnexpectedEndOf("Query.mask", err)
			}
		}
		value, err := r.ReadBytes(int(l))
		if err != nil {
			return Query{}, d7err.UnexpectedEndOf("Query.value", err)
		}
		f, err := decodeFileOffset(r)
		if err != nil {
			return Query{}, err
		}
		return Query{Kind: QueryComparisonWithValue, ArithParams: params, Mask: mask, Value: value, File: f}, nil

	case QueryComparisonWithOtherFile:
		maskPresent, err := r.ReadBits(1)
		if err != nil {
			return Query{}, d7err.UnexpectedEndOf("Query.mask_present", err)
		}
		params, err := decodeArithmeticQueryParams(r)
		if err != nil {
			return Query{}, err
		}
		l, err := length.Decode(r)
		if err != nil {
			return Query{}, err
		}
		var mask []byte
		if maskPresent != 0 {
			mask, err = r.ReadBytes(int(l))
			if err != nil {
				return Query{}, d7err.UnexpectedEndOf("Query.mask", err)
			}
		}
		f1, err := decodeFileOffset(r)
		if err != nil {
			return Query{}, err
		}
		f2, err := decodeFileOffset(r)
		if err != nil {
			return Query{}, err
		}
		return Query{Kind: QueryComparisonWithOtherFile, ArithParams: params, Mask: mask, File: f1, File2: f2}, nil

	case QueryBitmapRangeComparison:
		maskPresent, err := r.ReadBits(1)
		if err != nil {
			return Query{}, d7err.UnexpectedEndOf("Query.mask_present", err)
		}
		params, err := decodeRangeQueryParams(r)
		if err != nil {
			return Query{}, err
		}
		l, err := length.Decode(r)
		if err != nil {
			return Query{}, err
		}
		start, err := length.Decode(r)
		if err != nil {
			return Query{}, err
		}
		stop, err := length.Decode(r)
		if err != nil {
			return Query{}, err
		}
		var mask []byte
		if maskPresent != 0 {
			mask, err = r.ReadBytes(int(l))
			if err != nil {
				return Query{}, d7err.UnexpectedEndOf("Query.mask", err)
			}
		}
		f, err := decodeFileOffset(r)
		if err != nil {
			return Query{}, err
		}
		return Query{Kind: QueryBitmapRangeComparison, RangeParams: params, Start: start, Stop: stop, Mask: mask, File: f}, nil

	case QueryStringTokenSearch:
		maskPresent, err := r.ReadBits(1)
		if err != nil {
			return Query{}, d7err.UnexpectedEndOf("Query.mask_present", err)
		}
		if _, err := r.ReadBits(1); err != nil {
			return Query{}, d7err.UnexpectedEndOf("Query.reserved")
		}
		maxErrors, err := r.ReadBits(3)
		if err != nil {
			return Query{}, d7err.UnexpectedEndOf("Query.max_errors", err)
		}
		l, err := length.Decode(r)
		if err != nil {
			return Query{}, err
		}
		var mask []byte
		if maskPresent != 0 {
			mask, err = r.ReadBytes(int(l))
			if err != nil {
				return Query{}, d7err.UnexpectedEndOf("Query.mask", err)
			}
		}
		value, err := r.ReadBytes(int(l))
		if err != nil {
			return Query{}, d7err.UnexpectedEndOf("Query.value", err)
		}
		f, err := decodeFileOffset(r)
		if err != nil {
			return Query{}, err
		}
		return Query{Kind: QueryStringTokenSearch, MaxErrors: uint8(maxErrors), Mask: mask, Value: value, File: f}, nil

	default:
		return Query{}, d7err.InvalidDiscriminantOf("Query.kind", uint64(kind))
	}
}

// EncodeQuery writes q to w.
func EncodeQuery(w *bits.Writer, q Query) error {
	if err := w.WriteBits(uint32(q.Kind), 3); err != nil {
		return err
	}
	switch q.Kind {
	case QueryNonVoid:
		if err := w.WriteBits(0, 5); err != nil {
			return err
		}
		if err := length.Encode(w, q.NonVoidLength); err != nil {
			return err
		}
		return encodeFileOffset(w, q.NonVoidFile)

	case QueryComparisonWithZero:
		if err := w.WriteBits(boolBit(len(q.Mask) > 0), 1); err != nil {
			return err
		}
		if err := encodeArithmeticQueryParams(w, q.ArithParams); err != nil {
			return err
		}
		if err := length.Encode(w, length.Length(len(q.Mask))); err != nil {
			return err
		}
		if len(q.Mask) > 0 {
			if err := w.WriteBytes(q.Mask); err != nil {
				return err
			}
		}
		return encodeFileOffset(w, q.File)

	case QueryComparisonWithValue:
		if err := w.WriteBits(boolBit(len(q.Mask) > 0), 1); err != nil {
			return err
		}
		if err := encodeArithmeticQueryParams(w, q.ArithParams); err != nil {
			return err
		}
		if err := length.Encode(w, length.Length(len(q.Value))); err != nil {
			return err
		}
		if len(q.Mask) > 0 {
			if err := w.WriteBytes(q.Mask); err != nil {
				return err
			}
		}
		if err := w.WriteBytes(q.Value); err != nil {
			return err
		}
		return encodeFileOffset(w, q.File)

	case QueryComparisonWithOtherFile:
		if err := w.WriteBits(boolBit(len(q.Mask) > 0), 1); err != nil {
			return err
		}
		if err := encodeArithmeticQueryParams(w, q.ArithParams); err != nil {
			return err
		}
		if err := length.Encode(w, length.Length(len(q.Mask))); err != nil {
			return err
		}
		if len(q.Mask) > 0 {
			if err := w.WriteBytes(q.Mask); err != nil {
				return err
			}
		}
		if err := encodeFileOffset(w, q.File); err != nil {
			return err
		}
		return encodeFileOffset(w, q.File2)

	case QueryBitmapRangeComparison:
		if err := w.WriteBits(boolBit(len(q.Mask) > 0), 1); err != nil {
			return err
		}
		if err := encodeRangeQueryParams(w, q.RangeParams); err != nil {
			return err
		}
		if err := length.Encode(w, length.Length(len(q.Mask))); err != nil {
			return err
		}
		if err := length.Encode(w, q.Start); err != nil {
			return err
		}
		if err := length.Encode(w, q.Stop); err != nil {
			return err
		}
		if len(q.Mask) > 0 {
			if err := w.WriteBytes(q.Mask); err != nil {
				return err
			}
		}
		return encodeFileOffset(w, q.File)

	case QueryStringTokenSearch:
		if err := w.WriteBits(boolBit(len(q.Mask) > 0), 1); err != nil {
			return err
		}
		if err := w.WriteBits(0, 1); err != nil {
			return err
		}
		if err := w.WriteBits(uint32(q.MaxErrors), 3); err != nil {
			return err
		}
		if err := length.Encode(w, length.Length(len(q.Value))); err != nil {
			return err
		}
		if len(q.Mask) > 0 {
			if err := w.WriteBytes(q.Mask); err != nil {
				return err
			}
		}
		if err := w.WriteBytes(q.Value); err != nil {
			return err
		}
		return encodeFileOffset(w, q.File)

	default:
		return d7err.InvalidDiscriminantOf("Query.kind", uint64(q.Kind))
	}
}

// PermissionLevel is the access level a PermissionRequest asks to elevate
// to.
type PermissionLevel uint8

const (
	PermissionLevelUser PermissionLevel = 0
	PermissionLevelRoot PermissionLevel = 1
)

// Permission carries a permission level and its associated 8-byte token
// (e.g. a root-key challenge response) as used by PermissionRequest.
type Permission struct {
	Level PermissionLevel
	Token [8]byte
}

func decodePermission(r *bits.Reader) (Permission, error) {
	lvl, err := r.ReadBits(8)
	if err != nil {
		return Permission{}, d7err.UnexpectedEndOf("Permission.level", err)
	}
	tok, err := r.ReadBytes(8)
	if err != nil {
		return Permission{}, d7err.UnexpectedEndOf("Permission.token", err)
	}
	var p Permission
	p.Level = PermissionLevel(lvl)
	copy(p.Token[:], tok)
	return p, nil
}

func encodePermission(w *bits.Writer, p Permission) error {
	if err := w.WriteBits(uint32(p.Level), 8); err != nil {
		return err
	}
	return w.WriteBytes(p.Token[:])
}
