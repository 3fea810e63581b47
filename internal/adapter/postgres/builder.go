package postgres

import "github.com/Masterminds/squirrel"

// Builder returns a squirrel statement builder using $n placeholders.
func Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// EffectiveLimit clamps a requested page size. limit <= 0 selects def.
func EffectiveLimit(limit, def, max int) uint64 {
	switch {
	case limit <= 0:
		return uint64(def)
	case limit > max:
		return uint64(max)
	}
	return uint64(limit)
}
