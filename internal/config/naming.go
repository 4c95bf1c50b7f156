package config

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm/schema"
)

// NamingConvention is the gorm naming strategy shared by every model. Tables
// and columns follow schema.NamingStrategy; indexes and constraints get
// deterministic names:
//
//	ix_<table>_<column>
//	uq_<table>_<column>
//	ck_<table>_<constraint>
//	fk_<table>_<column>_<referred table>
type NamingConvention struct {
	schema.NamingStrategy
}

var _ schema.Namer = NamingConvention{}

// IndexName names a non-unique index.
func (n NamingConvention) IndexName(table, column string) string {
	return n.constraintName("ix", table, n.ColumnName(table, column))
}

// UniqueName names a unique constraint.
func (n NamingConvention) UniqueName(table, column string) string {
	return n.constraintName("uq", table, n.ColumnName(table, column))
}

// CheckerName names a check constraint.
func (n NamingConvention) CheckerName(table, name string) string {
	return n.constraintName("ck", table, name)
}

// RelationshipFKName names a foreign key after the table holding it, the
// foreign key column and the referenced table.
func (n NamingConvention) RelationshipFKName(rel schema.Relationship) string {
	for _, ref := range rel.References {
		if ref.ForeignKey == nil || ref.PrimaryKey == nil {
			continue
		}
		if ref.ForeignKey.Schema == nil || ref.PrimaryKey.Schema == nil {
			continue
		}
		return n.constraintName("fk", ref.ForeignKey.Schema.Table, ref.ForeignKey.DBName, ref.PrimaryKey.Schema.Table)
	}
	return n.constraintName("fk", rel.Schema.Table, n.ColumnName(rel.Schema.Table, rel.Name))
}

// constraintName joins parts with underscores and shortens the result to
// IdentifierMaxLength (64 by default) with a hash suffix.
func (n NamingConvention) constraintName(prefix string, parts ...string) string {
	name := strings.ReplaceAll(prefix+"_"+strings.Join(parts, "_"), ".", "_")

	limit := n.IdentifierMaxLength
	if limit == 0 {
		limit = 64
	}
	if utf8.RuneCountInString(name) <= limit {
		return name
	}
	sum := sha1.Sum([]byte(name))
	return name[:limit-8] + hex.EncodeToString(sum[:])[:8]
}
