package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestPQErrorClassification(t *testing.T) {
	wrap := func(code pq.ErrorCode) error {
		return fmt.Errorf("select game goals: %w", &pq.Error{Code: code, Message: "boom"})
	}

	if !isUndefinedTable(wrap("42P01")) {
		t.Fatalf("expected 42P01 to be an undefined table")
	}
	if isUndefinedTable(wrap("23505")) {
		t.Fatalf("23505 is not an undefined table")
	}
	if !isUniqueViolation(wrap("23505")) {
		t.Fatalf("expected 23505 to be a unique violation")
	}
	if !isForeignKeyViolation(wrap("23503")) {
		t.Fatalf("expected 23503 to be a foreign key violation")
	}
}

func TestUndefinedTableIgnoresMessageText(t *testing.T) {
	err := errors.New(`pq: relation "game_goals" does not exist`)
	if isUndefinedTable(err) {
		t.Fatalf("plain errors must not be classified by message text")
	}
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get team: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(errors.New("other")) {
		t.Fatalf("unexpected not found")
	}
}

func TestNullIntRoundTrip(t *testing.T) {
	if got := intFromNull(nullInt(nil)); got != nil {
		t.Fatalf("expected nil, got %v", *got)
	}
	three := 3
	got := intFromNull(nullInt(&three))
	if got == nil || *got != 3 {
		t.Fatalf("expected 3, got %v", got)
	}
	if nullString("").Valid {
		t.Fatalf("empty string should be NULL")
	}
}
