package builder

import (
	"testing"
	"time"
)

func TestSQLBuilder(t *testing.T) {
	t.Run("Select", func(t *testing.T) {
		b := NewSQLBuilder()
		query, args := b.Select("id", "name").From("employees").Where("id = ?", 1).Build()
		expected := "SELECT id, name FROM employees WHERE id = $1"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 1 || args[0] != 1 {
			t.Errorf("expected args [1], got %v", args)
		}
	})

	t.Run("Insert", func(t *testing.T) {
		b := NewSQLBuilder()
		query, args := b.Insert("employees", "name", "registration").Values("Alice", "MAT-001").Build()
		expected := "INSERT INTO employees (name, registration) VALUES ($1, $2)"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 2 || args[0] != "Alice" || args[1] != "MAT-001" {
			t.Errorf("expected args [Alice MAT-001], got %v", args)
		}
	})

	t.Run("Insert with Returning", func(t *testing.T) {
		b := NewSQLBuilder()
		query, _ := b.Insert("trips", "trip_date", "vehicle").
			Values("2025-01-10", "ABC-1234").
			Returning("id").
			Build()
		expected := "INSERT INTO trips (trip_date, vehicle) VALUES ($1, $2) RETURNING id"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
	})

	t.Run("Update", func(t *testing.T) {
		b := NewSQLBuilder()
		query, args := b.Update("employees").Set("name", "Bob").Where("id = ?", 1).Build()
		expected := "UPDATE employees SET name = $1 WHERE id = $2"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 2 || args[0] != "Bob" || args[1] != 1 {
			t.Errorf("expected args [Bob 1], got %v", args)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		b := NewSQLBuilder()
		query, args := b.Delete("deductions").Where("trip_id = ?", 7).Where("automatic = ?", true).Build()
		expected := "DELETE FROM deductions WHERE trip_id = $1 AND automatic = $2"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 2 {
			t.Errorf("expected 2 args, got %v", args)
		}
	})

	t.Run("Select with Join, OrderBy, Limit and Offset", func(t *testing.T) {
		start := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
		b := NewSQLBuilder()
		query, args := b.Select("a.id", "a.entry_at", "e.name").
			From("attendance_entries a").
			Join("INNER", "employees e", "a.employee_id = e.id").
			Where("a.entry_at >= ?", start).
			OrderBy("a.entry_at DESC").
			Limit(5).
			Offset(10).
			Build()

		expected := "SELECT a.id, a.entry_at, e.name FROM attendance_entries a " +
			"INNER JOIN employees e ON a.employee_id = e.id " +
			"WHERE a.entry_at >= $1 ORDER BY a.entry_at DESC LIMIT 5 OFFSET 10"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 1 {
			t.Errorf("expected 1 arg, got %v", args)
		}
	})

	t.Run("Multiple Where conditions are ANDed with sequential placeholders", func(t *testing.T) {
		b := NewSQLBuilder()
		query, args := b.Select("id").
			From("deductions").
			Where("employee_id = ?", 3).
			Where("status = ?", "pendente").
			Where("deduction_date >= ? AND deduction_date <= ?", "2025-01-01", "2025-01-31").
			Build()

		expected := "SELECT id FROM deductions WHERE employee_id = $1 AND status = $2 " +
			"AND deduction_date >= $3 AND deduction_date <= $4"
		if query != expected {
			t.Errorf("expected %s, got %s", expected, query)
		}
		if len(args) != 4 {
			t.Errorf("expected 4 args, got %v", args)
		}
	})
}
