package introspect

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"db2schema/internal/model"
)

type listerFunc func(ctx context.Context) ([]string, error)

func (f listerFunc) TableNames(ctx context.Context) ([]string, error) { return f(ctx) }

func registry(t *testing.T) *model.Registry {
	t.Helper()
	reg, err := model.NewRegistry(
		&model.Model{Name: "Author"},
		&model.Model{Name: "Book"},
		&model.Model{Name: "Review", Table: "book_review"},
	)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return reg
}

func TestModelTables(t *testing.T) {
	t.Parallel()

	reg := registry(t)
	lister := listerFunc(func(context.Context) ([]string, error) {
		return []string{"BOOK_REVIEW", "AUTHOR", "UNRELATED"}, nil
	})

	tests := []struct {
		name         string
		onlyExisting bool
		want         []string
	}{
		{name: "existing only, registry order", onlyExisting: true, want: []string{"author", "book_review"}},
		{name: "all model tables", onlyExisting: false, want: []string{"author", "book", "book_review"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ModelTables(context.Background(), lister, reg, tt.onlyExisting)
			if err != nil {
				t.Fatalf("ModelTables: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ModelTables() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestModelTables_ListerError(t *testing.T) {
	t.Parallel()

	boom := errors.New("catalog unavailable")
	lister := listerFunc(func(context.Context) ([]string, error) { return nil, boom })

	if _, err := ModelTables(context.Background(), lister, registry(t), true); !errors.Is(err, boom) {
		t.Fatalf("error = %v, want %v", err, boom)
	}
}

func TestExistingTables(t *testing.T) {
	t.Parallel()

	src := Existing{
		Lister: listerFunc(func(context.Context) ([]string, error) {
			return []string{"book", "Author"}, nil
		}),
		Registry: registry(t),
	}
	got, err := src.Tables(context.Background())
	if err != nil {
		t.Fatalf("Tables: %v", err)
	}
	if want := []string{"author", "book"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Tables() = %v, want %v", got, want)
	}
}
