package favorites

import (
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/fyndhq/fynd/internal/store"
)

func testDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestToggleIsItsOwnInverse(t *testing.T) {
	f := New(testDB(t), nil, zap.NewNop())

	f.Toggle(5)
	if !f.IsFavorite(5) {
		t.Error("IsFavorite(5) = false after toggle, want true")
	}
	f.Toggle(5)
	if f.IsFavorite(5) {
		t.Error("IsFavorite(5) = true after double toggle, want false")
	}
}

func TestNoDuplicates(t *testing.T) {
	f := New(testDB(t), nil, zap.NewNop())

	f.Toggle(3)
	f.Toggle(9)
	f.Toggle(3) // removes
	f.Toggle(3) // re-adds

	if got := f.IDs(); !reflect.DeepEqual(got, []int64{3, 9}) {
		t.Errorf("IDs = %v, want [3 9]", got)
	}
}

func TestPersistedAcrossInstances(t *testing.T) {
	db := testDB(t)

	f := New(db, nil, zap.NewNop())
	f.Toggle(1)
	f.Toggle(2)

	reloaded := New(db, nil, zap.NewNop())
	if got := reloaded.IDs(); !reflect.DeepEqual(got, []int64{1, 2}) {
		t.Errorf("reloaded IDs = %v, want [1 2]", got)
	}
}

func TestCorruptStoredValueResetsToEmpty(t *testing.T) {
	db := testDB(t)
	if err := db.Put(store.KeyFavorites, []byte(`"not-an-array"`)); err != nil {
		t.Fatal(err)
	}

	f := New(db, nil, zap.NewNop())
	if got := f.IDs(); len(got) != 0 {
		t.Errorf("IDs from corrupt store = %v, want empty", got)
	}
}
