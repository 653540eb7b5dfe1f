package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stockcard/internal/core/entity"
	"stockcard/internal/core/id"
)

type testCatalog struct {
	entity.BaseCatalog
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[testCatalog]()

	expectedCols := []string{
		"id", "deletion_mark", "version", "code", "name",
	}

	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}
}

func TestExtractDBColumnsSkipsIgnoredFields(t *testing.T) {
	type withIgnored struct {
		ID    id.ID  `db:"id"`
		Skip  string `db:"-"`
		NoTag string
	}

	cols := ExtractDBColumns[withIgnored]()
	assert.Equal(t, []string{"id"}, cols)
}

func TestStructToMap(t *testing.T) {
	cat := testCatalog{
		BaseCatalog: entity.BaseCatalog{
			BaseEntity: entity.BaseEntity{
				ID:           id.New(),
				DeletionMark: true,
				Version:      5,
			},
		},
		Code: "TEST",
		Name: "Test Name",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, true, m["deletion_mark"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "TEST", m["code"])
	assert.Equal(t, "Test Name", m["name"])
}

func TestStructToMapPointerInput(t *testing.T) {
	cat := &testCatalog{Code: "PTR"}
	m := StructToMap(cat)
	assert.Equal(t, "PTR", m["code"])
}
