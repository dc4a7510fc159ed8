package paging

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, Params{Page: 1, PageSize: DefaultPageSize}, Params{}.Normalize())
	assert.Equal(t, Params{Page: 3, PageSize: MaxPageSize}, Params{Page: 3, PageSize: 500}.Normalize())
	assert.Equal(t, 40, Params{Page: 3, PageSize: 20}.Offset())
}

func TestWindow(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{3, 4}, Window(items, Params{Page: 2, PageSize: 2}))
	assert.Equal(t, []int{5}, Window(items, Params{Page: 3, PageSize: 2}))
	assert.Empty(t, Window(items, Params{Page: 9, PageSize: 2}))
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/animals?page=2&page_size=abc&sort=Name&order=DESC", nil)
	p := FromRequest(r)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)

	f, desc := SortFromRequest(r)
	assert.Equal(t, "name", f)
	assert.True(t, desc)
}
