package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBook_DefaultsStatus(t *testing.T) {
	b := NewBook(Draft{Title: "Dune", Author: "Herbert", ISBN: "9780441013593"})
	assert.Equal(t, StatusAvailable, b.Status)
	assert.Nil(t, b.ImageURL)
	assert.Nil(t, b.Year)

	b = NewBook(Draft{Title: "Dune", Author: "Herbert", ISBN: "9780441013593", Status: StatusInRepair})
	assert.Equal(t, StatusInRepair, b.Status)
}

func TestApply_FullReplace(t *testing.T) {
	year := 1965
	url := "http://img.local/dune.jpg"
	b := NewBook(Draft{Title: "Dune", Author: "Herbert", Genre: "SciFi", Year: &year, ISBN: "9780441013593", Status: StatusBorrowed, ImageURL: &url})

	b.Apply(Draft{Title: "Dune Messiah", Author: "Herbert", ISBN: "9780593098233"})

	assert.Equal(t, "Dune Messiah", b.Title)
	assert.Empty(t, b.Genre)
	assert.Nil(t, b.Year)
	assert.Nil(t, b.ImageURL)
	assert.Equal(t, StatusAvailable, b.Status)

	year = 1900
	assert.Nil(t, b.Year)
}

func TestApply_EmptyImageURLIsUnset(t *testing.T) {
	empty := ""
	b := NewBook(Draft{Title: "t", Author: "a", ISBN: "1234567890", ImageURL: &empty})
	assert.Nil(t, b.ImageURL)
}

func TestStatusValid(t *testing.T) {
	for _, s := range Statuses() {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Status("prestado").Valid())
	assert.False(t, Status("").Valid())
}

func TestCoverURL(t *testing.T) {
	url := "https://example.com/c.png"
	assert.Equal(t, url, CoverURL(&Book{ISBN: "9780441013593", ImageURL: &url}))
	assert.Equal(t, "https://covers.openlibrary.org/b/isbn/9780441013593-L.jpg", CoverURL(&Book{ISBN: "978-0-441-01359-3"}))
	assert.Equal(t, "https://covers.openlibrary.org/b/isbn/080442957X-L.jpg", CoverURL(&Book{ISBN: "0-8044-2957-x"}))
	assert.Empty(t, CoverURL(&Book{ISBN: "12345"}))
	assert.Empty(t, CoverURL(nil))
}
