package validator

import (
	"testing"

	"github.com/gabriel-vasile/mimetype"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name   string   `json:"name" validate:"required"`
	Amount *float64 `json:"amount" validate:"required,gte=0"`
	Note   string   `json:"note" validate:"max=5"`
	Hidden string   `json:"-"`
}

func TestCheck(t *testing.T) {
	v := New()
	assert.True(t, v.Valid())

	v.Check(true, "title", "must be provided")
	assert.True(t, v.Valid())

	v.Check(false, "title", "must be provided")
	v.Check(false, "title", "second message is ignored")
	assert.False(t, v.Valid())
	assert.Equal(t, map[string]string{"title": "must be provided"}, v.Errors)
}

func TestStruct(t *testing.T) {
	negative := -1.0
	v := New()
	v.Struct(sample{Amount: &negative, Note: "too long"})

	assert.Equal(t, map[string]string{
		"name":   "must be provided",
		"amount": "must be greater than or equal to 0",
		"note":   "must not be more than 5 bytes long",
	}, v.Errors)

	zero := 0.0
	v = New()
	v.Struct(sample{Name: "Dune", Amount: &zero})
	assert.True(t, v.Valid())

	v = New()
	v.Struct(sample{Name: "Dune"})
	assert.Equal(t, map[string]string{"amount": "must be provided"}, v.Errors)
}

func TestIn(t *testing.T) {
	assert.True(t, In("png", "jpeg", "png"))
	assert.False(t, In("tiff", "jpeg", "png"))
}

func TestMime(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	mtype := mimetype.Detect(png)

	assert.True(t, Mime(mtype, "image/jpeg", "image/png"))
	assert.False(t, Mime(mtype, "image/jpeg"))
	assert.False(t, Mime(nil, "image/png"))
}
