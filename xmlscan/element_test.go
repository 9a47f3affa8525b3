package xmlscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElement(t *testing.T) {
	cases := []struct {
		name      string
		token     string
		wantName  string
		wantAttrs string
	}{
		{name: "no attrs", token: `<spectrum>`, wantName: "spectrum", wantAttrs: ""},
		{name: "with attrs", token: `<spectrum id="5" index="4">`, wantName: "spectrum", wantAttrs: `id="5" index="4"`},
		{name: "self closing", token: `<spectrum id="5"/>`, wantName: "spectrum", wantAttrs: `id="5"`},
		{name: "end element", token: `</spectrum>`, wantName: "spectrum", wantAttrs: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			name, attrs := Element([]byte(tc.token))
			assert.Equal(t, tc.wantName, string(name))
			assert.Equal(t, tc.wantAttrs, string(attrs))
		})
	}
}

func TestAttr(t *testing.T) {
	attrsToken := []byte(`id="controllerType=0 controllerNumber=1 scan=5" defaultArrayLength="142"`)

	v, err := Attr(attrsToken, []byte("id"))
	assert.NoError(t, err)
	assert.Equal(t, "controllerType=0 controllerNumber=1 scan=5", string(v))

	v, err = Attr(attrsToken, []byte("defaultArrayLength"))
	assert.NoError(t, err)
	assert.Equal(t, "142", string(v))

	v, err = Attr(attrsToken, []byte("missing"))
	assert.NoError(t, err)
	assert.Nil(t, v)
}

func TestAttrsIteration(t *testing.T) {
	attrsToken := []byte(`index="4" id="5" defaultArrayLength="142"`)
	var keys, values []string
	err := Attrs(attrsToken, func(key, value []byte) bool {
		keys = append(keys, string(key))
		values = append(values, string(value))
		return true
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"index", "id", "defaultArrayLength"}, keys)
	assert.Equal(t, []string{"4", "5", "142"}, values)
}

func TestIsElementFamily(t *testing.T) {
	assert.True(t, IsElement([]byte(`<spectrum id="1">`)))
	assert.False(t, IsElement([]byte(`<!-- comment -->`)))
	assert.False(t, IsElement([]byte(`<?xml version="1.0"?>`)))

	assert.True(t, IsSelfClosing([]byte(`<spectrum/>`)))
	assert.False(t, IsSelfClosing([]byte(`<spectrum>`)))

	assert.True(t, IsEndElement([]byte(`</spectrum>`)))
	assert.False(t, IsEndElement([]byte(`<spectrum>`)))

	assert.True(t, IsStartElement([]byte(`<spectrum>`)))
	assert.False(t, IsStartElement([]byte(`</spectrum>`)))
}
