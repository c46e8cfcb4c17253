package printer

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestJustifyCountsRunes(t *testing.T) {
	line := Justify("Subtotal:", "₹250.00", 20)

	assert.Equal(t, "Subtotal:    ₹250.00", line)
	assert.Equal(t, 20, utf8.RuneCountInString(line))
}

func TestJustifyCutsLongLeft(t *testing.T) {
	assert.Equal(t, "abcd 123", Justify("abcdefghij", "123", 8))
	assert.Equal(t, "key value-too-wide", Justify("key", "value-too-wide", 5))
}

func TestTextDocumentHasNoControlCodes(t *testing.T) {
	doc := NewTextDocument(12)
	doc.SetAlign(AlignCenter).SetBold(true).Text("SHOP").SetAlign(AlignLeft).
		Separator('-').ItemLine(2, "Tea", "20.00").PartialCut()

	assert.Equal(t, "    SHOP\n------------\n2x Tea 20.00\n", doc.String())
	assert.False(t, bytes.ContainsAny(doc.Bytes(), "\x1b\x1d"))
}

func TestESCPOSDocumentEmitsCommands(t *testing.T) {
	doc := NewDocument(32)
	doc.SetBold(true).Text("X").Cut()

	out := doc.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte{ESC, '@'}))
	assert.True(t, bytes.Contains(out, []byte{ESC, 'E', 1}))
	assert.True(t, bytes.HasSuffix(out, []byte{GS, 'V', 0x00}))
}

func TestResetClearsBuffer(t *testing.T) {
	doc := NewTextDocument(0)
	doc.SetAlign(AlignRight).Text("x")
	doc.Reset().Text("y")

	assert.Equal(t, 32, doc.Width())
	assert.Equal(t, "y\n", doc.String())
	assert.False(t, strings.HasPrefix(doc.String(), " "))
}
