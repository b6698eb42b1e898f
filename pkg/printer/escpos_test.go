package printer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDocumentDefaultsWidth(t *testing.T) {
	d := NewDocument(0)
	assert.Equal(t, 32, d.Width())
	// document starts with ESC @
	assert.True(t, bytes.HasPrefix(d.Bytes(), []byte{ESC, '@'}))
}

func TestKeyValueRightAligns(t *testing.T) {
	d := NewDocument(32)
	d.Reset()
	d.KeyValue("  Chegirma:", "-5 000")

	line := d.Bytes()[2:] // skip ESC @
	assert.Equal(t, byte(LF), line[len(line)-1])
	line = line[:len(line)-1]
	assert.Len(t, line, 32)
	assert.True(t, bytes.HasPrefix(line, []byte("  Chegirma:")))
	assert.True(t, bytes.HasSuffix(line, []byte("-5 000")))
}

func TestKeyValueKeepsSeparatingSpaceOnOverflow(t *testing.T) {
	d := NewDocument(10)
	d.Reset()
	d.KeyValue("averylongkey", "bigvalue")

	line := d.Bytes()[2:]
	assert.Contains(t, string(line), "averylongkey bigvalue")
}

func TestTextTruncatesToWidth(t *testing.T) {
	d := NewDocument(8)
	d.Reset()
	d.Text("0123456789abc")

	assert.Equal(t, "01234567\n", string(d.Bytes()[2:]))
}

func TestSeparatorFillsWidth(t *testing.T) {
	d := NewDocument(32)
	d.Reset()
	d.Separator('=')

	line := d.Bytes()[2:]
	assert.Equal(t, bytes.Repeat([]byte{'='}, 32), line[:32])
}

func TestCutCommands(t *testing.T) {
	d := NewDocument(32)
	d.Reset()
	d.Cut()
	assert.True(t, bytes.HasSuffix(d.Bytes(), []byte{GS, 'V', 0x00}))

	d.Reset()
	d.PartialCut()
	assert.True(t, bytes.HasSuffix(d.Bytes(), []byte{GS, 'V', 0x01}))
}

func TestNewPrinterFromConfig(t *testing.T) {
	p, err := NewPrinterFromConfig("none", "", "")
	assert.NoError(t, err)
	assert.False(t, p.IsConnected())
	assert.NoError(t, p.Print([]byte("x")))

	_, err = NewPrinterFromConfig("usb", "", "")
	assert.Error(t, err)

	_, err = NewPrinterFromConfig("network", "", "")
	assert.Error(t, err)

	_, err = NewPrinterFromConfig("laser", "", "")
	assert.Error(t, err)
}
