package printer

import (
	"bytes"
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadBetween(t *testing.T) {
	line := PadBetween("TOTAL", "Rp 13.000", 32)
	assert.Len(t, line, 32)
	assert.True(t, len(line) > 0 && line[:5] == "TOTAL")
	assert.Equal(t, "Rp 13.000", line[len(line)-9:])

	assert.Equal(t, "abc def", PadBetween("abc", "def", 4))
}

func TestCenter(t *testing.T) {
	assert.Equal(t, "  ab", Center("ab", 6))
	assert.Equal(t, "toolong", Center("toolong", 3))
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"Kopi Susu", "Gula Aren"}, Wrap("Kopi Susu Gula Aren", 10))
	assert.Equal(t, []string{"abcde", "fgh"}, Wrap("abcdefgh", 5))
	assert.Equal(t, []string{""}, Wrap("", 10))
}

func TestASCII(t *testing.T) {
	assert.Equal(t, "Tarik - Setor", ASCII("Tarik • Setor"))
	assert.Equal(t, "caf?", ASCII("café"))
}

func TestDocumentBytes(t *testing.T) {
	doc := NewDocument(32)
	doc.Align(AlignCenter).Bold(true).Line("28 POINT").Bold(false).
		Align(AlignLeft).Rule('-').Pair("TOTAL", "Rp 1.000").Feed(3).PartialCut()

	out := doc.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte{ESC, '@'}))
	assert.True(t, bytes.HasSuffix(out, []byte{GS, 'V', 0x01}))
	assert.Contains(t, string(out), "28 POINT\n")
	assert.Contains(t, string(out), "--------------------------------\n")
	assert.Equal(t, 32, doc.Columns())
	assert.Equal(t, DefaultColumns, NewDocument(0).Columns())
}

func TestColumnsFor(t *testing.T) {
	cols, err := ColumnsFor(58)
	require.NoError(t, err)
	assert.Equal(t, 32, cols)

	cols, err = ColumnsFor(80)
	require.NoError(t, err)
	assert.Equal(t, 48, cols)

	_, err = ColumnsFor(65)
	assert.Error(t, err)

	assert.Equal(t, []int{57, 58, 76, 80, 100}, PaperWidths())
}

func TestNew(t *testing.T) {
	p, err := New("none", "", "")
	require.NoError(t, err)
	assert.Equal(t, "none", p.Kind())
	assert.NoError(t, p.Print(context.Background(), []byte("x")))

	_, err = New("usb", "", "")
	assert.Error(t, err)
	_, err = New("network", "", "")
	assert.Error(t, err)
	_, err = New("bluetooth", "", "")
	assert.Error(t, err)
}

func TestNetworkPrinterPrint(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(conn)
		received <- buf.Bytes()
	}()

	p := NewNetworkPrinter(ln.Addr().String())
	require.NoError(t, p.Print(context.Background(), []byte("hello")))
	assert.Equal(t, []byte("hello"), <-received)
}
